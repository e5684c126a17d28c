package controllers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Stepho-hub/HealthKonnect-sub001/internal/app/config"
	"github.com/Stepho-hub/HealthKonnect-sub001/internal/app/contracts"
	"github.com/Stepho-hub/HealthKonnect-sub001/internal/pkg/constvars"
	"github.com/Stepho-hub/HealthKonnect-sub001/internal/pkg/exceptions"
	"github.com/Stepho-hub/HealthKonnect-sub001/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type AttachmentController struct {
	Log                *zap.Logger
	AppointmentUsecase contracts.AppointmentUsecase
	Storage            contracts.Storage
	BucketName         string
	MaxUploadSizeInMB  int64
}

func NewAttachmentController(
	logger *zap.Logger,
	appointmentUsecase contracts.AppointmentUsecase,
	storage contracts.Storage,
	driverConfig *config.DriverConfig,
	internalConfig *config.InternalConfig,
) *AttachmentController {
	return &AttachmentController{
		Log:                logger,
		AppointmentUsecase: appointmentUsecase,
		Storage:            storage,
		BucketName:         driverConfig.Minio.BucketName,
		MaxUploadSizeInMB:  internalConfig.App.AttachmentMaxUploadSizeInMB,
	}
}

// UploadAttachment stores a referral letter or lab result against an
// appointment the caller owns.
func (ctrl *AttachmentController) UploadAttachment(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok {
		ctrl.Log.Error("AttachmentController.UploadAttachment requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	uid, ok := r.Context().Value(constvars.CONTEXT_UID_KEY).(string)
	if !ok {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingAuthContext(nil))
		return
	}

	appointmentID := chi.URLParam(r, "appointmentId")
	if appointmentID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(nil, "appointmentId"))
		return
	}

	ctrl.Log.Info("AttachmentController.UploadAttachment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID))

	maxBytes := ctrl.MaxUploadSizeInMB * 1024 * 1024
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseMultipartForm(err))
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseMultipartForm(err))
		return
	}
	defer file.Close()

	if fileHeader.Size > maxBytes {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrFileTooLarge(fmt.Errorf("file size %d exceeds %d MB", fileHeader.Size, ctrl.MaxUploadSizeInMB)))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	objectName, err := ctrl.Storage.UploadFile(ctx, file, fileHeader, ctrl.BucketName)
	if err != nil {
		ctrl.Log.Error("AttachmentController.UploadAttachment Storage.UploadFile error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	response, err := ctrl.AppointmentUsecase.AttachFile(ctx, appointmentID, uid, objectName)
	if err != nil {
		ctrl.Log.Error("AttachmentController.UploadAttachment AppointmentUsecase.AttachFile error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))

		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("AttachmentController.UploadAttachment succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingObjectNameKey, objectName))
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.UploadAttachmentSuccessMessage, response)
}

package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/Stepho-hub/HealthKonnect-sub001/internal/app/contracts"
	"github.com/Stepho-hub/HealthKonnect-sub001/internal/pkg/constvars"
	"github.com/Stepho-hub/HealthKonnect-sub001/internal/pkg/dto/requests"
	"github.com/Stepho-hub/HealthKonnect-sub001/internal/pkg/exceptions"
	"github.com/Stepho-hub/HealthKonnect-sub001/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type AppointmentController struct {
	Log                *zap.Logger
	AppointmentUsecase contracts.AppointmentUsecase
}

func NewAppointmentController(logger *zap.Logger, appointmentUsecase contracts.AppointmentUsecase) *AppointmentController {
	return &AppointmentController{
		Log:                logger,
		AppointmentUsecase: appointmentUsecase,
	}
}

func (ctrl *AppointmentController) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok {
		ctrl.Log.Error("AppointmentController.CreateAppointment requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	uid, ok := r.Context().Value(constvars.CONTEXT_UID_KEY).(string)
	if !ok {
		ctrl.Log.Error("AppointmentController.CreateAppointment uid not found in context",
			zap.String(constvars.LoggingRequestIDKey, requestID))
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingAuthContext(nil))
		return
	}

	ctrl.Log.Info("AppointmentController.CreateAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, uid))

	request := new(requests.CreateAppointment)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.AppointmentUsecase.CreateAppointment(ctx, uid, request)
	if err != nil {
		ctrl.Log.Error("AppointmentController.CreateAppointment AppointmentUsecase.CreateAppointment error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))

		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("AppointmentController.CreateAppointment succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, response.ID))
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.CreateAppointmentSuccessMessage, response)
}

func (ctrl *AppointmentController) FindAll(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok {
		ctrl.Log.Error("AppointmentController.FindAll requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	uid, ok := r.Context().Value(constvars.CONTEXT_UID_KEY).(string)
	if !ok {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingAuthContext(nil))
		return
	}
	role, _ := r.Context().Value(constvars.CONTEXT_ROLE_KEY).(string)

	ctrl.Log.Info("AppointmentController.FindAll called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, uid),
		zap.String(constvars.LoggingRoleKey, role))

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.AppointmentUsecase.FindAllByUser(ctx, uid, role)
	if err != nil {
		ctrl.Log.Error("AppointmentController.FindAll AppointmentUsecase.FindAllByUser error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))

		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("AppointmentController.FindAll succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingResponseLengthKey, len(response)))
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetAppointmentSuccessMessage, response)
}

func (ctrl *AppointmentController) FindByID(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok {
		ctrl.Log.Error("AppointmentController.FindByID requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	appointmentID := chi.URLParam(r, "appointmentId")
	if appointmentID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(nil, "appointmentId"))
		return
	}

	ctrl.Log.Info("AppointmentController.FindByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID))

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.AppointmentUsecase.FindAppointmentByID(ctx, appointmentID)
	if err != nil {
		ctrl.Log.Error("AppointmentController.FindByID AppointmentUsecase.FindAppointmentByID error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))

		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetAppointmentSuccessMessage, response)
}

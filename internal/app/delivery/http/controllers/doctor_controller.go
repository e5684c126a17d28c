package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/Stepho-hub/HealthKonnect-sub001/internal/app/contracts"
	"github.com/Stepho-hub/HealthKonnect-sub001/internal/pkg/constvars"
	"github.com/Stepho-hub/HealthKonnect-sub001/internal/pkg/exceptions"
	"github.com/Stepho-hub/HealthKonnect-sub001/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type DoctorController struct {
	Log           *zap.Logger
	DoctorUsecase contracts.DoctorUsecase
}

func NewDoctorController(logger *zap.Logger, doctorUsecase contracts.DoctorUsecase) *DoctorController {
	return &DoctorController{
		Log:           logger,
		DoctorUsecase: doctorUsecase,
	}
}

func (ctrl *DoctorController) FindAll(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok {
		ctrl.Log.Error("DoctorController.FindAll requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	ctrl.Log.Info("DoctorController.FindAll called",
		zap.String(constvars.LoggingRequestIDKey, requestID))

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.DoctorUsecase.FindAll(ctx)
	if err != nil {
		ctrl.Log.Error("DoctorController.FindAll DoctorUsecase.FindAll error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))

		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetDoctorSuccessMessage, response)
}

func (ctrl *DoctorController) FindByID(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok {
		ctrl.Log.Error("DoctorController.FindByID requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	doctorID := chi.URLParam(r, "doctorId")
	if doctorID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(nil, "doctorId"))
		return
	}

	ctrl.Log.Info("DoctorController.FindByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID))

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.DoctorUsecase.FindDoctorByID(ctx, doctorID)
	if err != nil {
		ctrl.Log.Error("DoctorController.FindByID DoctorUsecase.FindDoctorByID error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))

		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetDoctorSuccessMessage, response)
}

func (ctrl *DoctorController) GetAvailableTimeSlots(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok {
		ctrl.Log.Error("DoctorController.GetAvailableTimeSlots requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	doctorID := chi.URLParam(r, "doctorId")
	if doctorID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(nil, "doctorId"))
		return
	}
	date := r.URL.Query().Get("date")
	if date == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(nil, "date"))
		return
	}

	ctrl.Log.Info("DoctorController.GetAvailableTimeSlots called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID))

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.DoctorUsecase.GetAvailableTimeSlots(ctx, doctorID, date)
	if err != nil {
		ctrl.Log.Error("DoctorController.GetAvailableTimeSlots DoctorUsecase.GetAvailableTimeSlots error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))

		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetAvailableSlotsSuccessMessage, response)
}

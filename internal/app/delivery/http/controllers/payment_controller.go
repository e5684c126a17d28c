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

type PaymentController struct {
	Log            *zap.Logger
	PaymentUsecase contracts.PaymentUsecase
}

func NewPaymentController(logger *zap.Logger, paymentUsecase contracts.PaymentUsecase) *PaymentController {
	return &PaymentController{
		Log:            logger,
		PaymentUsecase: paymentUsecase,
	}
}

func (ctrl *PaymentController) InitiatePayment(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok {
		ctrl.Log.Error("PaymentController.InitiatePayment requestID not found in context")
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

	ctrl.Log.Info("PaymentController.InitiatePayment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID))

	request := new(requests.InitiatePayment)
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

	response, err := ctrl.PaymentUsecase.InitiateAppointmentPayment(ctx, appointmentID, uid, request)
	if err != nil {
		ctrl.Log.Error("PaymentController.InitiatePayment PaymentUsecase.InitiateAppointmentPayment error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))

		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("PaymentController.InitiatePayment succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPaymentIntentIDKey, response.PaymentIntentID))
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.InitiatePaymentSuccessMessage, response)
}

// PaymentCallback receives asynchronous settlement notifications from the
// mobile-money gateway. It is unauthenticated by design; the intent ID in
// the payload is the shared secret.
func (ctrl *PaymentController) PaymentCallback(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok {
		ctrl.Log.Error("PaymentController.PaymentCallback requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	request := new(requests.PaymentCallback)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("PaymentController.PaymentCallback called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPaymentIntentIDKey, request.PartnerTrxID),
		zap.String(constvars.LoggingPaymentStatusKey, request.PaymentStatus))

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := ctrl.PaymentUsecase.PaymentCallback(ctx, request); err != nil {
		ctrl.Log.Error("PaymentController.PaymentCallback PaymentUsecase.PaymentCallback error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))

		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.PaymentCallbackSuccessMessage, nil)
}

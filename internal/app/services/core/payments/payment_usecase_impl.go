package payments

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Stepho-hub/HealthKonnect-sub001/internal/app/config"
	"github.com/Stepho-hub/HealthKonnect-sub001/internal/app/contracts"
	"github.com/Stepho-hub/HealthKonnect-sub001/internal/app/models"
	"github.com/Stepho-hub/HealthKonnect-sub001/internal/pkg/constvars"
	"github.com/Stepho-hub/HealthKonnect-sub001/internal/pkg/dto/requests"
	"github.com/Stepho-hub/HealthKonnect-sub001/internal/pkg/dto/responses"
	"github.com/Stepho-hub/HealthKonnect-sub001/internal/pkg/exceptions"

	"go.uber.org/zap"
)

type paymentUsecase struct {
	AppointmentRepository   contracts.AppointmentRepository
	PaymentIntentRepository contracts.PaymentIntentRepository
	MomoService             contracts.PaymentGatewayService
	NotifierService         contracts.NotifierService
	InternalConfig          *config.InternalConfig
	Log                     *zap.Logger
}

var (
	paymentUsecaseInstance contracts.PaymentUsecase
	oncePaymentUsecase     sync.Once
)

func NewPaymentUsecase(
	appointmentRepository contracts.AppointmentRepository,
	paymentIntentRepository contracts.PaymentIntentRepository,
	momoService contracts.PaymentGatewayService,
	notifierService contracts.NotifierService,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.PaymentUsecase {
	oncePaymentUsecase.Do(func() {
		instance := &paymentUsecase{
			AppointmentRepository:   appointmentRepository,
			PaymentIntentRepository: paymentIntentRepository,
			MomoService:             momoService,
			NotifierService:         notifierService,
			InternalConfig:          internalConfig,
			Log:                     logger,
		}
		paymentUsecaseInstance = instance
	})
	return paymentUsecaseInstance
}

// InitiateAppointmentPayment locks the slot, opens a payment intent and asks
// the mobile-money gateway for a charge. Retrying while an intent is still
// active returns the existing intent instead of opening a second charge.
func (uc *paymentUsecase) InitiateAppointmentPayment(ctx context.Context, appointmentID, patientID string, request *requests.InitiatePayment) (*responses.InitiatePayment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("paymentUsecase.InitiateAppointmentPayment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)

	appointment, err := uc.AppointmentRepository.FindByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, exceptions.ErrAppointmentNotFound(fmt.Errorf("appointment %s not found", appointmentID))
	}
	if appointment.PatientID != patientID {
		return nil, exceptions.ErrNotResourceOwner(fmt.Errorf("appointment %s is not owned by user %s", appointmentID, patientID))
	}
	if !models.CanTransition(appointment.Status, models.AppointmentStatusLocked) {
		return nil, exceptions.ErrSlotNotLockable(fmt.Errorf("appointment %s has status %s", appointmentID, appointment.Status))
	}

	existing, err := uc.PaymentIntentRepository.FindActiveByAppointmentID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		uc.Log.Info("paymentUsecase.InitiateAppointmentPayment reusing active intent",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPaymentIntentIDKey, existing.ID),
		)
		return buildInitiatePaymentResponse(existing), nil
	}

	now := time.Now().UTC()
	intent := &models.PaymentIntent{
		AppointmentID: appointmentID,
		Amount:        appointment.Fee,
		Currency:      appointment.Currency,
		ExpiresAt:     now.Add(time.Duration(uc.InternalConfig.Booking.IntentTTLSeconds) * time.Second),
	}
	intent, err = uc.PaymentIntentRepository.CreateIntent(ctx, intent)
	if err != nil {
		if exceptions.IsConflict(err) {
			// Lost the race to a concurrent initiation, reuse its intent.
			existing, findErr := uc.PaymentIntentRepository.FindActiveByAppointmentID(ctx, appointmentID)
			if findErr == nil && existing != nil {
				return buildInitiatePaymentResponse(existing), nil
			}
		}
		return nil, err
	}

	lockedUntil := now.Add(time.Duration(uc.InternalConfig.Booking.LockDurationSeconds) * time.Second)
	locked, err := uc.AppointmentRepository.Lock(ctx, appointmentID, intent.ID, lockedUntil)
	if err != nil {
		return nil, err
	}
	if locked == nil {
		// The slot moved to a non-lockable status between the check above and
		// here. Close the intent so the slot index does not stay occupied.
		if _, cancelErr := uc.PaymentIntentRepository.UpdateStatus(ctx, intent.ID, models.PaymentIntentStatusCancelled); cancelErr != nil {
			uc.Log.Error("paymentUsecase.InitiateAppointmentPayment error cancelling intent after failed lock",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingPaymentIntentIDKey, intent.ID),
				zap.Error(cancelErr),
			)
		}
		return nil, exceptions.ErrSlotNotLockable(fmt.Errorf("appointment %s is no longer lockable", appointmentID))
	}

	charge, err := uc.MomoService.InitiateCharge(ctx, &requests.GatewayCharge{
		Amount:       intent.Amount,
		Currency:     intent.Currency,
		PhoneNumber:  request.PayerPhone,
		Description:  fmt.Sprintf("Appointment %s at %s on %s %s", appointmentID, appointment.Hospital, appointment.Date, appointment.TimeSlot),
		PartnerTrxID: intent.ID,
		CallbackURL:  uc.InternalConfig.PaymentGateway.CallbackUrl,
	})
	if err != nil {
		// The lock is left in place; the sweeper lapses it if the patient
		// does not retry before it expires.
		if _, failErr := uc.PaymentIntentRepository.UpdateStatus(ctx, intent.ID, models.PaymentIntentStatusFailed); failErr != nil {
			uc.Log.Error("paymentUsecase.InitiateAppointmentPayment error failing intent after gateway error",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingPaymentIntentIDKey, intent.ID),
				zap.Error(failErr),
			)
		}
		return nil, err
	}

	if err := uc.PaymentIntentRepository.SetGatewayRef(ctx, intent.ID, charge.TrxRef, charge.PaymentURL); err != nil {
		return nil, err
	}
	intent.ExternalRef = charge.TrxRef
	intent.PaymentURL = charge.PaymentURL
	intent.Status = models.PaymentIntentStatusProcessing

	uc.Log.Info("paymentUsecase.InitiateAppointmentPayment succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPaymentIntentIDKey, intent.ID),
		zap.String(constvars.LoggingExternalRefKey, charge.TrxRef),
	)
	return buildInitiatePaymentResponse(intent), nil
}

// PaymentCallback applies a gateway status notification to the intent it
// references. Replayed notifications for a settled intent are acknowledged
// without effect.
func (uc *paymentUsecase) PaymentCallback(ctx context.Context, request *requests.PaymentCallback) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("paymentUsecase.PaymentCallback called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPaymentIntentIDKey, request.PartnerTrxID),
		zap.String(constvars.LoggingPaymentStatusKey, request.PaymentStatus),
	)

	intent, err := uc.PaymentIntentRepository.FindByID(ctx, request.PartnerTrxID)
	if err != nil {
		return err
	}
	if intent == nil {
		return exceptions.ErrPaymentIntentNotFound(fmt.Errorf("payment intent %s not found", request.PartnerTrxID))
	}
	if intent.Status.Terminal() {
		uc.Log.Info("paymentUsecase.PaymentCallback ignoring notification for settled intent",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPaymentIntentIDKey, intent.ID),
		)
		return nil
	}

	switch request.PaymentStatus {
	case constvars.MOMO_SUCCESS_STATUS:
		return uc.completePayment(ctx, intent, request.TrxRef)
	case constvars.MOMO_PENDING_STATUS:
		return nil
	case constvars.MOMO_FAILED_STATUS:
		return uc.abortPayment(ctx, intent, models.PaymentIntentStatusFailed)
	case constvars.MOMO_EXPIRED_STATUS, constvars.MOMO_CANCELLED_STATUS:
		return uc.abortPayment(ctx, intent, models.PaymentIntentStatusCancelled)
	default:
		return exceptions.ErrInputValidation(fmt.Errorf("unknown payment status %s", request.PaymentStatus))
	}
}

func (uc *paymentUsecase) completePayment(ctx context.Context, intent *models.PaymentIntent, trxRef string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	updated, err := uc.PaymentIntentRepository.UpdateStatus(ctx, intent.ID, models.PaymentIntentStatusCompleted)
	if err != nil {
		return err
	}
	if updated == nil {
		// A concurrent callback settled the intent first.
		return nil
	}
	if trxRef == "" {
		trxRef = intent.ExternalRef
	}

	appointment, err := uc.AppointmentRepository.Confirm(ctx, intent.AppointmentID, trxRef)
	if err != nil {
		return err
	}
	if appointment == nil {
		// The lock lapsed before the gateway settled. Take the slot again if
		// it is still free; otherwise the payment needs manual reconciliation.
		relocked, lockErr := uc.AppointmentRepository.Lock(ctx, intent.AppointmentID, intent.ID, time.Now().UTC().Add(time.Minute))
		if lockErr == nil && relocked != nil {
			appointment, err = uc.AppointmentRepository.Confirm(ctx, intent.AppointmentID, trxRef)
			if err != nil {
				return err
			}
		}
		if appointment == nil {
			uc.Log.Error("paymentUsecase.completePayment settled payment for unconfirmable appointment",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingAppointmentIDKey, intent.AppointmentID),
				zap.String(constvars.LoggingExternalRefKey, trxRef),
			)
			return nil
		}
	}

	uc.NotifierService.NotifyBookingConfirmed(ctx, appointment)
	uc.Log.Info("paymentUsecase.completePayment succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
		zap.String(constvars.LoggingExternalRefKey, trxRef),
	)
	return nil
}

func (uc *paymentUsecase) abortPayment(ctx context.Context, intent *models.PaymentIntent, status models.PaymentIntentStatus) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	updated, err := uc.PaymentIntentRepository.UpdateStatus(ctx, intent.ID, status)
	if err != nil {
		return err
	}
	if updated == nil {
		return nil
	}

	released, err := uc.AppointmentRepository.Release(ctx, intent.AppointmentID, intent.ID)
	if err != nil {
		return err
	}
	if released != nil {
		uc.NotifierService.NotifyBookingCancelled(ctx, released, fmt.Sprintf("payment %s", status))
	}

	uc.Log.Info("paymentUsecase.abortPayment released slot",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, intent.AppointmentID),
		zap.String(constvars.LoggingPaymentStatusKey, string(status)),
	)
	return nil
}

func buildInitiatePaymentResponse(intent *models.PaymentIntent) *responses.InitiatePayment {
	return &responses.InitiatePayment{
		PaymentIntentID: intent.ID,
		AppointmentID:   intent.AppointmentID,
		Amount:          intent.Amount,
		Currency:        intent.Currency,
		PaymentURL:      intent.PaymentURL,
		ExternalRef:     intent.ExternalRef,
		ExpiresAt:       intent.ExpiresAt,
	}
}

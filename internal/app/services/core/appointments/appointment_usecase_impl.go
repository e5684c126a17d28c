package appointments

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Stepho-hub/HealthKonnect-sub001/internal/app/config"
	"github.com/Stepho-hub/HealthKonnect-sub001/internal/app/contracts"
	"github.com/Stepho-hub/HealthKonnect-sub001/internal/app/models"
	"github.com/Stepho-hub/HealthKonnect-sub001/internal/pkg/constvars"
	"github.com/Stepho-hub/HealthKonnect-sub001/internal/pkg/dto/requests"
	"github.com/Stepho-hub/HealthKonnect-sub001/internal/pkg/dto/responses"
	"github.com/Stepho-hub/HealthKonnect-sub001/internal/pkg/exceptions"
	"github.com/Stepho-hub/HealthKonnect-sub001/internal/pkg/utils"

	"go.uber.org/zap"
)

type appointmentUsecase struct {
	AppointmentRepository   contracts.AppointmentRepository
	PaymentIntentRepository contracts.PaymentIntentRepository
	DoctorRepository        contracts.DoctorRepository
	UserRepository          contracts.UserRepository
	RedisRepository         contracts.RedisRepository
	InternalConfig          *config.InternalConfig
	Log                     *zap.Logger
}

var (
	appointmentUsecaseInstance contracts.AppointmentUsecase
	onceAppointmentUsecase     sync.Once
)

func NewAppointmentUsecase(
	appointmentRepository contracts.AppointmentRepository,
	paymentIntentRepository contracts.PaymentIntentRepository,
	doctorRepository contracts.DoctorRepository,
	userRepository contracts.UserRepository,
	redisRepository contracts.RedisRepository,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.AppointmentUsecase {
	onceAppointmentUsecase.Do(func() {
		instance := &appointmentUsecase{
			AppointmentRepository:   appointmentRepository,
			PaymentIntentRepository: paymentIntentRepository,
			DoctorRepository:        doctorRepository,
			UserRepository:          userRepository,
			RedisRepository:         redisRepository,
			InternalConfig:          internalConfig,
			Log:                     logger,
		}
		appointmentUsecaseInstance = instance
	})
	return appointmentUsecaseInstance
}

func (uc *appointmentUsecase) CreateAppointment(ctx context.Context, patientID string, request *requests.CreateAppointment) (*responses.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.CreateAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, request.DoctorID),
	)

	bookingDate, err := utils.ParseBookingDate(request.Date)
	if err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}
	if utils.IsPastBookingDate(bookingDate, time.Now().UTC()) {
		return nil, exceptions.ErrDateInThePast(fmt.Errorf("booking date %s is in the past", request.Date))
	}

	doctor, err := uc.DoctorRepository.FindByID(ctx, request.DoctorID)
	if err != nil {
		uc.Log.Error("appointmentUsecase.CreateAppointment error fetching doctor",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if doctor == nil || !doctor.Available {
		return nil, exceptions.ErrDoctorNotFound(fmt.Errorf("doctor %s not found or unavailable", request.DoctorID))
	}

	if !uc.isSlotOnGrid(doctor, request.TimeSlot) {
		return nil, exceptions.ErrInputValidation(fmt.Errorf("time slot %s is outside doctor working hours", request.TimeSlot))
	}

	appointment := &models.Appointment{
		PatientID: patientID,
		DoctorID:  request.DoctorID,
		Hospital:  request.Hospital,
		Date:      request.Date,
		TimeSlot:  request.TimeSlot,
		Symptoms:  request.Symptoms,
		Fee:       doctor.ConsultationFee,
		Currency:  doctor.Currency,
	}

	created, err := uc.AppointmentRepository.CreateAppointment(ctx, appointment)
	if err != nil {
		uc.Log.Error("appointmentUsecase.CreateAppointment error inserting appointment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	// The cached availability for this doctor and date is now stale.
	cacheKey := utils.AvailabilityCacheKey(request.DoctorID, request.Date)
	if err := uc.RedisRepository.Delete(ctx, cacheKey); err != nil {
		uc.Log.Warn("appointmentUsecase.CreateAppointment error invalidating availability cache",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, cacheKey),
			zap.Error(err),
		)
	}

	uc.Log.Info("appointmentUsecase.CreateAppointment succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, created.ID),
	)
	return buildAppointmentResponse(created), nil
}

func (uc *appointmentUsecase) isSlotOnGrid(doctor *models.Doctor, timeSlot string) bool {
	interval := time.Duration(uc.InternalConfig.Booking.SlotIntervalMinutes) * time.Minute
	slots := utils.DivideTimeSlots(doctor.WorkStart, doctor.WorkEnd, interval)
	for _, slot := range slots {
		if slot == timeSlot {
			return true
		}
	}
	return false
}

func (uc *appointmentUsecase) FindAppointmentByID(ctx context.Context, appointmentID string) (*responses.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.FindAppointmentByID called",
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
	return buildAppointmentResponse(appointment), nil
}

func (uc *appointmentUsecase) FindAllByUser(ctx context.Context, uid, role string) ([]responses.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.FindAllByUser called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, uid),
		zap.String(constvars.LoggingRoleKey, role),
	)

	var appointments []models.Appointment
	var err error
	if role == constvars.RoleDoctor {
		user, userErr := uc.UserRepository.FindByID(ctx, uid)
		if userErr != nil {
			return nil, userErr
		}
		if user == nil || user.DoctorID == "" {
			return nil, exceptions.ErrDoctorNotFound(fmt.Errorf("user %s has no doctor profile", uid))
		}
		appointments, err = uc.AppointmentRepository.FindByDoctorID(ctx, user.DoctorID)
	} else {
		appointments, err = uc.AppointmentRepository.FindByPatientID(ctx, uid)
	}
	if err != nil {
		uc.Log.Error("appointmentUsecase.FindAllByUser error fetching appointments",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	// Most recent schedule first, whatever order the backend returned.
	sort.Slice(appointments, func(i, j int) bool {
		if appointments[i].Date != appointments[j].Date {
			return appointments[i].Date > appointments[j].Date
		}
		return appointments[i].TimeSlot > appointments[j].TimeSlot
	})

	response := make([]responses.Appointment, 0, len(appointments))
	for i := range appointments {
		response = append(response, *buildAppointmentResponse(&appointments[i]))
	}
	return response, nil
}

func (uc *appointmentUsecase) AttachFile(ctx context.Context, appointmentID, patientID, objectURL string) (*responses.UploadAttachment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.AttachFile called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
		zap.String(constvars.LoggingObjectNameKey, objectURL),
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

	if err := uc.AppointmentRepository.AppendAttachment(ctx, appointmentID, objectURL); err != nil {
		return nil, err
	}

	return &responses.UploadAttachment{
		AppointmentID: appointmentID,
		ObjectName:    objectURL,
	}, nil
}

// SweepExpiredLocks lapses every expired slot lock back to pending and
// cancels payment intents whose deadline has passed. An intent never
// outlives the lock it was created for.
func (uc *appointmentUsecase) SweepExpiredLocks(ctx context.Context) (int64, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	now := time.Now().UTC()

	sweptAppointments, err := uc.AppointmentRepository.SweepExpired(ctx, now)
	if err != nil {
		uc.Log.Error("appointmentUsecase.SweepExpiredLocks error sweeping appointments",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return 0, err
	}

	sweptIntents, err := uc.PaymentIntentRepository.SweepExpired(ctx, now)
	if err != nil {
		uc.Log.Error("appointmentUsecase.SweepExpiredLocks error sweeping payment intents",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return sweptAppointments, err
	}

	if sweptAppointments > 0 || sweptIntents > 0 {
		uc.Log.Info("appointmentUsecase.SweepExpiredLocks released expired locks",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int64(constvars.LoggingSweptCountKey, sweptAppointments),
			zap.Int64("swept_intent_count", sweptIntents),
		)
	}
	return sweptAppointments, nil
}

func buildAppointmentResponse(appointment *models.Appointment) *responses.Appointment {
	return &responses.Appointment{
		ID:          appointment.ID,
		PatientID:   appointment.PatientID,
		DoctorID:    appointment.DoctorID,
		Hospital:    appointment.Hospital,
		Date:        appointment.Date,
		TimeSlot:    appointment.TimeSlot,
		Status:      string(appointment.Status),
		Symptoms:    appointment.Symptoms,
		PaymentRef:  appointment.PaymentRef,
		LockedUntil: appointment.LockedUntil,
		Fee:         appointment.Fee,
		Currency:    appointment.Currency,
		Attachments: appointment.Attachments,
		CreatedAt:   appointment.CreatedAt,
	}
}

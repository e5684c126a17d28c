package doctors

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Stepho-hub/HealthKonnect-sub001/internal/app/config"
	"github.com/Stepho-hub/HealthKonnect-sub001/internal/app/contracts"
	"github.com/Stepho-hub/HealthKonnect-sub001/internal/app/models"
	"github.com/Stepho-hub/HealthKonnect-sub001/internal/pkg/constvars"
	"github.com/Stepho-hub/HealthKonnect-sub001/internal/pkg/dto/responses"
	"github.com/Stepho-hub/HealthKonnect-sub001/internal/pkg/exceptions"
	"github.com/Stepho-hub/HealthKonnect-sub001/internal/pkg/utils"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type doctorUsecase struct {
	DoctorRepository      contracts.DoctorRepository
	AppointmentRepository contracts.AppointmentRepository
	RedisRepository       contracts.RedisRepository
	InternalConfig        *config.InternalConfig
	Log                   *zap.Logger
}

var (
	doctorUsecaseInstance contracts.DoctorUsecase
	onceDoctorUsecase     sync.Once
)

func NewDoctorUsecase(
	doctorRepository contracts.DoctorRepository,
	appointmentRepository contracts.AppointmentRepository,
	redisRepository contracts.RedisRepository,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.DoctorUsecase {
	onceDoctorUsecase.Do(func() {
		instance := &doctorUsecase{
			DoctorRepository:      doctorRepository,
			AppointmentRepository: appointmentRepository,
			RedisRepository:       redisRepository,
			InternalConfig:        internalConfig,
			Log:                   logger,
		}
		doctorUsecaseInstance = instance
	})
	return doctorUsecaseInstance
}

func (uc *doctorUsecase) FindAll(ctx context.Context) ([]responses.Doctor, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("doctorUsecase.FindAll called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	doctors, err := uc.DoctorRepository.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	response := make([]responses.Doctor, 0, len(doctors))
	for i := range doctors {
		response = append(response, *buildDoctorResponse(&doctors[i]))
	}
	return response, nil
}

func (uc *doctorUsecase) FindDoctorByID(ctx context.Context, doctorID string) (*responses.Doctor, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("doctorUsecase.FindDoctorByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
	)

	doctor, err := uc.DoctorRepository.FindByID(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, exceptions.ErrDoctorNotFound(fmt.Errorf("doctor %s not found", doctorID))
	}
	return buildDoctorResponse(doctor), nil
}

// GetAvailableTimeSlots derives the bookable grid for one doctor and date:
// the work window divided into interval-sized slots, minus every slot held
// by an active appointment. Results are cached briefly in redis.
func (uc *doctorUsecase) GetAvailableTimeSlots(ctx context.Context, doctorID, date string) (*responses.AvailableTimeSlots, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("doctorUsecase.GetAvailableTimeSlots called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
	)

	if _, err := utils.ParseBookingDate(date); err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}

	cacheKey := utils.AvailabilityCacheKey(doctorID, date)
	cached, err := uc.RedisRepository.Get(ctx, cacheKey)
	if err == nil && cached != "" {
		response := new(responses.AvailableTimeSlots)
		if err := json.Unmarshal([]byte(cached), response); err == nil {
			return response, nil
		}
	}

	doctor, err := uc.DoctorRepository.FindByID(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, exceptions.ErrDoctorNotFound(fmt.Errorf("doctor %s not found", doctorID))
	}

	interval := time.Duration(uc.InternalConfig.Booking.SlotIntervalMinutes) * time.Minute
	allSlots := utils.DivideTimeSlots(doctor.WorkStart, doctor.WorkEnd, interval)

	booked, err := uc.AppointmentRepository.FindActiveByDoctorDate(ctx, doctorID, date)
	if err != nil {
		return nil, err
	}
	taken := make(map[string]bool, len(booked))
	for i := range booked {
		taken[booked[i].TimeSlot] = true
	}

	freeSlots := make([]string, 0, len(allSlots))
	for _, slot := range allSlots {
		if !taken[slot] {
			freeSlots = append(freeSlots, slot)
		}
	}

	response := &responses.AvailableTimeSlots{
		DoctorID:  doctorID,
		Date:      date,
		TimeSlots: freeSlots,
	}

	cacheTTL := time.Duration(uc.InternalConfig.Booking.AvailabilityCacheTTL) * time.Second
	if err := uc.RedisRepository.Set(ctx, cacheKey, response, cacheTTL); err != nil {
		uc.Log.Warn("doctorUsecase.GetAvailableTimeSlots error caching availability",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, cacheKey),
			zap.Error(err),
		)
	}

	uc.Log.Info("doctorUsecase.GetAvailableTimeSlots succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
		zap.Int("free_slot_count", len(freeSlots)),
	)
	return response, nil
}

func buildDoctorResponse(doctor *models.Doctor) *responses.Doctor {
	return &responses.Doctor{
		ID:              doctor.ID,
		FullName:        doctor.FullName,
		Speciality:      doctor.Speciality,
		Hospital:        doctor.Hospital,
		ConsultationFee: doctor.ConsultationFee,
		Currency:        doctor.Currency,
		WorkStart:       doctor.WorkStart,
		WorkEnd:         doctor.WorkEnd,
		Available:       doctor.Available,
	}
}

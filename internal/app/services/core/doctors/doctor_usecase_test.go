package doctors

import (
	"context"
	"testing"
	"time"

	"github.com/Stepho-hub/HealthKonnect-sub001/internal/app/config"
	"github.com/Stepho-hub/HealthKonnect-sub001/internal/app/models"
	"github.com/Stepho-hub/HealthKonnect-sub001/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type stubDoctorRepository struct {
	doctors map[string]*models.Doctor
	calls   int
}

func (s *stubDoctorRepository) FindAll(ctx context.Context) ([]models.Doctor, error) {
	var out []models.Doctor
	for _, d := range s.doctors {
		out = append(out, *d)
	}
	return out, nil
}

func (s *stubDoctorRepository) FindByID(ctx context.Context, doctorID string) (*models.Doctor, error) {
	s.calls++
	return s.doctors[doctorID], nil
}

type stubAppointmentRepository struct {
	active []models.Appointment
	calls  int
}

func (s *stubAppointmentRepository) CreateAppointment(ctx context.Context, appointment *models.Appointment) (*models.Appointment, error) {
	return appointment, nil
}

func (s *stubAppointmentRepository) FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	return nil, nil
}

func (s *stubAppointmentRepository) FindByPatientID(ctx context.Context, patientID string) ([]models.Appointment, error) {
	return nil, nil
}

func (s *stubAppointmentRepository) FindByDoctorID(ctx context.Context, doctorID string) ([]models.Appointment, error) {
	return nil, nil
}

func (s *stubAppointmentRepository) FindActiveByDoctorDate(ctx context.Context, doctorID, date string) ([]models.Appointment, error) {
	s.calls++
	return s.active, nil
}

func (s *stubAppointmentRepository) Lock(ctx context.Context, appointmentID, paymentRef string, lockedUntil time.Time) (*models.Appointment, error) {
	return nil, nil
}

func (s *stubAppointmentRepository) Release(ctx context.Context, appointmentID, paymentRef string) (*models.Appointment, error) {
	return nil, nil
}

func (s *stubAppointmentRepository) Confirm(ctx context.Context, appointmentID, paymentRef string) (*models.Appointment, error) {
	return nil, nil
}

func (s *stubAppointmentRepository) SweepExpired(ctx context.Context, now time.Time) (int64, error) {
	return 0, nil
}

func (s *stubAppointmentRepository) AppendAttachment(ctx context.Context, appointmentID, objectURL string) error {
	return nil
}

type stubRedisRepository struct {
	store map[string]string
}

func newStubRedisRepository() *stubRedisRepository {
	return &stubRedisRepository{store: make(map[string]string)}
}

func (s *stubRedisRepository) Delete(ctx context.Context, key string) error {
	delete(s.store, key)
	return nil
}

func (s *stubRedisRepository) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.store[key] = string(raw)
	return nil
}

func (s *stubRedisRepository) Get(ctx context.Context, key string) (string, error) {
	return s.store[key], nil
}

func (s *stubRedisRepository) TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error) {
	return true, nil
}

func newTestDoctorUsecase(doctorRepo *stubDoctorRepository, appointmentRepo *stubAppointmentRepository, redisRepo *stubRedisRepository) *doctorUsecase {
	return &doctorUsecase{
		DoctorRepository:      doctorRepo,
		AppointmentRepository: appointmentRepo,
		RedisRepository:       redisRepo,
		InternalConfig: &config.InternalConfig{
			Booking: config.Booking{
				SlotIntervalMinutes:  30,
				AvailabilityCacheTTL: 30,
			},
		},
		Log: zap.NewNop(),
	}
}

func testDoctor() *models.Doctor {
	return &models.Doctor{
		ID:              "doc-1",
		FullName:        "Dr. Ngwa",
		Hospital:        "Laquintinie",
		ConsultationFee: 15000,
		Currency:        "XAF",
		WorkStart:       "08:00",
		WorkEnd:         "10:00",
		Available:       true,
	}
}

func TestGetAvailableTimeSlots(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the work grid minus active bookings", func(t *testing.T) {
		doctorRepo := &stubDoctorRepository{doctors: map[string]*models.Doctor{"doc-1": testDoctor()}}
		appointmentRepo := &stubAppointmentRepository{active: []models.Appointment{
			{DoctorID: "doc-1", Date: "2030-01-04", TimeSlot: "08:30", Status: models.AppointmentStatusPending},
			{DoctorID: "doc-1", Date: "2030-01-04", TimeSlot: "09:00", Status: models.AppointmentStatusLocked},
		}}
		uc := newTestDoctorUsecase(doctorRepo, appointmentRepo, newStubRedisRepository())

		response, err := uc.GetAvailableTimeSlots(ctx, "doc-1", "2030-01-04")
		assert.NoError(t, err)
		assert.Equal(t, []string{"08:00", "09:30"}, response.TimeSlots, "held slots should be excluded from the grid")
	})

	t.Run("serves a cache hit without touching the repositories", func(t *testing.T) {
		doctorRepo := &stubDoctorRepository{doctors: map[string]*models.Doctor{"doc-1": testDoctor()}}
		appointmentRepo := &stubAppointmentRepository{}
		uc := newTestDoctorUsecase(doctorRepo, appointmentRepo, newStubRedisRepository())

		first, err := uc.GetAvailableTimeSlots(ctx, "doc-1", "2030-01-04")
		assert.NoError(t, err)

		second, err := uc.GetAvailableTimeSlots(ctx, "doc-1", "2030-01-04")
		assert.NoError(t, err)
		assert.Equal(t, first.TimeSlots, second.TimeSlots)
		assert.Equal(t, 1, doctorRepo.calls, "second call should be served from the cache")
		assert.Equal(t, 1, appointmentRepo.calls)
	})

	t.Run("malformed date is rejected", func(t *testing.T) {
		uc := newTestDoctorUsecase(&stubDoctorRepository{}, &stubAppointmentRepository{}, newStubRedisRepository())

		_, err := uc.GetAvailableTimeSlots(ctx, "doc-1", "04-01-2030")
		assert.Error(t, err)
	})

	t.Run("unknown doctor returns not found", func(t *testing.T) {
		uc := newTestDoctorUsecase(&stubDoctorRepository{doctors: map[string]*models.Doctor{}}, &stubAppointmentRepository{}, newStubRedisRepository())

		_, err := uc.GetAvailableTimeSlots(ctx, "doc-99", "2030-01-04")
		assert.True(t, exceptions.IsNotFound(err))
	})
}

func TestFindDoctorByID(t *testing.T) {
	ctx := context.Background()

	t.Run("maps the stored doctor", func(t *testing.T) {
		doctorRepo := &stubDoctorRepository{doctors: map[string]*models.Doctor{"doc-1": testDoctor()}}
		uc := newTestDoctorUsecase(doctorRepo, &stubAppointmentRepository{}, newStubRedisRepository())

		response, err := uc.FindDoctorByID(ctx, "doc-1")
		assert.NoError(t, err)
		assert.Equal(t, "Dr. Ngwa", response.FullName)
		assert.Equal(t, int64(15000), response.ConsultationFee)
	})

	t.Run("missing doctor returns not found", func(t *testing.T) {
		uc := newTestDoctorUsecase(&stubDoctorRepository{doctors: map[string]*models.Doctor{}}, &stubAppointmentRepository{}, newStubRedisRepository())

		_, err := uc.FindDoctorByID(ctx, "doc-2")
		assert.True(t, exceptions.IsNotFound(err))
	})
}

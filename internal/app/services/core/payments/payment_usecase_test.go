package payments

import (
	"context"
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/Stepho-hub/HealthKonnect-sub001/internal/app/config"
	"github.com/Stepho-hub/HealthKonnect-sub001/internal/app/models"
	"github.com/Stepho-hub/HealthKonnect-sub001/internal/pkg/constvars"
	"github.com/Stepho-hub/HealthKonnect-sub001/internal/pkg/dto/requests"
	"github.com/Stepho-hub/HealthKonnect-sub001/internal/pkg/dto/responses"
	"github.com/Stepho-hub/HealthKonnect-sub001/internal/pkg/exceptions"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeAppointmentRepository struct {
	appointments map[string]*models.Appointment
	nextID       int
}

func newFakeAppointmentRepository() *fakeAppointmentRepository {
	return &fakeAppointmentRepository{appointments: make(map[string]*models.Appointment), nextID: 1}
}

func (f *fakeAppointmentRepository) add(appointment *models.Appointment) *models.Appointment {
	appointment.ID = "apt-" + strconv.Itoa(f.nextID)
	f.nextID++
	f.appointments[appointment.ID] = appointment
	return appointment
}

func (f *fakeAppointmentRepository) CreateAppointment(ctx context.Context, appointment *models.Appointment) (*models.Appointment, error) {
	appointment.Status = models.AppointmentStatusPending
	return f.add(appointment), nil
}

func (f *fakeAppointmentRepository) FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	appointment, ok := f.appointments[appointmentID]
	if !ok {
		return nil, nil
	}
	copied := *appointment
	return &copied, nil
}

func (f *fakeAppointmentRepository) FindByPatientID(ctx context.Context, patientID string) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range f.appointments {
		if a.PatientID == patientID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAppointmentRepository) FindByDoctorID(ctx context.Context, doctorID string) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range f.appointments {
		if a.DoctorID == doctorID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAppointmentRepository) FindActiveByDoctorDate(ctx context.Context, doctorID, date string) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range f.appointments {
		if a.DoctorID == doctorID && a.Date == date && !a.Status.Terminal() {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAppointmentRepository) Lock(ctx context.Context, appointmentID, paymentRef string, lockedUntil time.Time) (*models.Appointment, error) {
	appointment, ok := f.appointments[appointmentID]
	if !ok {
		return nil, nil
	}
	if appointment.Status != models.AppointmentStatusPending && appointment.Status != models.AppointmentStatusLocked {
		return nil, nil
	}
	appointment.Status = models.AppointmentStatusLocked
	appointment.PaymentRef = paymentRef
	appointment.LockedUntil = &lockedUntil
	copied := *appointment
	return &copied, nil
}

func (f *fakeAppointmentRepository) Release(ctx context.Context, appointmentID, paymentRef string) (*models.Appointment, error) {
	appointment, ok := f.appointments[appointmentID]
	if !ok || appointment.Status != models.AppointmentStatusLocked || appointment.PaymentRef != paymentRef {
		return nil, nil
	}
	appointment.Status = models.AppointmentStatusPending
	appointment.PaymentRef = ""
	appointment.LockedUntil = nil
	copied := *appointment
	return &copied, nil
}

func (f *fakeAppointmentRepository) Confirm(ctx context.Context, appointmentID, paymentRef string) (*models.Appointment, error) {
	appointment, ok := f.appointments[appointmentID]
	if !ok || appointment.Status != models.AppointmentStatusLocked {
		return nil, nil
	}
	appointment.Status = models.AppointmentStatusConfirmed
	appointment.PaymentRef = paymentRef
	appointment.LockedUntil = nil
	copied := *appointment
	return &copied, nil
}

func (f *fakeAppointmentRepository) SweepExpired(ctx context.Context, now time.Time) (int64, error) {
	var swept int64
	for _, a := range f.appointments {
		if a.Status == models.AppointmentStatusLocked && a.LockedUntil != nil && a.LockedUntil.Before(now) {
			a.Status = models.AppointmentStatusPending
			a.PaymentRef = ""
			a.LockedUntil = nil
			swept++
		}
	}
	return swept, nil
}

func (f *fakeAppointmentRepository) AppendAttachment(ctx context.Context, appointmentID, objectURL string) error {
	appointment, ok := f.appointments[appointmentID]
	if !ok {
		return exceptions.ErrAppointmentNotFound(nil)
	}
	appointment.Attachments = append(appointment.Attachments, objectURL)
	return nil
}

type fakeIntentRepository struct {
	intents map[string]*models.PaymentIntent
	nextID  int
}

func newFakeIntentRepository() *fakeIntentRepository {
	return &fakeIntentRepository{intents: make(map[string]*models.PaymentIntent), nextID: 1}
}

func (f *fakeIntentRepository) CreateIntent(ctx context.Context, intent *models.PaymentIntent) (*models.PaymentIntent, error) {
	for _, existing := range f.intents {
		if existing.AppointmentID == intent.AppointmentID && !existing.Status.Terminal() {
			return nil, exceptions.ErrActivePaymentIntentExists(nil)
		}
	}
	intent.ID = "intent-" + strconv.Itoa(f.nextID)
	f.nextID++
	intent.Status = models.PaymentIntentStatusPending
	f.intents[intent.ID] = intent
	return intent, nil
}

func (f *fakeIntentRepository) FindByID(ctx context.Context, intentID string) (*models.PaymentIntent, error) {
	intent, ok := f.intents[intentID]
	if !ok {
		return nil, nil
	}
	copied := *intent
	return &copied, nil
}

func (f *fakeIntentRepository) FindActiveByAppointmentID(ctx context.Context, appointmentID string) (*models.PaymentIntent, error) {
	for _, intent := range f.intents {
		if intent.AppointmentID == appointmentID && !intent.Status.Terminal() {
			copied := *intent
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeIntentRepository) UpdateStatus(ctx context.Context, intentID string, status models.PaymentIntentStatus) (*models.PaymentIntent, error) {
	intent, ok := f.intents[intentID]
	if !ok || intent.Status.Terminal() {
		return nil, nil
	}
	intent.Status = status
	copied := *intent
	return &copied, nil
}

func (f *fakeIntentRepository) SetGatewayRef(ctx context.Context, intentID, externalRef, paymentURL string) error {
	intent, ok := f.intents[intentID]
	if !ok {
		return exceptions.ErrPaymentIntentNotFound(nil)
	}
	intent.ExternalRef = externalRef
	intent.PaymentURL = paymentURL
	intent.Status = models.PaymentIntentStatusProcessing
	return nil
}

func (f *fakeIntentRepository) SweepExpired(ctx context.Context, now time.Time) (int64, error) {
	var swept int64
	for _, intent := range f.intents {
		if !intent.Status.Terminal() && intent.ExpiresAt.Before(now) {
			intent.Status = models.PaymentIntentStatusCancelled
			swept++
		}
	}
	return swept, nil
}

type fakeGateway struct {
	calls    int
	failWith error
}

func (f *fakeGateway) InitiateCharge(ctx context.Context, request *requests.GatewayCharge) (*responses.GatewayCharge, error) {
	f.calls++
	if f.failWith != nil {
		return nil, f.failWith
	}
	return &responses.GatewayCharge{
		TrxRef:     "TX1",
		Status:     constvars.MOMO_PENDING_STATUS,
		PaymentURL: "https://pay.example/TX1",
	}, nil
}

type fakeNotifier struct {
	confirmed []string
	cancelled []string
}

func (f *fakeNotifier) NotifyBookingConfirmed(ctx context.Context, appointment *models.Appointment) {
	f.confirmed = append(f.confirmed, appointment.ID)
}

func (f *fakeNotifier) NotifyBookingCancelled(ctx context.Context, appointment *models.Appointment, reason string) {
	f.cancelled = append(f.cancelled, appointment.ID)
}

func testInternalConfig() *config.InternalConfig {
	return &config.InternalConfig{
		Booking: config.Booking{
			LockDurationSeconds: 120,
			IntentTTLSeconds:    120,
			SlotIntervalMinutes: 30,
		},
		PaymentGateway: config.PaymentGateway{
			CallbackUrl: "http://localhost:8080/api/v1/payments/callback",
		},
	}
}

func newTestPaymentUsecase(appointmentRepo *fakeAppointmentRepository, intentRepo *fakeIntentRepository, gateway *fakeGateway, notifier *fakeNotifier) *paymentUsecase {
	return &paymentUsecase{
		AppointmentRepository:   appointmentRepo,
		PaymentIntentRepository: intentRepo,
		MomoService:             gateway,
		NotifierService:         notifier,
		InternalConfig:          testInternalConfig(),
		Log:                     zap.NewNop(),
	}
}

func pendingAppointment(repo *fakeAppointmentRepository) *models.Appointment {
	return repo.add(&models.Appointment{
		PatientID: "patient-1",
		DoctorID:  "doc-1",
		Hospital:  "Laquintinie",
		Date:      "2025-07-01",
		TimeSlot:  "09:00",
		Status:    models.AppointmentStatusPending,
		Fee:       15000,
		Currency:  "XAF",
	})
}

func TestInitiateAppointmentPayment(t *testing.T) {
	ctx := context.Background()

	t.Run("locks the slot and opens a charge", func(t *testing.T) {
		appointmentRepo := newFakeAppointmentRepository()
		intentRepo := newFakeIntentRepository()
		gateway := &fakeGateway{}
		uc := newTestPaymentUsecase(appointmentRepo, intentRepo, gateway, &fakeNotifier{})
		appointment := pendingAppointment(appointmentRepo)

		response, err := uc.InitiateAppointmentPayment(ctx, appointment.ID, "patient-1", &requests.InitiatePayment{PayerPhone: "+237650000001"})
		assert.NoError(t, err)
		assert.Equal(t, int64(15000), response.Amount, "charge should carry the snapshotted fee")
		assert.Equal(t, "TX1", response.ExternalRef)
		assert.Equal(t, "https://pay.example/TX1", response.PaymentURL)
		assert.Equal(t, 1, gateway.calls)

		stored := appointmentRepo.appointments[appointment.ID]
		assert.Equal(t, models.AppointmentStatusLocked, stored.Status, "slot should be locked for payment")
		assert.Equal(t, response.PaymentIntentID, stored.PaymentRef)
		assert.NotNil(t, stored.LockedUntil)

		intent := intentRepo.intents[response.PaymentIntentID]
		assert.Equal(t, models.PaymentIntentStatusProcessing, intent.Status)
	})

	t.Run("rejects a caller who does not own the appointment", func(t *testing.T) {
		appointmentRepo := newFakeAppointmentRepository()
		intentRepo := newFakeIntentRepository()
		gateway := &fakeGateway{}
		uc := newTestPaymentUsecase(appointmentRepo, intentRepo, gateway, &fakeNotifier{})
		appointment := pendingAppointment(appointmentRepo)

		_, err := uc.InitiateAppointmentPayment(ctx, appointment.ID, "patient-2", &requests.InitiatePayment{PayerPhone: "+237650000001"})
		assert.Error(t, err)
		assert.True(t, exceptions.IsStatus(err, constvars.StatusForbidden), "foreign appointment should be forbidden")
		assert.Equal(t, 0, gateway.calls, "gateway should not be called")
	})

	t.Run("missing appointment returns not found", func(t *testing.T) {
		uc := newTestPaymentUsecase(newFakeAppointmentRepository(), newFakeIntentRepository(), &fakeGateway{}, &fakeNotifier{})

		_, err := uc.InitiateAppointmentPayment(ctx, "apt-99", "patient-1", &requests.InitiatePayment{PayerPhone: "+237650000001"})
		assert.True(t, exceptions.IsNotFound(err))
	})

	t.Run("confirmed appointment is not payable again", func(t *testing.T) {
		appointmentRepo := newFakeAppointmentRepository()
		uc := newTestPaymentUsecase(appointmentRepo, newFakeIntentRepository(), &fakeGateway{}, &fakeNotifier{})
		appointment := pendingAppointment(appointmentRepo)
		appointmentRepo.appointments[appointment.ID].Status = models.AppointmentStatusConfirmed

		_, err := uc.InitiateAppointmentPayment(ctx, appointment.ID, "patient-1", &requests.InitiatePayment{PayerPhone: "+237650000001"})
		assert.True(t, exceptions.IsConflict(err), "confirmed slot should conflict")
	})

	t.Run("retry while an intent is active reuses it", func(t *testing.T) {
		appointmentRepo := newFakeAppointmentRepository()
		intentRepo := newFakeIntentRepository()
		gateway := &fakeGateway{}
		uc := newTestPaymentUsecase(appointmentRepo, intentRepo, gateway, &fakeNotifier{})
		appointment := pendingAppointment(appointmentRepo)

		first, err := uc.InitiateAppointmentPayment(ctx, appointment.ID, "patient-1", &requests.InitiatePayment{PayerPhone: "+237650000001"})
		assert.NoError(t, err)

		second, err := uc.InitiateAppointmentPayment(ctx, appointment.ID, "patient-1", &requests.InitiatePayment{PayerPhone: "+237650000001"})
		assert.NoError(t, err)
		assert.Equal(t, first.PaymentIntentID, second.PaymentIntentID, "retry should reuse the active intent")
		assert.Equal(t, 1, gateway.calls, "no second charge should be opened")
	})

	t.Run("gateway failure fails the intent and keeps the lock", func(t *testing.T) {
		appointmentRepo := newFakeAppointmentRepository()
		intentRepo := newFakeIntentRepository()
		gateway := &fakeGateway{failWith: exceptions.ErrPaymentGatewayRequest(fmt.Errorf("connection refused"))}
		uc := newTestPaymentUsecase(appointmentRepo, intentRepo, gateway, &fakeNotifier{})
		appointment := pendingAppointment(appointmentRepo)

		_, err := uc.InitiateAppointmentPayment(ctx, appointment.ID, "patient-1", &requests.InitiatePayment{PayerPhone: "+237650000001"})
		assert.True(t, exceptions.IsStatus(err, constvars.StatusBadGateway), "gateway failure should map to 502")

		stored := appointmentRepo.appointments[appointment.ID]
		assert.Equal(t, models.AppointmentStatusLocked, stored.Status, "slot stays locked until the sweep lapses it")

		for _, intent := range intentRepo.intents {
			assert.Equal(t, models.PaymentIntentStatusFailed, intent.Status, "intent should be failed so a retry can open a new one")
		}
	})
}

func TestPaymentCallback(t *testing.T) {
	ctx := context.Background()

	initiate := func(t *testing.T, uc *paymentUsecase, appointmentID string) *responses.InitiatePayment {
		t.Helper()
		response, err := uc.InitiateAppointmentPayment(ctx, appointmentID, "patient-1", &requests.InitiatePayment{PayerPhone: "+237650000001"})
		assert.NoError(t, err)
		return response
	}

	t.Run("successful payment confirms the appointment", func(t *testing.T) {
		appointmentRepo := newFakeAppointmentRepository()
		intentRepo := newFakeIntentRepository()
		notifier := &fakeNotifier{}
		uc := newTestPaymentUsecase(appointmentRepo, intentRepo, &fakeGateway{}, notifier)
		appointment := pendingAppointment(appointmentRepo)
		initiated := initiate(t, uc, appointment.ID)

		err := uc.PaymentCallback(ctx, &requests.PaymentCallback{
			PartnerTrxID:  initiated.PaymentIntentID,
			TrxRef:        "TX1",
			PaymentStatus: constvars.MOMO_SUCCESS_STATUS,
		})
		assert.NoError(t, err)

		stored := appointmentRepo.appointments[appointment.ID]
		assert.Equal(t, models.AppointmentStatusConfirmed, stored.Status)
		assert.Equal(t, "TX1", stored.PaymentRef, "gateway transaction ref should be recorded")
		assert.Nil(t, stored.LockedUntil, "confirmed slot carries no lock deadline")
		assert.Equal(t, []string{appointment.ID}, notifier.confirmed, "confirmation should notify once")
	})

	t.Run("replayed success callback is a no-op", func(t *testing.T) {
		appointmentRepo := newFakeAppointmentRepository()
		intentRepo := newFakeIntentRepository()
		notifier := &fakeNotifier{}
		uc := newTestPaymentUsecase(appointmentRepo, intentRepo, &fakeGateway{}, notifier)
		appointment := pendingAppointment(appointmentRepo)
		initiated := initiate(t, uc, appointment.ID)

		callback := &requests.PaymentCallback{
			PartnerTrxID:  initiated.PaymentIntentID,
			TrxRef:        "TX1",
			PaymentStatus: constvars.MOMO_SUCCESS_STATUS,
		}
		assert.NoError(t, uc.PaymentCallback(ctx, callback))
		assert.NoError(t, uc.PaymentCallback(ctx, callback), "replay should be acknowledged")

		assert.Len(t, notifier.confirmed, 1, "replay should not send a second notification")
		assert.Equal(t, models.AppointmentStatusConfirmed, appointmentRepo.appointments[appointment.ID].Status)
	})

	t.Run("failed payment releases the slot", func(t *testing.T) {
		appointmentRepo := newFakeAppointmentRepository()
		intentRepo := newFakeIntentRepository()
		notifier := &fakeNotifier{}
		uc := newTestPaymentUsecase(appointmentRepo, intentRepo, &fakeGateway{}, notifier)
		appointment := pendingAppointment(appointmentRepo)
		initiated := initiate(t, uc, appointment.ID)

		err := uc.PaymentCallback(ctx, &requests.PaymentCallback{
			PartnerTrxID:  initiated.PaymentIntentID,
			PaymentStatus: constvars.MOMO_FAILED_STATUS,
		})
		assert.NoError(t, err)

		stored := appointmentRepo.appointments[appointment.ID]
		assert.Equal(t, models.AppointmentStatusPending, stored.Status, "failed payment should free the slot")
		assert.Empty(t, stored.PaymentRef)
		assert.Equal(t, models.PaymentIntentStatusFailed, intentRepo.intents[initiated.PaymentIntentID].Status)

		retry, err := uc.InitiateAppointmentPayment(ctx, appointment.ID, "patient-1", &requests.InitiatePayment{PayerPhone: "+237650000001"})
		assert.NoError(t, err, "patient should be able to retry after a failed payment")
		assert.NotEqual(t, initiated.PaymentIntentID, retry.PaymentIntentID, "retry opens a fresh intent")
	})

	t.Run("failed callback for a superseded intent leaves the fresh lock alone", func(t *testing.T) {
		appointmentRepo := newFakeAppointmentRepository()
		intentRepo := newFakeIntentRepository()
		notifier := &fakeNotifier{}
		uc := newTestPaymentUsecase(appointmentRepo, intentRepo, &fakeGateway{}, notifier)
		appointment := pendingAppointment(appointmentRepo)
		initiated := initiate(t, uc, appointment.ID)

		// A concurrent retry re-locked the slot under a newer intent before
		// the failure notification for the first one arrived.
		_, err := appointmentRepo.Lock(ctx, appointment.ID, "intent-next", time.Now().UTC().Add(2*time.Minute))
		assert.NoError(t, err)

		err = uc.PaymentCallback(ctx, &requests.PaymentCallback{
			PartnerTrxID:  initiated.PaymentIntentID,
			PaymentStatus: constvars.MOMO_FAILED_STATUS,
		})
		assert.NoError(t, err)

		stored := appointmentRepo.appointments[appointment.ID]
		assert.Equal(t, models.AppointmentStatusLocked, stored.Status, "the newer lock must survive the stale failure")
		assert.Equal(t, "intent-next", stored.PaymentRef)
		assert.Equal(t, models.PaymentIntentStatusFailed, intentRepo.intents[initiated.PaymentIntentID].Status)
		assert.Empty(t, notifier.cancelled, "no cancellation should be announced while the slot is still held")
	})

	t.Run("pending status leaves everything untouched", func(t *testing.T) {
		appointmentRepo := newFakeAppointmentRepository()
		intentRepo := newFakeIntentRepository()
		uc := newTestPaymentUsecase(appointmentRepo, intentRepo, &fakeGateway{}, &fakeNotifier{})
		appointment := pendingAppointment(appointmentRepo)
		initiated := initiate(t, uc, appointment.ID)

		err := uc.PaymentCallback(ctx, &requests.PaymentCallback{
			PartnerTrxID:  initiated.PaymentIntentID,
			PaymentStatus: constvars.MOMO_PENDING_STATUS,
		})
		assert.NoError(t, err)
		assert.Equal(t, models.AppointmentStatusLocked, appointmentRepo.appointments[appointment.ID].Status)
		assert.Equal(t, models.PaymentIntentStatusProcessing, intentRepo.intents[initiated.PaymentIntentID].Status)
	})

	t.Run("unknown intent returns not found", func(t *testing.T) {
		uc := newTestPaymentUsecase(newFakeAppointmentRepository(), newFakeIntentRepository(), &fakeGateway{}, &fakeNotifier{})

		err := uc.PaymentCallback(ctx, &requests.PaymentCallback{
			PartnerTrxID:  "intent-99",
			PaymentStatus: constvars.MOMO_SUCCESS_STATUS,
		})
		assert.True(t, exceptions.IsNotFound(err))
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		appointmentRepo := newFakeAppointmentRepository()
		intentRepo := newFakeIntentRepository()
		uc := newTestPaymentUsecase(appointmentRepo, intentRepo, &fakeGateway{}, &fakeNotifier{})
		appointment := pendingAppointment(appointmentRepo)
		initiated := initiate(t, uc, appointment.ID)

		err := uc.PaymentCallback(ctx, &requests.PaymentCallback{
			PartnerTrxID:  initiated.PaymentIntentID,
			PaymentStatus: "SOMETHING_ELSE",
		})
		assert.True(t, exceptions.IsStatus(err, constvars.StatusBadRequest))
	})

	t.Run("late success after the lock lapsed re-locks and confirms a free slot", func(t *testing.T) {
		appointmentRepo := newFakeAppointmentRepository()
		intentRepo := newFakeIntentRepository()
		notifier := &fakeNotifier{}
		uc := newTestPaymentUsecase(appointmentRepo, intentRepo, &fakeGateway{}, notifier)
		appointment := pendingAppointment(appointmentRepo)
		initiated := initiate(t, uc, appointment.ID)

		// The sweeper lapsed the lock before the gateway settled.
		_, err := appointmentRepo.SweepExpired(ctx, time.Now().UTC().Add(3*time.Minute))
		assert.NoError(t, err)
		assert.Equal(t, models.AppointmentStatusPending, appointmentRepo.appointments[appointment.ID].Status)

		err = uc.PaymentCallback(ctx, &requests.PaymentCallback{
			PartnerTrxID:  initiated.PaymentIntentID,
			TrxRef:        "TX1",
			PaymentStatus: constvars.MOMO_SUCCESS_STATUS,
		})
		assert.NoError(t, err)
		assert.Equal(t, models.AppointmentStatusConfirmed, appointmentRepo.appointments[appointment.ID].Status, "still-free slot should be taken for the settled payment")
		assert.Len(t, notifier.confirmed, 1)
	})
}

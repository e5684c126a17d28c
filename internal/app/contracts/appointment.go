package contracts

import (
	"context"
	"time"

	"github.com/Stepho-hub/HealthKonnect-sub001/internal/app/models"
	"github.com/Stepho-hub/HealthKonnect-sub001/internal/pkg/dto/requests"
	"github.com/Stepho-hub/HealthKonnect-sub001/internal/pkg/dto/responses"
)

type AppointmentUsecase interface {
	CreateAppointment(ctx context.Context, patientID string, request *requests.CreateAppointment) (*responses.Appointment, error)
	FindAppointmentByID(ctx context.Context, appointmentID string) (*responses.Appointment, error)
	FindAllByUser(ctx context.Context, uid, role string) ([]responses.Appointment, error)
	AttachFile(ctx context.Context, appointmentID, patientID, objectURL string) (*responses.UploadAttachment, error)
	SweepExpiredLocks(ctx context.Context) (int64, error)
}

type AppointmentRepository interface {
	CreateAppointment(ctx context.Context, appointment *models.Appointment) (*models.Appointment, error)
	FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error)
	FindByPatientID(ctx context.Context, patientID string) ([]models.Appointment, error)
	FindByDoctorID(ctx context.Context, doctorID string) ([]models.Appointment, error)
	FindActiveByDoctorDate(ctx context.Context, doctorID, date string) ([]models.Appointment, error)
	Lock(ctx context.Context, appointmentID, paymentRef string, lockedUntil time.Time) (*models.Appointment, error)
	Release(ctx context.Context, appointmentID, paymentRef string) (*models.Appointment, error)
	Confirm(ctx context.Context, appointmentID, paymentRef string) (*models.Appointment, error)
	SweepExpired(ctx context.Context, now time.Time) (int64, error)
	AppendAttachment(ctx context.Context, appointmentID, objectURL string) error
}

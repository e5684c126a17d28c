package contracts

import (
	"context"
	"time"

	"github.com/Stepho-hub/HealthKonnect-sub001/internal/app/models"
	"github.com/Stepho-hub/HealthKonnect-sub001/internal/pkg/dto/requests"
	"github.com/Stepho-hub/HealthKonnect-sub001/internal/pkg/dto/responses"
)

type PaymentUsecase interface {
	InitiateAppointmentPayment(ctx context.Context, appointmentID, patientID string, request *requests.InitiatePayment) (*responses.InitiatePayment, error)
	PaymentCallback(ctx context.Context, request *requests.PaymentCallback) error
}

type PaymentIntentRepository interface {
	CreateIntent(ctx context.Context, intent *models.PaymentIntent) (*models.PaymentIntent, error)
	FindByID(ctx context.Context, intentID string) (*models.PaymentIntent, error)
	FindActiveByAppointmentID(ctx context.Context, appointmentID string) (*models.PaymentIntent, error)
	UpdateStatus(ctx context.Context, intentID string, status models.PaymentIntentStatus) (*models.PaymentIntent, error)
	SetGatewayRef(ctx context.Context, intentID, externalRef, paymentURL string) error
	SweepExpired(ctx context.Context, now time.Time) (int64, error)
}

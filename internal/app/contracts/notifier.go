package contracts

import (
	"context"

	"github.com/Stepho-hub/HealthKonnect-sub001/internal/app/models"
)

type NotifierService interface {
	NotifyBookingConfirmed(ctx context.Context, appointment *models.Appointment)
	NotifyBookingCancelled(ctx context.Context, appointment *models.Appointment, reason string)
}

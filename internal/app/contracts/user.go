package contracts

import (
	"context"

	"github.com/Stepho-hub/HealthKonnect-sub001/internal/app/models"
)

type UserRepository interface {
	FindByID(ctx context.Context, userID string) (*models.User, error)
}

package contracts

import (
	"context"

	"github.com/Stepho-hub/HealthKonnect-sub001/internal/app/models"
	"github.com/Stepho-hub/HealthKonnect-sub001/internal/pkg/dto/responses"
)

type DoctorUsecase interface {
	FindAll(ctx context.Context) ([]responses.Doctor, error)
	FindDoctorByID(ctx context.Context, doctorID string) (*responses.Doctor, error)
	GetAvailableTimeSlots(ctx context.Context, doctorID, date string) (*responses.AvailableTimeSlots, error)
}

type DoctorRepository interface {
	FindAll(ctx context.Context) ([]models.Doctor, error)
	FindByID(ctx context.Context, doctorID string) (*models.Doctor, error)
}

package utils

import (
	"github.com/Stepho-hub/HealthKonnect-sub001/internal/pkg/constvars"

	"github.com/google/uuid"
)

func GenerateRequestID() string {
	return constvars.REQUEST_ID_PREFIX + uuid.NewString()
}

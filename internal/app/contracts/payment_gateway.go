package contracts

import (
	"context"

	"github.com/Stepho-hub/HealthKonnect-sub001/internal/pkg/dto/requests"
	"github.com/Stepho-hub/HealthKonnect-sub001/internal/pkg/dto/responses"
)

type PaymentGatewayService interface {
	InitiateCharge(ctx context.Context, request *requests.GatewayCharge) (*responses.GatewayCharge, error)
}

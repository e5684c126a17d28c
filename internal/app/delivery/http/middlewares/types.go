package middlewares

import (
	"github.com/Stepho-hub/HealthKonnect-sub001/internal/app/config"
	"github.com/Stepho-hub/HealthKonnect-sub001/internal/app/services/shared/jwtmanager"

	"go.uber.org/zap"
)

type Middlewares struct {
	Log            *zap.Logger
	JWTManager     *jwtmanager.JWTManager
	InternalConfig *config.InternalConfig
}

func NewMiddlewares(log *zap.Logger, jwtManager *jwtmanager.JWTManager, internalConfig *config.InternalConfig) *Middlewares {
	return &Middlewares{
		Log:            log,
		JWTManager:     jwtManager,
		InternalConfig: internalConfig,
	}
}

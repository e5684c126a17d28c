package routers

import (
	"github.com/Stepho-hub/HealthKonnect-sub001/internal/app/delivery/http/controllers"
	"github.com/Stepho-hub/HealthKonnect-sub001/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachPaymentRoutes(router chi.Router, middlewares *middlewares.Middlewares, paymentController *controllers.PaymentController) {
	// Gateway callback. Unauthenticated, the gateway does not hold user tokens.
	router.Post("/callback", paymentController.PaymentCallback)
}

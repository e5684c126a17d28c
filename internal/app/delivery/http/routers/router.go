package routers

import (
	"fmt"
	"time"

	"github.com/Stepho-hub/HealthKonnect-sub001/internal/app/config"
	"github.com/Stepho-hub/HealthKonnect-sub001/internal/app/delivery/http/controllers"
	"github.com/Stepho-hub/HealthKonnect-sub001/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	appointmentController *controllers.AppointmentController,
	paymentController *controllers.PaymentController,
	doctorController *controllers.DoctorController,
	attachmentController *controllers.AttachmentController,
) {

	corsOptions := cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))

	// Rate limiting middleware using httprate
	rateLimiter := httprate.LimitByIP(internalConfig.App.MaxRequests, time.Second)
	router.Use(rateLimiter)

	router.Use(middlewares.RequestIDMiddleware)
	router.Use(middlewares.Logging(middlewares.Log))
	router.Use(middlewares.ErrorHandler)

	endpointPrefix := fmt.Sprintf("/%s", internalConfig.App.EndpointPrefix)
	versionPrefix := fmt.Sprintf("/%s", internalConfig.App.Version)

	router.Route(endpointPrefix, func(r chi.Router) {
		r.Route(versionPrefix, func(r chi.Router) {
			r.Route("/appointments", func(r chi.Router) {
				attachAppointmentRoutes(r, middlewares, appointmentController, paymentController, attachmentController)
			})

			r.Route("/payments", func(r chi.Router) {
				attachPaymentRoutes(r, middlewares, paymentController)
			})

			r.Route("/doctors", func(r chi.Router) {
				attachDoctorRoutes(r, middlewares, doctorController)
			})
		})
	})
}

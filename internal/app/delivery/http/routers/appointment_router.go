package routers

import (
	"github.com/Stepho-hub/HealthKonnect-sub001/internal/app/delivery/http/controllers"
	"github.com/Stepho-hub/HealthKonnect-sub001/internal/app/delivery/http/middlewares"
	"github.com/Stepho-hub/HealthKonnect-sub001/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachAppointmentRoutes(
	router chi.Router,
	middlewares *middlewares.Middlewares,
	appointmentController *controllers.AppointmentController,
	paymentController *controllers.PaymentController,
	attachmentController *controllers.AttachmentController,
) {
	router.With(middlewares.Authenticate).Get("/", appointmentController.FindAll)
	router.With(middlewares.Authenticate, middlewares.RequireRole(constvars.RolePatient)).Post("/", appointmentController.CreateAppointment)
	router.With(middlewares.Authenticate).Get("/{appointmentId}", appointmentController.FindByID)
	router.With(middlewares.Authenticate, middlewares.RequireRole(constvars.RolePatient)).Post("/{appointmentId}/pay", paymentController.InitiatePayment)
	router.With(middlewares.Authenticate, middlewares.RequireRole(constvars.RolePatient)).Post("/{appointmentId}/attachments", attachmentController.UploadAttachment)
}

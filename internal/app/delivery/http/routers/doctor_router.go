package routers

import (
	"github.com/Stepho-hub/HealthKonnect-sub001/internal/app/delivery/http/controllers"
	"github.com/Stepho-hub/HealthKonnect-sub001/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachDoctorRoutes(router chi.Router, middlewares *middlewares.Middlewares, doctorController *controllers.DoctorController) {
	router.Get("/", doctorController.FindAll)
	router.Get("/{doctorId}", doctorController.FindByID)
	router.Get("/{doctorId}/slots", doctorController.GetAvailableTimeSlots)
}

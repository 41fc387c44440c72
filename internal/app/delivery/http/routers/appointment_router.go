package routers

import (
	"medconsult-service/internal/app/delivery/http/controllers"
	"medconsult-service/internal/app/delivery/http/middlewares"
	"medconsult-service/internal/app/services/core/roles"

	"github.com/go-chi/chi/v5"
)

func attachAppointmentRoutes(router chi.Router, mw *middlewares.Middlewares, appointmentController *controllers.AppointmentController) {
	router.Use(mw.Authenticate)
	router.With(mw.RequirePermission(roles.OperationCreateAppointment)).Post("/", appointmentController.CreateAppointment)
	router.With(mw.RequirePermission(roles.OperationListAppointments)).Get("/", appointmentController.ListAppointments)
	router.With(mw.RequirePermission(roles.OperationAssignAppointment)).Put("/{appointmentID}/assignment", appointmentController.AssignDoctor)
	router.With(mw.RequirePermission(roles.OperationRequestPayment)).Post("/{appointmentID}/payment", appointmentController.RequestPayment)
}

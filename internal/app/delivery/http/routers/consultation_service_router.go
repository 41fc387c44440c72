package routers

import (
	"medconsult-service/internal/app/delivery/http/controllers"
	"medconsult-service/internal/app/delivery/http/middlewares"
	"medconsult-service/internal/app/services/core/roles"

	"github.com/go-chi/chi/v5"
)

func attachConsultationServiceRoutes(router chi.Router, mw *middlewares.Middlewares, consultationServiceController *controllers.ConsultationServiceController) {
	router.Get("/", consultationServiceController.ListServices)
	router.With(mw.Authenticate, mw.RequirePermission(roles.OperationCreateService)).Post("/", consultationServiceController.CreateService)
}

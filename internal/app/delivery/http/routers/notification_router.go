package routers

import (
	"medconsult-service/internal/app/delivery/http/controllers"
	"medconsult-service/internal/app/delivery/http/middlewares"
	"medconsult-service/internal/app/services/core/roles"

	"github.com/go-chi/chi/v5"
)

func attachNotificationRoutes(router chi.Router, mw *middlewares.Middlewares, notificationController *controllers.NotificationController) {
	router.Use(mw.Authenticate)
	router.With(mw.RequirePermission(roles.OperationCreateNotification)).Post("/", notificationController.CreateNotification)
	router.With(mw.RequirePermission(roles.OperationListNotifications)).Get("/", notificationController.ListNotifications)
	router.With(mw.RequirePermission(roles.OperationMarkNotificationRead)).Put("/{notificationID}/read", notificationController.MarkRead)
}

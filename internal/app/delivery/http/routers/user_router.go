package routers

import (
	"medconsult-service/internal/app/delivery/http/controllers"
	"medconsult-service/internal/app/delivery/http/middlewares"
	"medconsult-service/internal/app/services/core/roles"

	"github.com/go-chi/chi/v5"
)

func attachUserRoutes(router chi.Router, mw *middlewares.Middlewares, userController *controllers.UserController) {
	router.Use(mw.Authenticate)
	router.With(mw.RequirePermission(roles.OperationViewProfile)).Get("/profile", userController.GetProfile)
	router.With(mw.RequirePermission(roles.OperationUpdateProfile)).Put("/profile", userController.UpdateProfile)
}

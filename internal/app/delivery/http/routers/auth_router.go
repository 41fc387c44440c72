package routers

import (
	"medconsult-service/internal/app/delivery/http/controllers"
	"medconsult-service/internal/app/delivery/http/middlewares"
	"medconsult-service/internal/app/services/core/roles"

	"github.com/go-chi/chi/v5"
)

func attachAuthRoutes(router chi.Router, mw *middlewares.Middlewares, otpLimiter *middlewares.RateLimiter, authController *controllers.AuthController) {
	router.Post("/signup", authController.Signup)
	router.Post("/login", authController.Login)
	router.With(otpLimiter.Limit).Post("/otp/send", authController.SendOTP)
	router.With(otpLimiter.Limit).Post("/otp/verify", authController.VerifyOTP)
	router.With(mw.Authenticate, mw.RequirePermission(roles.OperationLogout)).Post("/logout", authController.Logout)
}

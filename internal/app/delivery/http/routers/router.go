package routers

import (
	"fmt"
	"medconsult-service/internal/app/config"
	"medconsult-service/internal/app/delivery/http/controllers"
	"medconsult-service/internal/app/delivery/http/middlewares"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

const (
	defaultOTPMaxRequestsPerMinute = 5
	defaultOTPBlockTime            = 5 * time.Minute
	defaultRequestBodyLimitInMB    = 6
)

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	mw *middlewares.Middlewares,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	consultationServiceController *controllers.ConsultationServiceController,
	doctorController *controllers.DoctorController,
	appointmentController *controllers.AppointmentController,
	paymentController *controllers.PaymentController,
	notificationController *controllers.NotificationController,
) {
	router.Use(mw.RequestIDMiddleware)
	router.Use(mw.Logging)
	router.Use(mw.ErrorHandler)

	corsOptions := cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))

	if internalConfig.App.MaxRequests > 0 {
		router.Use(httprate.LimitByIP(internalConfig.App.MaxRequests, time.Second))
	}

	bodyLimitInMB := internalConfig.App.RequestBodyLimitInMegabyte
	if bodyLimitInMB <= 0 {
		bodyLimitInMB = defaultRequestBodyLimitInMB
	}
	router.Use(middleware.RequestSize(int64(bodyLimitInMB) << 20))

	otpMaxRequests := internalConfig.App.OTPMaxRequestsPerMinute
	if otpMaxRequests <= 0 {
		otpMaxRequests = defaultOTPMaxRequestsPerMinute
	}
	otpBlockTime := time.Duration(internalConfig.App.OTPBlockTimeInMinutes) * time.Minute
	if otpBlockTime <= 0 {
		otpBlockTime = defaultOTPBlockTime
	}
	otpLimiter := middlewares.NewRateLimiter(mw.Log, otpMaxRequests, time.Minute, otpBlockTime)

	endpointPrefix := fmt.Sprintf("/%s", internalConfig.App.EndpointPrefix)
	versionPrefix := fmt.Sprintf("/%s", internalConfig.App.Version)

	router.Route(endpointPrefix, func(r chi.Router) {
		r.Route(versionPrefix, func(r chi.Router) {
			r.Route("/auth", func(r chi.Router) {
				attachAuthRoutes(r, mw, otpLimiter, authController)
			})

			r.Route("/users", func(r chi.Router) {
				attachUserRoutes(r, mw, userController)
			})

			r.Route("/services", func(r chi.Router) {
				attachConsultationServiceRoutes(r, mw, consultationServiceController)
			})

			r.Route("/doctors", func(r chi.Router) {
				attachDoctorRoutes(r, mw, doctorController)
			})

			r.Route("/appointments", func(r chi.Router) {
				attachAppointmentRoutes(r, mw, appointmentController)
			})

			r.Route("/payments", func(r chi.Router) {
				attachPaymentRoutes(r, paymentController)
			})

			r.Route("/notifications", func(r chi.Router) {
				attachNotificationRoutes(r, mw, notificationController)
			})
		})
	})
}

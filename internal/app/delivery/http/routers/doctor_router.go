package routers

import (
	"medconsult-service/internal/app/delivery/http/controllers"
	"medconsult-service/internal/app/delivery/http/middlewares"
	"medconsult-service/internal/app/services/core/roles"

	"github.com/go-chi/chi/v5"
)

func attachDoctorRoutes(router chi.Router, mw *middlewares.Middlewares, doctorController *controllers.DoctorController) {
	router.With(mw.OptionalAuthenticate).Get("/", doctorController.ListDoctors)

	router.Group(func(r chi.Router) {
		r.Use(mw.Authenticate)
		r.With(mw.RequirePermission(roles.OperationListPendingDoctors)).Get("/pending", doctorController.ListPendingDoctors)
		r.With(mw.RequirePermission(roles.OperationViewOwnDoctorProfile)).Get("/me", doctorController.GetOwnProfile)
		r.With(mw.RequirePermission(roles.OperationSubmitDoctorProfile)).Put("/me/profile", doctorController.SubmitProfile)
		r.With(mw.RequirePermission(roles.OperationDecideDoctorApproval)).Put("/{doctorID}/approval", doctorController.DecideApproval)
		r.With(mw.RequirePermission(roles.OperationDownloadDoctorEvidence)).Get("/{doctorID}/evidence", doctorController.DownloadEvidence)
	})
}

package rest

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/activity-tracker/internal/activity"
	"github.com/frahmantamala/activity-tracker/internal/appstate"
	"github.com/frahmantamala/activity-tracker/internal/auth"
	"github.com/frahmantamala/activity-tracker/internal/export"
	"github.com/frahmantamala/activity-tracker/internal/storage"
	"github.com/frahmantamala/activity-tracker/internal/transport/middleware"
	"github.com/frahmantamala/activity-tracker/internal/transport/swagger"
	"github.com/frahmantamala/activity-tracker/internal/user"
)

func RegisterAllRoutes(router *chi.Mux, adapter *storage.Adapter, authHandler *auth.Handler, userHandler *user.Handler, activityHandler *activity.Handler, dashboardHandler *appstate.Handler, exportHandler *export.Handler, logger *slog.Logger) {
	healthHandler := NewHealthHandler(adapter)

	router.Use(middleware.CORS)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/signup", authHandler.Signup)
			sr.Post("/login", authHandler.Login)
			sr.Post("/logout", authHandler.Logout)
		})

		// Protected routes that require an authenticated session
		r.Group(func(pr chi.Router) {
			pr.Use(authHandler.Middleware)

			pr.Post("/auth/change-password", authHandler.ChangePassword)

			pr.Get("/users/me", userHandler.GetCurrentUser)
			pr.Patch("/users/me", userHandler.UpdateProfile)

			pr.Route("/activities", func(ar chi.Router) {
				ar.Get("/", activityHandler.ListActivities)
				ar.Post("/", activityHandler.CreateActivity)
				ar.Get("/{id}", activityHandler.GetActivity)
				ar.Patch("/{id}", activityHandler.UpdateActivity)
				ar.Delete("/{id}", activityHandler.DeleteActivity)
				ar.Delete("/{id}/images/{field}", activityHandler.RemoveActivityImage)
			})

			pr.Route("/dashboard", func(dr chi.Router) {
				dr.Get("/summary", dashboardHandler.Summary)
				dr.Get("/charts/types", dashboardHandler.TypeDistribution)
				dr.Get("/charts/trend", dashboardHandler.DailyTrend)
				dr.Post("/refresh", dashboardHandler.Refresh)

				dr.Group(func(ad chi.Router) {
					ad.Use(authHandler.RequireAdmin)
					ad.Get("/charts/employees", dashboardHandler.EmployeeComparison)
					ad.Get("/charts/breakdown", dashboardHandler.EmployeeTypeBreakdown)
				})
			})

			// Admin-only surfaces
			pr.Group(func(ar chi.Router) {
				ar.Use(authHandler.RequireAdmin)

				ar.Get("/users", userHandler.ListUsers)
				ar.Get("/users/{id}", userHandler.GetUser)
				ar.Post("/users/{id}/promote", userHandler.PromoteUser)

				ar.Get("/export", exportHandler.Export)
				ar.Post("/import", exportHandler.Import)
			})
		})
	})
}

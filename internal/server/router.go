package server

import (
	"net/http"
	"time"

	"github.com/Comprehensive-Wall28/layered-dining-sub000/internal/config"
	"github.com/Comprehensive-Wall28/layered-dining-sub000/internal/domain"
	"github.com/Comprehensive-Wall28/layered-dining-sub000/internal/handler"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"log/slog"
)

// NewRouter wires HTTP routes and middleware.
func NewRouter(cfg config.Config,
	logger *slog.Logger,
	health handler.HealthHandler,
	auth handler.AuthHandler,
	menu handler.MenuHandler,
	menuAdmin handler.MenuAdminHandler,
	tables handler.TableHandler,
	tablesAdmin handler.TableAdminHandler,
	carts handler.CartHandler,
	orders handler.OrderHandler,
	reservations handler.ReservationHandler,
	notifications handler.NotificationHandler,
	feedback handler.FeedbackHandler,
	auditLogs handler.AuditLogHandler,
	reports handler.ReportHandler,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(NewLoggerMiddleware(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(httprate.LimitByIP(200, 1*time.Minute))

	health.RegisterRoutes(r)
	auth.RegisterRoutes(r)
	menu.RegisterRoutes(r)
	tables.RegisterRoutes(r)
	r.Method("GET", "/metrics", promhttp.Handler())

	r.Group(func(pr chi.Router) {
		pr.Use(AuthMiddleware(cfg.JWTSecret))
		// any authenticated user
		auth.RegisterProtectedRoutes(pr)
		carts.RegisterRoutes(pr)
		orders.RegisterRoutes(pr)
		reservations.RegisterRoutes(pr)
		notifications.RegisterRoutes(pr)
		feedback.RegisterRoutes(pr)

		// staff-level (manager/admin)
		pr.Group(func(sr chi.Router) {
			sr.Use(RequireRole(domain.RoleAdmin, domain.RoleManager))
			menuAdmin.RegisterRoutes(sr)
			tablesAdmin.RegisterRoutes(sr)
			orders.RegisterStaffRoutes(sr)
			reservations.RegisterStaffRoutes(sr)
			feedback.RegisterStaffRoutes(sr)
			auditLogs.RegisterRoutes(sr)
			reports.RegisterRoutes(sr)
		})
		// admin-only
		pr.Group(func(ar chi.Router) {
			ar.Use(RequireRole(domain.RoleAdmin))
			tablesAdmin.RegisterAdminRoutes(ar)
		})
	})

	return r
}

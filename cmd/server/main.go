package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Comprehensive-Wall28/layered-dining-sub000/internal/config"
	"github.com/Comprehensive-Wall28/layered-dining-sub000/internal/db"
	"github.com/Comprehensive-Wall28/layered-dining-sub000/internal/handler"
	"github.com/Comprehensive-Wall28/layered-dining-sub000/internal/repository"
	"github.com/Comprehensive-Wall28/layered-dining-sub000/internal/server"
	"github.com/Comprehensive-Wall28/layered-dining-sub000/internal/service"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pg, err := db.New(ctx, cfg)
	if err != nil {
		logger.Error("failed to connect database", "err", err)
		os.Exit(1)
	}
	defer pg.Close()

	if err := db.Migrate(ctx, pg); err != nil {
		logger.Error("failed to run migrations", "err", err)
		os.Exit(1)
	}

	// repositories
	userRepo := repository.UserRepository{DB: pg}
	menuRepo := repository.MenuRepository{DB: pg}
	tableRepo := repository.TableRepository{DB: pg}
	cartRepo := repository.CartRepository{DB: pg}
	orderRepo := repository.OrderRepository{DB: pg}
	reservationRepo := repository.ReservationRepository{DB: pg}
	auditRepo := repository.AuditLogRepository{DB: pg}
	notificationRepo := repository.NotificationRepository{DB: pg}
	feedbackRepo := repository.FeedbackRepository{DB: pg}

	// services
	authSvc := service.AuthService{Config: cfg, Users: userRepo, Carts: cartRepo, Logger: logger}
	cartSvc := service.CartService{
		Carts:   cartRepo,
		Menu:    menuRepo,
		Pricing: service.PricingEngine{Menu: menuRepo},
	}
	orderSvc := service.OrderService{
		Orders:            orderRepo,
		Carts:             cartRepo,
		Users:             userRepo,
		Pricing:           service.PricingEngine{Menu: menuRepo, Strict: true},
		Audit:             auditRepo,
		Logger:            logger,
		StrictTransitions: cfg.StrictOrderTransitions,
	}
	notifier := service.NotificationService{Store: notificationRepo, Users: userRepo, Logger: logger}
	reservationSvc := &service.ReservationService{
		Tables:       tableRepo,
		Reservations: reservationRepo,
		Notifier:     notifier,
		Audit:        auditRepo,
		Logger:       logger,
		NotifyAsync:  true,
	}

	// handlers
	healthHandler := handler.HealthHandler{DB: pg}
	authHandler := handler.AuthHandler{Service: &authSvc}
	menuHandler := handler.MenuHandler{Repo: menuRepo}
	menuAdminHandler := handler.MenuAdminHandler{Repo: menuRepo}
	tableHandler := handler.TableHandler{Repo: tableRepo, Reservations: reservationSvc}
	tableAdminHandler := handler.TableAdminHandler{Repo: tableRepo}
	cartHandler := handler.CartHandler{Service: cartSvc}
	orderHandler := handler.OrderHandler{Service: orderSvc}
	reservationHandler := handler.ReservationHandler{Service: reservationSvc, Repo: reservationRepo}
	notificationHandler := handler.NotificationHandler{Repo: notificationRepo}
	feedbackHandler := handler.FeedbackHandler{Repo: feedbackRepo}
	auditLogHandler := handler.AuditLogHandler{Repo: auditRepo}
	reportHandler := handler.ReportHandler{Orders: orderRepo, Reservations: reservationRepo}

	router := server.NewRouter(cfg, logger,
		healthHandler, authHandler,
		menuHandler, menuAdminHandler,
		tableHandler, tableAdminHandler,
		cartHandler, orderHandler, reservationHandler,
		notificationHandler, feedbackHandler, auditLogHandler, reportHandler)

	if err := server.Start(ctx, cfg, router, logger); err != nil {
		logger.Error("server error", "err", err)
		os.Exit(1)
	}
}

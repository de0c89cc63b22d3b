package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/bookline/reservation-service/internal/api/http"
	"github.com/bookline/reservation-service/internal/api/http/handlers"
	"github.com/bookline/reservation-service/internal/auth"
	"github.com/bookline/reservation-service/internal/config"
	"github.com/bookline/reservation-service/internal/events"
	"github.com/bookline/reservation-service/internal/observability"
	"github.com/bookline/reservation-service/internal/persistence"
	"github.com/bookline/reservation-service/internal/repository"
	"github.com/bookline/reservation-service/internal/service"
	"github.com/bookline/reservation-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	serviceRepo := repository.NewServiceRepository(pool)
	reservationRepo := repository.NewReservationRepository(pool)
	reportRepo := repository.NewReportRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()

	reservationService := service.NewReservationService(service.ReservationDependencies{
		ReservationRepo: reservationRepo,
		UserRepo:        userRepo,
		ServiceRepo:     serviceRepo,
		Dispatcher:      dispatcher,
		LinkBaseURL:     cfg.Notification.WhatsAppBaseURL,
	})
	catalogService := service.NewCatalogService(serviceRepo)
	userService := service.NewUserService(userRepo, cfg.Auth.BcryptCost)
	authService := service.NewAuthService(cfg.Auth, userRepo)
	reportService := service.NewReportService(reportRepo, redis, cfg.Reports.SummaryCacheTTL(), logger)
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Reservations:   handlers.NewReservationsHandler(reservationService),
		Services:       handlers.NewServicesHandler(catalogService),
		Users:          handlers.NewUsersHandler(userService),
		Reports:        handlers.NewReportsHandler(reportService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}

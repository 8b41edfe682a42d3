package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/exp/slog"

	"github.com/givebridge/givebridge-backend/api/routes"
	"github.com/givebridge/givebridge-backend/internal/cache"
	"github.com/givebridge/givebridge-backend/internal/config"
	"github.com/givebridge/givebridge-backend/internal/handlers"
	"github.com/givebridge/givebridge-backend/internal/repositories"
	mongorepo "github.com/givebridge/givebridge-backend/internal/repositories/mongodb"
	"github.com/givebridge/givebridge-backend/internal/services"
	"github.com/givebridge/givebridge-backend/pkg/certrenderer"
	"github.com/givebridge/givebridge-backend/pkg/mongodb"
	"github.com/givebridge/givebridge-backend/pkg/pushgateway"
)

func main() {
	// .env is optional; real deployments configure through the environment.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	setupLogger(cfg.LogLevel)

	mongoClient, err := mongodb.NewClient(cfg.MongoDB.URI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			slog.Error("Error disconnecting from MongoDB", "error", err)
		}
	}()

	db := mongoClient.Database(cfg.MongoDB.Database)

	indexCtx, cancelIndex := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelIndex()
	if err := mongodb.EnsureIndexes(indexCtx, db); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}

	// Repositories
	var donationRepo repositories.DonationRepository = mongorepo.NewDonationRepository(db)
	var ngoRepo repositories.NGORepository = mongorepo.NewNGORepository(db)
	var userRepo repositories.UserRepository = mongorepo.NewUserRepository(db)
	var badgeRepo repositories.BadgeRepository = mongorepo.NewBadgeRepository(db)
	var certRepo repositories.CertificateRepository = mongorepo.NewCertificateRepository(db)
	var notificationRepo repositories.NotificationRepository = mongorepo.NewNotificationRepository(db)
	var pointRepo repositories.PointTransactionRepository = mongorepo.NewPointTransactionRepository(db)
	var eventRepo repositories.EventRepository = mongorepo.NewEventRepository(db)

	// External gateways
	var gateway pushgateway.Gateway
	if cfg.Push.MockPush {
		gateway = pushgateway.NewMockGateway()
	} else {
		gateway = pushgateway.NewHTTPGateway(cfg)
	}
	var renderer certrenderer.Renderer
	if cfg.Certificate.MockRenderer {
		renderer = certrenderer.NewMockRenderer()
	} else {
		renderer = certrenderer.NewHTTPRenderer(cfg)
	}

	// Services
	notificationService := services.NewNotificationService(notificationRepo, gateway)
	progressionService := services.NewProgressionService(userRepo, badgeRepo, certRepo, pointRepo, renderer, notificationService, cfg.Certificate.Issuer)
	assignmentService := services.NewAssignmentService(ngoRepo, cfg.Assignment.SearchRadiusKm, cfg.Assignment.MaxCandidates)
	donationService := services.NewDonationService(donationRepo, assignmentService, progressionService, notificationService)
	userService := services.NewUserService(userRepo, cfg)
	ngoService := services.NewNGOService(ngoRepo)
	eventService := services.NewEventService(eventRepo, userRepo, progressionService)
	recommendationService := services.NewRecommendationService(ngoRepo, cache.New(5*time.Minute), cfg.Assignment.SearchRadiusKm, 10)

	// Handlers
	deps := routes.HandlerDependencies{
		AuthHandler:         handlers.NewAuthHandler(userService),
		UserHandler:         handlers.NewUserHandler(userService, progressionService),
		DonationHandler:     handlers.NewDonationHandler(donationService),
		NGOHandler:          handlers.NewNGOHandler(ngoService, recommendationService),
		NotificationHandler: handlers.NewNotificationHandler(notificationService),
		EventHandler:        handlers.NewEventHandler(eventService),
	}

	router := routes.SetupRouter(cfg, deps)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		slog.Info("Server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown: ", err)
	}

	slog.Info("Server exiting")
}

func setupLogger(level string) {
	var l slog.Level
	switch level {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: l})
	slog.SetDefault(slog.New(handler))
}

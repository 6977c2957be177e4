package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	httpapi "github.com/LegoGigaBrain/vlossom-protocol-sub007/internal/api/http"
	"github.com/LegoGigaBrain/vlossom-protocol-sub007/internal/config"
	"github.com/LegoGigaBrain/vlossom-protocol-sub007/internal/live"
	"github.com/LegoGigaBrain/vlossom-protocol-sub007/internal/logger"
	"github.com/LegoGigaBrain/vlossom-protocol-sub007/internal/metrics"
	"github.com/LegoGigaBrain/vlossom-protocol-sub007/internal/repository/postgres"
	"github.com/LegoGigaBrain/vlossom-protocol-sub007/internal/security"
	"github.com/LegoGigaBrain/vlossom-protocol-sub007/internal/service"

	_ "github.com/lib/pq"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Vlossom API...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress(), "metrics_port", cfg.Server.MetricsPort)
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Failed to ping redis: %v", err)
	}
	logger.Info("Redis connection established", "addr", cfg.Redis.Addr)

	store := postgres.NewStore(db)

	accessExpiry := time.Duration(cfg.JWT.AccessTokenExpiry) * time.Minute
	refreshExpiry := time.Duration(cfg.JWT.RefreshTokenExpiry) * time.Minute
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, accessExpiry, refreshExpiry)
	csrfIssuer := security.NewCSRFIssuer(cfg.JWT.Secret)

	// Live event fan-out: services publish to Redis, the subscriber
	// feeds this instance's hub, SSE handlers drain the hub.
	hub := live.NewHub()
	publisher := live.NewRedisPublisher(rdb)
	live.StartRedisSubscriber(context.Background(), rdb, hub)

	emailSvc := service.NewEmailService(
		cfg.SMTP.Host,
		fmt.Sprintf("%d", cfg.SMTP.Port),
		cfg.SMTP.User,
		cfg.SMTP.Password,
		cfg.SMTP.From,
	)

	authSvc := service.NewAuthService(store.UserRepository, tokenManager, csrfIssuer, rdb, refreshExpiry)
	bookingSvc := service.NewBookingService(
		store.BookingRepository,
		store.UserRepository,
		store.StylistContextRepository,
		store.LedgerRepository,
		store.NotificationRepository,
		emailSvc,
		publisher,
	)
	propSvc := service.NewPropertyService(store.PropertyRepository)
	rentalSvc := service.NewRentalService(
		store.RentalRequestRepository,
		store.PropertyRepository,
		store.BookingRepository,
		store.UserRepository,
		store.LedgerRepository,
		store.StylistContextRepository,
		store.NotificationRepository,
		emailSvc,
	)
	ledgerSvc := service.NewLedgerService(store.LedgerRepository, store.BookingRepository)
	favSvc := service.NewFavoriteService(store.FavoriteRepository, store.UserRepository, store.PropertyRepository)
	noteSvc := service.NewNotificationService(store.NotificationRepository)
	hairSvc := service.NewHairHealthService(store.HairHealthRepository)
	learningSvc := service.NewLearningService(store.LearningRepository)
	scSvc := service.NewStylistContextService(store.StylistContextRepository)
	calSvc := service.NewCalendarService(store.StylistContextRepository)

	handlers := httpapi.Handlers{
		Auth:         httpapi.NewAuthHandler(authSvc, accessExpiry, refreshExpiry, cfg.Server.SecureCookies),
		Booking:      httpapi.NewBookingHandler(bookingSvc),
		Live:         httpapi.NewLiveHandler(bookingSvc, hub),
		Property:     httpapi.NewPropertyHandler(propSvc, rentalSvc),
		Favorite:     httpapi.NewFavoriteHandler(favSvc),
		HairHealth:   httpapi.NewHairHealthHandler(hairSvc, learningSvc),
		StylistCtx:   httpapi.NewStylistContextHandler(scSvc, calSvc),
		Notification: httpapi.NewNotificationHandler(noteSvc),
		Ledger:       httpapi.NewLedgerHandler(ledgerSvc),
	}

	healthFn := func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}

	router := httpapi.NewRouter(handlers, tokenManager, csrfIssuer, cfg.Server.AllowedOrigins, healthFn)

	metricsSrv := metrics.StartServer(cfg.Server.MetricsPort, func(ctx context.Context) error {
		if err := db.PingContext(ctx); err != nil {
			return err
		}
		return rdb.Ping(ctx).Err()
	})
	defer metricsSrv.Close()
	logger.Info("Metrics server started", "port", cfg.Server.MetricsPort)

	addr := cfg.GetServerAddress()
	logger.Info("API server listening", "address", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

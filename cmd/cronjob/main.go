package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/LegoGigaBrain/vlossom-protocol-sub007/internal/config"
	"github.com/LegoGigaBrain/vlossom-protocol-sub007/internal/jobs"
	"github.com/LegoGigaBrain/vlossom-protocol-sub007/internal/live"
	"github.com/LegoGigaBrain/vlossom-protocol-sub007/internal/logger"
	"github.com/LegoGigaBrain/vlossom-protocol-sub007/internal/repository/postgres"
	"github.com/LegoGigaBrain/vlossom-protocol-sub007/internal/scheduler"
	"github.com/LegoGigaBrain/vlossom-protocol-sub007/internal/service"

	_ "github.com/lib/pq"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a single job group and exit (bookings, rentals, all)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Vlossom background worker...")

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

	store := postgres.NewStore(db)
	publisher := live.NewRedisPublisher(rdb)

	emailSvc := service.NewEmailService(
		cfg.SMTP.Host,
		fmt.Sprintf("%d", cfg.SMTP.Port),
		cfg.SMTP.User,
		cfg.SMTP.Password,
		cfg.SMTP.From,
	)
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

	jobRunner := jobs.NewJobRunner(store, &jobs.Services{
		Rental: rentalSvc,
		Email:  emailSvc,
	}, publisher, cfg)

	if *runOnce != "" {
		switch *runOnce {
		case "bookings":
			jobRunner.RunAllBookingJobs()
		case "rentals":
			jobRunner.RunAllRentalJobs()
		case "all":
			jobRunner.RunAllBookingJobs()
			jobRunner.RunAllRentalJobs()
		default:
			log.Fatalf("Unknown job group %q (expected bookings, rentals, or all)", *runOnce)
		}
		logger.Info("Run-once complete", "group", *runOnce)
		return
	}

	sched := scheduler.NewScheduler(jobRunner)
	sched.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	logger.Info("Shutting down", "signal", sig.String())
	sched.Stop()
}

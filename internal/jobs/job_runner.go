package jobs

import (
	"github.com/LegoGigaBrain/vlossom-protocol-sub007/internal/config"
	"github.com/LegoGigaBrain/vlossom-protocol-sub007/internal/live"
	"github.com/LegoGigaBrain/vlossom-protocol-sub007/internal/logger"
	"github.com/LegoGigaBrain/vlossom-protocol-sub007/internal/repository/postgres"
	"github.com/LegoGigaBrain/vlossom-protocol-sub007/internal/service"
)

// JobRunner coordinates all scheduled jobs.
type JobRunner struct {
	store     *postgres.Store
	services  *Services
	publisher live.Publisher
	config    *config.Config
}

// Services holds the service dependencies jobs drive directly.
type Services struct {
	Rental service.RentalService
	Email  service.EmailService
}

func NewJobRunner(store *postgres.Store, services *Services, publisher live.Publisher, cfg *config.Config) *JobRunner {
	return &JobRunner{
		store:     store,
		services:  services,
		publisher: publisher,
		config:    cfg,
	}
}

// Config exposes the loaded configuration to the scheduler.
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery.
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// RunAllBookingJobs runs every booking sweep once (for manual execution).
func (jr *JobRunner) RunAllBookingJobs() {
	jr.ExpireUnpaidBookings()
	jr.MarkNoShows()
	jr.ReleaseEscrowDue()
	jr.SendAppointmentReminders()
}

// RunAllRentalJobs runs the rental date sweeps once (for manual execution).
func (jr *JobRunner) RunAllRentalJobs() {
	jr.ExpireStaleRentalRequests()
	jr.ActivateDueRentals()
	jr.CompleteEndedRentals()
}

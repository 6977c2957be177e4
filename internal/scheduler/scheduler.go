package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"

	"github.com/LegoGigaBrain/vlossom-protocol-sub007/internal/jobs"
	"github.com/LegoGigaBrain/vlossom-protocol-sub007/internal/logger"
)

// Scheduler manages cron job scheduling.
type Scheduler struct {
	cron *cron.Cron
	jobs *jobs.JobRunner
}

func NewScheduler(jobRunner *jobs.JobRunner) *Scheduler {
	// UTC with seconds precision; the schedule strings carry a seconds field.
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithSeconds(),
	)

	s := &Scheduler{
		cron: c,
		jobs: jobRunner,
	}

	s.registerJobs()
	return s
}

func (s *Scheduler) registerJobs() {
	cfg := s.jobs.Config().Scheduler

	for _, job := range []struct {
		name string
		spec string
		fn   func()
	}{
		{"ExpireUnpaidBookings", cfg.ExpireUnpaidBookings, s.jobs.ExpireUnpaidBookings},
		{"MarkNoShows", cfg.MarkNoShows, s.jobs.MarkNoShows},
		{"ReleaseEscrowDue", cfg.ReleaseEscrow, s.jobs.ReleaseEscrowDue},
		{"ExpireStaleRentalRequests", cfg.RollRentals, s.jobs.ExpireStaleRentalRequests},
		{"ActivateDueRentals", cfg.RollRentals, s.jobs.ActivateDueRentals},
		{"CompleteEndedRentals", cfg.RollRentals, s.jobs.CompleteEndedRentals},
		{"SendAppointmentReminders", cfg.SendReminders, s.jobs.SendAppointmentReminders},
	} {
		if _, err := s.cron.AddFunc(job.spec, job.fn); err != nil {
			logger.Error("Failed to register job", "job", job.name, "spec", job.spec, "error", err)
		}
	}

	logger.Info("All cron jobs registered")
}

// Start begins executing scheduled jobs in their own goroutines.
func (s *Scheduler) Start() {
	s.cron.Start()
	logger.Info("Scheduler started")
}

// Stop waits for running jobs to finish and halts the scheduler.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("Scheduler stopped")
}

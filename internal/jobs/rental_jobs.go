package jobs

import (
	"context"
	"time"

	"github.com/LegoGigaBrain/vlossom-protocol-sub007/internal/logger"
)

// ActivateDueRentals starts approved chair rentals whose start date has
// arrived, charging rent and occupying the chair.
func (jr *JobRunner) ActivateDueRentals() {
	jr.runWithRecovery("ActivateDueRentals", func() {
		ctx := context.Background()
		today := time.Now().UTC().Format("2006-01-02")

		count, err := jr.services.Rental.ActivateDue(ctx, today)
		if err != nil {
			logger.Error("Failed to activate due rentals", "error", err)
			return
		}
		logger.Info("Activated chair rentals", "count", count, "date", today)
	})
}

// ExpireStaleRentalRequests expires pending requests whose start date
// passed without an owner decision.
func (jr *JobRunner) ExpireStaleRentalRequests() {
	jr.runWithRecovery("ExpireStaleRentalRequests", func() {
		ctx := context.Background()
		today := time.Now().UTC().Format("2006-01-02")

		count, err := jr.services.Rental.ExpireStale(ctx, today)
		if err != nil {
			logger.Error("Failed to expire stale rental requests", "error", err)
			return
		}
		logger.Info("Expired stale rental requests", "count", count, "date", today)
	})
}

// CompleteEndedRentals closes active rentals past their end date and
// frees their chairs.
func (jr *JobRunner) CompleteEndedRentals() {
	jr.runWithRecovery("CompleteEndedRentals", func() {
		ctx := context.Background()
		today := time.Now().UTC().Format("2006-01-02")

		count, err := jr.services.Rental.CompleteEnded(ctx, today)
		if err != nil {
			logger.Error("Failed to complete ended rentals", "error", err)
			return
		}
		logger.Info("Completed chair rentals", "count", count, "date", today)
	})
}

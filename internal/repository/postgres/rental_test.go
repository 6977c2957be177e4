package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"github.com/LegoGigaBrain/vlossom-protocol-sub007/internal/domain"
	"github.com/LegoGigaBrain/vlossom-protocol-sub007/internal/repository/postgres"
)

var rentalCols = []string{
	"id", "chair_id", "property_id", "stylist_id", "owner_id", "start_date", "end_date",
	"daily_rent_cents", "weekly_rent_cents", "monthly_rent_cents", "total_cents",
	"status", "message", "decision_note", "created_on", "updated_on",
}

func TestRentalRequestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewRentalRequestRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		rr := &domain.RentalRequest{
			ChairID:          4,
			PropertyID:       2,
			StylistID:        3,
			OwnerID:          9,
			StartDate:        "2026-09-01",
			EndDate:          "2026-09-07",
			DailyRentCents:   5000,
			WeeklyRentCents:  30000,
			MonthlyRentCents: 100000,
			TotalCents:       30000,
			Status:           domain.RentalRequestStatusPending,
			Message:          "Looking for a weekend spot",
		}

		mock.ExpectQuery("INSERT INTO rental_requests").
			WithArgs(rr.ChairID, rr.PropertyID, rr.StylistID, rr.OwnerID, rr.StartDate, rr.EndDate,
				rr.DailyRentCents, rr.WeeklyRentCents, rr.MonthlyRentCents, rr.TotalCents, rr.Status, rr.Message,
				sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))

		err := repo.Create(ctx, rr)
		assert.NoError(t, err)
		assert.Equal(t, int32(11), rr.ID)
	})
}

func TestRentalRequestRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewRentalRequestRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		now := time.Now()
		rows := sqlmock.NewRows(rentalCols).
			AddRow(11, 4, 2, 3, 9, "2026-09-01", "2026-09-07",
				5000, 30000, 100000, 30000, "APPROVED", "", "Welcome aboard", now, now)

		mock.ExpectQuery("SELECT (.+) FROM rental_requests WHERE id = \\$1").
			WithArgs(int32(11)).
			WillReturnRows(rows)

		rr, err := repo.GetByID(ctx, 11)
		assert.NoError(t, err)
		assert.NotNil(t, rr)
		assert.Equal(t, domain.RentalRequestStatusApproved, rr.Status)
		assert.Equal(t, int32(30000), rr.TotalCents)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM rental_requests WHERE id = \\$1").
			WithArgs(int32(99)).
			WillReturnRows(sqlmock.NewRows(rentalCols))

		rr, err := repo.GetByID(ctx, 99)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.Nil(t, rr)
	})
}

func TestRentalRequestRepository_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewRentalRequestRepository(db)
	ctx := context.Background()

	rr := &domain.RentalRequest{
		ID:           11,
		Status:       domain.RentalRequestStatusRejected,
		DecisionNote: "Chair spoken for that week",
	}

	mock.ExpectExec("UPDATE rental_requests SET").
		WithArgs(rr.Status, rr.DecisionNote, sqlmock.AnyArg(), rr.ID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.Update(ctx, rr)
	assert.NoError(t, err)
}

func TestRentalRequestRepository_RollQueries(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewRentalRequestRepository(db)
	ctx := context.Background()
	now := time.Now()

	t.Run("ListApprovedStartingOn", func(t *testing.T) {
		rows := sqlmock.NewRows(rentalCols).
			AddRow(11, 4, 2, 3, 9, "2026-09-01", "2026-09-07",
				5000, 30000, 100000, 30000, "APPROVED", "", "", now, now)

		mock.ExpectQuery("SELECT (.+) FROM rental_requests WHERE status = 'APPROVED' AND start_date <= \\$1").
			WithArgs("2026-09-01").
			WillReturnRows(rows)

		reqs, err := repo.ListApprovedStartingOn(ctx, "2026-09-01")
		assert.NoError(t, err)
		assert.Len(t, reqs, 1)
	})

	t.Run("ListPendingStartingBefore", func(t *testing.T) {
		rows := sqlmock.NewRows(rentalCols).
			AddRow(12, 4, 2, 3, 9, "2026-08-20", "2026-09-20",
				5000, 30000, 100000, 155000, "PENDING", "", "", now, now)

		mock.ExpectQuery("SELECT (.+) FROM rental_requests WHERE status = 'PENDING' AND start_date < \\$1").
			WithArgs("2026-08-26").
			WillReturnRows(rows)

		reqs, err := repo.ListPendingStartingBefore(ctx, "2026-08-26")
		assert.NoError(t, err)
		assert.Len(t, reqs, 1)
		assert.Equal(t, domain.RentalRequestStatusPending, reqs[0].Status)
	})

	t.Run("ListActiveEndedBefore", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM rental_requests WHERE status = 'ACTIVE' AND end_date < \\$1").
			WithArgs("2026-10-01").
			WillReturnRows(sqlmock.NewRows(rentalCols))

		reqs, err := repo.ListActiveEndedBefore(ctx, "2026-10-01")
		assert.NoError(t, err)
		assert.Empty(t, reqs)
	})
}

package postgres

import (
	"database/sql"

	"github.com/LegoGigaBrain/vlossom-protocol-sub007/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.BookingRepository
	repository.PropertyRepository
	repository.RentalRequestRepository
	repository.LedgerRepository
	repository.FavoriteRepository
	repository.NotificationRepository
	repository.HairHealthRepository
	repository.LearningRepository
	repository.StylistContextRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                       db,
		UserRepository:           NewUserRepository(db),
		BookingRepository:        NewBookingRepository(db),
		PropertyRepository:       NewPropertyRepository(db),
		RentalRequestRepository:  NewRentalRequestRepository(db),
		LedgerRepository:         NewLedgerRepository(db),
		FavoriteRepository:       NewFavoriteRepository(db),
		NotificationRepository:   NewNotificationRepository(db),
		HairHealthRepository:     NewHairHealthRepository(db),
		LearningRepository:       NewLearningRepository(db),
		StylistContextRepository: NewStylistContextRepository(db),
	}
}

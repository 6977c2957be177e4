package service

import (
	"context"

	"github.com/LegoGigaBrain/vlossom-protocol-sub007/internal/domain"
	"github.com/LegoGigaBrain/vlossom-protocol-sub007/internal/repository"
)

type favoriteService struct {
	favRepo  repository.FavoriteRepository
	userRepo repository.UserRepository
	propRepo repository.PropertyRepository
}

func NewFavoriteService(favRepo repository.FavoriteRepository, userRepo repository.UserRepository, propRepo repository.PropertyRepository) FavoriteService {
	return &favoriteService{favRepo: favRepo, userRepo: userRepo, propRepo: propRepo}
}

func (s *favoriteService) Add(ctx context.Context, userID int32, kind domain.FavoriteKind, targetID int32) (*domain.Favorite, error) {
	// Validate the target exists before persisting the reference.
	switch kind {
	case domain.FavoriteKindStylist:
		u, err := s.userRepo.GetByID(ctx, targetID)
		if err != nil {
			return nil, err
		}
		if u.Role != domain.UserRoleStylist {
			return nil, domain.ErrNotFound
		}
	case domain.FavoriteKindProperty:
		if _, err := s.propRepo.GetByID(ctx, targetID); err != nil {
			return nil, err
		}
	default:
		return nil, domain.ErrInvalidStatus
	}

	exists, err := s.favRepo.Exists(ctx, userID, kind, targetID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrAlreadyFavorite
	}

	f := &domain.Favorite{UserID: userID, Kind: kind, TargetID: targetID}
	if err := s.favRepo.Create(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *favoriteService) Remove(ctx context.Context, userID int32, kind domain.FavoriteKind, targetID int32) error {
	return s.favRepo.Delete(ctx, userID, kind, targetID)
}

func (s *favoriteService) List(ctx context.Context, userID int32) ([]domain.Favorite, error) {
	return s.favRepo.ListByUser(ctx, userID)
}

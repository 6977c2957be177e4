package service

import (
	"context"

	"github.com/LegoGigaBrain/vlossom-protocol-sub007/internal/domain"
	"github.com/LegoGigaBrain/vlossom-protocol-sub007/internal/repository"
)

type hairHealthService struct {
	repo repository.HairHealthRepository
}

func NewHairHealthService(repo repository.HairHealthRepository) HairHealthService {
	return &hairHealthService{repo: repo}
}

func (s *hairHealthService) GetProfile(ctx context.Context, userID int32) (*domain.HairHealthProfile, error) {
	return s.repo.GetByUser(ctx, userID)
}

func (s *hairHealthService) SaveProfile(ctx context.Context, userID int32, p *domain.HairHealthProfile) error {
	p.UserID = userID
	return s.repo.Upsert(ctx, p)
}

type learningService struct {
	repo repository.LearningRepository
}

func NewLearningService(repo repository.LearningRepository) LearningService {
	return &learningService{repo: repo}
}

func (s *learningService) List(ctx context.Context, topic string, page, pageSize int32) ([]domain.LearningResource, int32, error) {
	return s.repo.List(ctx, topic, page, pageSize)
}

func (s *learningService) Get(ctx context.Context, id int32) (*domain.LearningResource, error) {
	return s.repo.GetByID(ctx, id)
}

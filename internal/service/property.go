package service

import (
	"context"

	"github.com/LegoGigaBrain/vlossom-protocol-sub007/internal/domain"
	"github.com/LegoGigaBrain/vlossom-protocol-sub007/internal/repository"
)

type propertyService struct {
	propRepo repository.PropertyRepository
}

func NewPropertyService(propRepo repository.PropertyRepository) PropertyService {
	return &propertyService{propRepo: propRepo}
}

func (s *propertyService) Create(ctx context.Context, ownerID int32, p *domain.Property) error {
	p.OwnerID = ownerID
	if p.Amenities == nil {
		p.Amenities = []string{}
	}
	return s.propRepo.Create(ctx, p)
}

func (s *propertyService) Get(ctx context.Context, id int32) (*domain.Property, error) {
	p, err := s.propRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	chairs, err := s.propRepo.ListChairs(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Chairs = chairs
	return p, nil
}

func (s *propertyService) Update(ctx context.Context, ownerID int32, p *domain.Property) error {
	existing, err := s.propRepo.GetByID(ctx, p.ID)
	if err != nil {
		return err
	}
	if existing.OwnerID != ownerID {
		return domain.ErrForbidden
	}
	p.OwnerID = ownerID
	return s.propRepo.Update(ctx, p)
}

func (s *propertyService) Delete(ctx context.Context, ownerID, id int32) error {
	existing, err := s.propRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.OwnerID != ownerID {
		return domain.ErrForbidden
	}
	return s.propRepo.Delete(ctx, id)
}

func (s *propertyService) ListMine(ctx context.Context, ownerID int32, page, pageSize int32) ([]domain.Property, int32, error) {
	return s.propRepo.ListByOwner(ctx, ownerID, page, pageSize)
}

func (s *propertyService) Search(ctx context.Context, metro string, page, pageSize int32) ([]domain.Property, int32, error) {
	if metro == "" {
		metro = "%"
	}
	return s.propRepo.Search(ctx, metro, page, pageSize)
}

func (s *propertyService) AddChair(ctx context.Context, ownerID int32, c *domain.Chair) error {
	prop, err := s.propRepo.GetByID(ctx, c.PropertyID)
	if err != nil {
		return err
	}
	if prop.OwnerID != ownerID {
		return domain.ErrForbidden
	}
	if c.ApprovalMode == "" {
		c.ApprovalMode = domain.ApprovalModeManual
	}
	if c.Status == "" {
		c.Status = domain.ChairStatusAvailable
	}
	return s.propRepo.CreateChair(ctx, c)
}

func (s *propertyService) UpdateChair(ctx context.Context, ownerID int32, c *domain.Chair) error {
	existing, err := s.propRepo.GetChairByID(ctx, c.ID)
	if err != nil {
		return err
	}
	prop, err := s.propRepo.GetByID(ctx, existing.PropertyID)
	if err != nil {
		return err
	}
	if prop.OwnerID != ownerID {
		return domain.ErrForbidden
	}
	c.PropertyID = existing.PropertyID
	return s.propRepo.UpdateChair(ctx, c)
}

func (s *propertyService) ListChairs(ctx context.Context, propertyID int32) ([]domain.Chair, error) {
	return s.propRepo.ListChairs(ctx, propertyID)
}

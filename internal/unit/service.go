package unit

import (
	"context"
	"strings"

	"github.com/nekogravitycat/stay-booking-backend/internal/property"
)

type CreateRequest struct {
	PropertyID string
	Name       string
	Capacity   int
	BasePrice  int64
}

type UpdateRequest struct {
	Name      *string
	Capacity  *int
	BasePrice *int64
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Unit, error)
	GetByID(ctx context.Context, id string) (*Unit, error)
	List(ctx context.Context, filter Filter) ([]*Unit, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Unit, error)
	Delete(ctx context.Context, id string) error

	// IsOwner reports whether the user owns the property the unit
	// belongs to.
	IsOwner(ctx context.Context, unitID, userID string) (bool, error)
}

type service struct {
	repo        Repository
	propService property.Service
}

func NewService(repo Repository, propService property.Service) Service {
	return &service{repo: repo, propService: propService}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Unit, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrEmptyName
	}
	if req.PropertyID == "" {
		return nil, ErrInvalidProperty
	}
	if req.Capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	if req.BasePrice <= 0 {
		return nil, ErrInvalidBasePrice
	}

	// Validation: Check if Property exists
	if _, err := s.propService.GetByID(ctx, req.PropertyID); err != nil {
		return nil, ErrInvalidProperty
	}

	u := &Unit{
		PropertyID: req.PropertyID,
		Name:       req.Name,
		Capacity:   req.Capacity,
		BasePrice:  req.BasePrice,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Unit, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Unit, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Unit, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrEmptyName
		}
		u.Name = *req.Name
	}
	if req.Capacity != nil {
		if *req.Capacity <= 0 {
			return nil, ErrInvalidCapacity
		}
		u.Capacity = *req.Capacity
	}
	if req.BasePrice != nil {
		if *req.BasePrice <= 0 {
			return nil, ErrInvalidBasePrice
		}
		u.BasePrice = *req.BasePrice
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) IsOwner(ctx context.Context, unitID, userID string) (bool, error) {
	u, err := s.repo.GetByID(ctx, unitID)
	if err != nil {
		return false, err
	}
	return s.propService.IsOwner(ctx, u.PropertyID, userID)
}

package property

import (
	"context"
	"strings"
	"time"

	"github.com/nekogravitycat/stay-booking-backend/internal/user"
)

// CreateRequest carries data to create a property.
type CreateRequest struct {
	OwnerID     string
	Name        string
	Address     string
	Description string
	Timezone    string
}

// UpdateRequest carries data for partial updates.
type UpdateRequest struct {
	Name        *string
	Address     *string
	Description *string
	Timezone    *string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Property, error)
	GetByID(ctx context.Context, id string) (*Property, error)
	List(ctx context.Context, filter Filter) ([]*Property, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Property, error)
	Delete(ctx context.Context, id string) error

	// IsOwner reports whether the user owns the property. Callers use it
	// to gate unit, rate and availability mutations down the chain.
	IsOwner(ctx context.Context, propertyID, userID string) (bool, error)
}

type service struct {
	repo        Repository
	userService user.Service
}

func NewService(repo Repository, userService user.Service) Service {
	return &service{repo: repo, userService: userService}
}

func validateTimezone(name string) error {
	if name == "" {
		return nil
	}
	if _, err := time.LoadLocation(name); err != nil {
		return ErrInvalidTimezone
	}
	return nil
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Property, error) {
	if req.OwnerID == "" {
		return nil, ErrOwnerRequired
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}
	if err := validateTimezone(req.Timezone); err != nil {
		return nil, err
	}

	// Verify that the owner exists.
	if _, err := s.userService.GetByID(ctx, req.OwnerID); err != nil {
		return nil, ErrOwnerNotFound
	}

	p := &Property{
		OwnerID:     req.OwnerID,
		Name:        req.Name,
		Address:     req.Address,
		Description: req.Description,
		Timezone:    req.Timezone,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Property, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Property, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Property, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrNameRequired
		}
		p.Name = *req.Name
	}
	if req.Address != nil {
		p.Address = *req.Address
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Timezone != nil {
		if err := validateTimezone(*req.Timezone); err != nil {
			return nil, err
		}
		p.Timezone = *req.Timezone
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) IsOwner(ctx context.Context, propertyID, userID string) (bool, error) {
	p, err := s.repo.GetByID(ctx, propertyID)
	if err != nil {
		return false, err
	}
	return p.OwnerID == userID, nil
}

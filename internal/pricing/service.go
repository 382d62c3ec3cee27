package pricing

import (
	"context"

	"github.com/nekogravitycat/stay-booking-backend/internal/pkg/calendar"
)

// CreateRateRequest carries data to create a peak rate.
type CreateRateRequest struct {
	UnitID      string
	Range       calendar.Range
	Type        RateType
	Value       int64
	Description string
}

type Service interface {
	GetRuleSet(ctx context.Context, unitID string) (*RuleSet, error)
	ListRates(ctx context.Context, unitID string) ([]PeakRate, error)
	GetRate(ctx context.Context, rateID string) (*PeakRate, error)
	CreateRate(ctx context.Context, req CreateRateRequest) (*PeakRate, error)
	UpdateRate(ctx context.Context, rateID string, patch RatePatch) (*PeakRate, error)
	DeleteRate(ctx context.Context, rateID string) error

	// ResolveRange prices every night of [Start, End) against the latest
	// committed rule set, for calendar views and quotes.
	ResolveRange(ctx context.Context, unitID string, r calendar.Range) (*StayPrice, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetRuleSet(ctx context.Context, unitID string) (*RuleSet, error) {
	return s.repo.GetRuleSet(ctx, unitID)
}

func (s *service) ListRates(ctx context.Context, unitID string) ([]PeakRate, error) {
	rs, err := s.repo.GetRuleSet(ctx, unitID)
	if err != nil {
		return nil, err
	}
	return rs.Rates, nil
}

func (s *service) GetRate(ctx context.Context, rateID string) (*PeakRate, error) {
	return s.repo.GetRate(ctx, rateID)
}

func (s *service) CreateRate(ctx context.Context, req CreateRateRequest) (*PeakRate, error) {
	rate := &PeakRate{
		UnitID:      req.UnitID,
		Range:       req.Range,
		Type:        req.Type,
		Value:       req.Value,
		Description: req.Description,
	}
	if err := ValidateRate(*rate); err != nil {
		return nil, err
	}

	// The repository re-validates overlap against the committed rule set
	// under the unit lock before inserting.
	if err := s.repo.CreateRate(ctx, rate); err != nil {
		return nil, err
	}
	return rate, nil
}

func (s *service) UpdateRate(ctx context.Context, rateID string, patch RatePatch) (*PeakRate, error) {
	return s.repo.UpdateRate(ctx, rateID, patch)
}

func (s *service) DeleteRate(ctx context.Context, rateID string) error {
	return s.repo.DeleteRate(ctx, rateID)
}

func (s *service) ResolveRange(ctx context.Context, unitID string, r calendar.Range) (*StayPrice, error) {
	rs, err := s.repo.GetRuleSet(ctx, unitID)
	if err != nil {
		return nil, err
	}

	stay, err := ResolveRangePrice(*rs, r)
	if err != nil {
		return nil, err
	}
	return &stay, nil
}

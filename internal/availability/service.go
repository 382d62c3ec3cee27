package availability

import (
	"context"

	"github.com/nekogravitycat/stay-booking-backend/internal/pkg/calendar"
)

// WriteRequest carries one override write.
type WriteRequest struct {
	Date        calendar.Date
	IsAvailable bool
}

type Service interface {
	// GetIndex loads the committed override snapshot for a range.
	GetIndex(ctx context.Context, unitID string, r calendar.Range) (Index, error)

	// Resolve derives the availability verdict for every night of
	// [Start, End) from the committed snapshot.
	Resolve(ctx context.Context, unitID string, r calendar.Range) (*RangeAvailability, error)

	// Write applies a batch of per-date overrides, last write wins.
	Write(ctx context.Context, unitID string, writes []WriteRequest) error

	// WriteRange sets one flag across every date of [Start, End).
	WriteRange(ctx context.Context, unitID string, r calendar.Range, isAvailable bool) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetIndex(ctx context.Context, unitID string, r calendar.Range) (Index, error) {
	return s.repo.GetIndex(ctx, unitID, r)
}

func (s *service) Resolve(ctx context.Context, unitID string, r calendar.Range) (*RangeAvailability, error) {
	idx, err := s.repo.GetIndex(ctx, unitID, r)
	if err != nil {
		return nil, err
	}
	result := ResolveRange(idx, r)
	return &result, nil
}

func (s *service) Write(ctx context.Context, unitID string, writes []WriteRequest) error {
	overrides := make([]Override, len(writes))
	for i, w := range writes {
		overrides[i] = Override{Date: w.Date, IsAvailable: w.IsAvailable}
	}
	return s.repo.Write(ctx, unitID, overrides)
}

func (s *service) WriteRange(ctx context.Context, unitID string, r calendar.Range, isAvailable bool) error {
	writes := make([]Override, 0, r.Nights())
	for d := r.Start; d.Before(r.End); d = d.AddDays(1) {
		writes = append(writes, Override{Date: d, IsAvailable: isAvailable})
	}
	return s.repo.Write(ctx, unitID, writes)
}

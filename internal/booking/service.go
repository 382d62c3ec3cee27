package booking

import (
	"context"
	"errors"

	"github.com/nekogravitycat/stay-booking-backend/internal/availability"
	"github.com/nekogravitycat/stay-booking-backend/internal/pkg/calendar"
	"github.com/nekogravitycat/stay-booking-backend/internal/pricing"
	"github.com/nekogravitycat/stay-booking-backend/internal/unit"
	"github.com/nekogravitycat/stay-booking-backend/internal/user"
)

// CreateBookingRequest carries data to create a booking.
type CreateBookingRequest struct {
	UnitID   string
	UserID   string
	CheckIn  calendar.Date
	CheckOut calendar.Date
}

// DatePrice is one calendar cell: the resolved nightly price together
// with the availability verdict for that date.
type DatePrice struct {
	Date        calendar.Date
	Price       int64
	IsPeak      bool
	IsAvailable bool
}

type Service interface {
	// Quote validates a stay against the current snapshots and returns
	// the nightly breakdown without committing anything.
	Quote(ctx context.Context, unitID string, r calendar.Range) (*Quote, error)

	// Calendar merges per-date prices and availability for range views.
	Calendar(ctx context.Context, unitID string, r calendar.Range) ([]DatePrice, error)

	Create(ctx context.Context, req CreateBookingRequest) (*Booking, error)
	GetByID(ctx context.Context, id, requesterID string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	Cancel(ctx context.Context, id, requesterID string) (*Booking, error)
}

type service struct {
	repo        Repository
	pricingSvc  pricing.Service
	availSvc    availability.Service
	unitService unit.Service
	userService user.Service
}

func NewService(
	repo Repository,
	pricingSvc pricing.Service,
	availSvc availability.Service,
	unitService unit.Service,
	userService user.Service,
) Service {
	return &service{
		repo:        repo,
		pricingSvc:  pricingSvc,
		availSvc:    availSvc,
		unitService: unitService,
		userService: userService,
	}
}

// snapshot loads the pricing and availability state a validation runs
// against. Unit-not-found surfaces as the booking module's own error.
func (s *service) snapshot(ctx context.Context, unitID string, r calendar.Range) (*pricing.RuleSet, availability.Index, error) {
	rs, err := s.pricingSvc.GetRuleSet(ctx, unitID)
	if err != nil {
		if errors.Is(err, pricing.ErrUnitNotFound) {
			return nil, nil, ErrUnitNotFound
		}
		return nil, nil, err
	}

	idx, err := s.availSvc.GetIndex(ctx, unitID, r)
	if err != nil {
		if errors.Is(err, availability.ErrUnitNotFound) {
			return nil, nil, ErrUnitNotFound
		}
		return nil, nil, err
	}

	return rs, idx, nil
}

func (s *service) Quote(ctx context.Context, unitID string, r calendar.Range) (*Quote, error) {
	rs, idx, err := s.snapshot(ctx, unitID, r)
	if err != nil {
		return nil, err
	}
	return Validate(*rs, idx, r)
}

func (s *service) Calendar(ctx context.Context, unitID string, r calendar.Range) ([]DatePrice, error) {
	rs, idx, err := s.snapshot(ctx, unitID, r)
	if err != nil {
		return nil, err
	}

	cells := make([]DatePrice, 0, r.Nights())
	for d := r.Start; d.Before(r.End); d = d.AddDays(1) {
		resolved, err := pricing.ResolveDatePrice(*rs, d)
		if err != nil {
			return nil, err
		}
		cells = append(cells, DatePrice{
			Date:        d,
			Price:       resolved.FinalPrice,
			IsPeak:      resolved.AppliedRate != nil,
			IsAvailable: availability.ResolveDate(idx, d),
		})
	}
	return cells, nil
}

func (s *service) Create(ctx context.Context, req CreateBookingRequest) (*Booking, error) {
	r, err := calendar.NewRange(req.CheckIn, req.CheckOut)
	if err != nil {
		return nil, ErrInvalidRange
	}
	if req.CheckIn.Before(calendar.Today()) {
		return nil, ErrCheckInPast
	}

	quote, err := s.Quote(ctx, req.UnitID, r)
	if err != nil {
		return nil, err
	}

	b := &Booking{
		UnitID:     req.UnitID,
		UserID:     req.UserID,
		CheckIn:    req.CheckIn,
		CheckOut:   req.CheckOut,
		TotalPrice: quote.Total,
		Status:     StatusConfirmed,
	}

	// The repository re-checks availability and booking overlap under
	// the unit lock, so a stale quote cannot double-book. TotalPrice is
	// deliberately NOT recomputed there: the guest books at the price
	// quoted in this request, and a rate write racing the commit only
	// affects later stays.
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, b.ID)
}

func (s *service) GetByID(ctx context.Context, id, requesterID string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	ok, err := s.canAccess(ctx, b, requesterID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrPermissionDenied
	}
	return b, nil
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Cancel(ctx context.Context, id, requesterID string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	ok, err := s.canAccess(ctx, b, requesterID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrPermissionDenied
	}
	if b.Status == StatusCancelled {
		return nil, ErrAlreadyCancelled
	}

	return s.repo.UpdateStatus(ctx, id, StatusCancelled)
}

// canAccess allows the guest who booked, the owner of the unit's
// property, and system admins.
func (s *service) canAccess(ctx context.Context, b *Booking, requesterID string) (bool, error) {
	if b.UserID == requesterID {
		return true, nil
	}

	u, err := s.userService.GetByID(ctx, requesterID)
	if err == nil && u.IsSystemAdmin {
		return true, nil
	}

	isOwner, err := s.unitService.IsOwner(ctx, b.UnitID, requesterID)
	if err != nil {
		return false, err
	}
	return isOwner, nil
}

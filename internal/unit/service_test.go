package unit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/stay-booking-backend/internal/property"
)

type stubRepository struct {
	units map[string]*Unit
}

func (r *stubRepository) Create(ctx context.Context, u *Unit) error {
	u.ID = "u-new"
	r.units[u.ID] = u
	return nil
}

func (r *stubRepository) GetByID(ctx context.Context, id string) (*Unit, error) {
	u, ok := r.units[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *stubRepository) List(ctx context.Context, filter Filter) ([]*Unit, int, error) {
	return nil, 0, nil
}

func (r *stubRepository) Update(ctx context.Context, u *Unit) error {
	r.units[u.ID] = u
	return nil
}

func (r *stubRepository) Delete(ctx context.Context, id string) error {
	delete(r.units, id)
	return nil
}

// stubPropertyService resolves ownership from a fixed property→owner map.
type stubPropertyService struct {
	owners map[string]string
}

func (s *stubPropertyService) Create(ctx context.Context, req property.CreateRequest) (*property.Property, error) {
	return nil, nil
}

func (s *stubPropertyService) GetByID(ctx context.Context, id string) (*property.Property, error) {
	owner, ok := s.owners[id]
	if !ok {
		return nil, property.ErrNotFound
	}
	return &property.Property{ID: id, OwnerID: owner}, nil
}

func (s *stubPropertyService) List(ctx context.Context, filter property.Filter) ([]*property.Property, int, error) {
	return nil, 0, nil
}

func (s *stubPropertyService) Update(ctx context.Context, id string, req property.UpdateRequest) (*property.Property, error) {
	return nil, nil
}

func (s *stubPropertyService) Delete(ctx context.Context, id string) error {
	return nil
}

func (s *stubPropertyService) IsOwner(ctx context.Context, propertyID, userID string) (bool, error) {
	owner, ok := s.owners[propertyID]
	if !ok {
		return false, property.ErrNotFound
	}
	return owner == userID, nil
}

func newTestService(units map[string]*Unit, owners map[string]string) Service {
	return NewService(
		&stubRepository{units: units},
		&stubPropertyService{owners: owners},
	)
}

func TestServiceIsOwner(t *testing.T) {
	svc := newTestService(map[string]*Unit{
		"u1": {ID: "u1", PropertyID: "p1", Name: "Loft", Capacity: 2, BasePrice: 500000},
	}, map[string]string{
		"p1": "owner-1",
	})

	tests := []struct {
		name    string
		unitID  string
		userID  string
		want    bool
		wantErr error
	}{
		{name: "Ownership resolves through the unit's property", unitID: "u1", userID: "owner-1", want: true},
		{name: "Different user is not owner", unitID: "u1", userID: "guest-1", want: false},
		{name: "Unknown unit", unitID: "missing", userID: "owner-1", wantErr: ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.IsOwner(context.Background(), tt.unitID, tt.userID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestServiceCreateValidation(t *testing.T) {
	svc := newTestService(map[string]*Unit{}, map[string]string{
		"p1": "owner-1",
	})

	tests := []struct {
		name    string
		req     CreateRequest
		wantErr error
	}{
		{
			name:    "Blank name",
			req:     CreateRequest{PropertyID: "p1", Name: "  ", Capacity: 2, BasePrice: 500000},
			wantErr: ErrEmptyName,
		},
		{
			name:    "Missing property",
			req:     CreateRequest{Name: "Loft", Capacity: 2, BasePrice: 500000},
			wantErr: ErrInvalidProperty,
		},
		{
			name:    "Non-positive capacity",
			req:     CreateRequest{PropertyID: "p1", Name: "Loft", Capacity: 0, BasePrice: 500000},
			wantErr: ErrInvalidCapacity,
		},
		{
			name:    "Non-positive base price",
			req:     CreateRequest{PropertyID: "p1", Name: "Loft", Capacity: 2, BasePrice: 0},
			wantErr: ErrInvalidBasePrice,
		},
		{
			name:    "Property does not exist",
			req:     CreateRequest{PropertyID: "ghost", Name: "Loft", Capacity: 2, BasePrice: 500000},
			wantErr: ErrInvalidProperty,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("Valid request creates", func(t *testing.T) {
		u, err := svc.Create(context.Background(), CreateRequest{
			PropertyID: "p1",
			Name:       "Loft",
			Capacity:   2,
			BasePrice:  500000,
		})
		require.NoError(t, err)
		assert.Equal(t, "p1", u.PropertyID)
	})
}

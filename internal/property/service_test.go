package property

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/stay-booking-backend/internal/user"
)

type stubRepository struct {
	properties map[string]*Property
}

func (r *stubRepository) Create(ctx context.Context, p *Property) error {
	p.ID = "p-new"
	r.properties[p.ID] = p
	return nil
}

func (r *stubRepository) GetByID(ctx context.Context, id string) (*Property, error) {
	p, ok := r.properties[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *stubRepository) List(ctx context.Context, filter Filter) ([]*Property, int, error) {
	return nil, 0, nil
}

func (r *stubRepository) Update(ctx context.Context, p *Property) error {
	r.properties[p.ID] = p
	return nil
}

func (r *stubRepository) Delete(ctx context.Context, id string) error {
	delete(r.properties, id)
	return nil
}

type stubUserService struct {
	users map[string]*user.User
}

func (s *stubUserService) Register(ctx context.Context, email, password, displayName string) (*user.User, error) {
	return nil, nil
}

func (s *stubUserService) Login(ctx context.Context, email, password string) (*user.User, error) {
	return nil, nil
}

func (s *stubUserService) GetByID(ctx context.Context, id string) (*user.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	return u, nil
}

func newTestService(properties map[string]*Property, users map[string]*user.User) Service {
	return NewService(
		&stubRepository{properties: properties},
		&stubUserService{users: users},
	)
}

func TestServiceIsOwner(t *testing.T) {
	svc := newTestService(map[string]*Property{
		"p1": {ID: "p1", OwnerID: "owner-1", Name: "Seaside Flat"},
	}, nil)

	tests := []struct {
		name       string
		propertyID string
		userID     string
		want       bool
		wantErr    error
	}{
		{name: "Owner matches", propertyID: "p1", userID: "owner-1", want: true},
		{name: "Different user is not owner", propertyID: "p1", userID: "guest-1", want: false},
		{name: "Unknown property", propertyID: "missing", userID: "owner-1", wantErr: ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.IsOwner(context.Background(), tt.propertyID, tt.userID)
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
	svc := newTestService(map[string]*Property{}, map[string]*user.User{
		"owner-1": {ID: "owner-1", Email: "owner@example.com"},
	})

	tests := []struct {
		name    string
		req     CreateRequest
		wantErr error
	}{
		{
			name:    "Missing owner",
			req:     CreateRequest{Name: "Seaside Flat"},
			wantErr: ErrOwnerRequired,
		},
		{
			name:    "Blank name",
			req:     CreateRequest{OwnerID: "owner-1", Name: "   "},
			wantErr: ErrNameRequired,
		},
		{
			name:    "Bad timezone name",
			req:     CreateRequest{OwnerID: "owner-1", Name: "Seaside Flat", Timezone: "Mars/Olympus"},
			wantErr: ErrInvalidTimezone,
		},
		{
			name:    "Owner does not exist",
			req:     CreateRequest{OwnerID: "nobody", Name: "Seaside Flat"},
			wantErr: ErrOwnerNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("Valid request creates", func(t *testing.T) {
		p, err := svc.Create(context.Background(), CreateRequest{
			OwnerID:  "owner-1",
			Name:     "Seaside Flat",
			Timezone: "Europe/Lisbon",
		})
		require.NoError(t, err)
		assert.Equal(t, "owner-1", p.OwnerID)
	})
}

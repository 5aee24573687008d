package booking

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mobelhaus/storefront/internal/domain/booking"
	"github.com/mobelhaus/storefront/internal/domain/shared"
)

// MockConsultationRepository is a mock implementation of booking.Repository
type MockConsultationRepository struct {
	mock.Mock
}

func (m *MockConsultationRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.Consultation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.Consultation), args.Error(1)
}

func (m *MockConsultationRepository) FindAll(ctx context.Context, filter shared.Filter) ([]booking.Consultation, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]booking.Consultation), args.Error(1)
}

func (m *MockConsultationRepository) Save(ctx context.Context, c *booking.Consultation) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockConsultationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockConsultationRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockConsultationRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]booking.Consultation, error) {
	args := m.Called(ctx, ownerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]booking.Consultation), args.Error(1)
}

func validRequest() RequestConsultationRequest {
	return RequestConsultationRequest{
		CustomerName: "Jonas Weber",
		Email:        "jonas@example.com",
		Topic:        "Living room layout",
		PreferredAt:  time.Now().Add(48 * time.Hour),
	}
}

func TestConsultationService_Request(t *testing.T) {
	t.Run("books and persists a requested consultation", func(t *testing.T) {
		repo := new(MockConsultationRepository)
		service := NewConsultationService(repo, zap.NewNop())

		repo.On("Save", mock.Anything, mock.MatchedBy(func(c *booking.Consultation) bool {
			return c.Status == booking.StatusRequested
		})).Return(nil)

		resp, err := service.Request(context.Background(), nil, validRequest())

		require.NoError(t, err)
		assert.Equal(t, booking.StatusRequested, resp.Status)
		repo.AssertExpectations(t)
	})

	t.Run("invalid request is never persisted", func(t *testing.T) {
		repo := new(MockConsultationRepository)
		service := NewConsultationService(repo, zap.NewNop())

		req := validRequest()
		req.PreferredAt = time.Now().Add(-time.Hour)

		_, err := service.Request(context.Background(), nil, req)

		require.Error(t, err)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestConsultationService_Transitions(t *testing.T) {
	requested := func(t *testing.T) *booking.Consultation {
		t.Helper()
		c, err := booking.NewConsultation(nil, "Jonas Weber", "jonas@example.com", "",
			"Living room layout", "", time.Now().Add(48*time.Hour))
		require.NoError(t, err)
		return c
	}

	t.Run("confirm persists", func(t *testing.T) {
		repo := new(MockConsultationRepository)
		service := NewConsultationService(repo, zap.NewNop())

		c := requested(t)
		repo.On("FindByID", mock.Anything, c.ID).Return(c, nil)
		repo.On("Save", mock.Anything, c).Return(nil)

		resp, err := service.Confirm(context.Background(), c.ID)

		require.NoError(t, err)
		assert.Equal(t, booking.StatusConfirmed, resp.Status)
	})

	t.Run("invalid transition is not persisted", func(t *testing.T) {
		repo := new(MockConsultationRepository)
		service := NewConsultationService(repo, zap.NewNop())

		c := requested(t)
		repo.On("FindByID", mock.Anything, c.ID).Return(c, nil)

		_, err := service.Complete(context.Background(), c.ID)

		require.Error(t, err)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

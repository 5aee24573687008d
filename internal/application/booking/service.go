package booking

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mobelhaus/storefront/internal/domain/booking"
	"github.com/mobelhaus/storefront/internal/domain/shared"
)

// ConsultationService handles design consultation bookings
type ConsultationService struct {
	repo   booking.Repository
	logger *zap.Logger
}

// NewConsultationService creates a new ConsultationService
func NewConsultationService(repo booking.Repository, logger *zap.Logger) *ConsultationService {
	return &ConsultationService{repo: repo, logger: logger}
}

// Request books a new consultation. ownerID is nil for guests.
func (s *ConsultationService) Request(ctx context.Context, ownerID *uuid.UUID, req RequestConsultationRequest) (*ConsultationResponse, error) {
	c, err := booking.NewConsultation(ownerID, req.CustomerName, req.Email, req.Phone, req.Topic, req.Notes, req.PreferredAt)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Info("consultation requested",
		zap.String("consultation_id", c.ID.String()),
		zap.String("topic", c.Topic))

	response := ToConsultationResponse(c)
	return &response, nil
}

// GetByID retrieves a consultation
func (s *ConsultationService) GetByID(ctx context.Context, id uuid.UUID) (*ConsultationResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToConsultationResponse(c)
	return &response, nil
}

// ListByOwner lists the caller's consultations
func (s *ConsultationService) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]ConsultationResponse, error) {
	consultations, err := s.repo.FindByOwner(ctx, ownerID, shared.DefaultFilter())
	if err != nil {
		return nil, err
	}

	items := make([]ConsultationResponse, 0, len(consultations))
	for i := range consultations {
		items = append(items, ToConsultationResponse(&consultations[i]))
	}
	return items, nil
}

// List lists all consultations (admin)
func (s *ConsultationService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[ConsultationResponse], error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 || filter.PageSize > 100 {
		filter.PageSize = 20
	}

	consultations, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]ConsultationResponse, 0, len(consultations))
	for i := range consultations {
		items = append(items, ToConsultationResponse(&consultations[i]))
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Confirm accepts a requested consultation (admin)
func (s *ConsultationService) Confirm(ctx context.Context, id uuid.UUID) (*ConsultationResponse, error) {
	return s.applyTransition(ctx, id, (*booking.Consultation).Confirm)
}

// Decline rejects a consultation (admin)
func (s *ConsultationService) Decline(ctx context.Context, id uuid.UUID) (*ConsultationResponse, error) {
	return s.applyTransition(ctx, id, (*booking.Consultation).Decline)
}

// Complete marks a consultation as held (admin)
func (s *ConsultationService) Complete(ctx context.Context, id uuid.UUID) (*ConsultationResponse, error) {
	return s.applyTransition(ctx, id, (*booking.Consultation).Complete)
}

func (s *ConsultationService) applyTransition(ctx context.Context, id uuid.UUID, transition func(*booking.Consultation) error) (*ConsultationResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := transition(c); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, c); err != nil {
		return nil, err
	}
	response := ToConsultationResponse(c)
	return &response, nil
}

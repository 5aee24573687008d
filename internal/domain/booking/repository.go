package booking

import (
	"context"

	"github.com/google/uuid"
	"github.com/mobelhaus/storefront/internal/domain/shared"
)

// Repository defines the interface for consultation persistence
type Repository interface {
	shared.Repository[Consultation]

	// FindByOwner lists consultations of an owner, newest first
	FindByOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]Consultation, error)
}

package order

import (
	"context"

	"github.com/google/uuid"
	"github.com/mobelhaus/storefront/internal/domain/shared"
)

// Repository defines the interface for order persistence.
// Save must write the order header and all of its items in one transaction;
// a failure anywhere leaves no trace of the order.
type Repository interface {
	shared.Repository[Order]

	// FindByNumber finds an order by its human-readable number
	FindByNumber(ctx context.Context, number string) (*Order, error)

	// FindByOwner lists orders of an owner, newest first
	FindByOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]Order, error)

	// CountByOwner counts orders of an owner
	CountByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error)
}

package cart

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for cart persistence.
// Implementations must apply Save as a single atomic unit so that a
// concurrent read never observes a partially rewritten item list.
type Repository interface {
	// FindByOwner finds the cart for an owner
	FindByOwner(ctx context.Context, ownerID uuid.UUID) (*Cart, error)

	// Save creates or updates a cart, replacing its stored item list.
	// The clear-and-rewrite of items happens in one transaction with an
	// optimistic version check on the cart row.
	Save(ctx context.Context, cart *Cart) error
}

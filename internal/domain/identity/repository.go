package identity

import (
	"context"

	"github.com/mobelhaus/storefront/internal/domain/shared"
)

// Repository defines the interface for user persistence
type Repository interface {
	shared.Repository[User]

	// FindByEmail finds a user by email (case-insensitive)
	FindByEmail(ctx context.Context, email string) (*User, error)
}

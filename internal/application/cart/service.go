package cart

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/mobelhaus/storefront/internal/domain/cart"
	"github.com/mobelhaus/storefront/internal/domain/shared"
)

// CartService handles cart business operations. Every operation loads the
// owner's cart (creating it on first use), applies a domain mutation, and
// saves it back with the repository's atomic full-replace.
type CartService struct {
	cartRepo cart.Repository
}

// NewCartService creates a new CartService
func NewCartService(cartRepo cart.Repository) *CartService {
	return &CartService{cartRepo: cartRepo}
}

// Get retrieves the owner's cart. A missing cart reads as an empty one;
// nothing is persisted until the first write.
func (s *CartService) Get(ctx context.Context, ownerID uuid.UUID) (*CartResponse, error) {
	c, err := s.loadOrNew(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	response := ToCartResponse(c)
	return &response, nil
}

// Reconcile merges the client-held anonymous cart into the owner's server
// cart. Quantities of products present on both sides are summed; the merged
// cart is persisted and returned as the single source of truth.
func (s *CartService) Reconcile(ctx context.Context, ownerID uuid.UUID, req ReconcileCartRequest) (*CartResponse, error) {
	c, err := s.loadOrNew(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if err := c.Merge(toItemInputs(req.Items)); err != nil {
		return nil, err
	}

	if err := s.cartRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	response := ToCartResponse(c)
	return &response, nil
}

// Save replaces the owner's entire cart with the submitted items
func (s *CartService) Save(ctx context.Context, ownerID uuid.UUID, req SaveCartRequest) (*CartResponse, error) {
	c, err := s.loadOrNew(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if err := c.ReplaceItems(toItemInputs(req.Items)); err != nil {
		return nil, err
	}

	if err := s.cartRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	response := ToCartResponse(c)
	return &response, nil
}

// AddItem adds a product to the owner's cart, summing quantities
func (s *CartService) AddItem(ctx context.Context, ownerID uuid.UUID, req AddItemRequest) (*CartResponse, error) {
	c, err := s.loadOrNew(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if err := c.AddItem(req.ProductID, req.Quantity); err != nil {
		return nil, err
	}

	if err := s.cartRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	response := ToCartResponse(c)
	return &response, nil
}

// UpdateQuantity sets the quantity of a product already in the cart
func (s *CartService) UpdateQuantity(ctx context.Context, ownerID, productID uuid.UUID, req UpdateItemRequest) (*CartResponse, error) {
	c, err := s.cartRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if err := c.UpdateItemQuantity(productID, req.Quantity); err != nil {
		return nil, err
	}

	if err := s.cartRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	response := ToCartResponse(c)
	return &response, nil
}

// RemoveItem removes a product from the cart
func (s *CartService) RemoveItem(ctx context.Context, ownerID, productID uuid.UUID) (*CartResponse, error) {
	c, err := s.cartRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if err := c.RemoveItem(productID); err != nil {
		return nil, err
	}

	if err := s.cartRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	response := ToCartResponse(c)
	return &response, nil
}

// Clear empties the owner's cart. Clearing a cart that was never created
// is a no-op.
func (s *CartService) Clear(ctx context.Context, ownerID uuid.UUID) error {
	c, err := s.cartRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil
		}
		return err
	}

	c.Clear()
	return s.cartRepo.Save(ctx, c)
}

func (s *CartService) loadOrNew(ctx context.Context, ownerID uuid.UUID) (*cart.Cart, error) {
	c, err := s.cartRepo.FindByOwner(ctx, ownerID)
	if err == nil {
		return c, nil
	}
	if errors.Is(err, shared.ErrNotFound) {
		return cart.NewCart(ownerID)
	}
	return nil, err
}

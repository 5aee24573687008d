package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/mobelhaus/storefront/internal/domain/cart"
)

// CartItemInput represents one line of a client-submitted cart
type CartItemInput struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,gt=0"`
}

// ReconcileCartRequest carries the anonymous local cart submitted at login
type ReconcileCartRequest struct {
	Items []CartItemInput `json:"items"`
}

// SaveCartRequest replaces the server cart with the submitted items
type SaveCartRequest struct {
	Items []CartItemInput `json:"items"`
}

// AddItemRequest adds a single product to the cart
type AddItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,gt=0"`
}

// UpdateItemRequest sets the quantity of a product already in the cart
type UpdateItemRequest struct {
	Quantity int `json:"quantity" binding:"required,gt=0"`
}

// CartItemResponse represents one cart line in API responses
type CartItemResponse struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CartResponse represents a cart in API responses
type CartResponse struct {
	ID            uuid.UUID          `json:"id"`
	OwnerID       uuid.UUID          `json:"owner_id"`
	Items         []CartItemResponse `json:"items"`
	TotalQuantity int                `json:"total_quantity"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// ToCartResponse converts a domain Cart to a response DTO
func ToCartResponse(c *cart.Cart) CartResponse {
	items := make([]CartItemResponse, 0, len(c.Items))
	for _, item := range c.Items {
		items = append(items, CartItemResponse{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UpdatedAt: item.UpdatedAt,
		})
	}
	return CartResponse{
		ID:            c.ID,
		OwnerID:       c.OwnerID,
		Items:         items,
		TotalQuantity: c.TotalQuantity(),
		UpdatedAt:     c.UpdatedAt,
	}
}

func toItemInputs(items []CartItemInput) []cart.ItemInput {
	inputs := make([]cart.ItemInput, 0, len(items))
	for _, item := range items {
		inputs = append(inputs, cart.ItemInput{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return inputs
}

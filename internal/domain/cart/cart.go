package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/mobelhaus/storefront/internal/domain/shared"
)

// ItemInput is a (product, quantity) pair supplied by a caller, either from
// the client-held anonymous cart or from a cart mutation request.
type ItemInput struct {
	ProductID uuid.UUID
	Quantity  int
}

// CartItem represents a single product line in a cart.
// Uniqueness key within a cart is ProductID.
type CartItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	CartID    uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID `gorm:"type:uuid;not null"`
	Quantity  int       `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName maps CartItem to the cart_items table
func (CartItem) TableName() string {
	return "cart_items"
}

// Cart is the aggregate root for a customer's shopping cart.
// At most one cart exists per owner; its item list never contains two
// entries with the same product ID.
type Cart struct {
	shared.BaseAggregateRoot
	OwnerID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex"`
	Items   []CartItem `gorm:"foreignKey:CartID"`
}

// TableName maps Cart to the carts table
func (Cart) TableName() string {
	return "carts"
}

// NewCart creates an empty cart for an owner
func NewCart(ownerID uuid.UUID) (*Cart, error) {
	if ownerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OWNER", "Owner ID cannot be empty")
	}
	return &Cart{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OwnerID:           ownerID,
		Items:             make([]CartItem, 0),
	}, nil
}

// NormalizeItems validates a raw item list and collapses duplicate product
// IDs by summing their quantities in encounter order. Order of first
// appearance is preserved.
func NormalizeItems(items []ItemInput) ([]ItemInput, error) {
	merged := make([]ItemInput, 0, len(items))
	index := make(map[uuid.UUID]int, len(items))

	for _, item := range items {
		if item.ProductID == uuid.Nil {
			return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
		}
		if item.Quantity <= 0 {
			return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be a positive integer")
		}
		if pos, ok := index[item.ProductID]; ok {
			merged[pos].Quantity += item.Quantity
			continue
		}
		index[item.ProductID] = len(merged)
		merged = append(merged, item)
	}

	return merged, nil
}

// Merge folds a client-held item list into the cart. Quantities for products
// already in the cart are added, not overwritten; unknown products are
// appended. Duplicate product IDs in the input are summed before merging.
func (c *Cart) Merge(local []ItemInput) error {
	normalized, err := NormalizeItems(local)
	if err != nil {
		return err
	}

	now := time.Now()
	for _, in := range normalized {
		if existing := c.itemIndex(in.ProductID); existing >= 0 {
			c.Items[existing].Quantity += in.Quantity
			c.Items[existing].UpdatedAt = now
			continue
		}
		c.Items = append(c.Items, c.newItem(in, now))
	}
	c.UpdatedAt = now

	return nil
}

// ReplaceItems overwrites the entire item list with the given items.
// This is a full replace, not an incremental patch.
func (c *Cart) ReplaceItems(items []ItemInput) error {
	normalized, err := NormalizeItems(items)
	if err != nil {
		return err
	}

	now := time.Now()
	replaced := make([]CartItem, 0, len(normalized))
	for _, in := range normalized {
		replaced = append(replaced, c.newItem(in, now))
	}
	c.Items = replaced
	c.UpdatedAt = now

	return nil
}

// AddItem adds a product to the cart, summing quantity if already present
func (c *Cart) AddItem(productID uuid.UUID, quantity int) error {
	return c.Merge([]ItemInput{{ProductID: productID, Quantity: quantity}})
}

// UpdateItemQuantity sets the quantity of an existing item
func (c *Cart) UpdateItemQuantity(productID uuid.UUID, quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be a positive integer")
	}
	idx := c.itemIndex(productID)
	if idx < 0 {
		return shared.NewDomainError("ITEM_NOT_FOUND", "Product is not in the cart")
	}

	now := time.Now()
	c.Items[idx].Quantity = quantity
	c.Items[idx].UpdatedAt = now
	c.UpdatedAt = now

	return nil
}

// RemoveItem removes a product from the cart
func (c *Cart) RemoveItem(productID uuid.UUID) error {
	idx := c.itemIndex(productID)
	if idx < 0 {
		return shared.NewDomainError("ITEM_NOT_FOUND", "Product is not in the cart")
	}

	c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
	c.UpdatedAt = time.Now()

	return nil
}

// Clear empties the cart. An empty item list is the cart's "deleted" state;
// the row itself is never removed.
func (c *Cart) Clear() {
	c.Items = make([]CartItem, 0)
	c.UpdatedAt = time.Now()
}

// IsEmpty returns true if the cart has no items
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// ItemCount returns the number of distinct products in the cart
func (c *Cart) ItemCount() int {
	return len(c.Items)
}

// TotalQuantity returns the sum of all item quantities
func (c *Cart) TotalQuantity() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

// GetItemByProduct returns the cart item for a product, or nil
func (c *Cart) GetItemByProduct(productID uuid.UUID) *CartItem {
	if idx := c.itemIndex(productID); idx >= 0 {
		return &c.Items[idx]
	}
	return nil
}

func (c *Cart) itemIndex(productID uuid.UUID) int {
	for idx := range c.Items {
		if c.Items[idx].ProductID == productID {
			return idx
		}
	}
	return -1
}

func (c *Cart) newItem(in ItemInput, now time.Time) CartItem {
	return CartItem{
		ID:        uuid.New(),
		CartID:    c.ID,
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

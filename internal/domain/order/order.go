package order

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mobelhaus/storefront/internal/domain/shared"
	"github.com/mobelhaus/storefront/internal/domain/shared/valueobject"
)

// OrderStatus represents the lifecycle state of an order
type OrderStatus string

const (
	// StatusPending is the state of every freshly placed order
	StatusPending OrderStatus = "pending"
	// StatusCompleted means payment settled and the order is being prepared
	StatusCompleted OrderStatus = "completed"
	// StatusShipped means the order has left the warehouse
	StatusShipped OrderStatus = "shipped"
	// StatusCanceled is terminal
	StatusCanceled OrderStatus = "canceled"
)

// DeliveryLeadTime is the fixed offset used to estimate delivery.
// Furniture lead times do not vary per product yet.
const DeliveryLeadTime = 7 * 24 * time.Hour

// CanTransitionTo checks if a status transition is valid
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	transitions := map[OrderStatus][]OrderStatus{
		StatusPending:   {StatusCompleted, StatusCanceled},
		StatusCompleted: {StatusShipped, StatusCanceled},
		StatusShipped:   {},
		StatusCanceled:  {},
	}
	for _, allowed := range transitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// IsValid returns true for a known status value
func (s OrderStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusShipped, StatusCanceled:
		return true
	}
	return false
}

// OrderItem is a priced line item of an order. UnitPrice is the price at the
// moment of purchase and is never recomputed from the catalog afterwards.
type OrderItem struct {
	ID          uuid.UUID         `gorm:"type:uuid;primary_key"`
	OrderID     uuid.UUID         `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID         `gorm:"type:uuid;not null"`
	ProductName string            `gorm:"not null"`
	Quantity    int               `gorm:"not null"`
	UnitPrice   valueobject.Money `gorm:"type:decimal(12,2)"`
	LineTotal   valueobject.Money `gorm:"type:decimal(12,2)"`
	CreatedAt   time.Time
}

// TableName maps OrderItem to the order_items table
func (OrderItem) TableName() string {
	return "order_items"
}

// NewOrderItem creates a validated order item. The product name is a
// display snapshot and may be empty when the caller does not carry one.
func NewOrderItem(productID uuid.UUID, productName string, quantity int, unitPrice valueobject.Money) (*OrderItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be a positive integer")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	return &OrderItem{
		ID:          uuid.New(),
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		LineTotal:   unitPrice.MultiplyByInt(int64(quantity)),
		CreatedAt:   time.Now(),
	}, nil
}

// Order is the aggregate root for a placed order. OwnerID is nil for guest
// checkouts. An order and its items are always written together.
type Order struct {
	shared.BaseAggregateRoot
	Number            string      `gorm:"uniqueIndex;not null"`
	OwnerID           *uuid.UUID  `gorm:"type:uuid;index"`
	Status            OrderStatus `gorm:"not null;default:'pending'"`
	Items             []OrderItem `gorm:"foreignKey:OrderID"`
	ShippingAddress   valueobject.ShippingAddress `gorm:"type:jsonb"`
	TotalAmount       valueobject.Money           `gorm:"type:decimal(12,2)"`
	PlacedAt          time.Time                   `gorm:"not null"`
	EstimatedDelivery time.Time                   `gorm:"not null"`
	ShippingMethod    string
	PaymentMethod     string
	CanceledAt        *time.Time
	ShippedAt         *time.Time
}

// TableName maps Order to the orders table
func (Order) TableName() string {
	return "orders"
}

// NewOrder places a new order from validated items. The order starts as
// pending, stamped with the placement time, an estimated delivery of
// PlacedAt plus DeliveryLeadTime, and a total summed from the line totals.
func NewOrder(number string, ownerID *uuid.UUID, address valueobject.ShippingAddress, items []*OrderItem) (*Order, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if address.IsEmpty() {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "Shipping address is required")
	}
	if len(items) == 0 {
		return nil, shared.NewDomainError("EMPTY_ORDER", "Order must contain at least one item")
	}
	if ownerID != nil && *ownerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OWNER", "Owner ID cannot be empty")
	}

	o := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Number:            number,
		OwnerID:           ownerID,
		Status:            StatusPending,
		ShippingAddress:   address,
		Items:             make([]OrderItem, 0, len(items)),
	}
	o.PlacedAt = o.CreatedAt
	o.EstimatedDelivery = o.PlacedAt.Add(DeliveryLeadTime)

	total := valueobject.ZeroEUR()
	for _, item := range items {
		item.OrderID = o.ID
		o.Items = append(o.Items, *item)

		sum, err := total.Add(item.LineTotal)
		if err != nil {
			return nil, shared.NewDomainError("CURRENCY_MISMATCH", fmt.Sprintf("Cannot total order: %v", err))
		}
		total = sum
	}
	o.TotalAmount = total

	return o, nil
}

// Complete marks the order as completed (payment settled)
func (o *Order) Complete() error {
	return o.transition(StatusCompleted)
}

// Ship marks the order as shipped
func (o *Order) Ship() error {
	if err := o.transition(StatusShipped); err != nil {
		return err
	}
	now := time.Now()
	o.ShippedAt = &now
	return nil
}

// Cancel cancels the order. Shipped orders cannot be canceled.
func (o *Order) Cancel() error {
	if err := o.transition(StatusCanceled); err != nil {
		return err
	}
	now := time.Now()
	o.CanceledAt = &now
	return nil
}

// IsGuestOrder returns true if the order was placed without an account
func (o *Order) IsGuestOrder() bool {
	return o.OwnerID == nil
}

// ItemCount returns the number of distinct line items
func (o *Order) ItemCount() int {
	return len(o.Items)
}

func (o *Order) transition(target OrderStatus) error {
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATUS_TRANSITION",
			fmt.Sprintf("Cannot transition order from %s to %s", o.Status, target))
	}
	o.Status = target
	o.UpdatedAt = time.Now()
	return nil
}

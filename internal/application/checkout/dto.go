package checkout

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mobelhaus/storefront/internal/domain/order"
	"github.com/mobelhaus/storefront/internal/domain/shared/valueobject"
)

// PlaceOrderItemInput is one line of a checkout submission. PriceAtPurchase
// is the price the client saw at the time of sale; it is frozen into the
// order item and never recomputed from the catalog. ProductName is an
// optional display snapshot.
type PlaceOrderItemInput struct {
	ProductID       uuid.UUID       `json:"product_id" binding:"required"`
	ProductName     string          `json:"product_name"`
	Quantity        int             `json:"quantity" binding:"required,gt=0"`
	PriceAtPurchase decimal.Decimal `json:"price_at_purchase" binding:"required"`
}

// PlaceOrderRequest represents a checkout submission
type PlaceOrderRequest struct {
	ShippingAddress valueobject.ShippingAddressInput `json:"shipping_address" binding:"required"`
	Items           []PlaceOrderItemInput            `json:"items" binding:"required,min=1,dive"`
	ShippingMethod  string                           `json:"shipping_method"`
	PaymentMethod   string                           `json:"payment_method"`
}

// OrderItemResponse represents one order line in API responses
type OrderItemResponse struct {
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	Quantity    int       `json:"quantity"`
	UnitPrice   string    `json:"unit_price"`
	LineTotal   string    `json:"line_total"`
}

// OrderResponse represents a full order in API responses
type OrderResponse struct {
	ID                uuid.UUID                        `json:"id"`
	Number            string                           `json:"number"`
	OwnerID           *uuid.UUID                       `json:"owner_id,omitempty"`
	Status            order.OrderStatus                `json:"status"`
	Items             []OrderItemResponse              `json:"items"`
	ShippingAddress   valueobject.ShippingAddressInput `json:"shipping_address"`
	TotalAmount       string                           `json:"total_amount"`
	Currency          valueobject.Currency             `json:"currency"`
	ShippingMethod    string                           `json:"shipping_method,omitempty"`
	PaymentMethod     string                           `json:"payment_method,omitempty"`
	PlacedAt          time.Time                        `json:"placed_at"`
	EstimatedDelivery time.Time                        `json:"estimated_delivery"`
}

// OrderListItemResponse is the compact order form used in history listings
type OrderListItemResponse struct {
	ID                uuid.UUID         `json:"id"`
	Number            string            `json:"number"`
	Status            order.OrderStatus `json:"status"`
	ItemCount         int               `json:"item_count"`
	TotalAmount       string            `json:"total_amount"`
	PlacedAt          time.Time         `json:"placed_at"`
	EstimatedDelivery time.Time         `json:"estimated_delivery"`
}

// ToOrderResponse converts a domain Order to a response DTO
func ToOrderResponse(o *order.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItemResponse{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice.StringFixed(2),
			LineTotal:   item.LineTotal.StringFixed(2),
		})
	}
	return OrderResponse{
		ID:                o.ID,
		Number:            o.Number,
		OwnerID:           o.OwnerID,
		Status:            o.Status,
		Items:             items,
		ShippingAddress:   o.ShippingAddress.ToInput(),
		TotalAmount:       o.TotalAmount.StringFixed(2),
		Currency:          o.TotalAmount.Currency(),
		ShippingMethod:    o.ShippingMethod,
		PaymentMethod:     o.PaymentMethod,
		PlacedAt:          o.PlacedAt,
		EstimatedDelivery: o.EstimatedDelivery,
	}
}

// ToOrderListItemResponse converts a domain Order to its listing form
func ToOrderListItemResponse(o *order.Order) OrderListItemResponse {
	return OrderListItemResponse{
		ID:                o.ID,
		Number:            o.Number,
		Status:            o.Status,
		ItemCount:         o.ItemCount(),
		TotalAmount:       o.TotalAmount.StringFixed(2),
		PlacedAt:          o.PlacedAt,
		EstimatedDelivery: o.EstimatedDelivery,
	}
}

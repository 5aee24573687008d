package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mobelhaus/storefront/internal/domain/cart"
	"github.com/mobelhaus/storefront/internal/domain/order"
	"github.com/mobelhaus/storefront/internal/domain/shared"
	"github.com/mobelhaus/storefront/internal/domain/shared/valueobject"
)

// CheckoutService handles order placement and order lifecycle operations.
// It deliberately has no catalog dependency: item prices are client-supplied
// snapshots of the price at the time of sale (the catalog informed the client,
// not this service), so placement cannot silently reprice an order.
type CheckoutService struct {
	orderRepo order.Repository
	cartRepo  cart.Repository
	logger    *zap.Logger
}

// NewCheckoutService creates a new CheckoutService
func NewCheckoutService(orderRepo order.Repository, cartRepo cart.Repository, logger *zap.Logger) *CheckoutService {
	return &CheckoutService{
		orderRepo: orderRepo,
		cartRepo:  cartRepo,
		logger:    logger,
	}
}

// PlaceOrder places a new order. The order header and all line items are
// persisted in one transaction; on any failure nothing is stored. A signed-in
// caller's cart is cleared after the order is safely persisted.
func (s *CheckoutService) PlaceOrder(ctx context.Context, ownerID *uuid.UUID, req PlaceOrderRequest) (*OrderResponse, error) {
	address, err := valueobject.NewShippingAddress(req.ShippingAddress)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_ADDRESS", err.Error())
	}
	if len(req.Items) == 0 {
		return nil, shared.NewDomainError("EMPTY_ORDER", "Order must contain at least one item")
	}

	items := make([]*order.OrderItem, 0, len(req.Items))
	for _, line := range req.Items {
		item, err := order.NewOrderItem(line.ProductID, line.ProductName, line.Quantity,
			valueobject.NewMoneyEUR(line.PriceAtPurchase))
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	o, err := order.NewOrder(s.generateOrderNumber(), ownerID, address, items)
	if err != nil {
		return nil, err
	}
	o.ShippingMethod = req.ShippingMethod
	o.PaymentMethod = req.PaymentMethod

	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}

	s.logger.Info("order placed",
		zap.String("order_number", o.Number),
		zap.Int("items", o.ItemCount()),
		zap.String("total", o.TotalAmount.String()),
		zap.Bool("guest", o.IsGuestOrder()))

	if ownerID != nil {
		s.clearCart(ctx, *ownerID)
	}

	response := ToOrderResponse(o)
	return &response, nil
}

// GetByID retrieves an order by ID
func (s *CheckoutService) GetByID(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(o)
	return &response, nil
}

// GetByNumber retrieves an order by its human-readable number
func (s *CheckoutService) GetByNumber(ctx context.Context, number string) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(o)
	return &response, nil
}

// GetOwnOrder retrieves an order and verifies it belongs to the caller
func (s *CheckoutService) GetOwnOrder(ctx context.Context, ownerID, orderID uuid.UUID) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.OwnerID == nil || *o.OwnerID != ownerID {
		return nil, shared.ErrForbidden
	}
	response := ToOrderResponse(o)
	return &response, nil
}

// ListByOwner lists the caller's orders, newest first
func (s *CheckoutService) ListByOwner(ctx context.Context, ownerID uuid.UUID, page, pageSize int) (*shared.Paginated[OrderListItemResponse], error) {
	filter := shared.DefaultFilter()
	if page > 0 {
		filter.Page = page
	}
	if pageSize > 0 && pageSize <= 100 {
		filter.PageSize = pageSize
	}

	orders, err := s.orderRepo.FindByOwner(ctx, ownerID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.orderRepo.CountByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	items := make([]OrderListItemResponse, 0, len(orders))
	for i := range orders {
		items = append(items, ToOrderListItemResponse(&orders[i]))
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// List lists all orders (admin)
func (s *CheckoutService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[OrderListItemResponse], error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 || filter.PageSize > 100 {
		filter.PageSize = 20
	}

	orders, err := s.orderRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.orderRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]OrderListItemResponse, 0, len(orders))
	for i := range orders {
		items = append(items, ToOrderListItemResponse(&orders[i]))
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Complete marks an order as completed (admin)
func (s *CheckoutService) Complete(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	return s.applyTransition(ctx, id, (*order.Order).Complete)
}

// Ship marks an order as shipped (admin)
func (s *CheckoutService) Ship(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	return s.applyTransition(ctx, id, (*order.Order).Ship)
}

// Cancel cancels an order (admin)
func (s *CheckoutService) Cancel(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	return s.applyTransition(ctx, id, (*order.Order).Cancel)
}

func (s *CheckoutService) applyTransition(ctx context.Context, id uuid.UUID, transition func(*order.Order) error) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := transition(o); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}
	response := ToOrderResponse(o)
	return &response, nil
}

// clearCart empties the cart after a successful checkout. The order is
// already safe at this point, so a cart failure is only logged.
func (s *CheckoutService) clearCart(ctx context.Context, ownerID uuid.UUID) {
	c, err := s.cartRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("failed to load cart after checkout", zap.Error(err))
		}
		return
	}
	c.Clear()
	if err := s.cartRepo.Save(ctx, c); err != nil {
		s.logger.Warn("failed to clear cart after checkout", zap.Error(err))
	}
}

func (s *CheckoutService) generateOrderNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
	return fmt.Sprintf("ORD-%s-%s", time.Now().Format("20060102"), suffix)
}

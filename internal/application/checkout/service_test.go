package checkout

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mobelhaus/storefront/internal/domain/cart"
	"github.com/mobelhaus/storefront/internal/domain/order"
	"github.com/mobelhaus/storefront/internal/domain/shared"
	"github.com/mobelhaus/storefront/internal/domain/shared/valueobject"
)

// MockOrderRepository is a mock implementation of order.Repository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]order.Order, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) FindByNumber(ctx context.Context, number string) (*order.Order, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]order.Order, error) {
	args := m.Called(ctx, ownerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderRepository) CountByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(int64), args.Error(1)
}

// MockCartRepository is a mock implementation of cart.Repository
type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) (*cart.Cart, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Cart), args.Error(1)
}

func (m *MockCartRepository) Save(ctx context.Context, c *cart.Cart) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func newService(orderRepo *MockOrderRepository, cartRepo *MockCartRepository) *CheckoutService {
	return NewCheckoutService(orderRepo, cartRepo, zap.NewNop())
}

func validAddress() valueobject.ShippingAddressInput {
	return valueobject.ShippingAddressInput{
		FirstName:  "Greta",
		LastName:   "Larsen",
		Email:      "greta.larsen@example.com",
		Street:     "Birkenweg 12",
		City:       "Hamburg",
		PostalCode: "20095",
		Country:    "DE",
	}
}

func line(productID uuid.UUID, quantity int, price string) PlaceOrderItemInput {
	return PlaceOrderItemInput{
		ProductID:       productID,
		Quantity:        quantity,
		PriceAtPurchase: decimal.RequireFromString(price),
	}
}

func TestCheckoutService_PlaceOrder(t *testing.T) {
	t.Run("places pending order from submitted price snapshots and clears the cart", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		cartRepo := new(MockCartRepository)
		service := newService(orderRepo, cartRepo)

		ownerID := uuid.New()
		tableID := uuid.New()
		sofaID := uuid.New()

		orderRepo.On("Save", mock.Anything, mock.MatchedBy(func(o *order.Order) bool {
			return o.Status == order.StatusPending &&
				o.ItemCount() == 2 &&
				o.TotalAmount.StringFixed(2) == "25.00" &&
				o.EstimatedDelivery.Equal(o.PlacedAt.Add(7*24*time.Hour))
		})).Return(nil)

		ownerCart, err := cart.NewCart(ownerID)
		require.NoError(t, err)
		require.NoError(t, ownerCart.AddItem(tableID, 1))
		cartRepo.On("FindByOwner", mock.Anything, ownerID).Return(ownerCart, nil)
		cartRepo.On("Save", mock.Anything, mock.MatchedBy(func(c *cart.Cart) bool {
			return c.IsEmpty()
		})).Return(nil)

		resp, err := service.PlaceOrder(context.Background(), &ownerID, PlaceOrderRequest{
			ShippingAddress: validAddress(),
			ShippingMethod:  "standard",
			Items: []PlaceOrderItemInput{
				line(tableID, 2, "10.00"),
				line(sofaID, 1, "5.00"),
			},
		})

		require.NoError(t, err)
		assert.Equal(t, order.StatusPending, resp.Status)
		assert.Equal(t, "25.00", resp.TotalAmount)
		assert.Equal(t, "standard", resp.ShippingMethod)
		assert.NotEmpty(t, resp.Number)
		require.Len(t, resp.Items, 2)
		assert.Equal(t, "10.00", resp.Items[0].UnitPrice)
		assert.Equal(t, "20.00", resp.Items[0].LineTotal)
		orderRepo.AssertExpectations(t)
		cartRepo.AssertExpectations(t)
	})

	t.Run("guest checkout never touches the cart", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		cartRepo := new(MockCartRepository)
		service := newService(orderRepo, cartRepo)

		orderRepo.On("Save", mock.Anything, mock.MatchedBy(func(o *order.Order) bool {
			return o.IsGuestOrder()
		})).Return(nil)

		resp, err := service.PlaceOrder(context.Background(), nil, PlaceOrderRequest{
			ShippingAddress: validAddress(),
			Items:           []PlaceOrderItemInput{line(uuid.New(), 1, "189.00")},
		})

		require.NoError(t, err)
		assert.Nil(t, resp.OwnerID)
		cartRepo.AssertNotCalled(t, "FindByOwner", mock.Anything, mock.Anything)
		cartRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("repeated product lines stay separate order items", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		service := newService(orderRepo, new(MockCartRepository))

		productID := uuid.New()
		orderRepo.On("Save", mock.Anything, mock.MatchedBy(func(o *order.Order) bool {
			return o.ItemCount() == 2 && o.TotalAmount.StringFixed(2) == "30.00"
		})).Return(nil)

		resp, err := service.PlaceOrder(context.Background(), nil, PlaceOrderRequest{
			ShippingAddress: validAddress(),
			Items: []PlaceOrderItemInput{
				line(productID, 1, "10.00"),
				line(productID, 2, "10.00"),
			},
		})

		require.NoError(t, err)
		require.Len(t, resp.Items, 2)
	})

	t.Run("rejects empty checkout", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		service := newService(orderRepo, new(MockCartRepository))

		_, err := service.PlaceOrder(context.Background(), nil, PlaceOrderRequest{
			ShippingAddress: validAddress(),
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "EMPTY_ORDER", domainErr.Code)
		orderRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects negative price snapshot", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		service := newService(orderRepo, new(MockCartRepository))

		_, err := service.PlaceOrder(context.Background(), nil, PlaceOrderRequest{
			ShippingAddress: validAddress(),
			Items:           []PlaceOrderItemInput{line(uuid.New(), 1, "-0.01")},
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_PRICE", domainErr.Code)
		orderRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects invalid shipping address before touching storage", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		cartRepo := new(MockCartRepository)
		service := newService(orderRepo, cartRepo)

		addr := validAddress()
		addr.Email = "not-an-email"

		_, err := service.PlaceOrder(context.Background(), nil, PlaceOrderRequest{
			ShippingAddress: addr,
			Items:           []PlaceOrderItemInput{line(uuid.New(), 1, "89.00")},
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_ADDRESS", domainErr.Code)
		orderRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("save failure surfaces and leaves the cart intact", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		cartRepo := new(MockCartRepository)
		service := newService(orderRepo, cartRepo)

		ownerID := uuid.New()
		orderRepo.On("Save", mock.Anything, mock.Anything).Return(errors.New("deadlock detected"))

		_, err := service.PlaceOrder(context.Background(), &ownerID, PlaceOrderRequest{
			ShippingAddress: validAddress(),
			Items:           []PlaceOrderItemInput{line(uuid.New(), 1, "189.00")},
		})

		require.Error(t, err)
		cartRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("missing cart after checkout is not an error", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		cartRepo := new(MockCartRepository)
		service := newService(orderRepo, cartRepo)

		ownerID := uuid.New()
		orderRepo.On("Save", mock.Anything, mock.Anything).Return(nil)
		cartRepo.On("FindByOwner", mock.Anything, ownerID).Return(nil, shared.ErrNotFound)

		_, err := service.PlaceOrder(context.Background(), &ownerID, PlaceOrderRequest{
			ShippingAddress: validAddress(),
			Items:           []PlaceOrderItemInput{line(uuid.New(), 1, "189.00")},
		})

		require.NoError(t, err)
		cartRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestCheckoutService_Lifecycle(t *testing.T) {
	placed := func(t *testing.T) *order.Order {
		t.Helper()
		addr, err := valueobject.NewShippingAddress(validAddress())
		require.NoError(t, err)
		item, err := order.NewOrderItem(uuid.New(), "Chair", 1, valueobject.NewMoneyEURFromFloat(89))
		require.NoError(t, err)
		o, err := order.NewOrder("ORD-20260828-TEST", nil, addr, []*order.OrderItem{item})
		require.NoError(t, err)
		return o
	}

	t.Run("complete persists the transition", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		service := newService(orderRepo, new(MockCartRepository))

		o := placed(t)
		orderRepo.On("FindByID", mock.Anything, o.ID).Return(o, nil)
		orderRepo.On("Save", mock.Anything, o).Return(nil)

		resp, err := service.Complete(context.Background(), o.ID)

		require.NoError(t, err)
		assert.Equal(t, order.StatusCompleted, resp.Status)
	})

	t.Run("invalid transition is not persisted", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		service := newService(orderRepo, new(MockCartRepository))

		o := placed(t)
		orderRepo.On("FindByID", mock.Anything, o.ID).Return(o, nil)

		_, err := service.Ship(context.Background(), o.ID)

		require.Error(t, err)
		orderRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestCheckoutService_GetOwnOrder(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	service := newService(orderRepo, new(MockCartRepository))

	ownerID := uuid.New()
	addr, err := valueobject.NewShippingAddress(validAddress())
	require.NoError(t, err)
	item, err := order.NewOrderItem(uuid.New(), "Chair", 1, valueobject.NewMoneyEURFromFloat(89))
	require.NoError(t, err)
	o, err := order.NewOrder("ORD-20260828-OWN", &ownerID, addr, []*order.OrderItem{item})
	require.NoError(t, err)

	orderRepo.On("FindByID", mock.Anything, o.ID).Return(o, nil)

	t.Run("owner can read their order", func(t *testing.T) {
		resp, err := service.GetOwnOrder(context.Background(), ownerID, o.ID)
		require.NoError(t, err)
		assert.Equal(t, o.Number, resp.Number)
	})

	t.Run("other users are refused", func(t *testing.T) {
		_, err := service.GetOwnOrder(context.Background(), uuid.New(), o.ID)
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})
}

func TestCheckoutService_ListByOwner(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	service := newService(orderRepo, new(MockCartRepository))

	ownerID := uuid.New()
	orderRepo.On("FindByOwner", mock.Anything, ownerID, mock.Anything).Return([]order.Order{}, nil)
	orderRepo.On("CountByOwner", mock.Anything, ownerID).Return(int64(0), nil)

	result, err := service.ListByOwner(context.Background(), ownerID, 1, 20)

	require.NoError(t, err)
	assert.Equal(t, int64(0), result.Total)
	assert.Empty(t, result.Items)
}

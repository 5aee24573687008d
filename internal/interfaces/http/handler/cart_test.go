package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	cartapp "github.com/mobelhaus/storefront/internal/application/cart"
	"github.com/mobelhaus/storefront/internal/domain/cart"
	"github.com/mobelhaus/storefront/internal/domain/shared"
	"github.com/mobelhaus/storefront/internal/interfaces/http/middleware"
)

// MockCartRepository implements cart.Repository for testing
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

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// fakeAuth injects JWT claims the way RequireAuth does after verification
func fakeAuth(userID uuid.UUID, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.JWTUserIDKey, userID.String())
		c.Set(middleware.JWTRoleKey, role)
		c.Next()
	}
}

func setupCartHandler(repo *MockCartRepository, userID uuid.UUID) (*CartHandler, *gin.Engine) {
	handler := NewCartHandler(cartapp.NewCartService(repo), fakeAuth(userID, "customer"))
	router := setupTestRouter()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)
	return handler, router
}

func TestCartHandler_Get_EmptyForNewUser(t *testing.T) {
	repo := new(MockCartRepository)
	userID := uuid.New()
	_, router := setupCartHandler(repo, userID)

	repo.On("FindByOwner", mock.Anything, userID).Return(nil, shared.ErrNotFound)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool                 `json:"success"`
		Data    cartapp.CartResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Empty(t, resp.Data.Items)
	repo.AssertExpectations(t)
}

func TestCartHandler_Reconcile_MergesLocalCart(t *testing.T) {
	repo := new(MockCartRepository)
	userID := uuid.New()
	_, router := setupCartHandler(repo, userID)

	productID := uuid.New()
	existing, err := cart.NewCart(userID)
	require.NoError(t, err)
	require.NoError(t, existing.AddItem(productID, 2))

	repo.On("FindByOwner", mock.Anything, userID).Return(existing, nil)
	repo.On("Save", mock.Anything, mock.MatchedBy(func(c *cart.Cart) bool {
		item := c.GetItemByProduct(productID)
		return item != nil && item.Quantity == 5
	})).Return(nil)

	body, _ := json.Marshal(cartapp.ReconcileCartRequest{
		Items: []cartapp.CartItemInput{{ProductID: productID, Quantity: 3}},
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/reconcile", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data cartapp.CartResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data.Items, 1)
	assert.Equal(t, 5, resp.Data.Items[0].Quantity)
	repo.AssertExpectations(t)
}

func TestCartHandler_Reconcile_RejectsInvalidQuantity(t *testing.T) {
	repo := new(MockCartRepository)
	userID := uuid.New()
	_, router := setupCartHandler(repo, userID)

	body := []byte(`{"items":[{"product_id":"` + uuid.NewString() + `","quantity":0}]}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/reconcile", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCartHandler_Reconcile_InvalidJSON(t *testing.T) {
	repo := new(MockCartRepository)
	userID := uuid.New()
	_, router := setupCartHandler(repo, userID)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/reconcile", bytes.NewBufferString("not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCartHandler_UpdateItem_NotInCart(t *testing.T) {
	repo := new(MockCartRepository)
	userID := uuid.New()
	_, router := setupCartHandler(repo, userID)

	existing, err := cart.NewCart(userID)
	require.NoError(t, err)
	repo.On("FindByOwner", mock.Anything, userID).Return(existing, nil)

	body := []byte(`{"quantity":4}`)
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/cart/items/"+uuid.NewString(), bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCartHandler_UpdateItem_InvalidProductID(t *testing.T) {
	repo := new(MockCartRepository)
	userID := uuid.New()
	_, router := setupCartHandler(repo, userID)

	body := []byte(`{"quantity":4}`)
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/cart/items/not-a-uuid", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCartHandler_Clear_NoContent(t *testing.T) {
	repo := new(MockCartRepository)
	userID := uuid.New()
	_, router := setupCartHandler(repo, userID)

	existing, err := cart.NewCart(userID)
	require.NoError(t, err)
	require.NoError(t, existing.AddItem(uuid.New(), 1))

	repo.On("FindByOwner", mock.Anything, userID).Return(existing, nil)
	repo.On("Save", mock.Anything, mock.MatchedBy(func(c *cart.Cart) bool {
		return c.IsEmpty()
	})).Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/cart", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	repo.AssertExpectations(t)
}

func TestCartHandler_RequiresAuth(t *testing.T) {
	repo := new(MockCartRepository)
	handler := NewCartHandler(cartapp.NewCartService(repo), middleware.RequireAuth(testJWTService()))
	router := setupTestRouter()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

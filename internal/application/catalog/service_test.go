package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mobelhaus/storefront/internal/domain/catalog"
	"github.com/mobelhaus/storefront/internal/domain/shared"
	"github.com/mobelhaus/storefront/internal/domain/shared/valueobject"
)

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, p *catalog.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) FindBySlug(ctx context.Context, slug string) (*catalog.Product, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindActive(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) CountActive(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockCategoryRepository is a mock implementation of catalog.CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Category, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) Save(ctx context.Context, c *catalog.Category) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCategoryRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCategoryRepository) FindBySlug(ctx context.Context, slug string) (*catalog.Category, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Category), args.Error(1)
}

// MockProductCache is a mock implementation of ProductCache
type MockProductCache struct {
	mock.Mock
}

func (m *MockProductCache) GetBySlug(ctx context.Context, slug string) (*catalog.Product, bool) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).(*catalog.Product), args.Bool(1)
}

func (m *MockProductCache) SetBySlug(ctx context.Context, product *catalog.Product) {
	m.Called(ctx, product)
}

func (m *MockProductCache) Invalidate(ctx context.Context, slug string) {
	m.Called(ctx, slug)
}

func sampleProduct(t *testing.T) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct("Oak Dining Table", "oak-dining-table", "Solid oak",
		valueobject.NewMoneyEURFromFloat(449.90), catalog.RoomDining, uuid.New())
	require.NoError(t, err)
	return p
}

func TestProductService_Create(t *testing.T) {
	t.Run("creates product in existing category", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		categoryRepo := new(MockCategoryRepository)
		service := NewProductService(productRepo, categoryRepo, nil, zap.NewNop())

		category, err := catalog.NewCategory("Tables", "tables")
		require.NoError(t, err)
		categoryRepo.On("FindByID", mock.Anything, category.ID).Return(category, nil)
		productRepo.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Product")).Return(nil)

		resp, err := service.Create(context.Background(), CreateProductRequest{
			Name:       "Oak Dining Table",
			Slug:       "oak-dining-table",
			Price:      decimal.NewFromFloat(449.90),
			RoomTag:    catalog.RoomDining,
			CategoryID: category.ID,
		})

		require.NoError(t, err)
		assert.Equal(t, "449.90", resp.Price)
		assert.True(t, resp.Active)
	})

	t.Run("rejects unknown category", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		categoryRepo := new(MockCategoryRepository)
		service := NewProductService(productRepo, categoryRepo, nil, zap.NewNop())

		missing := uuid.New()
		categoryRepo.On("FindByID", mock.Anything, missing).Return(nil, shared.ErrNotFound)

		_, err := service.Create(context.Background(), CreateProductRequest{
			Name:       "Oak Dining Table",
			Slug:       "oak-dining-table",
			Price:      decimal.NewFromFloat(449.90),
			CategoryID: missing,
		})

		require.Error(t, err)
		productRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestProductService_GetBySlug(t *testing.T) {
	t.Run("cache hit skips the repository", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		cache := new(MockProductCache)
		service := NewProductService(productRepo, new(MockCategoryRepository), cache, zap.NewNop())

		p := sampleProduct(t)
		cache.On("GetBySlug", mock.Anything, p.Slug).Return(p, true)

		resp, err := service.GetBySlug(context.Background(), p.Slug)

		require.NoError(t, err)
		assert.Equal(t, p.Slug, resp.Slug)
		productRepo.AssertNotCalled(t, "FindBySlug", mock.Anything, mock.Anything)
	})

	t.Run("cache miss loads and backfills", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		cache := new(MockProductCache)
		service := NewProductService(productRepo, new(MockCategoryRepository), cache, zap.NewNop())

		p := sampleProduct(t)
		cache.On("GetBySlug", mock.Anything, p.Slug).Return(nil, false)
		productRepo.On("FindBySlug", mock.Anything, p.Slug).Return(p, nil)
		cache.On("SetBySlug", mock.Anything, p).Return()

		resp, err := service.GetBySlug(context.Background(), p.Slug)

		require.NoError(t, err)
		assert.Equal(t, p.Slug, resp.Slug)
		cache.AssertExpectations(t)
	})

	t.Run("works without a cache", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		service := NewProductService(productRepo, new(MockCategoryRepository), nil, zap.NewNop())

		p := sampleProduct(t)
		productRepo.On("FindBySlug", mock.Anything, p.Slug).Return(p, nil)

		_, err := service.GetBySlug(context.Background(), p.Slug)
		require.NoError(t, err)
	})
}

func TestProductService_Update(t *testing.T) {
	t.Run("price change invalidates the cache", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		cache := new(MockProductCache)
		service := NewProductService(productRepo, new(MockCategoryRepository), cache, zap.NewNop())

		p := sampleProduct(t)
		productRepo.On("FindByID", mock.Anything, p.ID).Return(p, nil)
		productRepo.On("Save", mock.Anything, p).Return(nil)
		cache.On("Invalidate", mock.Anything, p.Slug).Return()

		newPrice := decimal.NewFromFloat(399.00)
		resp, err := service.Update(context.Background(), p.ID, UpdateProductRequest{Price: &newPrice})

		require.NoError(t, err)
		assert.Equal(t, "399.00", resp.Price)
		cache.AssertExpectations(t)
	})
}

func TestProductService_SetActive(t *testing.T) {
	productRepo := new(MockProductRepository)
	cache := new(MockProductCache)
	service := NewProductService(productRepo, new(MockCategoryRepository), cache, zap.NewNop())

	p := sampleProduct(t)
	productRepo.On("FindByID", mock.Anything, p.ID).Return(p, nil)
	productRepo.On("Save", mock.Anything, p).Return(nil)
	cache.On("Invalidate", mock.Anything, p.Slug).Return()

	resp, err := service.SetActive(context.Background(), p.ID, false)

	require.NoError(t, err)
	assert.False(t, resp.Active)
}

func TestProductService_List(t *testing.T) {
	productRepo := new(MockProductRepository)
	service := NewProductService(productRepo, new(MockCategoryRepository), nil, zap.NewNop())

	p := sampleProduct(t)
	productRepo.On("FindActive", mock.Anything, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Filters["room_tag"] == catalog.RoomDining
	})).Return([]catalog.Product{*p}, nil)
	productRepo.On("CountActive", mock.Anything, mock.Anything).Return(int64(1), nil)

	result, err := service.List(context.Background(), ProductListFilter{RoomTag: catalog.RoomDining})

	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Total)
	require.Len(t, result.Items, 1)
}

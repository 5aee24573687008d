package catalog

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mobelhaus/storefront/internal/domain/catalog"
	"github.com/mobelhaus/storefront/internal/domain/shared"
	"github.com/mobelhaus/storefront/internal/domain/shared/valueobject"
)

// ProductCache caches product reads on the storefront's hot path.
// A cache miss or failure must never fail the request.
type ProductCache interface {
	GetBySlug(ctx context.Context, slug string) (*catalog.Product, bool)
	SetBySlug(ctx context.Context, product *catalog.Product)
	Invalidate(ctx context.Context, slug string)
}

// ProductService handles catalog business operations
type ProductService struct {
	productRepo  catalog.ProductRepository
	categoryRepo catalog.CategoryRepository
	cache        ProductCache
	logger       *zap.Logger
}

// NewProductService creates a new ProductService. cache may be nil.
func NewProductService(productRepo catalog.ProductRepository, categoryRepo catalog.CategoryRepository, cache ProductCache, logger *zap.Logger) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		cache:        cache,
		logger:       logger,
	}
}

// Create creates a new product (admin)
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	if _, err := s.categoryRepo.FindByID(ctx, req.CategoryID); err != nil {
		return nil, err
	}

	price, err := valueobject.NewMoney(req.Price, valueobject.DefaultCurrency)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_PRICE", err.Error())
	}

	product, err := catalog.NewProduct(req.Name, req.Slug, req.Description, price, req.RoomTag, req.CategoryID)
	if err != nil {
		return nil, err
	}
	product.ImageURL = req.ImageURL

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("product created", zap.String("slug", product.Slug))
	response := ToProductResponse(product)
	return &response, nil
}

// Update updates product details and price (admin)
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil || req.Description != nil {
		name := product.Name
		if req.Name != nil {
			name = *req.Name
		}
		description := product.Description
		if req.Description != nil {
			description = *req.Description
		}
		if err := product.UpdateDetails(name, description); err != nil {
			return nil, err
		}
	}
	if req.Price != nil {
		price, err := valueobject.NewMoney(*req.Price, valueobject.DefaultCurrency)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_PRICE", err.Error())
		}
		if err := product.ChangePrice(price); err != nil {
			return nil, err
		}
	}
	if req.ImageURL != nil {
		product.ImageURL = *req.ImageURL
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	s.invalidate(ctx, product.Slug)

	response := ToProductResponse(product)
	return &response, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// GetBySlug retrieves a product by slug, consulting the cache first
func (s *ProductService) GetBySlug(ctx context.Context, slug string) (*ProductResponse, error) {
	if s.cache != nil {
		if product, ok := s.cache.GetBySlug(ctx, slug); ok {
			response := ToProductResponse(product)
			return &response, nil
		}
	}

	product, err := s.productRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.SetBySlug(ctx, product)
	}

	response := ToProductResponse(product)
	return &response, nil
}

// List lists active products for the storefront
func (s *ProductService) List(ctx context.Context, f ProductListFilter) (*shared.Paginated[ProductResponse], error) {
	filter := shared.DefaultFilter()
	if f.Page > 0 {
		filter.Page = f.Page
	}
	if f.PageSize > 0 && f.PageSize <= 100 {
		filter.PageSize = f.PageSize
	}
	filter.Search = f.Search
	if f.RoomTag != "" {
		filter.Filters["room_tag"] = f.RoomTag
	}
	if f.CategoryID != nil {
		filter.Filters["category_id"] = *f.CategoryID
	}

	products, err := s.productRepo.FindActive(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.productRepo.CountActive(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]ProductResponse, 0, len(products))
	for i := range products {
		items = append(items, ToProductResponse(&products[i]))
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// SetActive activates or deactivates a product (admin)
func (s *ProductService) SetActive(ctx context.Context, id uuid.UUID, active bool) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if active {
		product.Activate()
	} else {
		product.Deactivate()
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	s.invalidate(ctx, product.Slug)

	response := ToProductResponse(product)
	return &response, nil
}

// CreateCategory creates a new category (admin)
func (s *ProductService) CreateCategory(ctx context.Context, req CreateCategoryRequest) (*CategoryResponse, error) {
	category, err := catalog.NewCategory(req.Name, req.Slug)
	if err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}
	response := ToCategoryResponse(category)
	return &response, nil
}

// ListCategories lists all categories
func (s *ProductService) ListCategories(ctx context.Context) ([]CategoryResponse, error) {
	filter := shared.DefaultFilter()
	filter.PageSize = 200
	filter.OrderBy = "name"
	filter.OrderDir = "asc"

	categories, err := s.categoryRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]CategoryResponse, 0, len(categories))
	for i := range categories {
		items = append(items, ToCategoryResponse(&categories[i]))
	}
	return items, nil
}

func (s *ProductService) invalidate(ctx context.Context, slug string) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, slug)
	}
}

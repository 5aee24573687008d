package catalog

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mobelhaus/storefront/internal/domain/shared"
	"github.com/mobelhaus/storefront/internal/domain/shared/valueobject"
)

// Room tags group products by the room they furnish.
const (
	RoomLivingRoom = "living-room"
	RoomBedroom    = "bedroom"
	RoomDining     = "dining"
	RoomOffice     = "office"
	RoomOutdoor    = "outdoor"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Product is a catalog entry. Price is the current list price; orders
// snapshot it at purchase time and never read it back.
type Product struct {
	shared.BaseAggregateRoot
	Name        string            `gorm:"not null"`
	Slug        string            `gorm:"uniqueIndex;not null"`
	Description string            `gorm:"type:text"`
	Price       valueobject.Money `gorm:"type:decimal(12,2);not null"`
	RoomTag     string            `gorm:"index"`
	CategoryID  uuid.UUID         `gorm:"type:uuid;not null;index"`
	ImageURL    string
	Active      bool `gorm:"not null;default:true"`
}

// TableName maps Product to the products table
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a validated product
func NewProduct(name, slug, description string, price valueobject.Money, roomTag string, categoryID uuid.UUID) (*Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	if !slugPattern.MatchString(slug) {
		return nil, shared.NewDomainError("INVALID_SLUG", "Slug must be lowercase letters, digits and hyphens")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if categoryID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Category ID cannot be empty")
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Slug:              slug,
		Description:       strings.TrimSpace(description),
		Price:             price,
		RoomTag:           roomTag,
		CategoryID:        categoryID,
		Active:            true,
	}, nil
}

// UpdateDetails updates name and description
func (p *Product) UpdateDetails(name, description string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	p.Name = name
	p.Description = strings.TrimSpace(description)
	p.UpdatedAt = time.Now()
	return nil
}

// ChangePrice updates the list price. Existing orders are unaffected.
func (p *Product) ChangePrice(price valueobject.Money) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	p.Price = price
	p.UpdatedAt = time.Now()
	return nil
}

// Deactivate hides the product from the storefront
func (p *Product) Deactivate() {
	p.Active = false
	p.UpdatedAt = time.Now()
}

// Activate makes the product visible again
func (p *Product) Activate() {
	p.Active = true
	p.UpdatedAt = time.Now()
}

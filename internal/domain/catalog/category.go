package catalog

import (
	"strings"
	"time"

	"github.com/mobelhaus/storefront/internal/domain/shared"
)

// Category groups products for navigation (sofas, tables, storage, ...)
type Category struct {
	shared.BaseAggregateRoot
	Name string `gorm:"not null"`
	Slug string `gorm:"uniqueIndex;not null"`
}

// TableName maps Category to the categories table
func (Category) TableName() string {
	return "categories"
}

// NewCategory creates a validated category
func NewCategory(name, slug string) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}
	if !slugPattern.MatchString(slug) {
		return nil, shared.NewDomainError("INVALID_SLUG", "Slug must be lowercase letters, digits and hyphens")
	}
	return &Category{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Slug:              slug,
	}, nil
}

// Rename changes the category name
func (c *Category) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}
	c.Name = name
	c.UpdatedAt = time.Now()
	return nil
}

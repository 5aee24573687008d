package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mobelhaus/storefront/internal/domain/cart"
	"github.com/mobelhaus/storefront/internal/domain/shared"
)

// GormCartRepository implements cart.Repository using GORM
type GormCartRepository struct {
	db *gorm.DB
}

// NewGormCartRepository creates a new GormCartRepository
func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// FindByOwner finds the cart for an owner
func (r *GormCartRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) (*cart.Cart, error) {
	var c cart.Cart
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&c, "owner_id = ?", ownerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// Save creates or updates a cart. The item list is rewritten wholesale inside
// one transaction, with an optimistic version check on the cart row so two
// concurrent writers cannot interleave their item lists.
func (r *GormCartRepository) Save(ctx context.Context, c *cart.Cart) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var currentVersion int
		err := tx.Model(&cart.Cart{}).
			Where("id = ?", c.ID).
			Select("version").
			Scan(&currentVersion).Error
		if err != nil {
			return err
		}

		if currentVersion == 0 {
			// First save of a new cart
			if err := tx.Create(c).Error; err != nil {
				return err
			}
			return nil
		}

		if currentVersion != c.Version {
			return shared.ErrConcurrencyConflict
		}

		c.Version++
		c.UpdatedAt = time.Now()

		result := tx.Model(&cart.Cart{}).
			Where("id = ? AND version = ?", c.ID, currentVersion).
			Updates(map[string]interface{}{
				"version":    c.Version,
				"updated_at": c.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrConcurrencyConflict
		}

		if err := tx.Where("cart_id = ?", c.ID).Delete(&cart.CartItem{}).Error; err != nil {
			return err
		}
		for i := range c.Items {
			c.Items[i].CartID = c.ID
			if err := tx.Create(&c.Items[i]).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

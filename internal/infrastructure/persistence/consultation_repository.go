package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mobelhaus/storefront/internal/domain/booking"
	"github.com/mobelhaus/storefront/internal/domain/shared"
)

// GormConsultationRepository implements booking.Repository using GORM
type GormConsultationRepository struct {
	db *gorm.DB
}

// NewGormConsultationRepository creates a new GormConsultationRepository
func NewGormConsultationRepository(db *gorm.DB) *GormConsultationRepository {
	return &GormConsultationRepository{db: db}
}

// FindByID finds a consultation by ID
func (r *GormConsultationRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.Consultation, error) {
	var c booking.Consultation
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// FindAll finds consultations matching the filter
func (r *GormConsultationRepository) FindAll(ctx context.Context, filter shared.Filter) ([]booking.Consultation, error) {
	var consultations []booking.Consultation
	query := applyFilter(r.db.WithContext(ctx).Model(&booking.Consultation{}), filter)
	if err := query.Find(&consultations).Error; err != nil {
		return nil, err
	}
	return consultations, nil
}

// FindByOwner lists consultations of an owner
func (r *GormConsultationRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]booking.Consultation, error) {
	var consultations []booking.Consultation
	query := applyFilter(
		r.db.WithContext(ctx).Model(&booking.Consultation{}).Where("owner_id = ?", ownerID),
		filter,
	)
	if err := query.Find(&consultations).Error; err != nil {
		return nil, err
	}
	return consultations, nil
}

// Save creates or updates a consultation
func (r *GormConsultationRepository) Save(ctx context.Context, c *booking.Consultation) error {
	return r.db.WithContext(ctx).Save(c).Error
}

// Delete deletes a consultation
func (r *GormConsultationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&booking.Consultation{}, "id = ?", id).Error
}

// Count counts consultations
func (r *GormConsultationRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applyCountFilter(r.db.WithContext(ctx).Model(&booking.Consultation{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

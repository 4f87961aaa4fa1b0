package repository

import (
	"context"
	"strings"

	"github.com/phonedex/phonedex-backend/internal/models"
	"github.com/phonedex/phonedex-backend/internal/services"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PhoneRepository is the gorm-backed catalog store. A phone row carries its
// review collection as one jsonb document, so MutatePhone's row lock covers
// review insertion, voting and deletion as a single write unit.
type PhoneRepository struct {
	db *gorm.DB
}

func NewPhoneRepository(db *gorm.DB) *PhoneRepository {
	return &PhoneRepository{db: db}
}

func (r *PhoneRepository) CreatePhone(ctx context.Context, p *models.Phone) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PhoneRepository) GetPhone(ctx context.Context, id string) (*models.Phone, error) {
	var phone models.Phone
	if err := r.db.WithContext(ctx).First(&phone, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &phone, nil
}

func (r *PhoneRepository) MutatePhone(ctx context.Context, id string, fn func(*models.Phone) error) (*models.Phone, error) {
	var out *models.Phone
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var phone models.Phone
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&phone, "id = ?", id).Error; err != nil {
			return err
		}
		if err := fn(&phone); err != nil {
			return err
		}
		if err := tx.Save(&phone).Error; err != nil {
			return err
		}
		out = &phone
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PhoneRepository) DeletePhone(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.Phone{}, "id = ?", id).Error
}

func (r *PhoneRepository) ListPhones(ctx context.Context, f services.PhoneFilter) ([]models.Phone, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Phone{})

	if f.Brand != "" {
		query = query.Where("LOWER(brand) = ?", strings.ToLower(f.Brand))
	}
	if f.MinPrice > 0 {
		query = query.Where("price >= ?", f.MinPrice)
	}
	if f.MaxPrice > 0 {
		query = query.Where("price <= ?", f.MaxPrice)
	}
	if f.Search != "" {
		term := "%" + strings.ToLower(f.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(brand) LIKE ?", term, term)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var phones []models.Phone
	offset := (f.Page - 1) * f.Limit
	if err := query.
		Offset(offset).
		Limit(f.Limit).
		Order("release_date DESC").
		Find(&phones).Error; err != nil {
		return nil, 0, err
	}
	return phones, total, nil
}

func (r *PhoneRepository) AllPhones(ctx context.Context) ([]models.Phone, error) {
	var phones []models.Phone
	if err := r.db.WithContext(ctx).Find(&phones).Error; err != nil {
		return nil, err
	}
	return phones, nil
}

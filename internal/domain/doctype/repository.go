package doctype

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"atrium/internal/domain"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) ListActive(ctx context.Context) ([]domain.DocumentType, error) {
	var types []domain.DocumentType
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("name ASC").
		Find(&types).Error
	return types, err
}

// GetActive returns an active type or ErrTypeNotFound.
func (r *Repository) GetActive(ctx context.Context, id int64) (*domain.DocumentType, error) {
	var dt domain.DocumentType
	err := r.db.WithContext(ctx).Where("id = ? AND active = ?", id, true).First(&dt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTypeNotFound
	}
	if err != nil {
		return nil, err
	}
	return &dt, nil
}

// NameInUse reports whether another active type already uses name, ignoring case.
func (r *Repository) NameInUse(ctx context.Context, name string, exceptID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.DocumentType{}).
		Where("active = ? AND LOWER(name) = LOWER(?) AND id <> ?", true, name, exceptID).
		Count(&count).Error
	return count > 0, err
}

func (r *Repository) Create(ctx context.Context, dt *domain.DocumentType) error {
	return r.db.WithContext(ctx).Create(dt).Error
}

func (r *Repository) Save(ctx context.Context, dt *domain.DocumentType) error {
	return r.db.WithContext(ctx).Save(dt).Error
}

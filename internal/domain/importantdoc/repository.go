package importantdoc

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

func (r *Repository) List(ctx context.Context, employeeID int64) ([]domain.Document, error) {
	var docs []domain.Document
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND important = ? AND active = ?", employeeID, true, true).
		Find(&docs).Error
	return docs, err
}

func (r *Repository) Get(ctx context.Context, employeeID, id int64) (*domain.Document, error) {
	var d domain.Document
	err := r.db.WithContext(ctx).
		Where("id = ? AND employee_id = ? AND important = ? AND active = ?", id, employeeID, true, true).
		First(&d).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrDocumentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *Repository) Create(ctx context.Context, d *domain.Document) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *Repository) Save(ctx context.Context, d *domain.Document) error {
	return r.db.WithContext(ctx).Save(d).Error
}

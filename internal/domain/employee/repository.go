package employee

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"atrium/internal/database"
	"atrium/internal/domain"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) List(ctx context.Context, includeInactive bool) ([]domain.Employee, error) {
	q := r.db.WithContext(ctx).Order("full_name ASC, id ASC")
	if !includeInactive {
		q = q.Where("active = ?", true)
	}
	var employees []domain.Employee
	err := q.Find(&employees).Error
	return employees, err
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	var e domain.Employee
	err := r.db.WithContext(ctx).First(&e, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrEmployeeNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// ExistsActive is the cheap check used on every explorer and document request.
func (r *Repository) ExistsActive(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Employee{}).
		Where("id = ? AND active = ?", id, true).
		Count(&count).Error
	return count > 0, err
}

func (r *Repository) Create(ctx context.Context, e *domain.Employee) error {
	err := r.db.WithContext(ctx).Create(e).Error
	if database.IsUniqueViolation(err) {
		return ErrRegistrationTaken
	}
	return err
}

func (r *Repository) Save(ctx context.Context, e *domain.Employee) error {
	err := r.db.WithContext(ctx).Save(e).Error
	if database.IsUniqueViolation(err) {
		return ErrRegistrationTaken
	}
	return err
}

package explorer

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"atrium/internal/domain"
)

type Repository interface {
	ListFolders(ctx context.Context, employeeID int64) ([]domain.Folder, error)
	// LockFolders is ListFolders holding row locks until the transaction ends.
	LockFolders(ctx context.Context, employeeID int64) ([]domain.Folder, error)
	ListDocuments(ctx context.Context, employeeID int64) ([]domain.Document, error)
	GetDocument(ctx context.Context, employeeID, id int64) (*domain.Document, error)
	CreateFolder(ctx context.Context, f *domain.Folder) error
	CreateDocuments(ctx context.Context, docs []*domain.Document) error
	SaveFolder(ctx context.Context, f *domain.Folder) error
	SaveDocument(ctx context.Context, d *domain.Document) error
	DeactivateFolders(ctx context.Context, employeeID int64, ids []int64, userID int64, at time.Time) (int64, error)
	DeactivateDocumentsIn(ctx context.Context, employeeID int64, parentIDs []int64, userID int64, at time.Time) (int64, error)
	// Transaction runs fn against a repository bound to one database transaction.
	Transaction(ctx context.Context, fn func(repo Repository) error) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListFolders(ctx context.Context, employeeID int64) ([]domain.Folder, error) {
	var folders []domain.Folder
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND active = ?", employeeID, true).
		Order("name ASC, id ASC").
		Find(&folders).Error
	return folders, err
}

func (r *repository) LockFolders(ctx context.Context, employeeID int64) ([]domain.Folder, error) {
	var folders []domain.Folder
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("employee_id = ? AND active = ?", employeeID, true).
		Order("id ASC").
		Find(&folders).Error
	return folders, err
}

// ListDocuments returns the active explorer files, leaving important documents out.
func (r *repository) ListDocuments(ctx context.Context, employeeID int64) ([]domain.Document, error) {
	var docs []domain.Document
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND active = ? AND important = ?", employeeID, true, false).
		Order("name ASC, id ASC").
		Find(&docs).Error
	return docs, err
}

func (r *repository) GetDocument(ctx context.Context, employeeID, id int64) (*domain.Document, error) {
	var d domain.Document
	err := r.db.WithContext(ctx).
		Where("id = ? AND employee_id = ? AND active = ? AND important = ?", id, employeeID, true, false).
		First(&d).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrDocumentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *repository) CreateFolder(ctx context.Context, f *domain.Folder) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *repository) CreateDocuments(ctx context.Context, docs []*domain.Document) error {
	if len(docs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(docs).Error
}

func (r *repository) SaveFolder(ctx context.Context, f *domain.Folder) error {
	return r.db.WithContext(ctx).Save(f).Error
}

func (r *repository) SaveDocument(ctx context.Context, d *domain.Document) error {
	return r.db.WithContext(ctx).Save(d).Error
}

func (r *repository) DeactivateFolders(ctx context.Context, employeeID int64, ids []int64, userID int64, at time.Time) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).Model(&domain.Folder{}).
		Where("employee_id = ? AND active = ? AND id IN ?", employeeID, true, ids).
		Updates(map[string]any{"active": false, "updated_at": at, "updated_by": userID})
	return res.RowsAffected, res.Error
}

func (r *repository) DeactivateDocumentsIn(ctx context.Context, employeeID int64, parentIDs []int64, userID int64, at time.Time) (int64, error) {
	if len(parentIDs) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).Model(&domain.Document{}).
		Where("employee_id = ? AND active = ? AND important = ? AND parent_id IN ?", employeeID, true, false, parentIDs).
		Updates(map[string]any{"active": false, "updated_at": at, "updated_by": userID})
	return res.RowsAffected, res.Error
}

func (r *repository) Transaction(ctx context.Context, fn func(repo Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&repository{db: tx})
	})
}

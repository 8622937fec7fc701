package doctype

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"atrium/internal/domain"
)

type Service struct {
	repo   *Repository
	logger *slog.Logger
	now    func() time.Time
}

func NewService(repo *Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger, now: time.Now}
}

func (s *Service) List(ctx context.Context) ([]domain.DocumentType, error) {
	types, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list document types: %w", err)
	}
	if types == nil {
		types = []domain.DocumentType{}
	}
	return types, nil
}

// Resolve returns the active type with the given id.
func (s *Service) Resolve(ctx context.Context, id int64) (*domain.DocumentType, error) {
	return s.repo.GetActive(ctx, id)
}

func (s *Service) Create(ctx context.Context, rawName string) (*domain.DocumentType, error) {
	name, err := s.checkName(ctx, rawName, 0)
	if err != nil {
		return nil, err
	}

	now := s.now()
	dt := &domain.DocumentType{Name: name, Active: true, CreatedAt: now, UpdatedAt: now}
	if err := s.repo.Create(ctx, dt); err != nil {
		return nil, fmt.Errorf("create document type: %w", err)
	}
	s.logger.Info("document type created", "id", dt.ID, "name", dt.Name)
	return dt, nil
}

func (s *Service) Rename(ctx context.Context, id int64, rawName string) (*domain.DocumentType, error) {
	dt, err := s.repo.GetActive(ctx, id)
	if err != nil {
		return nil, err
	}
	name, err := s.checkName(ctx, rawName, id)
	if err != nil {
		return nil, err
	}

	dt.Name = name
	dt.UpdatedAt = s.now()
	if err := s.repo.Save(ctx, dt); err != nil {
		return nil, fmt.Errorf("rename document type: %w", err)
	}
	s.logger.Info("document type renamed", "id", dt.ID, "name", dt.Name)
	return dt, nil
}

// Delete hides the type from the catalog. Documents keep their reference.
func (s *Service) Delete(ctx context.Context, id int64) error {
	dt, err := s.repo.GetActive(ctx, id)
	if err != nil {
		return err
	}
	dt.Active = false
	dt.UpdatedAt = s.now()
	if err := s.repo.Save(ctx, dt); err != nil {
		return fmt.Errorf("delete document type: %w", err)
	}
	s.logger.Info("document type deleted", "id", dt.ID)
	return nil
}

func (s *Service) checkName(ctx context.Context, raw string, exceptID int64) (string, error) {
	name := strings.TrimSpace(raw)
	if err := validation.Validate(name, validation.Required, validation.RuneLength(1, 120)); err != nil {
		return "", domain.Invalid("name: %s", err.Error())
	}

	taken, err := s.repo.NameInUse(ctx, name, exceptID)
	if err != nil {
		return "", fmt.Errorf("check document type name: %w", err)
	}
	if taken {
		return "", ErrNameTaken
	}
	return name, nil
}

package employee

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

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

func (s *Service) List(ctx context.Context, includeInactive bool) ([]domain.Employee, error) {
	employees, err := s.repo.List(ctx, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	if employees == nil {
		employees = []domain.Employee{}
	}
	return employees, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Employee, error) {
	return s.repo.GetByID(ctx, id)
}

// RequireActive fails with NotFound unless id names an active employee.
func (s *Service) RequireActive(ctx context.Context, id int64) error {
	ok, err := s.repo.ExistsActive(ctx, id)
	if err != nil {
		return fmt.Errorf("check employee %d: %w", id, err)
	}
	if !ok {
		return ErrEmployeeNotFound
	}
	return nil
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (*domain.Employee, error) {
	now := s.now()
	e := &domain.Employee{
		FullName:     strings.TrimSpace(req.FullName),
		Registration: strings.TrimSpace(req.Registration),
		JobTitle:     strings.TrimSpace(req.JobTitle),
		Email:        strings.TrimSpace(req.Email),
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := validate(e); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}

	s.logger.Info("employee created", "id", e.ID, "registration", e.Registration)
	return e, nil
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateRequest) (*domain.Employee, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		e.FullName = strings.TrimSpace(*req.FullName)
	}
	if req.Registration != nil {
		e.Registration = strings.TrimSpace(*req.Registration)
	}
	if req.JobTitle != nil {
		e.JobTitle = strings.TrimSpace(*req.JobTitle)
	}
	if req.Email != nil {
		e.Email = strings.TrimSpace(*req.Email)
	}
	if req.Active != nil {
		e.Active = *req.Active
	}
	if err := validate(e); err != nil {
		return nil, err
	}

	e.UpdatedAt = s.now()
	if err := s.repo.Save(ctx, e); err != nil {
		return nil, err
	}
	s.logger.Info("employee updated", "id", e.ID, "active", e.Active)
	return e, nil
}

// Deactivate hides the employee and, with it, access to their explorer.
// Folders and documents are left untouched.
func (s *Service) Deactivate(ctx context.Context, id int64) error {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !e.Active {
		return nil
	}
	e.Active = false
	e.UpdatedAt = s.now()
	if err := s.repo.Save(ctx, e); err != nil {
		return err
	}
	s.logger.Info("employee deactivated", "id", e.ID)
	return nil
}

func validate(e *domain.Employee) error {
	err := validation.ValidateStruct(e,
		validation.Field(&e.FullName, validation.Required, validation.RuneLength(1, 200)),
		validation.Field(&e.Registration, validation.Required, validation.RuneLength(1, 50)),
		validation.Field(&e.JobTitle, validation.RuneLength(0, 120)),
		validation.Field(&e.Email, is.EmailFormat),
	)
	if err != nil {
		return domain.Invalid("%s", err.Error())
	}
	return nil
}

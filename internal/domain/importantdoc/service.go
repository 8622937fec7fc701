package importantdoc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"atrium/internal/domain"
	"atrium/internal/domain/explorer"
	"atrium/internal/pkg/filetype"
	"atrium/internal/storage"
)

type TypeResolver interface {
	Resolve(ctx context.Context, id int64) (*domain.DocumentType, error)
}

type Service struct {
	repo        *Repository
	store       storage.Storage
	employees   explorer.EmployeeChecker
	types       TypeResolver
	logger      *slog.Logger
	maxFileSize int64
	window      time.Duration
	now         func() time.Time
}

func NewService(
	repo *Repository,
	store storage.Storage,
	employees explorer.EmployeeChecker,
	types TypeResolver,
	logger *slog.Logger,
	maxFileSize int64,
	warningWindow time.Duration,
) *Service {
	return &Service{
		repo:        repo,
		store:       store,
		employees:   employees,
		types:       types,
		logger:      logger,
		maxFileSize: maxFileSize,
		window:      warningWindow,
		now:         time.Now,
	}
}

// List returns the visible documents ordered by expiry date, then name.
// Undated documents come last.
func (s *Service) List(ctx context.Context, actor domain.Actor, employeeID int64) ([]Document, error) {
	if err := s.employees.RequireActive(ctx, employeeID); err != nil {
		return nil, err
	}
	docs, err := s.repo.List(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("list important documents: %w", err)
	}

	now := s.now()
	out := make([]Document, 0, len(docs))
	for i := range docs {
		if !explorer.CanSee(docs[i].OwnerRole, actor.Role) {
			continue
		}
		out = append(out, toDocument(&docs[i], StatusAt(docs[i].ExpiresAt, now, s.window)))
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].ExpiresAt, out[j].ExpiresAt
		switch {
		case a == nil && b != nil:
			return false
		case a != nil && b == nil:
			return true
		case a != nil && b != nil && !a.Equal(*b):
			return a.Before(*b)
		}
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out, nil
}

func (s *Service) Upload(ctx context.Context, actor domain.Actor, employeeID int64, in UploadInput) (Document, error) {
	if err := s.employees.RequireActive(ctx, employeeID); err != nil {
		return Document{}, err
	}

	name := strings.TrimSpace(in.Name)
	if err := validation.Validate(name, validation.Required, validation.RuneLength(1, 255)); err != nil {
		return Document{}, ErrNameRequired
	}
	if in.File == nil {
		return Document{}, ErrFileRequired
	}
	if in.File.Size == 0 {
		return Document{}, ErrEmptyFile
	}
	if s.maxFileSize > 0 && in.File.Size > s.maxFileSize {
		return Document{}, s.tooLarge(in.File.Name)
	}
	in.IssuedAt = calendarDate(in.IssuedAt)
	in.ExpiresAt = calendarDate(in.ExpiresAt)
	if in.IssuedAt != nil && in.ExpiresAt != nil && in.ExpiresAt.Before(*in.IssuedAt) {
		return Document{}, ErrExpiryBefore
	}

	ownerRole := in.OwnerRole
	if ownerRole == 0 {
		ownerRole = domain.DefaultOwnerRole
		if !explorer.CanSee(ownerRole, actor.Role) && actor.Role.Valid() {
			ownerRole = actor.Role
		}
	}
	if !ownerRole.Valid() {
		return Document{}, explorer.ErrInvalidOwnerRole
	}
	if !explorer.CanSee(ownerRole, actor.Role) {
		return Document{}, explorer.ErrOwnerRoleHidden
	}

	var typeLabel string
	if in.DocumentTypeID != nil {
		dt, err := s.types.Resolve(ctx, *in.DocumentTypeID)
		if errors.Is(err, domain.ErrNotFound) {
			return Document{}, ErrUnknownType
		}
		if err != nil {
			return Document{}, fmt.Errorf("resolve document type: %w", err)
		}
		typeLabel = dt.Name
	}

	obj, contentType, err := s.storeFile(ctx, *in.File)
	if err != nil {
		if obj.Key != "" {
			s.discard(ctx, obj.Key)
		}
		return Document{}, err
	}

	now := s.now()
	doc := &domain.Document{
		EmployeeID:     employeeID,
		Important:      true,
		Name:           name,
		DocumentTypeID: in.DocumentTypeID,
		TypeLabel:      typeLabel,
		IssuedAt:       in.IssuedAt,
		ExpiresAt:      in.ExpiresAt,
		StorageKey:     obj.Key,
		OriginalName:   in.File.Name,
		MimeType:       contentType,
		Size:           obj.Size,
		OwnerRole:      ownerRole,
		Active:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
		CreatedBy:      actor.UserID,
		UpdatedBy:      actor.UserID,
	}
	if err := s.repo.Create(ctx, doc); err != nil {
		s.discard(ctx, obj.Key)
		return Document{}, fmt.Errorf("insert important document: %w", err)
	}

	s.logger.Info("important document uploaded",
		"employee_id", employeeID,
		"id", doc.ID,
		"type_id", doc.DocumentTypeID,
		"user_id", actor.UserID,
	)
	return toDocument(doc, StatusAt(doc.ExpiresAt, now, s.window)), nil
}

func (s *Service) OpenDownload(ctx context.Context, actor domain.Actor, employeeID, id int64) (*explorer.Download, error) {
	doc, err := s.visible(ctx, actor, employeeID, id)
	if err != nil {
		return nil, err
	}
	rc, err := s.store.Open(ctx, doc.StorageKey)
	if err != nil {
		return nil, fmt.Errorf("open stored file %s: %w", doc.StorageKey, err)
	}
	return &explorer.Download{Reader: rc, ContentType: doc.MimeType, FileName: doc.OriginalName, Size: doc.Size}, nil
}

func (s *Service) Delete(ctx context.Context, actor domain.Actor, employeeID, id int64) error {
	doc, err := s.visible(ctx, actor, employeeID, id)
	if err != nil {
		return err
	}
	doc.Active = false
	doc.UpdatedAt = s.now()
	doc.UpdatedBy = actor.UserID
	if err := s.repo.Save(ctx, doc); err != nil {
		return fmt.Errorf("delete important document: %w", err)
	}
	s.logger.Info("important document deleted", "employee_id", employeeID, "id", id, "user_id", actor.UserID)
	return nil
}

func (s *Service) visible(ctx context.Context, actor domain.Actor, employeeID, id int64) (*domain.Document, error) {
	if err := s.employees.RequireActive(ctx, employeeID); err != nil {
		return nil, err
	}
	doc, err := s.repo.Get(ctx, employeeID, id)
	if err != nil {
		return nil, err
	}
	if !explorer.CanSee(doc.OwnerRole, actor.Role) {
		return nil, ErrDocumentNotFound
	}
	return doc, nil
}

func (s *Service) storeFile(ctx context.Context, f explorer.UploadFile) (storage.Object, string, error) {
	rc, err := f.Open()
	if err != nil {
		return storage.Object{}, "", fmt.Errorf("open %q: %w", f.Name, err)
	}
	defer rc.Close()

	r, contentType, err := filetype.Sniff(rc, f.ContentType, f.Name)
	if err != nil {
		return storage.Object{}, "", fmt.Errorf("read %q: %w", f.Name, err)
	}
	if s.maxFileSize > 0 {
		r = io.LimitReader(r, s.maxFileSize+1)
	}

	obj, err := s.store.Save(ctx, f.Name, r)
	switch {
	case err != nil:
		return obj, "", fmt.Errorf("store %q: %w", f.Name, err)
	case obj.Size == 0:
		return obj, "", ErrEmptyFile
	case s.maxFileSize > 0 && obj.Size > s.maxFileSize:
		return obj, "", s.tooLarge(f.Name)
	}
	return obj, contentType, nil
}

func (s *Service) discard(ctx context.Context, key string) {
	if err := s.store.Delete(context.WithoutCancel(ctx), key); err != nil {
		s.logger.Warn("failed to remove stored object", "key", key, "error", err)
	}
}

func (s *Service) tooLarge(name string) error {
	return &domain.FileTooLargeError{
		Message: fmt.Sprintf("file %q exceeds the %d MB limit", name, s.maxFileSize/(1024*1024)),
	}
}

func calendarDate(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := CalendarDate(*t)
	return &d
}

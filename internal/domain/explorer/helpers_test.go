package explorer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"atrium/internal/domain"
	"atrium/internal/domain/events"
	"atrium/internal/storage"
)

var (
	admin  = domain.Actor{UserID: 1, Role: domain.RoleAdmin}
	hr     = domain.Actor{UserID: 2, Role: domain.RoleHR}
	safety = domain.Actor{UserID: 3, Role: domain.RoleSafety}
)

type fakeEmployees struct {
	active map[int64]bool
}

func (f fakeEmployees) RequireActive(_ context.Context, id int64) error {
	if !f.active[id] {
		return domain.NotFound("employee %d not found", id)
	}
	return nil
}

type recorder struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *recorder) Publish(e events.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Action)
	}
	return out
}

func (r *recorder) audiences() [][]domain.Role {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([][]domain.Role, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Audience)
	}
	return out
}

type fixture struct {
	db     *gorm.DB
	svc    *Service
	store  *storage.Local
	events *recorder
}

func setup(t *testing.T) *fixture {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:explorer_test_%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(domain.Models()...))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	store, err := storage.NewLocal(t.TempDir())
	require.NoError(t, err)

	rec := &recorder{}
	svc := NewService(
		NewRepository(db),
		store,
		fakeEmployees{active: map[int64]bool{1: true, 2: true}},
		rec,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		1024,
	)
	return &fixture{db: db, svc: svc, store: store, events: rec}
}

func (f *fixture) folder(t *testing.T, employeeID int64, parent *int64, name string, owner domain.Role) *domain.Folder {
	t.Helper()
	now := time.Now()
	folder := &domain.Folder{
		EmployeeID: employeeID,
		ParentID:   parent,
		Name:       name,
		OwnerRole:  owner,
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	require.NoError(t, f.db.Create(folder).Error)
	return folder
}

func (f *fixture) document(t *testing.T, employeeID int64, parent *int64, name string, size int64) *domain.Document {
	t.Helper()
	now := time.Now()
	doc := &domain.Document{
		EmployeeID: employeeID,
		ParentID:   parent,
		Name:       name,
		StorageKey: "missing/" + name,
		MimeType:   "application/pdf",
		Size:       size,
		OwnerRole:  domain.RoleHR,
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	require.NoError(t, f.db.Create(doc).Error)
	return doc
}

func (f *fixture) reloadFolder(t *testing.T, id int64) domain.Folder {
	t.Helper()
	var folder domain.Folder
	require.NoError(t, f.db.First(&folder, id).Error)
	return folder
}

func (f *fixture) reloadDocument(t *testing.T, id int64) domain.Document {
	t.Helper()
	var doc domain.Document
	require.NoError(t, f.db.First(&doc, id).Error)
	return doc
}

func memFile(name, content string) UploadFile {
	return UploadFile{
		Name: name,
		Size: int64(len(content)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(content)), nil
		},
	}
}

func ids(items []Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

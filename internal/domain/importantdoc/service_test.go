package importantdoc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"atrium/internal/domain"
	"atrium/internal/domain/explorer"
	"atrium/internal/middleware"
	"atrium/internal/storage"
)

var hr = domain.Actor{UserID: 5, Role: domain.RoleHR}

type activeEmployees map[int64]bool

func (a activeEmployees) RequireActive(_ context.Context, id int64) error {
	if !a[id] {
		return domain.NotFound("employee not found")
	}
	return nil
}

type catalog map[int64]string

func (c catalog) Resolve(_ context.Context, id int64) (*domain.DocumentType, error) {
	name, ok := c[id]
	if !ok {
		return nil, domain.NotFound("document type not found")
	}
	return &domain.DocumentType{ID: id, Name: name, Active: true}, nil
}

func setupService(t *testing.T) *Service {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:importantdoc_test_%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Document{}))
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	store, err := storage.NewLocal(t.TempDir())
	require.NoError(t, err)

	svc := NewService(
		NewRepository(db),
		store,
		activeEmployees{1: true},
		catalog{1: "ASO", 2: "NR-35"},
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		1<<20,
		30*24*time.Hour,
	)
	svc.now = func() time.Time { return time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC) }
	return svc
}

func file(name, content string) *explorer.UploadFile {
	return &explorer.UploadFile{
		Name: name,
		Size: int64(len(content)),
		Open: func() (io.ReadCloser, error) { return io.NopCloser(strings.NewReader(content)), nil },
	}
}

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestUploadListOrderAndStatus(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	typeID := int64(1)
	aso, err := svc.Upload(ctx, hr, 1, UploadInput{
		Name:           "ASO admissional",
		DocumentTypeID: &typeID,
		IssuedAt:       date(2025, 6, 1),
		ExpiresAt:      date(2026, 6, 1),
		File:           file("aso.pdf", "%PDF-1.4 aso"),
	})
	require.NoError(t, err)
	assert.Equal(t, "ASO", aso.TypeLabel)
	assert.Equal(t, StatusExpiring, aso.Status)
	assert.Equal(t, "application/pdf", aso.MimeType)

	_, err = svc.Upload(ctx, hr, 1, UploadInput{Name: "Certificado NR-35", ExpiresAt: date(2026, 1, 1), File: file("nr35.pdf", "x")})
	require.NoError(t, err)
	_, err = svc.Upload(ctx, hr, 1, UploadInput{Name: "CNH", ExpiresAt: date(2030, 1, 1), File: file("cnh.jpg", "y")})
	require.NoError(t, err)
	_, err = svc.Upload(ctx, hr, 1, UploadInput{Name: "RG", File: file("rg.jpg", "z")})
	require.NoError(t, err)

	docs, err := svc.List(ctx, hr, 1)
	require.NoError(t, err)
	var names []string
	var statuses []Status
	for _, d := range docs {
		names = append(names, d.Name)
		statuses = append(statuses, d.Status)
	}
	assert.Equal(t, []string{"Certificado NR-35", "ASO admissional", "CNH", "RG"}, names)
	assert.Equal(t, []Status{StatusExpired, StatusExpiring, StatusValid, StatusUndated}, statuses)
}

func TestUploadValidation(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()
	unknown := int64(99)

	cases := []struct {
		name string
		in   UploadInput
		want error
	}{
		{"blank name", UploadInput{Name: " ", File: file("a.pdf", "a")}, ErrNameRequired},
		{"no file", UploadInput{Name: "A"}, ErrFileRequired},
		{"empty file", UploadInput{Name: "A", File: file("a.pdf", "")}, ErrEmptyFile},
		{"unknown type", UploadInput{Name: "A", DocumentTypeID: &unknown, File: file("a.pdf", "a")}, ErrUnknownType},
		{"expiry before issue", UploadInput{Name: "A", IssuedAt: date(2026, 2, 1), ExpiresAt: date(2026, 1, 1), File: file("a.pdf", "a")}, ErrExpiryBefore},
	}
	for _, tc := range cases {
		_, err := svc.Upload(ctx, hr, 1, tc.in)
		assert.ErrorIs(t, err, tc.want, tc.name)
		assert.ErrorIs(t, err, domain.ErrValidation, tc.name)
	}

	_, err := svc.Upload(ctx, hr, 2, UploadInput{Name: "A", File: file("a.pdf", "a")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDownloadAndDelete(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	doc, err := svc.Upload(ctx, hr, 1, UploadInput{Name: "Contrato", File: file("contrato.txt", "conteúdo")})
	require.NoError(t, err)

	dl, err := svc.OpenDownload(ctx, hr, 1, doc.ID)
	require.NoError(t, err)
	body, _ := io.ReadAll(dl.Reader)
	require.NoError(t, dl.Reader.Close())
	assert.Equal(t, "conteúdo", string(body))
	assert.Equal(t, "contrato.txt", dl.FileName)

	safety := domain.Actor{UserID: 6, Role: domain.RoleSafety}
	assert.ErrorIs(t, svc.Delete(ctx, safety, 1, doc.ID), domain.ErrNotFound, "safety cannot see HR documents")

	require.NoError(t, svc.Delete(ctx, hr, 1, doc.ID))
	_, err = svc.OpenDownload(ctx, hr, 1, doc.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	docs, err := svc.List(ctx, hr, 1)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestHandlerUpload(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		middleware.SetActor(c, hr)
		c.Next()
	})
	NewHandler(setupService(t)).RegisterRoutes(r.Group("/api/v1"))

	post := func(fields map[string]string, withFile bool) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		for k, v := range fields {
			require.NoError(t, mw.WriteField(k, v))
		}
		if withFile {
			part, err := mw.CreateFormFile("file", "ficha.pdf")
			require.NoError(t, err)
			_, _ = part.Write([]byte("%PDF-1.4"))
		}
		require.NoError(t, mw.Close())
		req := httptest.NewRequest(http.MethodPost, "/api/v1/employees/1/important-documents", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		return rr
	}

	rr := post(map[string]string{"name": "Ficha", "documentTypeId": "2", "expiresAt": "2027-01-31"}, true)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var env struct {
		Data Document `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	assert.Equal(t, "NR-35", env.Data.TypeLabel)
	assert.Equal(t, StatusValid, env.Data.Status)

	assert.Equal(t, http.StatusBadRequest, post(map[string]string{"name": "Ficha", "expiresAt": "31/01/2027"}, true).Code)
	assert.Equal(t, http.StatusBadRequest, post(map[string]string{"name": "Ficha"}, false).Code)

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/employees/1/important-documents/%d/download", env.Data.ID), nil)
	dl := httptest.NewRecorder()
	r.ServeHTTP(dl, req)
	assert.Equal(t, http.StatusOK, dl.Code)
	assert.Equal(t, "%PDF-1.4", dl.Body.String())
}

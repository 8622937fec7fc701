package doctype

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"atrium/internal/domain"
)

func setupService(t *testing.T) *Service {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:doctype_test_%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.DocumentType{}))
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return NewService(NewRepository(db), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestNamesAreUniqueIgnoringCase(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	aso, err := svc.Create(ctx, "  ASO ")
	require.NoError(t, err)
	assert.Equal(t, "ASO", aso.Name)

	_, err = svc.Create(ctx, "aso")
	assert.ErrorIs(t, err, domain.ErrConflict)

	nr, err := svc.Create(ctx, "NR-35")
	require.NoError(t, err)
	_, err = svc.Rename(ctx, nr.ID, "Aso")
	assert.ErrorIs(t, err, domain.ErrConflict)

	renamed, err := svc.Rename(ctx, aso.ID, "aso")
	require.NoError(t, err, "renaming to a different case of the same name is allowed")
	assert.Equal(t, "aso", renamed.Name)

	require.NoError(t, svc.Delete(ctx, aso.ID))
	_, err = svc.Create(ctx, "ASO")
	assert.NoError(t, err, "deleted names are free again")
}

func TestListAndResolveOnlyActive(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	b, err := svc.Create(ctx, "Contrato")
	require.NoError(t, err)
	a, err := svc.Create(ctx, "Atestado")
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, b.ID))

	types, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, types, 1)
	assert.Equal(t, a.ID, types[0].ID)

	_, err = svc.Resolve(ctx, b.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, b.ID), domain.ErrNotFound)
}

func TestBlankNameIsInvalid(t *testing.T) {
	svc := setupService(t)
	_, err := svc.Create(context.Background(), "   ")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestHandlerStatusCodes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(setupService(t)).RegisterRoutes(r.Group("/api/v1"), func(c *gin.Context) { c.Next() })

	do := func(method, path string, body any) *httptest.ResponseRecorder {
		b, _ := json.Marshal(body)
		req := httptest.NewRequest(method, path, bytes.NewReader(b))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		return rr
	}

	assert.Equal(t, http.StatusCreated, do(http.MethodPost, "/api/v1/document-types", map[string]string{"name": "ASO"}).Code)
	assert.Equal(t, http.StatusConflict, do(http.MethodPost, "/api/v1/document-types", map[string]string{"name": "aso"}).Code)
	assert.Equal(t, http.StatusBadRequest, do(http.MethodPost, "/api/v1/document-types", map[string]string{"name": ""}).Code)
	assert.Equal(t, http.StatusNotFound, do(http.MethodPut, "/api/v1/document-types/99", map[string]string{"name": "x"}).Code)
	assert.Equal(t, http.StatusBadRequest, do(http.MethodDelete, "/api/v1/document-types/abc", nil).Code)

	rr := do(http.MethodGet, "/api/v1/document-types", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"name":"ASO"`)
}

package importantdoc

import (
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"atrium/internal/domain"
	"atrium/internal/domain/explorer"
	"atrium/internal/middleware"
	"atrium/internal/pkg/request"
	"atrium/internal/pkg/response"
)

const dateLayout = "2006-01-02"

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// List godoc
// @Summary List important documents with their expiry status
// @Tags Important documents
// @Router /employees/{id}/important-documents [get]
func (h *Handler) List(c *gin.Context) {
	actor, employeeID, ok := scope(c)
	if !ok {
		return
	}
	docs, err := h.service.List(c.Request.Context(), actor, employeeID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, docs)
}

// Upload godoc
// @Summary Upload an important document
// @Tags Important documents
// @Accept multipart/form-data
// @Param file formData file true "Document"
// @Param name formData string true "Display name"
// @Param documentTypeId formData integer false "Document type"
// @Param issuedAt formData string false "Issue date (YYYY-MM-DD)"
// @Param expiresAt formData string false "Expiry date (YYYY-MM-DD)"
// @Router /employees/{id}/important-documents [post]
func (h *Handler) Upload(c *gin.Context) {
	actor, employeeID, ok := scope(c)
	if !ok {
		return
	}

	in := UploadInput{Name: c.PostForm("name")}
	var err error
	if in.DocumentTypeID, err = optionalID(c.PostForm("documentTypeId")); err != nil {
		response.FromError(c, err)
		return
	}
	if in.IssuedAt, err = optionalDate(c.PostForm("issuedAt")); err != nil {
		response.FromError(c, err)
		return
	}
	if in.ExpiresAt, err = optionalDate(c.PostForm("expiresAt")); err != nil {
		response.FromError(c, err)
		return
	}
	if raw := strings.TrimSpace(c.PostForm("ownerRole")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			response.FromError(c, explorer.ErrInvalidOwnerRole)
			return
		}
		in.OwnerRole = domain.Role(n)
	}

	if fh, err := c.FormFile("file"); err == nil {
		in.File = &explorer.UploadFile{
			Name:        fh.Filename,
			Size:        fh.Size,
			ContentType: fh.Header.Get("Content-Type"),
			Open:        func() (io.ReadCloser, error) { return fh.Open() },
		}
	}

	doc, err := h.service.Upload(c.Request.Context(), actor, employeeID, in)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, doc)
}

func (h *Handler) Download(c *gin.Context) {
	actor, employeeID, ok := scope(c)
	if !ok {
		return
	}
	docID, ok := request.ParamID(c, "docId", "document")
	if !ok {
		return
	}

	dl, err := h.service.OpenDownload(c.Request.Context(), actor, employeeID, docID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	defer dl.Reader.Close()
	explorer.ServeDownload(c, dl)
}

func (h *Handler) Delete(c *gin.Context) {
	actor, employeeID, ok := scope(c)
	if !ok {
		return
	}
	docID, ok := request.ParamID(c, "docId", "document")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), actor, employeeID, docID); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": docID})
}

func scope(c *gin.Context) (domain.Actor, int64, bool) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return domain.Actor{}, 0, false
	}
	employeeID, ok := request.ParamID(c, "id", "employee")
	if !ok {
		return domain.Actor{}, 0, false
	}
	return actor, employeeID, true
}

func optionalID(raw string) (*int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, ErrInvalidTypeID
	}
	return &id, nil
}

// optionalDate accepts a calendar date or a full RFC 3339 timestamp.
func optionalDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" {
		return nil, nil
	}
	if t, err := time.Parse(dateLayout, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, ErrInvalidDate
	}
	t = CalendarDate(t)
	return &t, nil
}

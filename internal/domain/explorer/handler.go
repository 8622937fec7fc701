package explorer

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"atrium/internal/domain"
	"atrium/internal/middleware"
	"atrium/internal/pkg/request"
	"atrium/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// List godoc
// @Summary List the explorer tree of an employee
// @Tags Explorer
// @Produce json
// @Security BearerAuth
// @Param id path integer true "Employee ID"
// @Router /employees/{id}/explorer [get]
func (h *Handler) List(c *gin.Context) {
	actor, employeeID, ok := h.scope(c)
	if !ok {
		return
	}

	items, err := h.service.ListAll(c.Request.Context(), actor, employeeID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

// CreateFolder godoc
// @Summary Create a folder
// @Tags Explorer
// @Accept json
// @Produce json
// @Security BearerAuth
// @Router /employees/{id}/explorer/folders [post]
func (h *Handler) CreateFolder(c *gin.Context) {
	actor, employeeID, ok := h.scope(c)
	if !ok {
		return
	}

	var req CreateFolderRequest
	if !request.BindJSON(c, &req) {
		return
	}

	item, err := h.service.CreateFolder(c.Request.Context(), actor, employeeID, CreateFolderInput{
		ParentRef: req.ParentID,
		Name:      req.Name,
		OwnerRole: req.OwnerRole,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, item)
}

// Rename godoc
// @Summary Rename a folder or file
// @Tags Explorer
// @Router /employees/{id}/explorer/items/{itemId} [put]
func (h *Handler) Rename(c *gin.Context) {
	actor, employeeID, ok := h.scope(c)
	if !ok {
		return
	}

	var req RenameRequest
	if !request.BindJSON(c, &req) {
		return
	}

	item, err := h.service.Rename(c.Request.Context(), actor, employeeID, c.Param("itemId"), req.Name)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, item)
}

// Delete godoc
// @Summary Delete a file, or a folder with everything below it
// @Tags Explorer
// @Router /employees/{id}/explorer/items/{itemId} [delete]
func (h *Handler) Delete(c *gin.Context) {
	actor, employeeID, ok := h.scope(c)
	if !ok {
		return
	}

	result, err := h.service.DeleteItem(c.Request.Context(), actor, employeeID, c.Param("itemId"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// Upload godoc
// @Summary Upload one or more files
// @Tags Explorer
// @Accept multipart/form-data
// @Param files formData file true "Files to upload"
// @Param parentId formData string false "Target folder"
// @Param ownerRole formData integer false "Owner role"
// @Router /employees/{id}/explorer/files [post]
func (h *Handler) Upload(c *gin.Context) {
	actor, employeeID, ok := h.scope(c)
	if !ok {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			response.FromError(c, &domain.FileTooLargeError{Message: "request body is too large"})
			return
		}
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Expected a multipart form")
		return
	}

	headers := append(form.File["files"], form.File["files[]"]...)
	files := make([]UploadFile, 0, len(headers))
	for _, fh := range headers {
		files = append(files, uploadFile(fh))
	}

	ownerRole, err := formRole(c.PostForm("ownerRole"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	items, err := h.service.UploadFiles(c.Request.Context(), actor, employeeID, UploadInput{
		ParentRef: c.PostForm("parentId"),
		OwnerRole: ownerRole,
		Files:     files,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, items)
}

// Download godoc
// @Summary Download a file
// @Tags Explorer
// @Produce octet-stream
// @Router /employees/{id}/explorer/files/{itemId}/download [get]
func (h *Handler) Download(c *gin.Context) {
	actor, employeeID, ok := h.scope(c)
	if !ok {
		return
	}

	dl, err := h.service.OpenDownload(c.Request.Context(), actor, employeeID, c.Param("itemId"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	defer dl.Reader.Close()

	ServeDownload(c, dl)
}

// Copy godoc
// @Summary Move an item under another folder (or the root)
// @Tags Explorer
// @Accept json
// @Router /employees/{id}/explorer/copy [post]
func (h *Handler) Copy(c *gin.Context) {
	actor, employeeID, ok := h.scope(c)
	if !ok {
		return
	}

	var req CopyRequest
	if !request.BindJSON(c, &req) {
		return
	}

	item, err := h.service.Move(c.Request.Context(), actor, employeeID, req.SrcItemID, req.TargetParentID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, item)
}

// ServeDownload streams an opened file as an attachment.
func ServeDownload(c *gin.Context, dl *Download) {
	contentType := dl.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.DataFromReader(http.StatusOK, dl.Size, contentType, dl.Reader, map[string]string{
		"Content-Disposition": ContentDisposition(dl.FileName),
	})
}

// ContentDisposition builds an attachment header that survives non-ASCII names.
func ContentDisposition(name string) string {
	ascii := make([]rune, 0, len(name))
	for _, r := range name {
		if r < 0x20 || r > 0x7e || r == '"' || r == '\\' {
			r = '_'
		}
		ascii = append(ascii, r)
	}
	return fmt.Sprintf(`attachment; filename="%s"; filename*=UTF-8''%s`, string(ascii), url.PathEscape(name))
}

func (h *Handler) scope(c *gin.Context) (domain.Actor, int64, bool) {
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

func uploadFile(fh *multipart.FileHeader) UploadFile {
	return UploadFile{
		Name:        fh.Filename,
		Size:        fh.Size,
		ContentType: fh.Header.Get("Content-Type"),
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}

func formRole(raw string) (domain.Role, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, ErrInvalidOwnerRole
	}
	return domain.Role(n), nil
}

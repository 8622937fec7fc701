package doctype

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"atrium/internal/pkg/request"
	"atrium/internal/pkg/response"
)

type NameRequest struct {
	Name string `json:"name" validate:"notblank,max=120"`
}

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	types, err := h.service.List(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, types)
}

func (h *Handler) Create(c *gin.Context) {
	var req NameRequest
	if !request.BindJSON(c, &req) {
		return
	}
	dt, err := h.service.Create(c.Request.Context(), req.Name)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, dt)
}

func (h *Handler) Rename(c *gin.Context) {
	id, ok := request.ParamID(c, "id", "document type")
	if !ok {
		return
	}
	var req NameRequest
	if !request.BindJSON(c, &req) {
		return
	}
	dt, err := h.service.Rename(c.Request.Context(), id, req.Name)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, dt)
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := request.ParamID(c, "id", "document type")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id})
}

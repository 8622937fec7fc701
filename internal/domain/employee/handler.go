package employee

import (
	"net/http"

	"github.com/gin-gonic/gin"

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
// @Summary List employees
// @Tags Employees
// @Param all query bool false "Include inactive employees"
// @Router /employees [get]
func (h *Handler) List(c *gin.Context) {
	employees, err := h.service.List(c.Request.Context(), c.Query("all") == "true")
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, employees)
}

// Get godoc
// @Summary Get an employee
// @Tags Employees
// @Router /employees/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	id, ok := request.ParamID(c, "id", "employee")
	if !ok {
		return
	}
	e, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, e)
}

// Create godoc
// @Summary Register an employee
// @Tags Employees
// @Router /employees [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if !request.BindJSON(c, &req) {
		return
	}
	e, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, e)
}

// Update godoc
// @Summary Update an employee
// @Tags Employees
// @Router /employees/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	id, ok := request.ParamID(c, "id", "employee")
	if !ok {
		return
	}
	var req UpdateRequest
	if !request.BindJSON(c, &req) {
		return
	}
	e, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, e)
}

// Deactivate godoc
// @Summary Deactivate an employee
// @Tags Employees
// @Router /employees/{id} [delete]
func (h *Handler) Deactivate(c *gin.Context) {
	id, ok := request.ParamID(c, "id", "employee")
	if !ok {
		return
	}
	if err := h.service.Deactivate(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id, "active": false})
}

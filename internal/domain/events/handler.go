package events

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"atrium/internal/middleware"
	"atrium/internal/pkg/response"
)

const pongWait = 60 * time.Second

// EmployeeChecker confirms that an employee exists and is active.
type EmployeeChecker interface {
	RequireActive(ctx context.Context, id int64) error
}

type Handler struct {
	hub       *Hub
	employees EmployeeChecker
	upgrader  websocket.Upgrader
}

// NewHandler builds the websocket endpoint. Connections are accepted only from
// the listed origins; requests without an Origin header (non-browser clients) pass.
func NewHandler(hub *Hub, employees EmployeeChecker, allowedOrigins []string) *Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}

	return &Handler{
		hub:       hub,
		employees: employees,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || allowed[origin]
			},
		},
	}
}

// Explorer handles GET /ws/employees/:id/explorer?token=JWT
func (h *Handler) Explorer(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}
	employeeID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || employeeID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid employee ID")
		return
	}
	if err := h.employees.RequireActive(c.Request.Context(), employeeID); err != nil {
		response.FromError(c, err)
		return
	}

	ws, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error.
		return
	}

	h.hub.Subscribe(employeeID, actor.Role, ws)
	defer h.hub.Unsubscribe(employeeID, ws)

	ws.SetReadLimit(512)
	_ = ws.SetReadDeadline(time.Now().Add(pongWait))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	// Clients only listen; reading keeps control frames flowing and notices disconnects.
	for {
		if _, _, err := ws.NextReader(); err != nil {
			return
		}
		_ = ws.SetReadDeadline(time.Now().Add(pongWait))
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/ws/employees/:id/explorer", h.Explorer)
}

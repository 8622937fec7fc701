package events

import (
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"atrium/internal/domain"
)

const writeWait = 5 * time.Second

// conn is the subset of *websocket.Conn the hub writes to.
type conn interface {
	SetWriteDeadline(t time.Time) error
	WriteJSON(v interface{}) error
	Close() error
}

type subscriber struct {
	mu   sync.Mutex
	role domain.Role
}

// Hub fans explorer events out to the websocket subscribers of each employee.
type Hub struct {
	mutex  sync.RWMutex
	subs   map[int64]map[conn]*subscriber
	logger *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		subs:   make(map[int64]map[conn]*subscriber),
		logger: logger,
	}
}

// Subscribe registers c for the events of an employee that role may see.
func (h *Hub) Subscribe(employeeID int64, role domain.Role, c conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	set, ok := h.subs[employeeID]
	if !ok {
		set = make(map[conn]*subscriber)
		h.subs[employeeID] = set
	}
	set[c] = &subscriber{role: role}
}

func (h *Hub) Unsubscribe(employeeID int64, c conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if set, ok := h.subs[employeeID]; ok {
		if _, present := set[c]; present {
			delete(set, c)
			_ = c.Close()
		}
		if len(set) == 0 {
			delete(h.subs, employeeID)
		}
	}
}

// Publish writes e to every subscriber of its employee whose role is in the
// event's audience. Subscribers whose write fails are dropped. Writes to one
// connection are serialized since a websocket allows one writer at a time.
func (h *Hub) Publish(e Event) {
	type target struct {
		c   conn
		sub *subscriber
	}

	h.mutex.RLock()
	targets := make([]target, 0, len(h.subs[e.EmployeeID]))
	for c, sub := range h.subs[e.EmployeeID] {
		if slices.Contains(e.Audience, sub.role) {
			targets = append(targets, target{c: c, sub: sub})
		}
	}
	h.mutex.RUnlock()

	for _, t := range targets {
		t.sub.mu.Lock()
		_ = t.c.SetWriteDeadline(time.Now().Add(writeWait))
		err := t.c.WriteJSON(e)
		t.sub.mu.Unlock()
		if err != nil {
			h.logger.Debug("dropping explorer subscriber", "employee_id", e.EmployeeID, "error", err)
			h.Unsubscribe(e.EmployeeID, t.c)
		}
	}
}

func (h *Hub) SubscriberCount(employeeID int64) int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return len(h.subs[employeeID])
}

func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for id, set := range h.subs {
		for c := range set {
			_ = c.Close()
		}
		delete(h.subs, id)
	}
}

var _ conn = (*websocket.Conn)(nil)

package events

import (
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"atrium/internal/domain"
)

type fakeConn struct {
	mu      sync.Mutex
	written []interface{}
	failing bool
	closed  bool
}

func (f *fakeConn) SetWriteDeadline(time.Time) error { return nil }

func (f *fakeConn) WriteJSON(v interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return errors.New("broken pipe")
	}
	f.written = append(f.written, v)
	return nil
}

func (f *fakeConn) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func newTestHub() *Hub {
	return NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestHubPublishesOnlyToEmployeeSubscribers(t *testing.T) {
	hub := newTestHub()
	a, b := &fakeConn{}, &fakeConn{}
	hub.Subscribe(1, domain.RoleHR, a)
	hub.Subscribe(2, domain.RoleHR, b)

	hub.Publish(Event{EmployeeID: 1, Action: ActionFolderCreated, Items: []string{"p-3"}, Audience: []domain.Role{domain.RoleHR}})

	assert.Len(t, a.written, 1)
	assert.Empty(t, b.written)
	assert.Equal(t, ActionFolderCreated, a.written[0].(Event).Action)
}

func TestHubDropsFailingSubscribers(t *testing.T) {
	hub := newTestHub()
	good, bad := &fakeConn{}, &fakeConn{failing: true}
	hub.Subscribe(5, domain.RoleHR, good)
	hub.Subscribe(5, domain.RoleHR, bad)

	hub.Publish(Event{EmployeeID: 5, Action: ActionItemDeleted, Audience: domain.Roles()})

	assert.Equal(t, 1, hub.SubscriberCount(5))
	assert.True(t, bad.closed)
	assert.False(t, good.closed)
}

func TestHubUnsubscribeAndClose(t *testing.T) {
	hub := newTestHub()
	c1, c2 := &fakeConn{}, &fakeConn{}
	hub.Subscribe(9, domain.RoleAdmin, c1)
	hub.Subscribe(10, domain.RoleAdmin, c2)

	hub.Unsubscribe(9, c1)
	assert.Equal(t, 0, hub.SubscriberCount(9))
	assert.True(t, c1.closed)

	hub.Close()
	assert.True(t, c2.closed)
	assert.Equal(t, 0, hub.SubscriberCount(10))
}

func TestHubPublishesOnlyToAudienceRoles(t *testing.T) {
	hub := newTestHub()
	adminConn, hrConn, safetyConn := &fakeConn{}, &fakeConn{}, &fakeConn{}
	hub.Subscribe(1, domain.RoleAdmin, adminConn)
	hub.Subscribe(1, domain.RoleHR, hrConn)
	hub.Subscribe(1, domain.RoleSafety, safetyConn)

	hub.Publish(Event{
		EmployeeID: 1,
		Action:     ActionItemRenamed,
		Items:      []string{"p-7"},
		Audience:   []domain.Role{domain.RoleAdmin, domain.RoleHR},
	})

	assert.Len(t, adminConn.written, 1)
	assert.Len(t, hrConn.written, 1)
	assert.Empty(t, safetyConn.written)

	hub.Publish(Event{EmployeeID: 1, Action: ActionItemDeleted})
	assert.Len(t, adminConn.written, 1, "an event without audience reaches nobody")
	assert.Equal(t, 3, hub.SubscriberCount(1))
}

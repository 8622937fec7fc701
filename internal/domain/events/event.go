// Package events streams explorer changes to open browser views.
package events

import (
	"time"

	"atrium/internal/domain"
)

const (
	ActionFolderCreated = "folder.created"
	ActionItemRenamed   = "item.renamed"
	ActionFilesUploaded = "files.uploaded"
	ActionItemDeleted   = "item.deleted"
	ActionItemMoved     = "item.moved"
)

// Event tells subscribers that part of an employee's explorer changed.
type Event struct {
	EmployeeID int64     `json:"employeeId"`
	Action     string    `json:"action"`
	Items      []string  `json:"items"`
	ActorID    int64     `json:"actorId"`
	At         time.Time `json:"at"`

	// Audience lists the roles allowed to receive the event.
	Audience []domain.Role `json:"-"`
}

type Publisher interface {
	Publish(e Event)
}

// Nop discards events.
type Nop struct{}

func (Nop) Publish(Event) {}

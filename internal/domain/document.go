package domain

import "time"

// Document is a stored file of an employee. Important documents form a separate,
// folder-less collection and always have a nil ParentID.
type Document struct {
	ID             int64      `json:"id" gorm:"primaryKey"`
	EmployeeID     int64      `json:"employee_id" gorm:"not null;index:idx_documents_employee_active"`
	ParentID       *int64     `json:"parent_id,omitempty" gorm:"index"`
	Important      bool       `json:"important" gorm:"not null;default:false"`
	Name           string     `json:"name" gorm:"size:255;not null"`
	DocumentTypeID *int64     `json:"document_type_id,omitempty"`
	TypeLabel      string     `json:"type_label,omitempty" gorm:"size:120"`
	IssuedAt       *time.Time `json:"issued_at,omitempty"`
	ExpiresAt      *time.Time `json:"expires_at,omitempty"`
	StorageKey     string     `json:"-" gorm:"size:512;not null"`
	OriginalName   string     `json:"original_name" gorm:"size:255"`
	MimeType       string     `json:"mime_type" gorm:"size:127"`
	Size           int64      `json:"size"`
	OwnerRole      Role       `json:"owner_role" gorm:"not null;default:2"`
	Active         bool       `json:"active" gorm:"not null;default:true;index:idx_documents_employee_active"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	CreatedBy      int64      `json:"created_by"`
	UpdatedBy      int64      `json:"updated_by"`
}

func (Document) TableName() string { return "employee_documents" }

// DocumentType is an entry of the important-document category catalog.
type DocumentType struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:120;not null"`
	Active    bool      `json:"active" gorm:"not null;default:true"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (DocumentType) TableName() string { return "document_types" }

// Models lists every table managed by the service, in migration order.
func Models() []interface{} {
	return []interface{}{
		&User{},
		&Employee{},
		&DocumentType{},
		&Folder{},
		&Document{},
	}
}

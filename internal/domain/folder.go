package domain

import "time"

// Folder is a node of an employee's document explorer. ParentID nil means root.
type Folder struct {
	ID         int64     `json:"id" gorm:"primaryKey"`
	EmployeeID int64     `json:"employee_id" gorm:"not null;index:idx_folders_employee_active"`
	ParentID   *int64    `json:"parent_id,omitempty" gorm:"index"`
	Name       string    `json:"name" gorm:"size:255;not null"`
	OwnerRole  Role      `json:"owner_role" gorm:"not null;default:2"`
	Active     bool      `json:"active" gorm:"not null;default:true;index:idx_folders_employee_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	CreatedBy  int64     `json:"created_by"`
	UpdatedBy  int64     `json:"updated_by"`
}

func (Folder) TableName() string { return "employee_folders" }

func (f *Folder) IsRoot() bool {
	return f.ParentID == nil
}

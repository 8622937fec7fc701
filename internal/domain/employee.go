package domain

import "time"

// Employee owns every folder and document in the explorer.
type Employee struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	FullName     string    `json:"full_name" gorm:"size:200;not null"`
	Registration string    `json:"registration" gorm:"size:50;not null;uniqueIndex"`
	JobTitle     string    `json:"job_title,omitempty" gorm:"size:120"`
	Email        string    `json:"email,omitempty" gorm:"size:255"`
	Active       bool      `json:"active" gorm:"not null;default:true;index"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Employee) TableName() string { return "employees" }

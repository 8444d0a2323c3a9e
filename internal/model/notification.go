package model

import (
	"time"

	"gorm.io/gorm"
)

// Notification statuses
const (
	NotificationDraft = "draft"
	NotificationSent  = "sent"
)

// Notification is a console-authored announcement for tenants or users.
type Notification struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Title     string         `json:"title" gorm:"type:varchar(255);not null"`
	Message   string         `json:"message" gorm:"type:text"`
	Type      string         `json:"type" gorm:"type:varchar(20);default:'info'"` // info, warning, error, success
	Audience  string         `json:"audience" gorm:"type:varchar(50);default:'all'"`
	Status    string         `json:"status" gorm:"type:varchar(20);default:'draft';index"`
	SentAt    *time.Time     `json:"sent_at,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

package model

import (
	"time"

	"gorm.io/gorm"
)

// EmailTemplate is a named HTML mail template. TemplateType is unique so
// each system mail (welcome, credentials, status change) has one template.
type EmailTemplate struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	TemplateType string         `json:"template_type" gorm:"type:varchar(100);uniqueIndex"`
	Name         string         `json:"name" gorm:"type:varchar(100)"`
	Subject      string         `json:"subject" gorm:"type:varchar(255)"`
	Body         string         `json:"body" gorm:"type:text"`
	Variables    string         `json:"variables" gorm:"type:text"` // JSON array of placeholder names
	IsActive     bool           `json:"is_active" gorm:"default:true"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}

// NotificationTemplate is a reusable in-console notification body.
type NotificationTemplate struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Name      string         `json:"name" gorm:"type:varchar(100)"`
	Title     string         `json:"title" gorm:"type:varchar(255)"`
	Message   string         `json:"message" gorm:"type:text"`
	Type      string         `json:"type" gorm:"type:varchar(20);default:'info'"`
	IsActive  bool           `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

package model

import (
	"time"

	"gorm.io/gorm"
)

// Built-in role values. ADMIN bypasses custom role checks entirely.
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// User represents a console operator account
type User struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	Name         string         `json:"name" gorm:"type:varchar(100)"`
	Email        string         `json:"email" gorm:"type:varchar(100);uniqueIndex"`
	Password     string         `json:"-" gorm:"type:varchar(255)"`
	Role         string         `json:"role" gorm:"type:varchar(20);not null;default:'USER'"`
	CustomRoleID *uint          `json:"custom_role_id,omitempty" gorm:"index"`
	TenantID     *uint          `json:"tenant_id,omitempty" gorm:"index"`
	LastLoginAt  *time.Time     `json:"last_login_at,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	CustomRole *CustomRole `json:"custom_role,omitempty" gorm:"foreignKey:CustomRoleID"`
}

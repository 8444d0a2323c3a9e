package model

import (
	"time"

	"gorm.io/gorm"
)

// CustomRole is an admin-defined named permission set assignable to
// non-ADMIN users
type CustomRole struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Name        string         `json:"name" gorm:"type:varchar(100);uniqueIndex"`
	Description string         `json:"description" gorm:"type:text"`
	IsActive    bool           `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Permissions []RolePermission `json:"permissions,omitempty" gorm:"foreignKey:RoleID"`
}

// RolePermission holds the four action flags for one module within a role.
// The set is replaced wholesale on role update, never diffed.
type RolePermission struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	RoleID    uint      `json:"role_id" gorm:"index;not null"`
	Module    string    `json:"module" gorm:"type:varchar(100);not null"`
	CanView   bool      `json:"can_view" gorm:"default:false"`
	CanCreate bool      `json:"can_create" gorm:"default:false"`
	CanEdit   bool      `json:"can_edit" gorm:"default:false"`
	CanDelete bool      `json:"can_delete" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

package model

import (
	"time"
)

// Activity log outcome values
const (
	LogStatusSuccess = "success"
	LogStatusFailed  = "failed"
)

// ActivityLog is the append-only audit trail. Nearly every mutating
// operation writes one of these as a best-effort side effect.
type ActivityLog struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      *uint     `json:"user_id,omitempty" gorm:"index"`
	TenantID    *uint     `json:"tenant_id,omitempty" gorm:"index"`
	Action      string    `json:"action" gorm:"type:varchar(100);not null;index"`
	Module      string    `json:"module" gorm:"type:varchar(100);not null;index"`
	Description string    `json:"description" gorm:"type:text"`
	Status      string    `json:"status" gorm:"type:varchar(20);not null;default:'success';index"`
	IPAddress   string    `json:"ip_address" gorm:"type:varchar(45)"`
	UserAgent   string    `json:"user_agent" gorm:"type:varchar(255)"`
	Metadata    string    `json:"metadata,omitempty" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`

	// Relations
	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

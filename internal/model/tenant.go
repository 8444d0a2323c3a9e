package model

import (
	"time"

	"gorm.io/gorm"
)

// Tenant status values. Any (old, new) pair is a legal transition; the
// history trail records which pair was taken and why.
const (
	TenantStatusActive    = "ACTIVE"
	TenantStatusInactive  = "INACTIVE"
	TenantStatusPending   = "PENDING"
	TenantStatusSuspended = "SUSPENDED"
)

// TenantStatuses lists the accepted status values.
var TenantStatuses = []string{
	TenantStatusActive,
	TenantStatusInactive,
	TenantStatusPending,
	TenantStatusSuspended,
}

// Tenant represents a Lucky Draw customer organization
type Tenant struct {
	ID               uint       `json:"id" gorm:"primaryKey"`
	TenantCode       string     `json:"tenant_code" gorm:"type:varchar(20);uniqueIndex"`
	Name             string     `json:"name" gorm:"type:varchar(100)"`
	Email            string     `json:"email" gorm:"type:varchar(100);uniqueIndex"`
	Password         string     `json:"-" gorm:"type:varchar(255)"`
	Status           string     `json:"status" gorm:"type:varchar(20);not null;default:'PENDING';index"`
	SubscriptionPlan string     `json:"subscription_plan" gorm:"type:varchar(50)"`
	LastLoginAt      *time.Time `json:"last_login_at,omitempty"`

	// WhatsApp integration secrets, stored AES-encrypted ("ivhex:cipherhex")
	WhatsAppAPIKey            string `json:"-" gorm:"type:text"`
	WhatsAppPhoneNumberID     string `json:"-" gorm:"type:text"`
	WhatsAppBusinessAccountID string `json:"-" gorm:"type:text"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Users         []User                `json:"users,omitempty" gorm:"foreignKey:TenantID"`
	StatusHistory []TenantStatusHistory `json:"status_history,omitempty" gorm:"foreignKey:TenantID"`
}

// TenantStatusHistory is an append-only record of a status transition.
// Rows are never updated or deleted.
type TenantStatusHistory struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	TenantID  uint      `json:"tenant_id" gorm:"index;not null"`
	OldStatus string    `json:"old_status" gorm:"type:varchar(20);not null"`
	NewStatus string    `json:"new_status" gorm:"type:varchar(20);not null"`
	Reason    string    `json:"reason" gorm:"type:text;not null"`
	ChangedBy uint      `json:"changed_by" gorm:"not null"`
	IPAddress string    `json:"ip_address" gorm:"type:varchar(45)"`
	UserAgent string    `json:"user_agent" gorm:"type:varchar(255)"`
	CreatedAt time.Time `json:"created_at"`
}

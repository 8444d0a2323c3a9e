package model

import (
	"time"
)

// Session records an issued authentication token and its device metadata.
// The token itself is the lookup key.
type Session struct {
	ID            uint       `json:"id" gorm:"primaryKey"`
	UserID        uint       `json:"user_id" gorm:"index;not null"`
	Token         string     `json:"-" gorm:"type:text;uniqueIndex"`
	Device        string     `json:"device" gorm:"type:varchar(100)"`
	Browser       string     `json:"browser" gorm:"type:varchar(100)"`
	OS            string     `json:"os" gorm:"type:varchar(100)"`
	IPAddress     string     `json:"ip_address" gorm:"type:varchar(45)"`
	IsActive      bool       `json:"is_active" gorm:"default:true;index"`
	LastActivity  time.Time  `json:"last_activity"`
	ExpiresAt     time.Time  `json:"expires_at" gorm:"index"`
	RevokedAt     *time.Time `json:"revoked_at,omitempty"`
	RevokedBy     *uint      `json:"revoked_by,omitempty"`
	RevokedReason string     `json:"revoked_reason,omitempty" gorm:"type:text"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	// Relations
	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

package model

import (
	"time"
)

// SystemSetting is a typed key/value configuration entry. (category, key)
// is unique; every update snapshots the prior value into SettingHistory.
type SystemSetting struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Category    string    `json:"category" gorm:"type:varchar(100);not null;uniqueIndex:idx_settings_category_key"`
	Key         string    `json:"key" gorm:"type:varchar(100);not null;uniqueIndex:idx_settings_category_key"`
	Value       string    `json:"value" gorm:"type:text"`
	ValueType   string    `json:"value_type" gorm:"type:varchar(20);default:'string'"` // string, number, boolean, json
	Description string    `json:"description" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SettingHistory snapshots a setting's prior value before an overwrite.
type SettingHistory struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	SettingID uint      `json:"setting_id" gorm:"index;not null"`
	OldValue  string    `json:"old_value" gorm:"type:text"`
	NewValue  string    `json:"new_value" gorm:"type:text"`
	ChangedBy uint      `json:"changed_by"`
	CreatedAt time.Time `json:"created_at"`
}

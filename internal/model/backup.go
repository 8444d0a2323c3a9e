package model

import (
	"time"
)

// Backup statuses
const (
	BackupInProgress = "in_progress"
	BackupCompleted  = "completed"
	BackupFailed     = "failed"
)

// Backup records a (simulated) backup job. Completion is flipped by a
// timer after creation; a restart while in_progress strands the row.
type Backup struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	FileName    string     `json:"file_name" gorm:"type:varchar(255)"`
	Type        string     `json:"type" gorm:"type:varchar(20);default:'manual'"` // manual, scheduled
	Status      string     `json:"status" gorm:"type:varchar(20);default:'in_progress';index"`
	Size        int64      `json:"size"`
	Notes       string     `json:"notes" gorm:"type:text"`
	CreatedBy   uint       `json:"created_by"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

package service

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/inkerrobotics/luckydraw-admin/internal/model"
	"github.com/inkerrobotics/luckydraw-admin/pkg/apperr"
	"github.com/inkerrobotics/luckydraw-admin/prometheus"
)

// CleaningService reports table sizes and prunes aged operational data.
// Runs are manual, triggered from the settings screen.
type CleaningService struct {
	db       *gorm.DB
	activity *ActivityService
}

// NewCleaningService creates a CleaningService.
func NewCleaningService(db *gorm.DB, activity *ActivityService) *CleaningService {
	return &CleaningService{db: db, activity: activity}
}

// Stats holds per-table row counts.
type Stats struct {
	ActivityLogs     int64 `json:"activity_logs"`
	Sessions         int64 `json:"sessions"`
	InactiveSessions int64 `json:"inactive_sessions"`
	Notifications    int64 `json:"notifications"`
	SettingHistory   int64 `json:"setting_history"`
}

// GetStats counts the prunable tables.
func (s *CleaningService) GetStats() (*Stats, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var stats Stats
	if err := s.db.Model(&model.ActivityLog{}).Count(&stats.ActivityLogs).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&model.Session{}).Count(&stats.Sessions).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&model.Session{}).Where("is_active = ?", false).Count(&stats.InactiveSessions).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&model.Notification{}).Count(&stats.Notifications).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&model.SettingHistory{}).Count(&stats.SettingHistory).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}

// RunResult reports how many rows each table lost.
type RunResult struct {
	ActivityLogs  int64 `json:"activity_logs"`
	Sessions      int64 `json:"sessions"`
	Notifications int64 `json:"notifications"`
}

// Run deletes activity logs, inactive sessions and sent notifications
// older than the given number of days.
func (s *CleaningService) Run(olderThanDays int, actorID uint) (*RunResult, error) {
	if olderThanDays <= 0 {
		return nil, apperr.BadRequest("older_than_days must be positive")
	}

	cutoff := time.Now().AddDate(0, 0, -olderThanDays)
	defer prometheus.TrackDBOperation("delete")(time.Now())

	var result RunResult

	res := s.db.Where("created_at < ?", cutoff).Delete(&model.ActivityLog{})
	if res.Error != nil {
		return nil, res.Error
	}
	result.ActivityLogs = res.RowsAffected

	res = s.db.Where("is_active = ? AND created_at < ?", false, cutoff).Delete(&model.Session{})
	if res.Error != nil {
		return nil, res.Error
	}
	result.Sessions = res.RowsAffected

	res = s.db.Where("status = ? AND created_at < ?", model.NotificationSent, cutoff).Delete(&model.Notification{})
	if res.Error != nil {
		return nil, res.Error
	}
	result.Notifications = res.RowsAffected

	s.activity.Log(LogEntry{
		UserID: &actorID,
		Action: "cleanup",
		Module: "DataCleaning",
		Description: fmt.Sprintf("Removed %d logs, %d sessions, %d notifications older than %d days",
			result.ActivityLogs, result.Sessions, result.Notifications, olderThanDays),
	})

	return &result, nil
}

package service

import (
	"time"

	"gorm.io/gorm"

	"github.com/inkerrobotics/luckydraw-admin/internal/model"
	"github.com/inkerrobotics/luckydraw-admin/prometheus"
)

// AnalyticsService computes the dashboard and analytics aggregates.
type AnalyticsService struct {
	db *gorm.DB
}

// NewAnalyticsService creates an AnalyticsService.
func NewAnalyticsService(db *gorm.DB) *AnalyticsService {
	return &AnalyticsService{db: db}
}

// DashboardStats is the headline aggregate view.
type DashboardStats struct {
	TotalTenants    int64            `json:"total_tenants"`
	TenantsByStatus map[string]int64 `json:"tenants_by_status"`
	TotalUsers      int64            `json:"total_users"`
	ActiveSessions  int64            `json:"active_sessions"`
	TotalBackups    int64            `json:"total_backups"`
	RecentActivity  int64            `json:"recent_activity_24h"`
}

// Dashboard counts the headline aggregates.
func (s *AnalyticsService) Dashboard() (*DashboardStats, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	stats := DashboardStats{TenantsByStatus: map[string]int64{}}

	if err := s.db.Model(&model.Tenant{}).Count(&stats.TotalTenants).Error; err != nil {
		return nil, err
	}
	for _, status := range model.TenantStatuses {
		var n int64
		if err := s.db.Model(&model.Tenant{}).Where("status = ?", status).Count(&n).Error; err != nil {
			return nil, err
		}
		stats.TenantsByStatus[status] = n
		prometheus.TenantsByStatusGauge.WithLabelValues(status).Set(float64(n))
	}
	if err := s.db.Model(&model.User{}).Count(&stats.TotalUsers).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&model.Session{}).Where("is_active = ?", true).Count(&stats.ActiveSessions).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&model.Backup{}).Count(&stats.TotalBackups).Error; err != nil {
		return nil, err
	}
	since := time.Now().Add(-24 * time.Hour)
	if err := s.db.Model(&model.ActivityLog{}).Where("created_at >= ?", since).Count(&stats.RecentActivity).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}

// DailyCount is one day's aggregate.
type DailyCount struct {
	Day   time.Time `json:"day"`
	Count int64     `json:"count"`
}

// LoginTrend returns daily login counts over the last N days.
func (s *AnalyticsService) LoginTrend(days int) ([]DailyCount, error) {
	if days <= 0 {
		days = 30
	}
	since := time.Now().AddDate(0, 0, -days)

	var rows []DailyCount
	err := s.db.Model(&model.ActivityLog{}).
		Select("date_trunc('day', created_at) AS day, count(*) AS count").
		Where("action = ? AND status = ? AND created_at >= ?", "login", model.LogStatusSuccess, since).
		Group("day").
		Order("day ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// TenantGrowth returns daily tenant signups over the last N days.
func (s *AnalyticsService) TenantGrowth(days int) ([]DailyCount, error) {
	if days <= 0 {
		days = 30
	}
	since := time.Now().AddDate(0, 0, -days)

	var rows []DailyCount
	err := s.db.Model(&model.Tenant{}).
		Select("date_trunc('day', created_at) AS day, count(*) AS count").
		Where("created_at >= ?", since).
		Group("day").
		Order("day ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

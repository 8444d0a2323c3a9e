package service

import (
	"bytes"
	"encoding/csv"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/inkerrobotics/luckydraw-admin/internal/model"
	"github.com/inkerrobotics/luckydraw-admin/pkg/logger"
	"github.com/inkerrobotics/luckydraw-admin/prometheus"
)

// ActivityService is the append-only audit sink. Writes are best-effort:
// a failed log write never fails the operation that triggered it.
type ActivityService struct {
	db *gorm.DB
}

// NewActivityService creates an ActivityService over the given database.
func NewActivityService(db *gorm.DB) *ActivityService {
	return &ActivityService{db: db}
}

// LogEntry carries one audit record.
type LogEntry struct {
	UserID      *uint
	TenantID    *uint
	Action      string
	Module      string
	Description string
	Status      string
	IPAddress   string
	UserAgent   string
	Metadata    string
}

// Log appends one activity row. Errors are logged and swallowed.
func (s *ActivityService) Log(entry LogEntry) {
	if entry.Status == "" {
		entry.Status = model.LogStatusSuccess
	}

	row := model.ActivityLog{
		UserID:      entry.UserID,
		TenantID:    entry.TenantID,
		Action:      entry.Action,
		Module:      entry.Module,
		Description: entry.Description,
		Status:      entry.Status,
		IPAddress:   entry.IPAddress,
		UserAgent:   entry.UserAgent,
		Metadata:    entry.Metadata,
	}

	if err := s.db.Create(&row).Error; err != nil {
		logger.GetLogger().Warn("Failed to write activity log",
			zap.String("action", entry.Action),
			zap.String("module", entry.Module),
			zap.Error(err))
		return
	}

	prometheus.RecordActivityLog(entry.Module, entry.Status)
}

// LogFilter narrows activity log listings.
type LogFilter struct {
	Module string
	Action string
	Status string
	UserID *uint
	From   *time.Time
	To     *time.Time
	Page   int
	Limit  int
}

func (s *ActivityService) filtered(f LogFilter) *gorm.DB {
	q := s.db.Model(&model.ActivityLog{})
	if f.Module != "" {
		q = q.Where("module = ?", f.Module)
	}
	if f.Action != "" {
		q = q.Where("action = ?", f.Action)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.UserID != nil {
		q = q.Where("user_id = ?", *f.UserID)
	}
	if f.From != nil {
		q = q.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("created_at <= ?", *f.To)
	}
	return q
}

// List returns a page of activity logs plus the filtered total.
func (s *ActivityService) List(f LogFilter) ([]model.ActivityLog, int64, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var total int64
	if err := s.filtered(f).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if f.Limit <= 0 {
		f.Limit = 50
	}
	if f.Page <= 0 {
		f.Page = 1
	}

	var logs []model.ActivityLog
	err := s.filtered(f).
		Preload("User").
		Order("created_at DESC").
		Offset((f.Page - 1) * f.Limit).
		Limit(f.Limit).
		Find(&logs).Error
	if err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}

// ExportCSV renders the filtered logs as CSV.
func (s *ActivityService) ExportCSV(f LogFilter) ([]byte, error) {
	f.Page = 0
	f.Limit = 0

	var logs []model.ActivityLog
	err := s.filtered(f).Preload("User").Order("created_at DESC").Find(&logs).Error
	if err != nil {
		return nil, err
	}

	return BuildActivityCSV(logs)
}

// BuildActivityCSV renders activity logs as CSV. encoding/csv quotes
// embedded commas and newlines, so free-text descriptions cannot break the
// row structure.
func BuildActivityCSV(logs []model.ActivityLog) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"Date", "User", "Action", "Module", "Description", "IP Address", "Status"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, entry := range logs {
		user := ""
		if entry.User != nil {
			user = entry.User.Email
		}
		record := []string{
			entry.CreatedAt.Format(time.RFC3339),
			user,
			entry.Action,
			entry.Module,
			entry.Description,
			entry.IPAddress,
			entry.Status,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

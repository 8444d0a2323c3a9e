package service

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/inkerrobotics/luckydraw-admin/internal/model"
	"github.com/inkerrobotics/luckydraw-admin/pkg/apperr"
	"github.com/inkerrobotics/luckydraw-admin/prometheus"
)

// NotificationService manages console announcements.
type NotificationService struct {
	db       *gorm.DB
	activity *ActivityService
}

// NewNotificationService creates a NotificationService.
func NewNotificationService(db *gorm.DB, activity *ActivityService) *NotificationService {
	return &NotificationService{db: db, activity: activity}
}

// CreateNotificationInput carries notification fields.
type CreateNotificationInput struct {
	Title    string
	Message  string
	Type     string
	Audience string
}

// Create stores a draft notification.
func (s *NotificationService) Create(in CreateNotificationInput, actorID uint) (*model.Notification, error) {
	defer prometheus.TrackDBOperation("insert")(time.Now())

	if in.Type == "" {
		in.Type = "info"
	}
	if in.Audience == "" {
		in.Audience = "all"
	}

	notification := model.Notification{
		Title:    in.Title,
		Message:  in.Message,
		Type:     in.Type,
		Audience: in.Audience,
		Status:   model.NotificationDraft,
	}

	if err := s.db.Create(&notification).Error; err != nil {
		return nil, err
	}

	s.activity.Log(LogEntry{
		UserID:      &actorID,
		Action:      "create",
		Module:      "Notifications",
		Description: fmt.Sprintf("Created notification %q", in.Title),
	})

	return &notification, nil
}

// List returns notifications plus status counts.
func (s *NotificationService) List(status string, page, limit int) ([]model.Notification, int64, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	q := s.db.Model(&model.Notification{})
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit <= 0 {
		limit = 20
	}
	if page <= 0 {
		page = 1
	}

	var notifications []model.Notification
	err := q.Order("created_at DESC").Offset((page - 1) * limit).Limit(limit).Find(&notifications).Error
	if err != nil {
		return nil, 0, err
	}
	return notifications, total, nil
}

// Get loads one notification.
func (s *NotificationService) Get(id uint) (*model.Notification, error) {
	var notification model.Notification
	if err := s.db.First(&notification, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.NotFound("notification not found")
		}
		return nil, err
	}
	return &notification, nil
}

// Send marks a draft notification as sent.
func (s *NotificationService) Send(id uint, actorID uint) (*model.Notification, error) {
	notification, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if notification.Status == model.NotificationSent {
		return nil, apperr.BadRequest("notification has already been sent")
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":  model.NotificationSent,
		"sent_at": now,
	}
	if err := s.db.Model(notification).Updates(updates).Error; err != nil {
		return nil, err
	}
	notification.Status = model.NotificationSent
	notification.SentAt = &now

	s.activity.Log(LogEntry{
		UserID:      &actorID,
		Action:      "send",
		Module:      "Notifications",
		Description: fmt.Sprintf("Sent notification %q to %s", notification.Title, notification.Audience),
	})

	return notification, nil
}

// Delete removes a notification.
func (s *NotificationService) Delete(id uint, actorID uint) error {
	notification, err := s.Get(id)
	if err != nil {
		return err
	}

	if err := s.db.Delete(notification).Error; err != nil {
		return err
	}

	s.activity.Log(LogEntry{
		UserID:      &actorID,
		Action:      "delete",
		Module:      "Notifications",
		Description: fmt.Sprintf("Deleted notification %q", notification.Title),
	})
	return nil
}

// NotificationTemplateInput carries reusable notification body fields.
type NotificationTemplateInput struct {
	Name     string
	Title    string
	Message  string
	Type     string
	IsActive bool
}

// CreateTemplate stores a reusable notification template.
func (s *NotificationService) CreateTemplate(in NotificationTemplateInput, actorID uint) (*model.NotificationTemplate, error) {
	defer prometheus.TrackDBOperation("insert")(time.Now())

	if in.Type == "" {
		in.Type = "info"
	}

	template := model.NotificationTemplate{
		Name:     in.Name,
		Title:    in.Title,
		Message:  in.Message,
		Type:     in.Type,
		IsActive: in.IsActive,
	}

	if err := s.db.Create(&template).Error; err != nil {
		return nil, err
	}

	s.activity.Log(LogEntry{
		UserID:      &actorID,
		Action:      "create",
		Module:      "Notifications",
		Description: fmt.Sprintf("Created notification template %q", in.Name),
	})

	return &template, nil
}

// ListTemplates returns all notification templates.
func (s *NotificationService) ListTemplates() ([]model.NotificationTemplate, error) {
	var templates []model.NotificationTemplate
	if err := s.db.Order("name ASC").Find(&templates).Error; err != nil {
		return nil, err
	}
	return templates, nil
}

// GetTemplate loads one notification template.
func (s *NotificationService) GetTemplate(id uint) (*model.NotificationTemplate, error) {
	var template model.NotificationTemplate
	if err := s.db.First(&template, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.NotFound("notification template not found")
		}
		return nil, err
	}
	return &template, nil
}

// UpdateTemplate overwrites a notification template.
func (s *NotificationService) UpdateTemplate(id uint, in NotificationTemplateInput, actorID uint) (*model.NotificationTemplate, error) {
	template, err := s.GetTemplate(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"name":      in.Name,
		"title":     in.Title,
		"message":   in.Message,
		"type":      in.Type,
		"is_active": in.IsActive,
	}
	if err := s.db.Model(template).Updates(updates).Error; err != nil {
		return nil, err
	}

	s.activity.Log(LogEntry{
		UserID:      &actorID,
		Action:      "update",
		Module:      "Notifications",
		Description: fmt.Sprintf("Updated notification template %q", in.Name),
	})

	return s.GetTemplate(id)
}

// DeleteTemplate removes a notification template.
func (s *NotificationService) DeleteTemplate(id uint, actorID uint) error {
	template, err := s.GetTemplate(id)
	if err != nil {
		return err
	}

	if err := s.db.Delete(template).Error; err != nil {
		return err
	}

	s.activity.Log(LogEntry{
		UserID:      &actorID,
		Action:      "delete",
		Module:      "Notifications",
		Description: fmt.Sprintf("Deleted notification template %q", template.Name),
	})
	return nil
}

// Counts returns totals per status.
func (s *NotificationService) Counts() (map[string]int64, error) {
	counts := map[string]int64{}
	for _, status := range []string{model.NotificationDraft, model.NotificationSent} {
		var n int64
		if err := s.db.Model(&model.Notification{}).Where("status = ?", status).Count(&n).Error; err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, nil
}

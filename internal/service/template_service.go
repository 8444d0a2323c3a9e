package service

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/inkerrobotics/luckydraw-admin/internal/model"
	"github.com/inkerrobotics/luckydraw-admin/pkg/apperr"
	"github.com/inkerrobotics/luckydraw-admin/prometheus"
)

// TemplateService manages email templates. Each template type exists at
// most once.
type TemplateService struct {
	db       *gorm.DB
	activity *ActivityService
}

// NewTemplateService creates a TemplateService.
func NewTemplateService(db *gorm.DB, activity *ActivityService) *TemplateService {
	return &TemplateService{db: db, activity: activity}
}

// TemplateInput carries email template fields.
type TemplateInput struct {
	TemplateType string
	Name         string
	Subject      string
	Body         string
	Variables    string
	IsActive     bool
}

// Create registers a template for a not-yet-used type.
func (s *TemplateService) Create(in TemplateInput, actorID uint) (*model.EmailTemplate, error) {
	defer prometheus.TrackDBOperation("insert")(time.Now())

	var existing model.EmailTemplate
	if err := s.db.Where("template_type = ?", in.TemplateType).First(&existing).Error; err == nil {
		return nil, apperr.BadRequest("a template for this type already exists")
	}

	template := model.EmailTemplate{
		TemplateType: in.TemplateType,
		Name:         in.Name,
		Subject:      in.Subject,
		Body:         in.Body,
		Variables:    in.Variables,
		IsActive:     in.IsActive,
	}

	if err := s.db.Create(&template).Error; err != nil {
		return nil, err
	}

	s.activity.Log(LogEntry{
		UserID:      &actorID,
		Action:      "create",
		Module:      "EmailTemplates",
		Description: fmt.Sprintf("Created email template %s (%s)", in.Name, in.TemplateType),
	})

	return &template, nil
}

// List returns all templates.
func (s *TemplateService) List() ([]model.EmailTemplate, error) {
	var templates []model.EmailTemplate
	if err := s.db.Order("template_type ASC").Find(&templates).Error; err != nil {
		return nil, err
	}
	return templates, nil
}

// Get loads one template.
func (s *TemplateService) Get(id uint) (*model.EmailTemplate, error) {
	var template model.EmailTemplate
	if err := s.db.First(&template, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.NotFound("email template not found")
		}
		return nil, err
	}
	return &template, nil
}

// Update edits a template.
func (s *TemplateService) Update(id uint, in TemplateInput, actorID uint) (*model.EmailTemplate, error) {
	template, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"name":      in.Name,
		"subject":   in.Subject,
		"body":      in.Body,
		"variables": in.Variables,
		"is_active": in.IsActive,
	}
	if err := s.db.Model(template).Updates(updates).Error; err != nil {
		return nil, err
	}

	s.activity.Log(LogEntry{
		UserID:      &actorID,
		Action:      "update",
		Module:      "EmailTemplates",
		Description: fmt.Sprintf("Updated email template %s", template.TemplateType),
	})

	return s.Get(id)
}

// Delete removes a template.
func (s *TemplateService) Delete(id uint, actorID uint) error {
	template, err := s.Get(id)
	if err != nil {
		return err
	}

	if err := s.db.Delete(template).Error; err != nil {
		return err
	}

	s.activity.Log(LogEntry{
		UserID:      &actorID,
		Action:      "delete",
		Module:      "EmailTemplates",
		Description: fmt.Sprintf("Deleted email template %s", template.TemplateType),
	})
	return nil
}

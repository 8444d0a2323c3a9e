package service

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/inkerrobotics/luckydraw-admin/internal/model"
	"github.com/inkerrobotics/luckydraw-admin/pkg/apperr"
	"github.com/inkerrobotics/luckydraw-admin/prometheus"
)

// SettingService manages typed key/value configuration with change
// history.
type SettingService struct {
	db       *gorm.DB
	activity *ActivityService
}

// NewSettingService creates a SettingService.
func NewSettingService(db *gorm.DB, activity *ActivityService) *SettingService {
	return &SettingService{db: db, activity: activity}
}

func validateValueType(valueType, value string) error {
	switch valueType {
	case "", "string":
		return nil
	case "number":
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			return apperr.BadRequest("value is not a valid number")
		}
	case "boolean":
		if _, err := strconv.ParseBool(value); err != nil {
			return apperr.BadRequest("value is not a valid boolean")
		}
	case "json":
		if !json.Valid([]byte(value)) {
			return apperr.BadRequest("value is not valid JSON")
		}
	default:
		return apperr.BadRequest("value_type must be string, number, boolean or json")
	}
	return nil
}

// List returns settings, optionally scoped to one category.
func (s *SettingService) List(category string) ([]model.SystemSetting, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	q := s.db.Model(&model.SystemSetting{}).Order("category ASC, key ASC")
	if category != "" {
		q = q.Where("category = ?", category)
	}

	var settings []model.SystemSetting
	if err := q.Find(&settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}

// Upsert writes a setting. On update the prior value is snapshotted into
// SettingHistory before the overwrite, inside one transaction.
func (s *SettingService) Upsert(category, key, value, valueType, description string, changedBy uint) (*model.SystemSetting, error) {
	if err := validateValueType(valueType, value); err != nil {
		return nil, err
	}
	if valueType == "" {
		valueType = "string"
	}

	var setting model.SystemSetting
	err := s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("category = ? AND key = ?", category, key).First(&setting)
		if result.Error != nil {
			if result.Error != gorm.ErrRecordNotFound {
				return result.Error
			}
			setting = model.SystemSetting{
				Category:    category,
				Key:         key,
				Value:       value,
				ValueType:   valueType,
				Description: description,
			}
			return tx.Create(&setting).Error
		}

		history := model.SettingHistory{
			SettingID: setting.ID,
			OldValue:  setting.Value,
			NewValue:  value,
			ChangedBy: changedBy,
		}
		if err := tx.Create(&history).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{
			"value":      value,
			"value_type": valueType,
		}
		if description != "" {
			updates["description"] = description
		}
		if err := tx.Model(&setting).Updates(updates).Error; err != nil {
			return err
		}
		setting.Value = value
		setting.ValueType = valueType
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.activity.Log(LogEntry{
		UserID:      &changedBy,
		Action:      "update",
		Module:      "Settings",
		Description: fmt.Sprintf("Updated setting %s.%s", category, key),
	})

	return &setting, nil
}

// History returns the change trail of one setting, newest first.
func (s *SettingService) History(settingID uint) ([]model.SettingHistory, error) {
	var setting model.SystemSetting
	if err := s.db.First(&setting, settingID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.NotFound("setting not found")
		}
		return nil, err
	}

	var history []model.SettingHistory
	err := s.db.Where("setting_id = ?", settingID).Order("created_at DESC").Find(&history).Error
	if err != nil {
		return nil, err
	}
	return history, nil
}

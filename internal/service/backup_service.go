package service

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/inkerrobotics/luckydraw-admin/internal/model"
	"github.com/inkerrobotics/luckydraw-admin/pkg/apperr"
	"github.com/inkerrobotics/luckydraw-admin/pkg/logger"
)

// BackupService manages (simulated) backup jobs. A created backup is
// flipped to completed by an in-process timer; pending timers are not
// persisted, so a restart strands in_progress rows.
type BackupService struct {
	db              *gorm.DB
	activity        *ActivityService
	completionDelay time.Duration
}

// NewBackupService creates a BackupService.
func NewBackupService(db *gorm.DB, activity *ActivityService, completionDelay time.Duration) *BackupService {
	return &BackupService{db: db, activity: activity, completionDelay: completionDelay}
}

// Create inserts an in_progress backup row and schedules the simulated
// completion.
func (s *BackupService) Create(backupType, notes string, actorID uint) (*model.Backup, error) {
	if backupType == "" {
		backupType = "manual"
	}

	backup := model.Backup{
		FileName:  fmt.Sprintf("backup-%s-%s.sql.gz", time.Now().Format("20060102-150405"), uuid.New().String()[:8]),
		Type:      backupType,
		Status:    model.BackupInProgress,
		Notes:     notes,
		CreatedBy: actorID,
	}

	if err := s.db.Create(&backup).Error; err != nil {
		return nil, err
	}

	s.activity.Log(LogEntry{
		UserID:      &actorID,
		Action:      "create",
		Module:      "Backups",
		Description: fmt.Sprintf("Started %s backup %s", backupType, backup.FileName),
	})

	id := backup.ID
	time.AfterFunc(s.completionDelay, func() {
		s.complete(id)
	})

	return &backup, nil
}

func (s *BackupService) complete(id uint) {
	now := time.Now()
	updates := map[string]interface{}{
		"status":       model.BackupCompleted,
		"size":         int64(1<<20 + rand.Intn(64<<20)),
		"completed_at": now,
	}
	err := s.db.Model(&model.Backup{}).
		Where("id = ? AND status = ?", id, model.BackupInProgress).
		Updates(updates).Error
	if err != nil {
		logger.GetLogger().Warn("Failed to mark backup completed",
			zap.Uint("backup_id", id),
			zap.Error(err))
	}
}

// List returns backups, newest first.
func (s *BackupService) List(page, limit int) ([]model.Backup, int64, error) {
	var total int64
	if err := s.db.Model(&model.Backup{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit <= 0 {
		limit = 20
	}
	if page <= 0 {
		page = 1
	}

	var backups []model.Backup
	err := s.db.Order("created_at DESC").Offset((page - 1) * limit).Limit(limit).Find(&backups).Error
	if err != nil {
		return nil, 0, err
	}
	return backups, total, nil
}

// Delete removes a backup record.
func (s *BackupService) Delete(id uint, actorID uint) error {
	var backup model.Backup
	if err := s.db.First(&backup, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperr.NotFound("backup not found")
		}
		return err
	}

	if err := s.db.Delete(&backup).Error; err != nil {
		return err
	}

	s.activity.Log(LogEntry{
		UserID:      &actorID,
		Action:      "delete",
		Module:      "Backups",
		Description: fmt.Sprintf("Deleted backup %s", backup.FileName),
	})
	return nil
}

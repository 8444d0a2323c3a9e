package service

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/inkerrobotics/luckydraw-admin/internal/model"
	"github.com/inkerrobotics/luckydraw-admin/pkg/apperr"
	"github.com/inkerrobotics/luckydraw-admin/pkg/logger"
	"github.com/inkerrobotics/luckydraw-admin/pkg/mailer"
	"github.com/inkerrobotics/luckydraw-admin/prometheus"
)

// UserService manages console operator accounts.
type UserService struct {
	db       *gorm.DB
	mail     *mailer.Mailer
	activity *ActivityService
}

// NewUserService creates a UserService.
func NewUserService(db *gorm.DB, mail *mailer.Mailer, activity *ActivityService) *UserService {
	return &UserService{db: db, mail: mail, activity: activity}
}

// CreateUserInput carries user creation fields.
type CreateUserInput struct {
	Name         string
	Email        string
	Password     string
	Role         string
	CustomRoleID *uint
	TenantID     *uint
	SendEmail    bool
}

// Create registers a user. When SendEmail is set the temporary password is
// mailed out after the row commits; a delivery failure is logged, never
// rolled back.
func (s *UserService) Create(in CreateUserInput, actorID uint, ipAddress string) (*model.User, error) {
	defer prometheus.TrackDBOperation("insert")(time.Now())

	var existing model.User
	if err := s.db.Where("email = ?", in.Email).First(&existing).Error; err == nil {
		return nil, apperr.BadRequest("a user with this email already exists")
	}

	if in.Role == "" {
		in.Role = model.RoleUser
	}
	if in.Role != model.RoleAdmin && in.Role != model.RoleUser {
		return nil, apperr.BadRequest("role must be ADMIN or USER")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Internal("failed to hash password")
	}

	user := model.User{
		Name:         in.Name,
		Email:        in.Email,
		Password:     string(hashed),
		Role:         in.Role,
		CustomRoleID: in.CustomRoleID,
		TenantID:     in.TenantID,
	}

	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}

	if in.SendEmail {
		if err := s.mail.SendTemporaryCredentials(user.Email, user.Name, in.Password); err != nil {
			logger.GetLogger().Warn("Failed to send credentials email",
				zap.String("email", user.Email),
				zap.Error(err))
		}
	}

	s.activity.Log(LogEntry{
		UserID:      &actorID,
		Action:      "create",
		Module:      "Users",
		Description: fmt.Sprintf("Created user %s with role %s", user.Email, user.Role),
		IPAddress:   ipAddress,
	})

	return &user, nil
}

// List returns users with their custom roles.
func (s *UserService) List(page, limit int) ([]model.User, int64, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var total int64
	if err := s.db.Model(&model.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit <= 0 {
		limit = 20
	}
	if page <= 0 {
		page = 1
	}

	var users []model.User
	err := s.db.Preload("CustomRole").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// Get loads one user with the custom role and its permission set.
func (s *UserService) Get(id uint) (*model.User, error) {
	var user model.User
	if err := s.db.Preload("CustomRole.Permissions").First(&user, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.NotFound("user not found")
		}
		return nil, err
	}
	return &user, nil
}

// UpdateUserInput carries editable user fields.
type UpdateUserInput struct {
	Name         *string
	Email        *string
	Role         *string
	CustomRoleID *uint
	TenantID     *uint
}

// Update edits user fields.
func (s *UserService) Update(id uint, in UpdateUserInput, actorID uint, ipAddress string) (*model.User, error) {
	user, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if in.Name != nil {
		updates["name"] = *in.Name
	}
	if in.Email != nil {
		updates["email"] = *in.Email
	}
	if in.Role != nil {
		if *in.Role != model.RoleAdmin && *in.Role != model.RoleUser {
			return nil, apperr.BadRequest("role must be ADMIN or USER")
		}
		updates["role"] = *in.Role
	}
	if in.CustomRoleID != nil {
		updates["custom_role_id"] = *in.CustomRoleID
	}
	if in.TenantID != nil {
		updates["tenant_id"] = *in.TenantID
	}

	if len(updates) > 0 {
		defer prometheus.TrackDBOperation("update")(time.Now())
		if err := s.db.Model(user).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	s.activity.Log(LogEntry{
		UserID:      &actorID,
		Action:      "update",
		Module:      "Users",
		Description: fmt.Sprintf("Updated user %s", user.Email),
		IPAddress:   ipAddress,
	})

	return s.Get(id)
}

// Delete removes a user. ADMIN accounts cannot be deleted.
func (s *UserService) Delete(id uint, actorID uint, ipAddress string) error {
	user, err := s.Get(id)
	if err != nil {
		return err
	}

	if user.Role == model.RoleAdmin {
		return apperr.Forbidden("admin users cannot be deleted")
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())
	if err := s.db.Delete(user).Error; err != nil {
		return err
	}

	s.activity.Log(LogEntry{
		UserID:      &actorID,
		Action:      "delete",
		Module:      "Users",
		Description: fmt.Sprintf("Deleted user %s", user.Email),
		IPAddress:   ipAddress,
	})
	return nil
}

// ChangePassword verifies the current bcrypt hash and stores a new one.
func (s *UserService) ChangePassword(id uint, currentPassword, newPassword string) error {
	user, err := s.Get(id)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(currentPassword)); err != nil {
		return apperr.BadRequest("current password is incorrect")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperr.Internal("failed to hash password")
	}

	if err := s.db.Model(user).Update("password", string(hashed)).Error; err != nil {
		return err
	}

	s.activity.Log(LogEntry{
		UserID:      &user.ID,
		Action:      "change_password",
		Module:      "Users",
		Description: fmt.Sprintf("User %s changed their password", user.Email),
	})
	return nil
}

package service

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/inkerrobotics/luckydraw-admin/internal/model"
	"github.com/inkerrobotics/luckydraw-admin/pkg/apperr"
	"github.com/inkerrobotics/luckydraw-admin/prometheus"
)

// Permission actions
const (
	ActionView   = "view"
	ActionCreate = "create"
	ActionEdit   = "edit"
	ActionDelete = "delete"
)

// RoleService manages custom roles and evaluates effective permissions.
type RoleService struct {
	db       *gorm.DB
	activity *ActivityService
}

// NewRoleService creates a RoleService.
func NewRoleService(db *gorm.DB, activity *ActivityService) *RoleService {
	return &RoleService{db: db, activity: activity}
}

// PermissionInput carries the four flags for one module.
type PermissionInput struct {
	Module    string `json:"module" validate:"required"`
	CanView   bool   `json:"can_view"`
	CanCreate bool   `json:"can_create"`
	CanEdit   bool   `json:"can_edit"`
	CanDelete bool   `json:"can_delete"`
}

// Create registers a new role with its permission set.
func (s *RoleService) Create(name, description string, perms []PermissionInput, actorID uint) (*model.CustomRole, error) {
	defer prometheus.TrackDBOperation("insert")(time.Now())

	var existing model.CustomRole
	if err := s.db.Where("name = ?", name).First(&existing).Error; err == nil {
		return nil, apperr.BadRequest("a role with this name already exists")
	}

	role := model.CustomRole{
		Name:        name,
		Description: description,
		IsActive:    true,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&role).Error; err != nil {
			return err
		}
		return createPermissions(tx, role.ID, perms)
	})
	if err != nil {
		return nil, err
	}

	s.activity.Log(LogEntry{
		UserID:      &actorID,
		Action:      "create",
		Module:      "Roles",
		Description: fmt.Sprintf("Created role %s with %d module permissions", name, len(perms)),
	})

	return s.Get(role.ID)
}

func createPermissions(tx *gorm.DB, roleID uint, perms []PermissionInput) error {
	for _, p := range perms {
		row := model.RolePermission{
			RoleID:    roleID,
			Module:    p.Module,
			CanView:   p.CanView,
			CanCreate: p.CanCreate,
			CanEdit:   p.CanEdit,
			CanDelete: p.CanDelete,
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
	}
	return nil
}

// List returns all roles with permissions and referencing-user counts.
func (s *RoleService) List() ([]model.CustomRole, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var roles []model.CustomRole
	if err := s.db.Preload("Permissions").Order("name ASC").Find(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}

// Get loads one role with its permission set.
func (s *RoleService) Get(id uint) (*model.CustomRole, error) {
	var role model.CustomRole
	if err := s.db.Preload("Permissions").First(&role, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.NotFound("role not found")
		}
		return nil, err
	}
	return &role, nil
}

// UserCount returns how many users reference the role.
func (s *RoleService) UserCount(id uint) (int64, error) {
	var count int64
	err := s.db.Model(&model.User{}).Where("custom_role_id = ?", id).Count(&count).Error
	return count, err
}

// Update edits the role and replaces its permission set wholesale:
// delete-all, recreate. No diffing.
func (s *RoleService) Update(id uint, name, description string, isActive bool, perms []PermissionInput, actorID uint) (*model.CustomRole, error) {
	role, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"name":        name,
			"description": description,
			"is_active":   isActive,
		}
		if err := tx.Model(role).Updates(updates).Error; err != nil {
			return err
		}

		if err := tx.Where("role_id = ?", id).Delete(&model.RolePermission{}).Error; err != nil {
			return err
		}
		return createPermissions(tx, id, perms)
	})
	if err != nil {
		return nil, err
	}

	s.activity.Log(LogEntry{
		UserID:      &actorID,
		Action:      "update",
		Module:      "Roles",
		Description: fmt.Sprintf("Updated role %s", name),
	})

	return s.Get(id)
}

// Delete removes a role. When users still reference it the call fails with
// a 400 embedding the user count. With deleteUsers set the role and its
// users are removed together.
func (s *RoleService) Delete(id uint, deleteUsers bool, actorID uint) error {
	role, err := s.Get(id)
	if err != nil {
		return err
	}

	count, err := s.UserCount(id)
	if err != nil {
		return err
	}

	if count > 0 && !deleteUsers {
		return apperr.BadRequest(fmt.Sprintf(
			"cannot delete role %s: %d user(s) are assigned to it; pass deleteUsers to remove them as well",
			role.Name, count))
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if deleteUsers && count > 0 {
			if err := tx.Where("custom_role_id = ?", id).Delete(&model.User{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("role_id = ?", id).Delete(&model.RolePermission{}).Error; err != nil {
			return err
		}
		return tx.Delete(role).Error
	})
	if err != nil {
		return err
	}

	s.activity.Log(LogEntry{
		UserID:      &actorID,
		Action:      "delete",
		Module:      "Roles",
		Description: fmt.Sprintf("Deleted role %s (removed %d assigned users)", role.Name, count),
	})
	return nil
}

// HasPermission evaluates the effective permission of a user for
// (module, action).
func (s *RoleService) HasPermission(userID uint, module, action string) (bool, error) {
	var user model.User
	err := s.db.Preload("CustomRole.Permissions").First(&user, userID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return false, nil
		}
		return false, err
	}
	return EvaluatePermission(&user, module, action), nil
}

// EvaluatePermission is the flat permission lookup: ADMIN always passes;
// otherwise an active custom role's module row decides; a missing row or
// role denies.
func EvaluatePermission(user *model.User, module, action string) bool {
	if user.Role == model.RoleAdmin {
		return true
	}
	if user.CustomRole == nil || !user.CustomRole.IsActive {
		return false
	}
	for _, p := range user.CustomRole.Permissions {
		if p.Module != module {
			continue
		}
		switch action {
		case ActionView:
			return p.CanView
		case ActionCreate:
			return p.CanCreate
		case ActionEdit:
			return p.CanEdit
		case ActionDelete:
			return p.CanDelete
		default:
			return false
		}
	}
	return false
}

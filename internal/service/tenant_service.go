package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/inkerrobotics/luckydraw-admin/internal/model"
	"github.com/inkerrobotics/luckydraw-admin/pkg/apperr"
	"github.com/inkerrobotics/luckydraw-admin/pkg/crypto"
	"github.com/inkerrobotics/luckydraw-admin/prometheus"
)

// TenantService manages Lucky Draw tenant accounts: CRUD, the status
// state machine with its audit trail, and encrypted WhatsApp credentials.
type TenantService struct {
	db       *gorm.DB
	cipher   *crypto.Cipher
	activity *ActivityService
}

// NewTenantService creates a TenantService.
func NewTenantService(db *gorm.DB, cipher *crypto.Cipher, activity *ActivityService) *TenantService {
	return &TenantService{db: db, cipher: cipher, activity: activity}
}

// ValidateStatus checks a requested status against the accepted values.
// Any (old, new) pair is allowed; only the target value is validated.
func ValidateStatus(status string) error {
	for _, s := range model.TenantStatuses {
		if status == s {
			return nil
		}
	}
	return apperr.BadRequest(fmt.Sprintf("invalid status %q, must be one of %s",
		status, strings.Join(model.TenantStatuses, ", ")))
}

// CreateTenantInput carries tenant creation fields.
type CreateTenantInput struct {
	Name             string
	Email            string
	Password         string
	SubscriptionPlan string
}

// Create registers a new tenant in PENDING status with a generated
// display code.
func (s *TenantService) Create(in CreateTenantInput, actorID uint, ipAddress string) (*model.Tenant, error) {
	defer prometheus.TrackDBOperation("insert")(time.Now())

	var existing model.Tenant
	if err := s.db.Where("email = ?", in.Email).First(&existing).Error; err == nil {
		return nil, apperr.BadRequest("a tenant with this email already exists")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Internal("failed to hash password")
	}

	tenant := model.Tenant{
		TenantCode:       generateTenantCode(),
		Name:             in.Name,
		Email:            in.Email,
		Password:         string(hashed),
		Status:           model.TenantStatusPending,
		SubscriptionPlan: in.SubscriptionPlan,
	}

	if err := s.db.Create(&tenant).Error; err != nil {
		return nil, err
	}

	s.activity.Log(LogEntry{
		UserID:      &actorID,
		TenantID:    &tenant.ID,
		Action:      "create",
		Module:      "Tenants",
		Description: fmt.Sprintf("Created tenant %s (%s)", tenant.Name, tenant.TenantCode),
		IPAddress:   ipAddress,
	})

	return &tenant, nil
}

func generateTenantCode() string {
	return "TNT-" + strings.ToUpper(uuid.New().String()[:8])
}

// TenantFilter narrows tenant listings.
type TenantFilter struct {
	Status string
	Search string
	Page   int
	Limit  int
}

// List returns a page of tenants plus the filtered total.
func (s *TenantService) List(f TenantFilter) ([]model.Tenant, int64, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	q := s.db.Model(&model.Tenant{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("name ILIKE ? OR email ILIKE ? OR tenant_code ILIKE ?", like, like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if f.Limit <= 0 {
		f.Limit = 20
	}
	if f.Page <= 0 {
		f.Page = 1
	}

	var tenants []model.Tenant
	err := q.Order("created_at DESC").Offset((f.Page - 1) * f.Limit).Limit(f.Limit).Find(&tenants).Error
	if err != nil {
		return nil, 0, err
	}
	return tenants, total, nil
}

// Get loads one tenant.
func (s *TenantService) Get(id uint) (*model.Tenant, error) {
	var tenant model.Tenant
	if err := s.db.First(&tenant, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.NotFound("tenant not found")
		}
		return nil, err
	}
	return &tenant, nil
}

// UpdateTenantInput carries editable tenant fields.
type UpdateTenantInput struct {
	Name             *string
	Email            *string
	SubscriptionPlan *string
}

// Update edits tenant profile fields. Status changes go through
// UpdateStatus only.
func (s *TenantService) Update(id uint, in UpdateTenantInput, actorID uint, ipAddress string) (*model.Tenant, error) {
	tenant, err := s.Get(id)
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
	if in.SubscriptionPlan != nil {
		updates["subscription_plan"] = *in.SubscriptionPlan
	}

	if len(updates) > 0 {
		defer prometheus.TrackDBOperation("update")(time.Now())
		if err := s.db.Model(tenant).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	s.activity.Log(LogEntry{
		UserID:      &actorID,
		TenantID:    &tenant.ID,
		Action:      "update",
		Module:      "Tenants",
		Description: fmt.Sprintf("Updated tenant %s", tenant.Name),
		IPAddress:   ipAddress,
	})

	return tenant, nil
}

// Delete soft-deletes a tenant.
func (s *TenantService) Delete(id uint, actorID uint, ipAddress string) error {
	tenant, err := s.Get(id)
	if err != nil {
		return err
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())
	if err := s.db.Delete(tenant).Error; err != nil {
		return err
	}

	s.activity.Log(LogEntry{
		UserID:      &actorID,
		TenantID:    &tenant.ID,
		Action:      "delete",
		Module:      "Tenants",
		Description: fmt.Sprintf("Deleted tenant %s (%s)", tenant.Name, tenant.TenantCode),
		IPAddress:   ipAddress,
	})
	return nil
}

// UpdateStatus overwrites the tenant's status and appends exactly one
// history row, both inside one transaction. The activity log entry is
// written after commit and is best-effort.
func (s *TenantService) UpdateStatus(id uint, newStatus, reason string, changedBy uint, ipAddress, userAgent string) (*model.Tenant, error) {
	if err := ValidateStatus(newStatus); err != nil {
		return nil, err
	}
	if strings.TrimSpace(reason) == "" {
		return nil, apperr.BadRequest("a reason is required for status changes")
	}

	var tenant model.Tenant
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&tenant, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperr.NotFound("tenant not found")
			}
			return err
		}

		oldStatus := tenant.Status
		if err := tx.Model(&tenant).Update("status", newStatus).Error; err != nil {
			return err
		}

		history := model.TenantStatusHistory{
			TenantID:  tenant.ID,
			OldStatus: oldStatus,
			NewStatus: newStatus,
			Reason:    reason,
			ChangedBy: changedBy,
			IPAddress: ipAddress,
			UserAgent: userAgent,
		}
		return tx.Create(&history).Error
	})
	if err != nil {
		return nil, err
	}

	tenant.Status = newStatus
	prometheus.RecordTenantStatus(newStatus)

	s.activity.Log(LogEntry{
		UserID:      &changedBy,
		TenantID:    &tenant.ID,
		Action:      "status_change",
		Module:      "Tenants",
		Description: fmt.Sprintf("Changed tenant %s status to %s: %s", tenant.Name, newStatus, reason),
		IPAddress:   ipAddress,
		UserAgent:   userAgent,
	})

	return &tenant, nil
}

// BulkStatusResult reports the outcome for one tenant in a bulk update.
type BulkStatusResult struct {
	TenantID uint   `json:"tenant_id"`
	OK       bool   `json:"ok"`
	Error    string `json:"error,omitempty"`
}

// BulkUpdateStatus applies UpdateStatus per tenant. Items are independent;
// every item's outcome is reported, a failure does not stop the rest.
func (s *TenantService) BulkUpdateStatus(ids []uint, newStatus, reason string, changedBy uint, ipAddress, userAgent string) []BulkStatusResult {
	results := make([]BulkStatusResult, 0, len(ids))
	for _, id := range ids {
		_, err := s.UpdateStatus(id, newStatus, reason, changedBy, ipAddress, userAgent)
		r := BulkStatusResult{TenantID: id, OK: err == nil}
		if err != nil {
			r.Error = err.Error()
		}
		results = append(results, r)
	}
	return results
}

// StatusHistory returns the transition trail, newest first.
func (s *TenantService) StatusHistory(id uint) ([]model.TenantStatusHistory, error) {
	if _, err := s.Get(id); err != nil {
		return nil, err
	}

	var history []model.TenantStatusHistory
	err := s.db.Where("tenant_id = ?", id).Order("created_at DESC").Find(&history).Error
	if err != nil {
		return nil, err
	}
	return history, nil
}

// WhatsAppCredentials are the decrypted integration secrets.
type WhatsAppCredentials struct {
	APIKey            string `json:"api_key"`
	PhoneNumberID     string `json:"phone_number_id"`
	BusinessAccountID string `json:"business_account_id"`
}

// SetWhatsAppCredentials encrypts and stores the tenant's integration
// secrets.
func (s *TenantService) SetWhatsAppCredentials(id uint, creds WhatsAppCredentials, actorID uint, ipAddress string) error {
	tenant, err := s.Get(id)
	if err != nil {
		return err
	}

	apiKey, err := s.cipher.Encrypt(creds.APIKey)
	if err != nil {
		return apperr.Internal("failed to encrypt credentials")
	}
	phoneID, err := s.cipher.Encrypt(creds.PhoneNumberID)
	if err != nil {
		return apperr.Internal("failed to encrypt credentials")
	}
	businessID, err := s.cipher.Encrypt(creds.BusinessAccountID)
	if err != nil {
		return apperr.Internal("failed to encrypt credentials")
	}

	updates := map[string]interface{}{
		"whats_app_api_key":             apiKey,
		"whats_app_phone_number_id":     phoneID,
		"whats_app_business_account_id": businessID,
	}
	if err := s.db.Model(tenant).Updates(updates).Error; err != nil {
		return err
	}

	s.activity.Log(LogEntry{
		UserID:      &actorID,
		TenantID:    &tenant.ID,
		Action:      "update",
		Module:      "Tenants",
		Description: fmt.Sprintf("Updated WhatsApp credentials for tenant %s", tenant.Name),
		IPAddress:   ipAddress,
	})
	return nil
}

// GetWhatsAppCredentials decrypts and returns the tenant's integration
// secrets.
func (s *TenantService) GetWhatsAppCredentials(id uint) (*WhatsAppCredentials, error) {
	tenant, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	apiKey, err := s.cipher.Decrypt(tenant.WhatsAppAPIKey)
	if err != nil {
		return nil, apperr.Internal("failed to decrypt credentials")
	}
	phoneID, err := s.cipher.Decrypt(tenant.WhatsAppPhoneNumberID)
	if err != nil {
		return nil, apperr.Internal("failed to decrypt credentials")
	}
	businessID, err := s.cipher.Decrypt(tenant.WhatsAppBusinessAccountID)
	if err != nil {
		return nil, apperr.Internal("failed to decrypt credentials")
	}

	return &WhatsAppCredentials{
		APIKey:            apiKey,
		PhoneNumberID:     phoneID,
		BusinessAccountID: businessID,
	}, nil
}

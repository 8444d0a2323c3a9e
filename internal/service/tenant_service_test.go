package service

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/inkerrobotics/luckydraw-admin/internal/model"
	"github.com/inkerrobotics/luckydraw-admin/pkg/apperr"
	"github.com/inkerrobotics/luckydraw-admin/pkg/crypto"
)

func TestValidateStatusAccepted(t *testing.T) {
	for _, status := range model.TenantStatuses {
		assert.NoError(t, ValidateStatus(status))
	}
}

func TestValidateStatusRejected(t *testing.T) {
	for _, status := range []string{"", "active", "DELETED", "Pending"} {
		err := ValidateStatus(status)
		require.Error(t, err, "status %q", status)
		assert.Equal(t, http.StatusBadRequest, apperr.StatusOf(err))
	}
}

func newTenantTestService(t *testing.T) (*TenantService, *gorm.DB) {
	db := newTestDB(t)
	return NewTenantService(db, crypto.NewCipher("test-encryption-key"), NewActivityService(db)), db
}

func seedTenant(t *testing.T, db *gorm.DB, status string) model.Tenant {
	t.Helper()
	tenant := model.Tenant{
		TenantCode: "TNT-TEST01",
		Name:       "Acme Draws",
		Email:      "acme@example.com",
		Status:     status,
	}
	require.NoError(t, db.Create(&tenant).Error)
	return tenant
}

func TestUpdateStatusWritesExactlyOneHistoryRow(t *testing.T) {
	svc, db := newTenantTestService(t)
	tenant := seedTenant(t, db, model.TenantStatusPending)

	updated, err := svc.UpdateStatus(tenant.ID, model.TenantStatusActive, "passed onboarding", 9, "10.0.0.1", "ua")
	require.NoError(t, err)
	assert.Equal(t, model.TenantStatusActive, updated.Status)

	var stored model.Tenant
	require.NoError(t, db.First(&stored, tenant.ID).Error)
	assert.Equal(t, model.TenantStatusActive, stored.Status)

	var history []model.TenantStatusHistory
	require.NoError(t, db.Where("tenant_id = ?", tenant.ID).Find(&history).Error)
	require.Len(t, history, 1)
	assert.Equal(t, model.TenantStatusPending, history[0].OldStatus)
	assert.Equal(t, model.TenantStatusActive, history[0].NewStatus)
	assert.Equal(t, "passed onboarding", history[0].Reason)
	assert.Equal(t, uint(9), history[0].ChangedBy)
	assert.Equal(t, "10.0.0.1", history[0].IPAddress)
}

func TestUpdateStatusAllowsAnyPair(t *testing.T) {
	svc, db := newTenantTestService(t)
	tenant := seedTenant(t, db, model.TenantStatusSuspended)

	// no transition graph: suspended straight back to active is legal
	_, err := svc.UpdateStatus(tenant.ID, model.TenantStatusActive, "appeal accepted", 3, "10.0.0.1", "ua")
	require.NoError(t, err)

	var history []model.TenantStatusHistory
	require.NoError(t, db.Where("tenant_id = ?", tenant.ID).Find(&history).Error)
	require.Len(t, history, 1)
	assert.Equal(t, model.TenantStatusSuspended, history[0].OldStatus)
}

func TestUpdateStatusRequiresReason(t *testing.T) {
	svc, db := newTenantTestService(t)
	tenant := seedTenant(t, db, model.TenantStatusPending)

	_, err := svc.UpdateStatus(tenant.ID, model.TenantStatusActive, "   ", 9, "10.0.0.1", "ua")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperr.StatusOf(err))

	var stored model.Tenant
	require.NoError(t, db.First(&stored, tenant.ID).Error)
	assert.Equal(t, model.TenantStatusPending, stored.Status)

	var count int64
	require.NoError(t, db.Model(&model.TenantStatusHistory{}).Where("tenant_id = ?", tenant.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestUpdateStatusUnknownTenant(t *testing.T) {
	svc, db := newTenantTestService(t)

	_, err := svc.UpdateStatus(9999, model.TenantStatusActive, "reason", 9, "10.0.0.1", "ua")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperr.StatusOf(err))

	var count int64
	require.NoError(t, db.Model(&model.TenantStatusHistory{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestBulkUpdateStatusReportsPerItemOutcome(t *testing.T) {
	svc, db := newTenantTestService(t)
	tenant := seedTenant(t, db, model.TenantStatusPending)

	results := svc.BulkUpdateStatus([]uint{tenant.ID, 9999}, model.TenantStatusActive, "bulk activate", 9, "10.0.0.1", "ua")
	require.Len(t, results, 2)

	assert.Equal(t, tenant.ID, results[0].TenantID)
	assert.True(t, results[0].OK)
	assert.Empty(t, results[0].Error)

	assert.Equal(t, uint(9999), results[1].TenantID)
	assert.False(t, results[1].OK)
	assert.NotEmpty(t, results[1].Error)

	// the failing item did not roll back the successful one
	var stored model.Tenant
	require.NoError(t, db.First(&stored, tenant.ID).Error)
	assert.Equal(t, model.TenantStatusActive, stored.Status)
}

package service

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/inkerrobotics/luckydraw-admin/internal/model"
)

// newTestDB opens a fresh in-memory database migrated with every model the
// service layer touches.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// a second pooled connection would open a separate empty in-memory database
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Tenant{},
		&model.TenantStatusHistory{},
		&model.CustomRole{},
		&model.RolePermission{},
		&model.Session{},
		&model.ActivityLog{},
		&model.Notification{},
		&model.NotificationTemplate{},
	))
	return db
}

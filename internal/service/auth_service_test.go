package service

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/inkerrobotics/luckydraw-admin/internal/model"
	"github.com/inkerrobotics/luckydraw-admin/pkg/apperr"
	"github.com/inkerrobotics/luckydraw-admin/pkg/config"
	"github.com/inkerrobotics/luckydraw-admin/pkg/jwtutil"
)

func newAuthTestService(t *testing.T) (*AuthService, *gorm.DB) {
	db := newTestDB(t)
	jwt := jwtutil.NewJWTUtil(&config.JWTConfig{SigningKey: "test-signing-key", ExpirationHours: 24})
	return NewAuthService(db, jwt, NewSessionService(db), NewActivityService(db)), db
}

func seedConsoleUser(t *testing.T, db *gorm.DB) model.User {
	t.Helper()
	// console accounts store plaintext passwords, matched directly on login
	user := model.User{
		Name:     "Super Admin",
		Email:    "admin@example.com",
		Password: "Admin@123",
		Role:     model.RoleAdmin,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func TestLoginCreatesOneSessionAndLogsSuccess(t *testing.T) {
	svc, db := newAuthTestService(t)
	user := seedConsoleUser(t, db)

	got, token, err := svc.Login("admin@example.com", "Admin@123", "10.0.0.1", "ua")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.NotNil(t, got.LastLoginAt)

	var sessions []model.Session
	require.NoError(t, db.Where("user_id = ?", user.ID).Find(&sessions).Error)
	require.Len(t, sessions, 1)
	assert.Equal(t, token, sessions[0].Token)
	assert.True(t, sessions[0].IsActive)

	var logs []model.ActivityLog
	require.NoError(t, db.Where("action = ?", "login").Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, model.LogStatusSuccess, logs[0].Status)
	require.NotNil(t, logs[0].UserID)
	assert.Equal(t, user.ID, *logs[0].UserID)
	assert.Equal(t, "10.0.0.1", logs[0].IPAddress)
}

func TestLoginWrongPasswordLogsFailure(t *testing.T) {
	svc, db := newAuthTestService(t)
	user := seedConsoleUser(t, db)

	_, _, err := svc.Login("admin@example.com", "wrong", "10.0.0.1", "ua")
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, apperr.StatusOf(err))

	var sessionCount int64
	require.NoError(t, db.Model(&model.Session{}).Count(&sessionCount).Error)
	assert.Zero(t, sessionCount)

	var logs []model.ActivityLog
	require.NoError(t, db.Where("action = ?", "login").Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, model.LogStatusFailed, logs[0].Status)
	require.NotNil(t, logs[0].UserID)
	assert.Equal(t, user.ID, *logs[0].UserID)
}

func TestLoginUnknownEmailLogsFailure(t *testing.T) {
	svc, db := newAuthTestService(t)

	_, _, err := svc.Login("ghost@example.com", "whatever", "10.0.0.1", "ua")
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, apperr.StatusOf(err))

	var logs []model.ActivityLog
	require.NoError(t, db.Where("action = ?", "login").Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, model.LogStatusFailed, logs[0].Status)
	assert.Nil(t, logs[0].UserID)
}

func TestLogoutRevokesTheSession(t *testing.T) {
	svc, db := newAuthTestService(t)
	user := seedConsoleUser(t, db)

	_, token, err := svc.Login("admin@example.com", "Admin@123", "10.0.0.1", "ua")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(token, user.ID))

	ok, err := svc.sessions.Verify(token)
	require.NoError(t, err)
	assert.False(t, ok)
}

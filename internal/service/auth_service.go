package service

import (
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/inkerrobotics/luckydraw-admin/internal/model"
	"github.com/inkerrobotics/luckydraw-admin/pkg/apperr"
	"github.com/inkerrobotics/luckydraw-admin/pkg/jwtutil"
	"github.com/inkerrobotics/luckydraw-admin/prometheus"
)

// AuthService validates console credentials, issues tokens and records
// sessions and login attempts.
type AuthService struct {
	db       *gorm.DB
	jwt      *jwtutil.JWTUtil
	sessions *SessionService
	activity *ActivityService
}

// NewAuthService creates an AuthService with its collaborators.
func NewAuthService(db *gorm.DB, jwt *jwtutil.JWTUtil, sessions *SessionService, activity *ActivityService) *AuthService {
	return &AuthService{db: db, jwt: jwt, sessions: sessions, activity: activity}
}

// TokenExpiry returns the lifetime of issued tokens.
func (s *AuthService) TokenExpiry() time.Duration {
	return s.jwt.Expiry()
}

// Login authenticates an admin/user account and returns the user plus a
// signed session token.
func (s *AuthService) Login(email, password, ipAddress, userAgent string) (*model.User, string, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var user model.User
	result := s.db.Where("email = ?", email).First(&user)
	if result.Error != nil {
		prometheus.RecordLogin("admin", "failed")
		s.activity.Log(LogEntry{
			Action:      "login",
			Module:      "Auth",
			Description: fmt.Sprintf("Failed login attempt for %s: unknown email", email),
			Status:      model.LogStatusFailed,
			IPAddress:   ipAddress,
			UserAgent:   userAgent,
		})
		return nil, "", apperr.Unauthorized("invalid credentials")
	}

	// Seeded console accounts store plaintext passwords; this path compares
	// directly while tenant auth and change-password use bcrypt.
	if password != user.Password {
		prometheus.RecordLogin("admin", "failed")
		s.activity.Log(LogEntry{
			UserID:      &user.ID,
			Action:      "login",
			Module:      "Auth",
			Description: fmt.Sprintf("Failed login attempt for %s: wrong password", email),
			Status:      model.LogStatusFailed,
			IPAddress:   ipAddress,
			UserAgent:   userAgent,
		})
		return nil, "", apperr.Unauthorized("invalid credentials")
	}

	token, err := s.jwt.GenerateToken(user.Email, user.ID, user.Role)
	if err != nil {
		prometheus.RecordAuthError("token_generation_failed")
		return nil, "", apperr.Internal("failed to generate token")
	}

	expiresAt := time.Now().Add(s.jwt.Expiry())
	if _, err := s.sessions.Create(user.ID, token, ipAddress, userAgent, expiresAt); err != nil {
		prometheus.RecordAuthError("session_creation_failed")
		return nil, "", apperr.Internal("failed to create session")
	}

	now := time.Now()
	s.db.Model(&user).Update("last_login_at", now)
	user.LastLoginAt = &now

	prometheus.RecordLogin("admin", "success")
	s.activity.Log(LogEntry{
		UserID:      &user.ID,
		Action:      "login",
		Module:      "Auth",
		Description: fmt.Sprintf("User %s logged in", email),
		Status:      model.LogStatusSuccess,
		IPAddress:   ipAddress,
		UserAgent:   userAgent,
	})

	return &user, token, nil
}

// Logout revokes the session behind the presented token.
func (s *AuthService) Logout(token string, userID uint) error {
	if err := s.sessions.RevokeByToken(token, userID, "logout"); err != nil {
		return err
	}

	s.activity.Log(LogEntry{
		UserID:      &userID,
		Action:      "logout",
		Module:      "Auth",
		Description: "User logged out",
	})
	return nil
}

// Me loads the authenticated user including the custom role and its
// permission set.
func (s *AuthService) Me(userID uint) (*model.User, error) {
	var user model.User
	err := s.db.Preload("CustomRole.Permissions").First(&user, userID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.NotFound("user not found")
		}
		return nil, err
	}
	return &user, nil
}

// TenantAuthService validates tenant credentials. Tenants authenticate
// with bcrypt-hashed passwords and receive tokens in their own namespace.
type TenantAuthService struct {
	db       *gorm.DB
	jwt      *jwtutil.JWTUtil
	activity *ActivityService
}

// NewTenantAuthService creates a TenantAuthService.
func NewTenantAuthService(db *gorm.DB, jwt *jwtutil.JWTUtil, activity *ActivityService) *TenantAuthService {
	return &TenantAuthService{db: db, jwt: jwt, activity: activity}
}

// TokenExpiry returns the lifetime of issued tokens.
func (s *TenantAuthService) TokenExpiry() time.Duration {
	return s.jwt.Expiry()
}

// Login authenticates a tenant account.
func (s *TenantAuthService) Login(email, password, ipAddress, userAgent string) (*model.Tenant, string, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var tenant model.Tenant
	result := s.db.Where("email = ?", email).First(&tenant)
	if result.Error != nil {
		prometheus.RecordLogin("tenant", "failed")
		s.activity.Log(LogEntry{
			Action:      "login",
			Module:      "TenantAuth",
			Description: fmt.Sprintf("Failed tenant login for %s: unknown email", email),
			Status:      model.LogStatusFailed,
			IPAddress:   ipAddress,
			UserAgent:   userAgent,
		})
		return nil, "", apperr.Unauthorized("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(tenant.Password), []byte(password)); err != nil {
		prometheus.RecordLogin("tenant", "failed")
		s.activity.Log(LogEntry{
			TenantID:    &tenant.ID,
			Action:      "login",
			Module:      "TenantAuth",
			Description: fmt.Sprintf("Failed tenant login for %s: wrong password", email),
			Status:      model.LogStatusFailed,
			IPAddress:   ipAddress,
			UserAgent:   userAgent,
		})
		return nil, "", apperr.Unauthorized("invalid credentials")
	}

	if tenant.Status != model.TenantStatusActive {
		prometheus.RecordLogin("tenant", "failed")
		return nil, "", apperr.Forbidden("tenant account is " + tenant.Status)
	}

	token, err := s.jwt.GenerateTenantToken(tenant.Email, tenant.ID)
	if err != nil {
		prometheus.RecordAuthError("token_generation_failed")
		return nil, "", apperr.Internal("failed to generate token")
	}

	now := time.Now()
	s.db.Model(&tenant).Update("last_login_at", now)
	tenant.LastLoginAt = &now

	prometheus.RecordLogin("tenant", "success")
	s.activity.Log(LogEntry{
		TenantID:    &tenant.ID,
		Action:      "login",
		Module:      "TenantAuth",
		Description: fmt.Sprintf("Tenant %s logged in", email),
		IPAddress:   ipAddress,
		UserAgent:   userAgent,
	})

	return &tenant, token, nil
}

// Me loads the authenticated tenant.
func (s *TenantAuthService) Me(tenantID uint) (*model.Tenant, error) {
	var tenant model.Tenant
	if err := s.db.First(&tenant, tenantID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.NotFound("tenant not found")
		}
		return nil, err
	}
	return &tenant, nil
}

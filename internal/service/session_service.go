package service

import (
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/inkerrobotics/luckydraw-admin/internal/model"
	"github.com/inkerrobotics/luckydraw-admin/pkg/apperr"
	"github.com/inkerrobotics/luckydraw-admin/prometheus"
)

// SessionService tracks issued tokens as rows. A session leaves the active
// state either lazily (Verify reads past the expiry) or explicitly
// (Revoke, which is terminal).
type SessionService struct {
	db *gorm.DB
}

// NewSessionService creates a SessionService over the given database.
func NewSessionService(db *gorm.DB) *SessionService {
	return &SessionService{db: db}
}

// Create records a freshly issued token.
func (s *SessionService) Create(userID uint, token, ipAddress, userAgent string, expiresAt time.Time) (*model.Session, error) {
	defer prometheus.TrackDBOperation("insert")(time.Now())

	device, browser, osName := parseUserAgent(userAgent)
	session := model.Session{
		UserID:       userID,
		Token:        token,
		Device:       device,
		Browser:      browser,
		OS:           osName,
		IPAddress:    ipAddress,
		IsActive:     true,
		LastActivity: time.Now(),
		ExpiresAt:    expiresAt,
	}

	if err := s.db.Create(&session).Error; err != nil {
		return nil, err
	}

	prometheus.IncreaseActiveSessions()
	return &session, nil
}

// Verify reports whether the session behind the token is still usable.
// Reading an expired session flips IsActive to false right there; this is
// the only lazy expiry point.
func (s *SessionService) Verify(token string) (bool, error) {
	var session model.Session
	result := s.db.Where("token = ?", token).First(&session)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return false, nil
		}
		return false, result.Error
	}

	if !session.IsActive {
		return false, nil
	}

	if time.Now().After(session.ExpiresAt) {
		if err := s.db.Model(&session).Update("is_active", false).Error; err != nil {
			return false, err
		}
		prometheus.DecreaseActiveSessions()
		return false, nil
	}

	// Keep last activity fresh; failure here does not invalidate the check
	s.db.Model(&session).Update("last_activity", time.Now())
	return true, nil
}

// List returns sessions, optionally scoped to one user.
func (s *SessionService) List(userID *uint) ([]model.Session, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	q := s.db.Model(&model.Session{}).Preload("User").Order("last_activity DESC")
	if userID != nil {
		q = q.Where("user_id = ?", *userID)
	}

	var sessions []model.Session
	if err := q.Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

// Revoke deactivates one session with a reason. Revocation is terminal.
func (s *SessionService) Revoke(id uint, revokedBy uint, reason string) error {
	if reason == "" {
		return apperr.BadRequest("revocation reason is required")
	}

	var session model.Session
	if err := s.db.First(&session, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperr.NotFound("session not found")
		}
		return err
	}

	if session.RevokedAt != nil {
		return apperr.BadRequest("session is already revoked")
	}

	now := time.Now()
	updates := map[string]interface{}{
		"is_active":      false,
		"revoked_at":     now,
		"revoked_by":     revokedBy,
		"revoked_reason": reason,
	}
	if err := s.db.Model(&session).Updates(updates).Error; err != nil {
		return err
	}

	prometheus.DecreaseActiveSessions()
	return nil
}

// RevokeAllForUser deactivates every active session of one user.
func (s *SessionService) RevokeAllForUser(userID uint, revokedBy uint, reason string) (int64, error) {
	if reason == "" {
		return 0, apperr.BadRequest("revocation reason is required")
	}

	now := time.Now()
	result := s.db.Model(&model.Session{}).
		Where("user_id = ? AND is_active = ?", userID, true).
		Updates(map[string]interface{}{
			"is_active":      false,
			"revoked_at":     now,
			"revoked_by":     revokedBy,
			"revoked_reason": reason,
		})
	if result.Error != nil {
		return 0, result.Error
	}

	for i := int64(0); i < result.RowsAffected; i++ {
		prometheus.DecreaseActiveSessions()
	}
	return result.RowsAffected, nil
}

// RevokeByToken deactivates the session holding the given token (logout).
func (s *SessionService) RevokeByToken(token string, revokedBy uint, reason string) error {
	var session model.Session
	if err := s.db.Where("token = ?", token).First(&session).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil
		}
		return err
	}
	if session.RevokedAt != nil {
		return nil
	}
	return s.Revoke(session.ID, revokedBy, reason)
}

// CleanupExpired bulk-deactivates sessions past their expiry. Invoked from
// the admin settings screen, never from a scheduler.
func (s *SessionService) CleanupExpired() (int64, error) {
	defer prometheus.TrackDBOperation("update")(time.Now())

	result := s.db.Model(&model.Session{}).
		Where("is_active = ? AND expires_at < ?", true, time.Now()).
		Update("is_active", false)
	if result.Error != nil {
		return 0, result.Error
	}

	for i := int64(0); i < result.RowsAffected; i++ {
		prometheus.DecreaseActiveSessions()
	}
	return result.RowsAffected, nil
}

// parseUserAgent extracts coarse device metadata from a User-Agent string.
func parseUserAgent(ua string) (device, browser, osName string) {
	device = "Desktop"
	browser = "Unknown"
	osName = "Unknown"

	lower := strings.ToLower(ua)
	switch {
	case strings.Contains(lower, "mobile"), strings.Contains(lower, "android"), strings.Contains(lower, "iphone"):
		device = "Mobile"
	case strings.Contains(lower, "tablet"), strings.Contains(lower, "ipad"):
		device = "Tablet"
	}

	switch {
	case strings.Contains(lower, "edg/"):
		browser = "Edge"
	case strings.Contains(lower, "chrome"):
		browser = "Chrome"
	case strings.Contains(lower, "safari"):
		browser = "Safari"
	case strings.Contains(lower, "firefox"):
		browser = "Firefox"
	}

	switch {
	case strings.Contains(lower, "windows"):
		osName = "Windows"
	// iOS user agents say "like Mac OS X", so check them before macOS
	case strings.Contains(lower, "iphone"), strings.Contains(lower, "ipad"):
		osName = "iOS"
	case strings.Contains(lower, "mac os"):
		osName = "macOS"
	case strings.Contains(lower, "android"):
		osName = "Android"
	case strings.Contains(lower, "linux"):
		osName = "Linux"
	}

	return device, browser, osName
}

package service

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkerrobotics/luckydraw-admin/internal/model"
	"github.com/inkerrobotics/luckydraw-admin/prometheus"
)

func TestVerifyFlipsExpiredSession(t *testing.T) {
	db := newTestDB(t)
	svc := NewSessionService(db)

	session, err := svc.Create(1, "expired-token", "10.0.0.1", "ua", time.Now().Add(-time.Hour))
	require.NoError(t, err)
	require.True(t, session.IsActive)

	ok, err := svc.Verify("expired-token")
	require.NoError(t, err)
	assert.False(t, ok)

	var stored model.Session
	require.NoError(t, db.First(&stored, session.ID).Error)
	assert.False(t, stored.IsActive)
}

func TestVerifyActiveSession(t *testing.T) {
	db := newTestDB(t)
	svc := NewSessionService(db)

	_, err := svc.Create(1, "live-token", "10.0.0.1", "ua", time.Now().Add(time.Hour))
	require.NoError(t, err)

	ok, err := svc.Verify("live-token")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerifyUnknownToken(t *testing.T) {
	svc := NewSessionService(newTestDB(t))

	ok, err := svc.Verify("no-such-token")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRevokeIsTerminal(t *testing.T) {
	db := newTestDB(t)
	svc := NewSessionService(db)

	session, err := svc.Create(1, "revoked-token", "10.0.0.1", "ua", time.Now().Add(time.Hour))
	require.NoError(t, err)

	require.Error(t, svc.Revoke(session.ID, 2, ""), "reason is mandatory")
	require.NoError(t, svc.Revoke(session.ID, 2, "suspicious activity"))

	ok, err := svc.Verify("revoked-token")
	require.NoError(t, err)
	assert.False(t, ok)

	err = svc.Revoke(session.ID, 2, "again")
	assert.Error(t, err, "a revoked session stays revoked")
}

func TestCleanupExpiredKeepsGaugeInStep(t *testing.T) {
	db := newTestDB(t)
	svc := NewSessionService(db)

	before := testutil.ToFloat64(prometheus.ActiveSessionsGauge)

	past := time.Now().Add(-time.Minute)
	future := time.Now().Add(time.Hour)
	_, err := svc.Create(1, "sweep-1", "10.0.0.1", "ua", past)
	require.NoError(t, err)
	_, err = svc.Create(1, "sweep-2", "10.0.0.1", "ua", past)
	require.NoError(t, err)
	_, err = svc.Create(2, "sweep-3", "10.0.0.1", "ua", future)
	require.NoError(t, err)

	assert.Equal(t, before+3, testutil.ToFloat64(prometheus.ActiveSessionsGauge))

	n, err := svc.CleanupExpired()
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.Equal(t, before+1, testutil.ToFloat64(prometheus.ActiveSessionsGauge))

	// the surviving session is the unexpired one
	ok, err := svc.Verify("sweep-3")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestParseUserAgent(t *testing.T) {
	tests := []struct {
		name    string
		ua      string
		device  string
		browser string
		os      string
	}{
		{
			name:    "chrome on windows",
			ua:      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36",
			device:  "Desktop",
			browser: "Chrome",
			os:      "Windows",
		},
		{
			name:    "safari on iphone",
			ua:      "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1",
			device:  "Mobile",
			browser: "Safari",
			os:      "iOS",
		},
		{
			name:    "edge on mac",
			ua:      "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36 Edg/120.0",
			device:  "Desktop",
			browser: "Edge",
			os:      "macOS",
		},
		{
			name:    "firefox on linux",
			ua:      "Mozilla/5.0 (X11; Linux x86_64; rv:121.0) Gecko/20100101 Firefox/121.0",
			device:  "Desktop",
			browser: "Firefox",
			os:      "Linux",
		},
		{
			name:    "ipad",
			ua:      "Mozilla/5.0 (iPad; CPU OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Safari/604.1",
			device:  "Tablet",
			browser: "Safari",
			os:      "iOS",
		},
		{
			name:    "empty",
			ua:      "",
			device:  "Desktop",
			browser: "Unknown",
			os:      "Unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			device, browser, osName := parseUserAgent(tt.ua)
			assert.Equal(t, tt.device, device)
			assert.Equal(t, tt.browser, browser)
			assert.Equal(t, tt.os, osName)
		})
	}
}

package mailer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkerrobotics/luckydraw-admin/pkg/config"
)

func TestEnabled(t *testing.T) {
	assert.False(t, NewMailer(&config.SMTPConfig{}).Enabled())
	assert.True(t, NewMailer(&config.SMTPConfig{Host: "smtp.example.com"}).Enabled())
}

func TestSendWithoutHost(t *testing.T) {
	m := NewMailer(&config.SMTPConfig{})
	err := m.Send("user@example.com", "subject", "<p>body</p>")
	assert.Error(t, err)
}

func TestBuildMessage(t *testing.T) {
	msg := string(buildMessage("noreply@luckydraw.local", "user@example.com", "Welcome", "<p>hi</p>"))

	headers, body, found := strings.Cut(msg, "\r\n\r\n")
	require.True(t, found)
	assert.Equal(t, "<p>hi</p>", body)

	lines := strings.Split(headers, "\r\n")
	assert.Contains(t, lines, "From: noreply@luckydraw.local")
	assert.Contains(t, lines, "To: user@example.com")
	assert.Contains(t, lines, "Subject: Welcome")
	assert.Contains(t, lines, "MIME-Version: 1.0")
	assert.Contains(t, lines, `Content-Type: text/html; charset="UTF-8"`)
}

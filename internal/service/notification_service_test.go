package service

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkerrobotics/luckydraw-admin/internal/model"
	"github.com/inkerrobotics/luckydraw-admin/pkg/apperr"
)

func TestSendMarksDraftAndRejectsResend(t *testing.T) {
	db := newTestDB(t)
	svc := NewNotificationService(db, NewActivityService(db))

	notification, err := svc.Create(CreateNotificationInput{Title: "Maintenance", Message: "Sunday 02:00"}, 1)
	require.NoError(t, err)
	assert.Equal(t, model.NotificationDraft, notification.Status)

	sent, err := svc.Send(notification.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, model.NotificationSent, sent.Status)
	require.NotNil(t, sent.SentAt)

	_, err = svc.Send(notification.ID, 1)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperr.StatusOf(err))
}

func TestNotificationTemplateLifecycle(t *testing.T) {
	db := newTestDB(t)
	svc := NewNotificationService(db, NewActivityService(db))

	template, err := svc.CreateTemplate(NotificationTemplateInput{
		Name:     "maintenance-window",
		Title:    "Scheduled maintenance",
		Message:  "The console will be unavailable.",
		IsActive: true,
	}, 1)
	require.NoError(t, err)
	assert.Equal(t, "info", template.Type, "type defaults to info")

	templates, err := svc.ListTemplates()
	require.NoError(t, err)
	require.Len(t, templates, 1)

	updated, err := svc.UpdateTemplate(template.ID, NotificationTemplateInput{
		Name:     "maintenance-window",
		Title:    "Scheduled maintenance",
		Message:  "The console will be back within an hour.",
		Type:     "warning",
		IsActive: true,
	}, 1)
	require.NoError(t, err)
	assert.Equal(t, "warning", updated.Type)
	assert.Equal(t, "The console will be back within an hour.", updated.Message)

	require.NoError(t, svc.DeleteTemplate(template.ID, 1))

	_, err = svc.GetTemplate(template.ID)
	assert.Equal(t, http.StatusNotFound, apperr.StatusOf(err))
}

package service

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkerrobotics/luckydraw-admin/internal/model"
)

func TestBuildActivityCSVHeader(t *testing.T) {
	out, err := BuildActivityCSV(nil)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, []string{"Date", "User", "Action", "Module", "Description", "IP Address", "Status"}, records[0])
}

func TestBuildActivityCSVQuotesFreeText(t *testing.T) {
	created := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	logs := []model.ActivityLog{
		{
			Action:      "UPDATE_STATUS",
			Module:      "Tenants",
			Description: "Suspended tenant \"Acme, Inc.\"\nreason: unpaid invoices",
			Status:      model.LogStatusSuccess,
			IPAddress:   "10.0.0.1",
			CreatedAt:   created,
			User:        &model.User{Email: "ops@example.com"},
		},
		{
			Action:    "LOGIN",
			Module:    "Auth",
			Status:    model.LogStatusFailed,
			IPAddress: "10.0.0.2",
			CreatedAt: created,
		},
	}

	out, err := BuildActivityCSV(logs)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	first := records[1]
	assert.Equal(t, created.Format(time.RFC3339), first[0])
	assert.Equal(t, "ops@example.com", first[1])
	assert.Equal(t, "UPDATE_STATUS", first[2])
	assert.Equal(t, "Tenants", first[3])
	assert.Equal(t, "Suspended tenant \"Acme, Inc.\"\nreason: unpaid invoices", first[4])
	assert.Equal(t, "10.0.0.1", first[5])
	assert.Equal(t, model.LogStatusSuccess, first[6])

	// Row without a preloaded user keeps the column empty
	assert.Equal(t, "", records[2][1])
	assert.Equal(t, model.LogStatusFailed, records[2][6])
}

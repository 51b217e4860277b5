package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusTerminality(t *testing.T) {
	tests := []struct {
		status     Status
		isTerminal bool
		isSuccess  bool
		isFailure  bool
	}{
		{StatusPending, false, false, false},
		{StatusProcessing, false, false, false},
		{StatusDone, true, true, false},
		{StatusError, true, false, true},
		{Status("что-то новое"), false, false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.isTerminal, tt.status.IsTerminal())
			assert.Equal(t, tt.isSuccess, tt.status.IsSuccess())
			assert.Equal(t, tt.isFailure, tt.status.IsFailure())
		})
	}
}

func TestStatusName(t *testing.T) {
	assert.Equal(t, "pending", StatusPending.Name())
	assert.Equal(t, "processing", StatusProcessing.Name())
	assert.Equal(t, "done", StatusDone.Name())
	assert.Equal(t, "error", StatusError.Name())

	// Unknown statuses pass through untouched instead of being renamed.
	unknown := Status("приостановлено")
	assert.False(t, unknown.Known())
	assert.Equal(t, "приостановлено", unknown.Name())
}

func TestStatusWireRoundTrip(t *testing.T) {
	// The server speaks Cyrillic literals; they must survive a full
	// decode/encode cycle byte for byte.
	raw := `{"id":"task-1","status":"в процессе","originalName":"meeting.mp3","createdAt":"2024-01-01T00:00:00Z"}`

	var task Task
	require.NoError(t, json.Unmarshal([]byte(raw), &task))
	assert.Equal(t, StatusProcessing, task.Status)

	encoded, err := json.Marshal(task)
	require.NoError(t, err)
	assert.Contains(t, string(encoded), `"status":"в процессе"`)
}

package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapPreservesSurface(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := Wrap(cause, "Failed to load task")

	assert.Equal(t, "Failed to load task: connection refused", err.Error())

	var e *Error
	assert.True(t, stderrors.As(err, &e))
	assert.Equal(t, "Failed to load task", e.Message())
	assert.Equal(t, cause, stderrors.Unwrap(err))
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, "whatever"))
	assert.Nil(t, Wrapf(nil, "whatever %d", 1))
}

func TestIsMatchesByMessage(t *testing.T) {
	err := Wrap(fmt.Errorf("status 500"), "Upload failed")
	assert.True(t, stderrors.Is(err, ErrUploadFailed))
	assert.False(t, stderrors.Is(err, ErrExportFailed))
}

type blankError struct{}

func (blankError) Error() string { return "" }

func TestSurface(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		fallback string
		want     string
	}{
		{"nil", nil, "fallback", ""},
		{"own error uses message not cause", Wrap(fmt.Errorf("tcp timeout"), "Failed to load task"), "x", "Failed to load task"},
		{"sentinel", ErrUploadFailed, "x", "Upload failed"},
		{"foreign error", fmt.Errorf("boom"), "x", "boom"},
		{"empty message falls back", blankError{}, "Failed to load task", "Failed to load task"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Surface(tt.err, tt.fallback))
		})
	}
}

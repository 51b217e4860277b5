// Package archive keeps a local copy of completed transcriptions so they stay
// readable after the server-side task is deleted or the network is gone.
package archive

import (
	"time"

	"loopa-cli/internal/app/model"
)

// Record is one archived transcription.
type Record struct {
	TaskID       string
	OriginalName string
	Transcript   string
	NumSpeakers  int
	ArchivedAt   time.Time
	Segments     []model.Segment
}

// DAO is the archive storage contract.
type DAO interface {
	Close() error

	// Save stores a terminal-success task with its segments. Saving the same
	// task id again replaces the previous record.
	Save(task model.Task, segments []model.Segment) error

	// List returns archived records newest first, without segments.
	List() ([]Record, error)

	// Get returns one record with its segments.
	Get(taskID string) (*Record, error)
}

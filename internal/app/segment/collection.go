package segment

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"loopa-cli/internal/app/errors"
	"loopa-cli/internal/app/model"
)

// Updater is the slice of the API client the collection needs.
type Updater interface {
	GetSegments(ctx context.Context, taskID string) ([]model.Segment, error)
	UpdateSegmentText(ctx context.Context, taskID, segmentID, text string) error
	UpdateSpeakerName(ctx context.Context, taskID, speakerID, name string) error
}

// Collection is the in-memory ordered set of a task's transcript segments.
// Edits apply synchronously, in call order, and are confirmed with the server
// in the background; a failed confirmation surfaces as a notice and the local
// text stays (write-behind with no rollback). Loads replace the collection
// wholesale and are sequence-token guarded like the task store.
type Collection struct {
	client Updater
	notify func(string)
	logger *zap.Logger

	mu       sync.Mutex
	taskID   string
	segments []model.Segment
	issued   uint64
	applied  uint64

	confirms sync.WaitGroup
}

// NewCollection creates an empty collection. notify receives user-visible
// notices for failed edit confirmations; nil discards them.
func NewCollection(client Updater, notify func(string), logger *zap.Logger) *Collection {
	if notify == nil {
		notify = func(string) {}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Collection{client: client, notify: notify, logger: logger}
}

// Load fetches the full segment list for a terminal-success task, replacing
// the local collection. Prior local edits are not merged; loading happens once
// per terminal-success transition.
func (c *Collection) Load(ctx context.Context, taskID string) error {
	c.mu.Lock()
	c.issued++
	token := c.issued
	c.mu.Unlock()

	fetched, err := c.client.GetSegments(ctx, taskID)

	c.mu.Lock()
	defer c.mu.Unlock()

	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		return err
	}
	if token > c.applied {
		c.applied = token
		c.taskID = taskID
		c.segments = fetched
	}
	return nil
}

// Segments returns a snapshot copy of the collection in server order.
func (c *Collection) Segments() []model.Segment {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]model.Segment, len(c.segments))
	copy(out, c.segments)
	return out
}

// Len returns the number of segments, including filtered-out ones.
func (c *Collection) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.segments)
}

// EditText applies an optimistic text edit: the segment's text and corrected
// flag change immediately, then the server is asked to confirm. On failure
// the local edit stays and the notice callback fires.
func (c *Collection) EditText(ctx context.Context, segmentID, text string) {
	c.mu.Lock()
	taskID := c.taskID
	found := false
	for i := range c.segments {
		if c.segments[i].ID == segmentID {
			c.segments[i].Text = text
			c.segments[i].IsCorrected = true
			found = true
			break
		}
	}
	c.mu.Unlock()

	if !found {
		return
	}

	c.confirms.Add(1)
	go func() {
		defer c.confirms.Done()
		if err := c.client.UpdateSegmentText(ctx, taskID, segmentID, text); err != nil {
			c.logger.Debug("segment edit not confirmed",
				zap.String("segment", segmentID), zap.Error(err))
			c.notify(errors.Surface(err, "Failed to update segment"))
		}
	}()
}

// RenameSpeaker applies a new display name to every segment sharing the
// speaker id, with the same confirm-without-rollback policy as EditText.
func (c *Collection) RenameSpeaker(ctx context.Context, speakerID, name string) {
	c.mu.Lock()
	taskID := c.taskID
	found := false
	for i := range c.segments {
		if c.segments[i].Speaker() == speakerID {
			n := name
			c.segments[i].SpeakerName = &n
			found = true
		}
	}
	c.mu.Unlock()

	if !found {
		return
	}

	c.confirms.Add(1)
	go func() {
		defer c.confirms.Done()
		if err := c.client.UpdateSpeakerName(ctx, taskID, speakerID, name); err != nil {
			c.logger.Debug("speaker rename not confirmed",
				zap.String("speaker", speakerID), zap.Error(err))
			c.notify(errors.Surface(err, "Failed to update speaker"))
		}
	}()
}

// WaitConfirms blocks until all in-flight edit confirmations resolve. The CLI
// calls it before exiting so background PUTs are not cut off mid-request.
func (c *Collection) WaitConfirms() {
	c.confirms.Wait()
}

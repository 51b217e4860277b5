package task

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loopa-cli/internal/app/errors"
	"loopa-cli/internal/app/model"
)

// countingFetcher returns a scripted status per call and counts the calls.
type countingFetcher struct {
	mu       sync.Mutex
	calls    int
	statuses []model.Status
	errAt    map[int]bool
}

func (f *countingFetcher) GetTask(ctx context.Context, taskID string) (model.Task, error) {
	f.mu.Lock()
	f.calls++
	n := f.calls
	f.mu.Unlock()

	if f.errAt[n] {
		return model.Task{}, errors.ErrLoadTaskFailed
	}

	status := f.statuses[len(f.statuses)-1]
	if n <= len(f.statuses) {
		status = f.statuses[n-1]
	}
	transcript := "Hello world"
	task := model.Task{ID: taskID, Status: status}
	if status.IsSuccess() {
		task.TranscriptText = &transcript
	}
	return task, nil
}

func (f *countingFetcher) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestPollerStopsAtTerminal(t *testing.T) {
	fetcher := &countingFetcher{statuses: []model.Status{
		model.StatusPending,
		model.StatusProcessing,
		model.StatusProcessing,
		model.StatusDone,
	}}
	store := NewStore(fetcher)

	var terminalCalls atomic.Int32
	poller := NewPoller(store, 5*time.Millisecond, nil, func(model.Task) {
		terminalCalls.Add(1)
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	final, err := poller.Run(ctx, "task-1")
	require.NoError(t, err)
	assert.Equal(t, model.StatusDone, final.Status)
	assert.Equal(t, "Hello world", final.Transcript())
	assert.Equal(t, int32(1), terminalCalls.Load())

	// Once terminal is observed no further fetches happen: the count settles.
	time.Sleep(50 * time.Millisecond)
	settled := fetcher.count()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, settled, fetcher.count())
}

func TestPollerReturnsImmediatelyWhenAlreadyTerminal(t *testing.T) {
	fetcher := &countingFetcher{statuses: []model.Status{model.StatusError}}
	store := NewStore(fetcher)
	poller := NewPoller(store, 5*time.Millisecond, nil, nil)

	final, err := poller.Run(context.Background(), "task-1")
	require.NoError(t, err)
	assert.True(t, final.Status.IsFailure())
	assert.Equal(t, 1, fetcher.count())
}

func TestPollerSwallowsFailedPolls(t *testing.T) {
	fetcher := &countingFetcher{
		statuses: []model.Status{
			model.StatusProcessing,
			model.StatusProcessing,
			model.StatusProcessing,
			model.StatusDone,
		},
		errAt: map[int]bool{2: true, 3: true},
	}
	store := NewStore(fetcher)
	poller := NewPoller(store, 5*time.Millisecond, nil, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	final, err := poller.Run(ctx, "task-1")
	require.NoError(t, err, "transient poll failures must not end the loop")
	assert.Equal(t, model.StatusDone, final.Status)
}

func TestPollerOnUpdateSeesTransitions(t *testing.T) {
	fetcher := &countingFetcher{statuses: []model.Status{
		model.StatusProcessing,
		model.StatusDone,
	}}
	store := NewStore(fetcher)
	poller := NewPoller(store, 5*time.Millisecond, nil, nil)

	var mu sync.Mutex
	var seen []model.Status
	poller.OnUpdate = func(task model.Task) {
		mu.Lock()
		seen = append(seen, task.Status)
		mu.Unlock()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := poller.Run(ctx, "task-1")
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, seen)
	assert.Equal(t, model.StatusProcessing, seen[0])
	assert.Equal(t, model.StatusDone, seen[len(seen)-1])
}

// slowFetcher holds every fetch long enough for several ticks to overlap it.
type slowFetcher struct {
	delay  time.Duration
	doneAt int

	mu    sync.Mutex
	calls int
}

func (f *slowFetcher) GetTask(ctx context.Context, taskID string) (model.Task, error) {
	f.mu.Lock()
	f.calls++
	n := f.calls
	f.mu.Unlock()

	time.Sleep(f.delay)
	status := model.StatusProcessing
	if n >= f.doneAt {
		status = model.StatusDone
	}
	transcript := "Hello world"
	task := model.Task{ID: taskID, Status: status}
	if status.IsSuccess() {
		task.TranscriptText = &transcript
	}
	return task, nil
}

func TestPollerSerializesUpdateCallbacks(t *testing.T) {
	fetcher := &slowFetcher{delay: 20 * time.Millisecond, doneAt: 8}
	store := NewStore(fetcher)
	poller := NewPoller(store, time.Millisecond, nil, nil)

	// Unsynchronized captures, the way watch tracks status transitions.
	// The race detector flags this test if callbacks ever overlap.
	updates := 0
	lastStatus := model.Status("")
	var depth, overlapped atomic.Int32
	poller.OnUpdate = func(task model.Task) {
		if depth.Add(1) > 1 {
			overlapped.Store(1)
		}
		defer depth.Add(-1)
		updates++
		lastStatus = task.Status
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	final, err := poller.Run(ctx, "task-1")
	require.NoError(t, err)
	assert.Equal(t, model.StatusDone, final.Status)
	assert.Equal(t, model.StatusDone, lastStatus)
	assert.Greater(t, updates, 0)
	assert.Zero(t, overlapped.Load(), "update callbacks must never run concurrently")
}

func TestPollerStopHaltsPolling(t *testing.T) {
	fetcher := &countingFetcher{statuses: []model.Status{model.StatusProcessing}}
	store := NewStore(fetcher)
	poller := NewPoller(store, 5*time.Millisecond, nil, nil)

	poller.Start(context.Background(), "task-1")
	time.Sleep(30 * time.Millisecond)
	poller.Stop()

	// Ticks spawned just before Stop may still be landing; let them settle.
	time.Sleep(20 * time.Millisecond)
	settled := fetcher.count()
	assert.Greater(t, settled, 1, "the loop should have polled while running")
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, settled, fetcher.count(), "no polls may fire after Stop returns")
}

func TestPollerStopWithoutStart(t *testing.T) {
	store := NewStore(&countingFetcher{statuses: []model.Status{model.StatusPending}})
	poller := NewPoller(store, 5*time.Millisecond, nil, nil)
	poller.Stop()
}

package task

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"loopa-cli/internal/app/model"
)

// DefaultPollInterval is the fixed cadence between status fetches.
const DefaultPollInterval = 2500 * time.Millisecond

// Poller drives the store's Load at a fixed interval until the task reaches a
// terminal status. Ticks do not wait for in-flight loads, so a slow response
// can leave two requests in flight; the store's sequence tokens keep that
// safe. Failed polls are swallowed and the loop keeps going, so a transient
// network failure never wedges the client past the next tick.
type Poller struct {
	store      *Store
	interval   time.Duration
	logger     *zap.Logger
	onTerminal func(model.Task)

	// OnUpdate, when set before Run/Start, observes every successfully
	// applied load. Views use it to render status transitions live.
	// Invocations are serialized on the Run goroutine, so the callback
	// needs no locking of its own.
	OnUpdate func(model.Task)

	once   sync.Once
	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewPoller creates a poller for the store. interval <= 0 selects the
// default cadence; onTerminal may be nil and is invoked at most once, with
// the first terminal task state observed.
func NewPoller(store *Store, interval time.Duration, logger *zap.Logger, onTerminal func(model.Task)) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Poller{
		store:      store,
		interval:   interval,
		logger:     logger,
		onTerminal: onTerminal,
	}
}

// Run loads the task immediately and then once per tick until a load observes
// a terminal status or the context is canceled. It returns the terminal task
// state, or the context's error on teardown.
func (p *Poller) Run(ctx context.Context, taskID string) (model.Task, error) {
	if fetched, err := p.store.Load(ctx, taskID); err == nil {
		p.update(fetched)
		if fetched.Status.IsTerminal() {
			p.fire(fetched)
			return fetched, nil
		}
	} else if ctx.Err() != nil {
		return model.Task{}, ctx.Err()
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	// Loads run concurrently, but every applied result funnels back through
	// this loop, so OnUpdate and onTerminal only ever run on this goroutine,
	// one at a time, and never after Run returns. loopDone unblocks senders
	// still holding a result when the loop exits.
	results := make(chan model.Task)
	loopDone := make(chan struct{})
	defer close(loopDone)
	for {
		select {
		case <-ctx.Done():
			return model.Task{}, ctx.Err()
		case <-ticker.C:
			go func() {
				fetched, err := p.store.Load(ctx, taskID)
				if err != nil {
					// Swallowed: the store already recorded the surface.
					p.logger.Debug("poll failed", zap.String("task", taskID), zap.Error(err))
					return
				}
				select {
				case results <- fetched:
				case <-loopDone:
				case <-ctx.Done():
				}
			}()
		case fetched := <-results:
			p.update(fetched)
			if fetched.Status.IsTerminal() {
				p.fire(fetched)
				return fetched, nil
			}
		}
	}
}

// Start runs the poll loop in the background. Stop tears it down.
func (p *Poller) Start(ctx context.Context, taskID string) {
	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	p.mu.Lock()
	p.cancel = cancel
	p.done = done
	p.mu.Unlock()

	go func() {
		defer close(done)
		p.Run(runCtx, taskID)
	}()
}

// Stop cancels a background poll loop and waits for it to exit, so no
// periodic work leaks past teardown. Safe to call without a prior Start.
func (p *Poller) Stop() {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel, p.done = nil, nil
	p.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}

func (p *Poller) update(t model.Task) {
	if p.OnUpdate != nil {
		p.OnUpdate(t)
	}
}

func (p *Poller) fire(t model.Task) {
	p.once.Do(func() {
		if p.onTerminal != nil {
			p.onTerminal(t)
		}
	})
}

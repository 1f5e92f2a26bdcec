// Package loop provides a tick-driven render host: all store dispatches and
// render work are funneled onto one goroutine and applied in fixed-rate
// frames. Producers on other goroutines enqueue actions; each tick drains the
// queue in deterministic order, then flushes every render the resulting store
// notifications scheduled. The binding layer itself stays single-threaded.
package loop

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/golang/glog"

	"github.com/comalice/storebind"
)

// ErrQueueFull is returned when a tick's action queue is at capacity.
var ErrQueueFull = errors.New("loop: action queue full")

// Config configures a Host.
type Config struct {
	// TickRate is the frame interval. Defaults to 16.667ms (60 FPS).
	TickRate time.Duration
	// MaxActionsPerTick bounds the action queue. Defaults to 1000.
	MaxActionsPerTick int
	// OnRenderError receives render errors surfaced during a flush. Nil
	// means errors are logged and the instance is skipped for the frame.
	OnRenderError func(error)
}

// queuedAction is one unit of work for a tick: either a store dispatch or an
// arbitrary closure (mounts, owner renders, teardown).
type queuedAction struct {
	store    storebind.Store
	action   any
	fn       func()
	seq      uint64
	priority int
}

// Host is a storebind.RenderHost driven by a ticker.
//
// Dispatch, Do and TickNumber are safe for concurrent use. Everything else,
// including every instance mounted against the host, runs on the loop
// goroutine; use Do to get there.
type Host struct {
	cfg Config

	mu      sync.Mutex
	actions []queuedAction
	seq     uint64
	tickNum uint64

	// render queue, loop goroutine only
	queue  []storebind.Renderable
	queued map[storebind.Renderable]bool

	cancel  context.CancelFunc
	ticker  *time.Ticker
	stopped chan struct{}
}

// New creates a stopped Host.
func New(cfg Config) *Host {
	if cfg.TickRate == 0 {
		cfg.TickRate = 16667 * time.Microsecond
	}
	if cfg.MaxActionsPerTick == 0 {
		cfg.MaxActionsPerTick = 1000
	}
	return &Host{
		cfg:    cfg,
		queued: make(map[storebind.Renderable]bool),
	}
}

// ScheduleRender queues r for the current frame's flush, coalescing repeat
// requests. Only the binding layer calls this, from the loop goroutine.
func (h *Host) ScheduleRender(r storebind.Renderable) {
	if h.queued[r] {
		return
	}
	h.queued[r] = true
	h.queue = append(h.queue, r)
}

// Dispatch queues action for store on the next tick.
func (h *Host) Dispatch(store storebind.Store, action any) error {
	return h.enqueue(queuedAction{store: store, action: action})
}

// DispatchWithPriority queues action with a priority; higher priorities are
// applied first within a tick, ties in submission order.
func (h *Host) DispatchWithPriority(store storebind.Store, action any, priority int) error {
	return h.enqueue(queuedAction{store: store, action: action, priority: priority})
}

// Do queues fn to run on the loop goroutine during the next tick. This is the
// path for mounting, owner-triggered renders and unmounting.
func (h *Host) Do(fn func()) error {
	return h.enqueue(queuedAction{fn: fn})
}

func (h *Host) enqueue(a queuedAction) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.actions) >= h.cfg.MaxActionsPerTick {
		return ErrQueueFull
	}
	a.seq = h.seq
	h.seq++
	h.actions = append(h.actions, a)
	return nil
}

// TickNumber returns the number of completed ticks.
func (h *Host) TickNumber() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.tickNum
}

// Start begins the tick loop. The loop stops when ctx is cancelled or Stop is
// called.
func (h *Host) Start(ctx context.Context) {
	ctx, h.cancel = context.WithCancel(ctx)
	h.ticker = time.NewTicker(h.cfg.TickRate)
	h.stopped = make(chan struct{})
	go h.run(ctx)
}

// Stop cancels the loop and waits for the in-flight tick to finish.
func (h *Host) Stop() {
	if h.cancel == nil {
		return
	}
	h.cancel()
	h.ticker.Stop()
	<-h.stopped
}

func (h *Host) run(ctx context.Context) {
	defer close(h.stopped)
	for {
		select {
		case <-ctx.Done():
			return
		case <-h.ticker.C:
			h.tick()
			h.mu.Lock()
			h.tickNum++
			h.mu.Unlock()
		}
	}
}

// tick applies one frame: drain and order the action queue, apply each action
// (store notifications run synchronously and schedule renders), then flush
// the render queue until it is empty.
func (h *Host) tick() {
	defer func() {
		if r := recover(); r != nil {
			glog.Errorf("loop: tick panicked: %v", r)
		}
	}()

	actions := h.collect()
	sortActions(actions)
	for _, a := range actions {
		if a.fn != nil {
			a.fn()
			continue
		}
		a.store.Dispatch(a.action)
	}

	h.flush()
}

func (h *Host) collect() []queuedAction {
	h.mu.Lock()
	defer h.mu.Unlock()
	actions := h.actions
	h.actions = make([]queuedAction, 0, cap(actions))
	return actions
}

// sortActions orders by priority (higher first), then submission order.
// Stable sort keeps equal-priority actions FIFO.
func sortActions(actions []queuedAction) {
	sort.SliceStable(actions, func(i, j int) bool {
		if actions[i].priority != actions[j].priority {
			return actions[i].priority > actions[j].priority
		}
		return actions[i].seq < actions[j].seq
	})
}

// flush applies scheduled renders in order, committing each. Commits may
// schedule further renders (descendant cascades); those run in the same
// frame.
func (h *Host) flush() {
	for len(h.queue) > 0 {
		r := h.queue[0]
		h.queue = h.queue[1:]
		delete(h.queued, r)

		if _, err := r.Rerender(); err != nil {
			if h.cfg.OnRenderError != nil {
				h.cfg.OnRenderError(err)
			} else {
				glog.Errorf("loop: render failed: %v", err)
			}
			continue
		}
		r.Commit()
	}
}

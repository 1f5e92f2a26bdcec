package testutil

import (
	"fmt"

	"github.com/comalice/storebind/internal/core"
)

// Mountable is what the host needs from an instance to perform an
// owner-triggered render: the full render entry point plus commit.
type Mountable interface {
	Render(ownProps any, ambient core.ContextMap) (core.RenderResult, error)
	Commit()
}

// RecordingHost is a render host that queues scheduled renders and applies
// them on Flush, journaling every stage so tests can assert ordering.
type RecordingHost struct {
	queue  []core.Renderable
	queued map[core.Renderable]bool

	// Journal holds one entry per observed stage, in order.
	Journal []string
	// Errors holds render errors surfaced during Flush, in order.
	Errors []error
}

// NewRecordingHost creates an empty host.
func NewRecordingHost() *RecordingHost {
	return &RecordingHost{queued: make(map[core.Renderable]bool)}
}

// ScheduleRender queues r, coalescing repeat requests for the same
// renderable until it is flushed.
func (h *RecordingHost) ScheduleRender(r core.Renderable) {
	h.Record("schedule:" + renderableName(r))
	if h.queued[r] {
		return
	}
	h.queued[r] = true
	h.queue = append(h.queue, r)
}

// Record appends a stage marker to the journal. Components and tests share
// it to interleave their own markers with the host's.
func (h *RecordingHost) Record(stage string) {
	h.Journal = append(h.Journal, stage)
}

// Seq returns the current journal length, usable as a sequence counter.
func (h *RecordingHost) Seq() int {
	return len(h.Journal)
}

// Mount performs an owner-triggered render-and-commit of m and returns the
// ambient context for m's descendants.
func (h *RecordingHost) Mount(m Mountable, ownProps any, ambient core.ContextMap) (core.ContextMap, error) {
	res, err := m.Render(ownProps, ambient)
	if err != nil {
		return nil, err
	}
	m.Commit()
	h.Record("commit:" + renderableName(m))
	return res.ChildContext, nil
}

// Flush applies queued renders in schedule order, committing each. Renders
// scheduled during the flush (including by commits) are applied in the same
// pass. Render errors are journaled and collected, not propagated: the
// erroring instance is skipped the way an error boundary would detach it.
func (h *RecordingHost) Flush() {
	for len(h.queue) > 0 {
		r := h.queue[0]
		h.queue = h.queue[1:]
		delete(h.queued, r)

		name := renderableName(r)
		_, err := r.Rerender()
		if err != nil {
			h.Errors = append(h.Errors, err)
			h.Record("error:" + name)
			continue
		}
		r.Commit()
		h.Record("commit:" + name)
	}
}

// Pending reports how many renders are queued.
func (h *RecordingHost) Pending() int {
	return len(h.queue)
}

func renderableName(r any) string {
	if n, ok := r.(interface{ DisplayName() string }); ok {
		return n.DisplayName()
	}
	return fmt.Sprintf("%T", r)
}

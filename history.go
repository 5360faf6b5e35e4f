package hashroute

import (
	"log/slog"
	"sync"

	"github.com/rohanthewiz/serr"
)

// FragmentFunc is the callback a Source invokes when the observed location
// changes.
type FragmentFunc func(fragment string)

// Source supplies fragment changes from the outside world: a browser bridge,
// a test harness, or any other navigation watcher. Start may be called once;
// the source must stop invoking the callback after Stop returns.
type Source interface {
	Start(notify FragmentFunc) error
	Stop() error
}

// History connects a Source to a Router. It keeps the current fragment,
// de-duplicates repeat navigations, and serializes dispatches so the router
// only ever runs on one logical thread of control, even when a handler
// navigates again mid-dispatch.
type History struct {
	router *Router
	source Source
	log    *slog.Logger

	mu      sync.Mutex
	current string
	queue   []string
	busy    bool
	started bool
}

// NewHistory creates a history for the router. The source may be nil when
// only programmatic navigation is used.
func NewHistory(router *Router, source Source) *History {
	return &History{
		router: router,
		source: source,
		log:    slog.Default().With("component", "hashroute.history"),
	}
}

// Start begins watching the source.
func (h *History) Start() error {
	h.mu.Lock()
	if h.started {
		h.mu.Unlock()
		return serr.New("history already started")
	}
	h.started = true
	h.mu.Unlock()

	if h.source == nil {
		return nil
	}

	if err := h.source.Start(h.onFragment); err != nil {
		return serr.Wrap(err, "could not start fragment source")
	}
	return nil
}

// Stop stops watching the source.
func (h *History) Stop() error {
	h.mu.Lock()
	h.started = false
	h.mu.Unlock()

	if h.source == nil {
		return nil
	}
	return h.source.Stop()
}

// Fragment returns the current fragment.
func (h *History) Fragment() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current
}

// Navigate moves to a new fragment. With trigger set, the matching route
// handler runs; otherwise only the current fragment is updated. Navigating
// to the fragment already current is a no-op.
func (h *History) Navigate(fragment string, trigger bool) {
	frag := NormalizeFragment(fragment)

	h.mu.Lock()
	if frag == h.current {
		h.mu.Unlock()
		return
	}

	if !trigger {
		h.current = frag
		h.mu.Unlock()
		return
	}
	h.mu.Unlock()

	h.onFragment(frag)
}

// onFragment queues a fragment and drains the queue unless a drain is
// already running higher up the stack. The queue makes navigation from
// inside a handler safe: the nested call just enqueues and returns, and the
// outer drain picks the fragment up after the current dispatch finishes.
func (h *History) onFragment(fragment string) {
	frag := NormalizeFragment(fragment)

	h.mu.Lock()
	h.queue = append(h.queue, frag)

	if h.busy {
		h.mu.Unlock()
		return
	}
	h.busy = true

	for len(h.queue) > 0 {
		next := h.queue[0]
		h.queue = h.queue[1:]

		if next == h.current {
			continue
		}
		h.current = next
		h.mu.Unlock()

		handled, err := h.router.Dispatch(next)
		if err != nil {
			h.log.Error("dispatch failed", "fragment", next, "error", err)
		} else if !handled {
			h.log.Debug("no route matched", "fragment", next)
		}

		h.mu.Lock()
	}

	h.busy = false
	h.mu.Unlock()
}

// MemorySource is an in-process Source for tests and examples. Set simulates
// a navigation change.
type MemorySource struct {
	mu     sync.Mutex
	notify FragmentFunc
}

// Start implements Source.
func (s *MemorySource) Start(notify FragmentFunc) error {
	s.mu.Lock()
	s.notify = notify
	s.mu.Unlock()
	return nil
}

// Stop implements Source.
func (s *MemorySource) Stop() error {
	s.mu.Lock()
	s.notify = nil
	s.mu.Unlock()
	return nil
}

// Set delivers a fragment change to the subscribed history.
func (s *MemorySource) Set(fragment string) {
	s.mu.Lock()
	notify := s.notify
	s.mu.Unlock()

	if notify != nil {
		notify(fragment)
	}
}

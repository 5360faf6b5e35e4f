package hashroute

import (
	"sync"

	"github.com/rohanthewiz/hashroute/core/ptn"
)

// Emitter receives route notifications after a successful dispatch. The
// router fires the specific event ("route:<name>") followed by the generic
// "route" event; params include the trailing query slot.
type Emitter interface {
	Emit(event string, route string, params []ptn.Param)
}

// EmitterFunc adapts a function to the Emitter interface.
type EmitterFunc func(event string, route string, params []ptn.Param)

// Emit implements Emitter.
func (f EmitterFunc) Emit(event string, route string, params []ptn.Param) {
	f(event, route, params)
}

// Hub fans route events out to any number of subscribers. It implements
// Emitter, so it can be handed directly to a Router. Subscription is safe
// from any goroutine; delivery happens on the dispatching goroutine.
type Hub struct {
	mu     sync.RWMutex
	nextID int
	subs   map[int]EmitterFunc
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		subs: make(map[int]EmitterFunc),
	}
}

// Subscribe adds a listener and returns its cancel function.
func (h *Hub) Subscribe(fn EmitterFunc) (cancel func()) {
	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.subs[id] = fn
	h.mu.Unlock()

	return func() {
		h.mu.Lock()
		delete(h.subs, id)
		h.mu.Unlock()
	}
}

// Emit delivers the event to every subscriber.
func (h *Hub) Emit(event string, route string, params []ptn.Param) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, fn := range h.subs {
		fn(event, route, params)
	}
}

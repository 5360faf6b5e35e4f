// Package hashroute routes navigation fragments to handlers.
//
// Route templates are compiled once (see core/ptn) and held in an ordered
// table. Dispatch scans the table newest-first, so when two templates both
// match a fragment, the route registered last wins. That ordering is part of
// the contract; callers rely on it to shadow earlier routes.
package hashroute

import (
	"errors"
	"log/slog"
	"time"

	"github.com/rohanthewiz/hashroute/consts"
	"github.com/rohanthewiz/hashroute/core/ptn"
	"github.com/rohanthewiz/serr"
)

// Handler is the callable bound to a route. A handler may return Stop to
// suppress event emission for the dispatch; any other non-nil error is
// surfaced to the Dispatch caller.
type Handler func(ctx Context) error

// Stop suppresses route events when returned from a handler or filter.
// The dispatch still counts as handled.
var Stop = errors.New("hashroute: stop")

// HandlerResolver supplies handlers for routes registered by name only.
// Resolution happens at dispatch time, so handlers may be bound after the
// route table is built (e.g. when the table comes from a config file).
type HandlerResolver interface {
	HandlerByName(name string) (Handler, bool)
}

// ResolverMap is a map-backed HandlerResolver.
type ResolverMap map[string]Handler

// HandlerByName implements HandlerResolver.
func (m ResolverMap) HandlerByName(name string) (Handler, bool) {
	h, ok := m[name]
	return h, ok
}

// routeEntry pairs a compiled pattern with its handler and optional name.
type routeEntry struct {
	pattern *ptn.Pattern
	handler Handler
	name    string
}

// RouterOptions configures a Router. All fields are optional.
type RouterOptions struct {
	// Resolver binds handlers to routes registered by name only.
	Resolver HandlerResolver

	// Events receives notifications after each successful dispatch.
	Events Emitter

	// Metrics, when set, records dispatch outcomes and durations.
	Metrics *Metrics

	// Logger defaults to slog.Default() scoped to this component.
	Logger *slog.Logger

	// Verbose enables per-dispatch debug logging.
	Verbose bool
}

// Router holds the ordered route table and drives dispatch.
//
// The table is append-only. Registration and dispatch are expected on a
// single logical goroutine (see History, which serializes navigation
// sources); handlers may safely register new routes during a dispatch, the
// in-progress scan will not see them.
type Router struct {
	routes   []routeEntry
	filters  []Handler
	resolver HandlerResolver
	events   Emitter
	metrics  *Metrics
	log      *slog.Logger
	verbose  bool
}

// NewRouter creates a router.
func NewRouter(opts ...RouterOptions) *Router {
	r := &Router{}

	if len(opts) == 1 {
		r.resolver = opts[0].Resolver
		r.events = opts[0].Events
		r.metrics = opts[0].Metrics
		r.log = opts[0].Logger
		r.verbose = opts[0].Verbose
	}

	if r.log == nil {
		r.log = slog.Default().With("component", "hashroute")
	}

	return r
}

// Route registers a template with its handler. Templates use ":name" for
// single-segment params, "*name" for greedy multi-segment params, and
// "(part)" for optional sections.
func (r *Router) Route(template string, handler Handler) {
	r.RouteNamed("", template, handler)
}

// RouteNamed registers a template under a name. The name labels route events
// and, when handler is nil, is resolved through the router's
// HandlerResolver at dispatch time. A nil handler with no name is a
// configuration error surfaced on first match.
func (r *Router) RouteNamed(name, template string, handler Handler) {
	r.addRoute(routeEntry{
		pattern: ptn.Compile(template),
		handler: handler,
		name:    name,
	})
}

// RoutePattern registers an already-compiled pattern, bypassing template
// compilation. This supports advanced routes built directly on expressions
// (see ptn.FromRegexp).
func (r *Router) RoutePattern(pattern *ptn.Pattern, name string, handler Handler) {
	r.addRoute(routeEntry{
		pattern: pattern,
		handler: handler,
		name:    name,
	})
}

func (r *Router) addRoute(entry routeEntry) {
	r.routes = append(r.routes, entry)
	r.metrics.routeAdded()

	if r.verbose {
		r.log.Debug("route registered", "template", entry.pattern.Source(), "name", entry.name)
	}
}

// Use adds filters that run before every matched handler, in the order
// given. A filter must call ctx.Next() to continue the chain; returning
// Stop cancels event emission for the dispatch.
func (r *Router) Use(filters ...Handler) {
	r.filters = append(r.filters, filters...)
}

// List returns the registered templates in registration order.
func (r *Router) List() []string {
	templates := make([]string, 0, len(r.routes))
	for _, entry := range r.routes {
		templates = append(templates, entry.pattern.Source())
	}
	return templates
}

// Dispatch matches the fragment against the route table, newest-first, and
// runs the first matching route's handler with the extracted parameters.
// It returns true when a route matched and its handler ran. A non-matching
// fragment is not an error: the result is simply false.
//
// A named route whose handler cannot be resolved returns false and an
// error; the table and the caller's event loop are unaffected.
func (r *Router) Dispatch(fragment string) (bool, error) {
	frag := NormalizeFragment(fragment)
	start := time.Now()

	// Snapshot the table bound so handlers can append routes without
	// affecting this pass.
	routes := r.routes

	for i := len(routes) - 1; i >= 0; i-- {
		entry := routes[i]

		params, ok := entry.pattern.Match(frag)
		if !ok {
			continue
		}

		if r.verbose {
			r.log.Debug("fragment matched",
				"fragment", frag, "template", entry.pattern.Source(), "route", entry.name)
		}

		handler := entry.handler
		if handler == nil {
			handler = r.resolveHandler(entry.name)
			if handler == nil {
				r.metrics.observeDispatch(consts.OutcomeError, time.Since(start))
				return false, serr.New("handler not found for route",
					"route", entry.name, "fragment", frag)
			}
		}

		err := r.runChain(entry, frag, params, handler)

		switch {
		case errors.Is(err, Stop):
			// Handled, events suppressed.
		case err != nil:
			r.metrics.observeDispatch(consts.OutcomeError, time.Since(start))
			return true, serr.Wrap(err, "route handler failed")
		default:
			r.emit(entry.name, params)
		}

		r.metrics.observeDispatch(consts.OutcomeMatched, time.Since(start))
		return true, nil
	}

	r.metrics.observeDispatch(consts.OutcomeUnmatched, time.Since(start))
	return false, nil
}

// runChain executes the filter chain ending in the matched handler.
func (r *Router) runChain(entry routeEntry, fragment string, params []ptn.Param, handler Handler) error {
	chain := make([]Handler, 0, len(r.filters)+1)
	chain = append(chain, r.filters...)
	chain = append(chain, handler)

	ctx := &context{
		router:   r,
		entry:    entry,
		fragment: fragment,
		params:   params,
		chain:    chain,
	}

	return chain[0](ctx)
}

func (r *Router) resolveHandler(name string) Handler {
	if name == "" || r.resolver == nil {
		return nil
	}

	handler, ok := r.resolver.HandlerByName(name)
	if !ok {
		return nil
	}
	return handler
}

// emit notifies the event collaborator: first the specific "route:<name>"
// event, then the generic "route" event carrying the name.
func (r *Router) emit(name string, params []ptn.Param) {
	if r.events == nil {
		return
	}

	if name != "" {
		r.events.Emit(consts.EventRoutePrefix+name, name, params)
	}
	r.events.Emit(consts.EventRoute, name, params)
}

package hashroute

import (
	"log/slog"

	"github.com/rohanthewiz/hashroute/core/ptn"
)

// Context is the interface handlers and filters receive for one dispatch.
// Its lifetime is the dispatch call; do not retain it.
type Context interface {
	// Fragment returns the normalized fragment being dispatched.
	Fragment() string

	// Params returns all extracted values in declaration order,
	// including the trailing query slot.
	Params() []ptn.Param

	// Param returns the value at slot i, or a zero Param out of range.
	Param(i int) ptn.Param

	// Named returns the value of the path slot with the given name.
	Named(name string) ptn.Param

	// Query returns the raw query slot (never percent-decoded).
	Query() ptn.Param

	// RouteName returns the matched route's name, empty if unnamed.
	RouteName() string

	// Pattern returns the matched compiled pattern.
	Pattern() *ptn.Pattern

	// Next runs the next filter in the chain, ending at the route handler.
	Next() error

	// Logger returns the router's logger.
	Logger() *slog.Logger
}

// context is the concrete dispatch state.
type context struct {
	router       *Router
	entry        routeEntry
	fragment     string
	params       []ptn.Param
	chain        []Handler
	handlerCount uint8
}

func (ctx *context) Fragment() string {
	return ctx.fragment
}

func (ctx *context) Params() []ptn.Param {
	return ctx.params
}

func (ctx *context) Param(i int) ptn.Param {
	if i < 0 || i >= len(ctx.params) {
		return ptn.Param{}
	}
	return ctx.params[i]
}

// Named resolves a slot by the name it carries in the route template.
// The query slot is excluded; use Query for it.
func (ctx *context) Named(name string) ptn.Param {
	slots := ctx.entry.pattern.Slots()

	for i, slot := range slots {
		if slot.Kind == ptn.SlotQuery {
			break
		}
		if slot.Name == name {
			return ctx.Param(i)
		}
	}

	return ptn.Param{}
}

// Query returns the final capture slot: raw text after a literal "?".
func (ctx *context) Query() ptn.Param {
	if len(ctx.params) == 0 {
		return ptn.Param{}
	}
	return ctx.params[len(ctx.params)-1]
}

func (ctx *context) RouteName() string {
	return ctx.entry.name
}

func (ctx *context) Pattern() *ptn.Pattern {
	return ctx.entry.pattern
}

// Next executes the next handler in the filter chain.
func (ctx *context) Next() error {
	ctx.handlerCount++
	if int(ctx.handlerCount) >= len(ctx.chain) {
		return nil
	}
	return ctx.chain[ctx.handlerCount](ctx)
}

func (ctx *context) Logger() *slog.Logger {
	return ctx.router.log
}

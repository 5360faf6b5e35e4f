package hashroute_test

import (
	"errors"
	"regexp"
	"testing"

	"github.com/rohanthewiz/assert"
	"github.com/rohanthewiz/hashroute"
	"github.com/rohanthewiz/hashroute/core/ptn"
)

// eventRec records emitted route events in order.
type eventRec struct {
	events []string
	routes []string
	params [][]ptn.Param
}

func (e *eventRec) Emit(event string, route string, params []ptn.Param) {
	e.events = append(e.events, event)
	e.routes = append(e.routes, route)
	e.params = append(e.params, params)
}

func TestDispatch(t *testing.T) {
	r := hashroute.NewRouter()

	var got []ptn.Param
	r.Route("search/:query/p:page", func(ctx hashroute.Context) error {
		got = ctx.Params()
		return nil
	})

	handled, err := r.Dispatch("search/books/p50")
	assert.Nil(t, err)
	assert.True(t, handled)
	assert.Equal(t, len(got), 3)
	assert.Equal(t, got[0].Value, "books")
	assert.Equal(t, got[1].Value, "50")
	assert.False(t, got[2].Valid)

	handled, err = r.Dispatch("nothing/here")
	assert.Nil(t, err)
	assert.False(t, handled)
}

func TestDispatchNormalizesFragment(t *testing.T) {
	r := hashroute.NewRouter()

	ran := false
	r.Route("docs/:chapter", func(ctx hashroute.Context) error {
		ran = true
		assert.Equal(t, ctx.Fragment(), "docs/intro")
		return nil
	})

	handled, err := r.Dispatch("#docs/intro")
	assert.Nil(t, err)
	assert.True(t, handled)
	assert.True(t, ran)
}

func TestLastRegisteredWins(t *testing.T) {
	r := hashroute.NewRouter()

	var winner string
	r.Route("overlap/:a", func(ctx hashroute.Context) error {
		winner = "first"
		return nil
	})
	r.Route("overlap/:b", func(ctx hashroute.Context) error {
		winner = "second"
		return nil
	})

	handled, err := r.Dispatch("overlap/x")
	assert.Nil(t, err)
	assert.True(t, handled)
	assert.Equal(t, winner, "second")
}

func TestFirstMatchStopsScan(t *testing.T) {
	r := hashroute.NewRouter()

	calls := 0
	counting := func(ctx hashroute.Context) error {
		calls++
		return nil
	}

	r.Route("thing/:id", counting)
	r.Route("thing/:id", counting)
	r.Route("thing/:id", counting)

	_, _ = r.Dispatch("thing/1")
	assert.Equal(t, calls, 1)
}

func TestNamedRouteResolution(t *testing.T) {
	ran := false
	r := hashroute.NewRouter(hashroute.RouterOptions{
		Resolver: hashroute.ResolverMap{
			"book": func(ctx hashroute.Context) error {
				ran = true
				return nil
			},
		},
	})

	r.RouteNamed("book", "book/:id", nil)

	handled, err := r.Dispatch("book/42")
	assert.Nil(t, err)
	assert.True(t, handled)
	assert.True(t, ran)
}

func TestUnresolvedHandler(t *testing.T) {
	r := hashroute.NewRouter()
	r.RouteNamed("ghost", "ghost/:id", nil)

	handled, err := r.Dispatch("ghost/1")
	assert.False(t, handled)
	assert.NotNil(t, err)
	assert.Contains(t, err.Error(), "handler not found")

	// The failure is local to that dispatch; the table still works.
	ran := false
	r.Route("ghost/:id", func(ctx hashroute.Context) error {
		ran = true
		return nil
	})

	handled, err = r.Dispatch("ghost/1")
	assert.Nil(t, err)
	assert.True(t, handled)
	assert.True(t, ran)
}

func TestRouteEvents(t *testing.T) {
	rec := &eventRec{}
	r := hashroute.NewRouter(hashroute.RouterOptions{Events: rec})

	r.RouteNamed("search", "search/:query", func(ctx hashroute.Context) error {
		return nil
	})

	_, _ = r.Dispatch("search/books")

	assert.Equal(t, len(rec.events), 2)
	assert.Equal(t, rec.events[0], "route:search")
	assert.Equal(t, rec.events[1], "route")
	assert.Equal(t, rec.routes[0], "search")
	assert.Equal(t, rec.params[0][0].Value, "books")
}

func TestUnnamedRouteEmitsGenericEventOnly(t *testing.T) {
	rec := &eventRec{}
	r := hashroute.NewRouter(hashroute.RouterOptions{Events: rec})

	r.Route("plain", func(ctx hashroute.Context) error { return nil })

	_, _ = r.Dispatch("plain")

	assert.Equal(t, len(rec.events), 1)
	assert.Equal(t, rec.events[0], "route")
}

func TestStopSuppressesEvents(t *testing.T) {
	rec := &eventRec{}
	r := hashroute.NewRouter(hashroute.RouterOptions{Events: rec})

	r.RouteNamed("quiet", "quiet", func(ctx hashroute.Context) error {
		return hashroute.Stop
	})

	handled, err := r.Dispatch("quiet")
	assert.Nil(t, err)
	assert.True(t, handled) // the match still counts
	assert.Equal(t, len(rec.events), 0)
}

func TestHandlerErrorSurfaces(t *testing.T) {
	rec := &eventRec{}
	r := hashroute.NewRouter(hashroute.RouterOptions{Events: rec})

	boom := errors.New("boom")
	r.Route("explode", func(ctx hashroute.Context) error {
		return boom
	})

	handled, err := r.Dispatch("explode")
	assert.True(t, handled)
	assert.NotNil(t, err)
	assert.True(t, errors.Is(err, boom))
	assert.Equal(t, len(rec.events), 0)
}

func TestAppendDuringDispatch(t *testing.T) {
	r := hashroute.NewRouter()

	var ran []string
	r.Route("live/:x", func(ctx hashroute.Context) error {
		ran = append(ran, "original")
		// Registered mid-dispatch; must not affect this pass.
		r.Route("live/:x", func(ctx hashroute.Context) error {
			ran = append(ran, "added")
			return nil
		})
		return nil
	})

	handled, err := r.Dispatch("live/1")
	assert.Nil(t, err)
	assert.True(t, handled)
	assert.Equal(t, len(ran), 1)
	assert.Equal(t, ran[0], "original")

	// The next dispatch sees the new route, which now wins.
	_, _ = r.Dispatch("live/2")
	assert.Equal(t, len(ran), 2)
	assert.Equal(t, ran[1], "added")
}

func TestFilters(t *testing.T) {
	r := hashroute.NewRouter()

	var order []string
	r.Use(func(ctx hashroute.Context) error {
		order = append(order, "first")
		return ctx.Next()
	})
	r.Use(func(ctx hashroute.Context) error {
		order = append(order, "second")
		return ctx.Next()
	})

	r.Route("filtered", func(ctx hashroute.Context) error {
		order = append(order, "handler")
		return nil
	})

	handled, err := r.Dispatch("filtered")
	assert.Nil(t, err)
	assert.True(t, handled)
	assert.Equal(t, len(order), 3)
	assert.Equal(t, order[0], "first")
	assert.Equal(t, order[1], "second")
	assert.Equal(t, order[2], "handler")
}

func TestFilterStop(t *testing.T) {
	rec := &eventRec{}
	r := hashroute.NewRouter(hashroute.RouterOptions{Events: rec})

	r.Use(func(ctx hashroute.Context) error {
		return hashroute.Stop // never reaches the handler
	})

	ran := false
	r.RouteNamed("blocked", "blocked", func(ctx hashroute.Context) error {
		ran = true
		return nil
	})

	handled, err := r.Dispatch("blocked")
	assert.Nil(t, err)
	assert.True(t, handled)
	assert.False(t, ran)
	assert.Equal(t, len(rec.events), 0)
}

func TestRoutePattern(t *testing.T) {
	r := hashroute.NewRouter()

	var id string
	p := ptn.FromRegexp(regexp.MustCompile(`^custom/(\d+)(?:\?([\s\S]*))?$`))
	r.RoutePattern(p, "custom", func(ctx hashroute.Context) error {
		id = ctx.Param(0).Value
		return nil
	})

	handled, err := r.Dispatch("custom/77")
	assert.Nil(t, err)
	assert.True(t, handled)
	assert.Equal(t, id, "77")

	handled, _ = r.Dispatch("custom/nope")
	assert.False(t, handled)
}

func TestGroup(t *testing.T) {
	r := hashroute.NewRouter()

	var got string
	admin := r.Group("admin/")
	admin.Route("users/:id", func(ctx hashroute.Context) error {
		got = ctx.Named("id").Value
		return nil
	})

	reports := admin.Group("reports/")
	var report string
	reports.RouteNamed("report", ":year", func(ctx hashroute.Context) error {
		report = ctx.Named("year").Value
		return nil
	})

	handled, err := r.Dispatch("admin/users/9")
	assert.Nil(t, err)
	assert.True(t, handled)
	assert.Equal(t, got, "9")

	handled, err = r.Dispatch("admin/reports/2026")
	assert.Nil(t, err)
	assert.True(t, handled)
	assert.Equal(t, report, "2026")
}

func TestList(t *testing.T) {
	r := hashroute.NewRouter()
	r.Route("one", func(ctx hashroute.Context) error { return nil })
	r.Route("two/:id", func(ctx hashroute.Context) error { return nil })

	list := r.List()
	assert.Equal(t, len(list), 2)
	assert.Equal(t, list[0], "one")
	assert.Equal(t, list[1], "two/:id")
}

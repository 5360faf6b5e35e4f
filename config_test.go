package hashroute_test

import (
	"testing"

	"github.com/rohanthewiz/assert"
	"github.com/rohanthewiz/hashroute"
)

func TestLoadRoutes(t *testing.T) {
	var got string
	r := hashroute.NewRouter(hashroute.RouterOptions{
		Resolver: hashroute.ResolverMap{
			"search": func(ctx hashroute.Context) error {
				got = ctx.Named("query").Value
				return nil
			},
			"file": func(ctx hashroute.Context) error {
				got = ctx.Named("path").Value
				return nil
			},
		},
	})

	err := r.LoadRoutes([]byte(`[
		{"name": "search", "pattern": "search/:query(/p:page)"},
		{"name": "file",   "pattern": "file/*path"}
	]`))
	assert.Nil(t, err)
	assert.Equal(t, len(r.List()), 2)

	handled, err := r.Dispatch("search/books")
	assert.Nil(t, err)
	assert.True(t, handled)
	assert.Equal(t, got, "books")

	handled, err = r.Dispatch("file/a/b.txt")
	assert.Nil(t, err)
	assert.True(t, handled)
	assert.Equal(t, got, "a/b.txt")
}

func TestLoadRoutesInvalidJSON(t *testing.T) {
	r := hashroute.NewRouter()

	err := r.LoadRoutes([]byte(`{not json`))
	assert.NotNil(t, err)

	err = r.LoadRoutes([]byte(`{"name": "x"}`)) // object, not array
	assert.NotNil(t, err)
}

func TestLoadRoutesMissingFields(t *testing.T) {
	r := hashroute.NewRouter()

	err := r.LoadRoutes([]byte(`[{"name": "x"}]`))
	assert.NotNil(t, err)
	assert.Contains(t, err.Error(), "pattern")

	err = r.LoadRoutes([]byte(`[{"pattern": "x/:id"}]`))
	assert.NotNil(t, err)
	assert.Contains(t, err.Error(), "name")
}

func TestLoadedRouteUnresolvedAtDispatch(t *testing.T) {
	r := hashroute.NewRouter() // no resolver bound

	err := r.LoadRoutes([]byte(`[{"name": "orphan", "pattern": "orphan"}]`))
	assert.Nil(t, err) // load succeeds; resolution is a dispatch-time concern

	handled, err := r.Dispatch("orphan")
	assert.False(t, handled)
	assert.NotNil(t, err)
}

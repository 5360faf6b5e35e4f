package hashroute

import (
	"github.com/rohanthewiz/serr"
	"github.com/tidwall/gjson"
)

// LoadRoutes registers routes from a JSON route table:
//
//	[
//	  {"name": "search", "pattern": "search/:query(/p:page)"},
//	  {"name": "file",   "pattern": "file/*path"}
//	]
//
// Handlers are resolved by name through the router's HandlerResolver at
// dispatch time, so the table can be loaded before handlers are bound.
// Registration order follows array order; as always, later entries win when
// patterns overlap.
func (r *Router) LoadRoutes(data []byte) error {
	if !gjson.ValidBytes(data) {
		return serr.New("route table is not valid JSON")
	}

	parsed := gjson.ParseBytes(data)
	if !parsed.IsArray() {
		return serr.New("route table must be a JSON array")
	}

	var err error
	parsed.ForEach(func(_, entry gjson.Result) bool {
		pattern := entry.Get("pattern")
		if !pattern.Exists() {
			err = serr.New("route entry missing pattern", "entry", entry.Raw)
			return false
		}

		name := entry.Get("name").String()
		if name == "" {
			// Without a name there is nothing to resolve a handler by.
			err = serr.New("route entry missing name", "pattern", pattern.String())
			return false
		}

		r.RouteNamed(name, pattern.String(), nil)
		return true
	})

	return err
}

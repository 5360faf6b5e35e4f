// Package consts holds shared constants for hashroute.
package consts

// Event names emitted after a successful dispatch.
// The specific event is the prefix joined with the route name, e.g. "route:search".
const (
	EventRoute       = "route"
	EventRoutePrefix = "route:"
)

// Characters with meaning in fragments and route templates.
const (
	RuneHash     = '#'
	RuneSlash    = '/'
	RuneQuestion = '?'
	RuneColon    = ':'
	RuneSplat    = '*'
)

// Dispatch outcomes as reported to metrics.
const (
	OutcomeMatched   = "matched"
	OutcomeUnmatched = "unmatched"
	OutcomeError     = "error"
)

// MetricsNamespace is the default namespace for exported metrics.
const MetricsNamespace = "hashroute"

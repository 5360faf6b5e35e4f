// Package ptn compiles route templates into anchored matchers.
//
// A template mixes literal text with three placeholder forms:
//
//	:name   one path segment (no "/" or "?")
//	*name   greedy multi-segment capture, up to a "?"
//	(part)  optional section
//
// Compilation is a sequence of textual rewrites over the template; the
// result matches whole fragments and extracts one value per placeholder,
// plus a trailing slot for anything after a literal "?".
package ptn

import (
	"regexp"
	"strings"
)

// The rewrite order is load-bearing: escaping must run before the
// placeholder rewrites introduce regex operators of their own, and optional
// sections must be rewritten before the placeholders inside them.
var (
	escapedChars  = regexp.MustCompile(`[\-{}\[\]+?.,\\^$|#\s]`)
	optionalPart  = regexp.MustCompile(`\((.*?)\)`)
	namedParam    = regexp.MustCompile(`(\(\?)?:\w+`)
	splatParam    = regexp.MustCompile(`\*\w+`)
	slotMarkers   = regexp.MustCompile(`(\(\?)?([:*])(\w+)`)
	neverMatching = regexp.MustCompile(`\A\z.`)
)

// SlotKind classifies a capture slot of a compiled pattern.
type SlotKind int

const (
	// SlotNamed captures one path segment (":name").
	SlotNamed SlotKind = iota

	// SlotSplat captures across path segments ("*name").
	SlotSplat

	// SlotQuery is the implicit final slot holding the raw text after a "?".
	SlotQuery
)

// Slot describes one capture position of a compiled pattern, in declaration
// order. The final slot is always the query slot.
type Slot struct {
	Kind SlotKind
	Name string
}

// Pattern is a compiled route template. It is immutable and safe to reuse
// across any number of Match calls.
type Pattern struct {
	source string
	expr   string
	re     *regexp.Regexp
	slots  []Slot
}

// Compile transforms a route template into a Pattern. It is total: any
// string is accepted. A template whose derived expression is not a valid
// regular expression (e.g. an unbalanced bare parenthesis) yields a pattern
// that matches nothing rather than an error.
func Compile(template string) *Pattern {
	expr := escapedChars.ReplaceAllString(template, `\${0}`)
	expr = optionalPart.ReplaceAllString(expr, `(?:${1})?`)
	expr = namedParam.ReplaceAllStringFunc(expr, func(m string) string {
		// A ":name" directly after "(?" is part of a non-capturing group
		// marker, not a placeholder.
		if strings.HasPrefix(m, "(?") {
			return m
		}
		return `([^/?]+)`
	})
	expr = splatParam.ReplaceAllString(expr, `([^?]*?)`)
	expr = `^` + expr + `(?:\?([\s\S]*))?$`

	re, err := regexp.Compile(expr)
	if err != nil {
		re = neverMatching
	}

	return &Pattern{
		source: template,
		expr:   expr,
		re:     re,
		slots:  slotsFor(template),
	}
}

// FromRegexp wraps an already-built expression as a Pattern, bypassing
// template compilation. Capture groups map positionally to slots; the last
// group is treated as the query slot, matching the shape Compile produces.
func FromRegexp(re *regexp.Regexp) *Pattern {
	slots := make([]Slot, 0, re.NumSubexp())
	for i := 1; i < re.NumSubexp(); i++ {
		slots = append(slots, Slot{Kind: SlotNamed, Name: re.SubexpNames()[i]})
	}
	slots = append(slots, Slot{Kind: SlotQuery, Name: "query"})

	return &Pattern{
		source: re.String(),
		expr:   re.String(),
		re:     re,
		slots:  slots,
	}
}

// Match tests the pattern against a full fragment. On success it returns one
// Param per capture slot in declaration order. Path slots are
// percent-decoded; the final query slot is returned raw. A slot that did not
// take part in the match (an absent optional section, or a fragment with no
// "?") is reported as not Valid.
func (p *Pattern) Match(fragment string) ([]Param, bool) {
	idx := p.re.FindStringSubmatchIndex(fragment)
	if idx == nil {
		return nil, false
	}

	n := p.re.NumSubexp()
	params := make([]Param, 0, n)

	for i := 1; i <= n; i++ {
		start, end := idx[2*i], idx[2*i+1]
		if start < 0 {
			params = append(params, Param{})
			continue
		}

		raw := fragment[start:end]
		if i == n {
			// Query text is deliberately not decoded here; only path
			// parameters are.
			params = append(params, Param{Value: raw, Valid: true})
			continue
		}

		params = append(params, Param{Value: decode(raw), Valid: true})
	}

	return params, true
}

// MatchString reports whether the fragment matches, without extracting.
func (p *Pattern) MatchString(fragment string) bool {
	return p.re.MatchString(fragment)
}

// Source returns the original template (or expression, for FromRegexp).
func (p *Pattern) Source() string {
	return p.source
}

// Expr returns the derived regular expression.
func (p *Pattern) Expr() string {
	return p.expr
}

// Slots returns the capture slot metadata in declaration order.
func (p *Pattern) Slots() []Slot {
	return p.slots
}

// slotsFor reads the placeholder markers out of the original template. The
// capture groups of the derived expression appear in the same textual order,
// so the mapping is positional.
func slotsFor(template string) []Slot {
	var slots []Slot

	for _, m := range slotMarkers.FindAllStringSubmatch(template, -1) {
		if m[1] == "(?" && m[2] == ":" {
			continue
		}

		kind := SlotNamed
		if m[2] == "*" {
			kind = SlotSplat
		}
		slots = append(slots, Slot{Kind: kind, Name: m[3]})
	}

	return append(slots, Slot{Kind: SlotQuery, Name: "query"})
}

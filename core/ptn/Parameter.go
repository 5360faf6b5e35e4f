package ptn

import "net/url"

// Param is one extracted parameter value. Valid is false when the capture
// slot did not take part in the match, which is the string-or-null
// distinction handlers rely on: an absent optional segment is not the same
// as an empty one.
type Param struct {
	Value string
	Valid bool
}

// Or returns the value, or fallback when the slot is absent.
func (p Param) Or(fallback string) string {
	if !p.Valid {
		return fallback
	}
	return p.Value
}

// String returns the value, empty for an absent slot.
func (p Param) String() string {
	return p.Value
}

// decode percent-decodes a path parameter. Malformed escapes keep the raw
// text instead of failing the whole dispatch.
func decode(s string) string {
	u, err := url.PathUnescape(s)
	if err != nil {
		return s
	}
	return u
}

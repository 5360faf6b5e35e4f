package hashroute

import (
	"regexp"

	"github.com/rohanthewiz/hashroute/consts"
	"github.com/valyala/bytebufferpool"
)

// fragmentStripper removes a leading "#" or "/" and trailing whitespace,
// the way a location hash arrives from a browser.
var fragmentStripper = regexp.MustCompile(`^[#/]|\s+$`)

// NormalizeFragment prepares an observed location fragment for matching.
// "#search/books" and "/search/books" both normalize to "search/books".
func NormalizeFragment(fragment string) string {
	return fragmentStripper.ReplaceAllString(fragment, "")
}

// JoinFragment composes a full fragment from a path and an optional query.
func JoinFragment(path, query string) string {
	if query == "" {
		return path
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	buf.SetString(path)
	_ = buf.WriteByte(consts.RuneQuestion)
	_, _ = buf.WriteString(query)

	return buf.String()
}

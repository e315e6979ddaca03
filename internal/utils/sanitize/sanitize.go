package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// strict removes every tag and attribute. bluemonday.Policy is safe for
// concurrent use once built; never mutate it after initialization.
var strict = func() *bluemonday.Policy {
	p := bluemonday.StrictPolicy()
	p.AddSpaceWhenStrippingTag(true) // Prevents word concatenation
	return p
}()

// Line turns arbitrary user input into a single line of plain text.
//
// Names and addresses pass through Line before they are stored:
//   - "<b>Jane</b> Doe" -> "Jane Doe"
//   - "  12 Main St,\n Springfield " -> "12 Main St, Springfield"
//   - "Tom &amp; Jerry" -> "Tom & Jerry"
func Line(s string) string {
	cleaned := html.UnescapeString(strict.Sanitize(s))
	cleaned = strings.ReplaceAll(cleaned, "\u00a0", " ")
	return strings.Join(strings.Fields(cleaned), " ")
}

package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strict   = bluemonday.StrictPolicy()
	richText = newRichTextPolicy()
)

// Tags allowed in rich-text fields (medication notes, doctor bios). No
// attributes survive on any of them, which removes event handlers and
// style/script injection vectors.
func newRichTextPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("b", "i", "em", "strong", "p", "br", "ul", "ol", "li")
	return p
}

// StripTags removes all markup, returning plain text. Empty input yields "".
func StripTags(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(strict.Sanitize(s))
}

// RichText keeps a small allow-list of structural and emphasis tags and
// strips everything else, attributes included. Idempotent.
func RichText(s string) string {
	if s == "" {
		return ""
	}
	return richText.Sanitize(s)
}

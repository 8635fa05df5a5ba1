package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripTagsRemovesAllMarkup(t *testing.T) {
	assert.Equal(t, "bold", StripTags("<b>bold</b>"))
	assert.Equal(t, "hello", StripTags("<script>alert(1)</script>hello"))
	assert.Equal(t, "", StripTags(""))
	assert.Equal(t, "plain text", StripTags("plain text"))
}

func TestRichTextAllowsStructuralTags(t *testing.T) {
	assert.Equal(t, "<p>hi</p>", RichText("<script>x</script><p onclick='x'>hi</p>"))
	assert.Equal(t, "<strong>take with food</strong>", RichText("<strong>take with food</strong>"))
	assert.Equal(t, "<ul><li>morning</li></ul>", RichText("<ul><li>morning</li></ul>"))
}

func TestRichTextStripsAttributes(t *testing.T) {
	assert.Equal(t, "<em>x</em>", RichText(`<em style="color:red" onmouseover="evil()">x</em>`))
	assert.Equal(t, "<p>y</p>", RichText(`<p class="a" id="b">y</p>`))
}

func TestRichTextRemovesDisallowedTags(t *testing.T) {
	assert.Equal(t, "", RichText(`<iframe src="https://evil.example"></iframe>`))
	assert.Equal(t, "link", RichText(`<a href="https://example.com">link</a>`))
}

func TestSanitizeIsIdempotent(t *testing.T) {
	inputs := []string{
		"<script>x</script><p onclick='x'>hi</p>",
		"<b>bold</b> and <iframe>bad</iframe>",
		"already clean",
	}
	for _, in := range inputs {
		once := RichText(in)
		assert.Equal(t, once, RichText(once))

		plain := StripTags(in)
		assert.Equal(t, plain, StripTags(plain))
	}
}

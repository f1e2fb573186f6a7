package card

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// textPolicy lets through nothing but the line breaks TextHTML inserts.
var textPolicy = bluemonday.NewPolicy().AllowElements("br")

// TextHTML renders literal text content as an HTML fragment. Markup characters
// are escaped and line breaks become <br>, so content is never interpreted as markup.
func TextHTML(s string) string {
	escaped := strings.ReplaceAll(html.EscapeString(s), "\n", "<br>")
	return textPolicy.Sanitize(escaped)
}

// ValidateImageURI accepts http(s) URLs, data URIs and storage-relative paths.
func ValidateImageURI(uri string) bool {
	uri = strings.TrimSpace(uri)
	if uri == "" {
		return false
	}
	lower := strings.ToLower(uri)
	if strings.HasPrefix(lower, "javascript:") || strings.HasPrefix(lower, "vbscript:") {
		return false
	}
	if strings.HasPrefix(lower, "data:") {
		return strings.HasPrefix(lower, "data:image/")
	}
	return true
}

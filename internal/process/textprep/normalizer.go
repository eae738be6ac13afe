// Package textprep cleans raw post text for downstream keyword matching.
package textprep

import (
	"regexp"
	"strings"
)

var (
	urlPattern        = regexp.MustCompile(`https?://\S+`)
	disallowedPattern = regexp.MustCompile(`[^a-z0-9\s#@.,!?'"-]`)
	whitespacePattern = regexp.MustCompile(`\s+`)

	entityReplacer = strings.NewReplacer(
		"&quot;", `"`,
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&nbsp;", " ",
	)
)

// Normalize lowercases the text, strips URLs, decodes a fixed set of HTML
// entities, removes characters outside the allowed set and collapses runs of
// whitespace into a single space. It is total (blank input yields "") and
// idempotent: Normalize(Normalize(x)) == Normalize(x).
func Normalize(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}

	text = strings.ToLower(text)
	text = urlPattern.ReplaceAllString(text, "")
	text = entityReplacer.Replace(text)
	text = disallowedPattern.ReplaceAllString(text, "")
	text = whitespacePattern.ReplaceAllString(text, " ")

	return strings.TrimSpace(text)
}

package variation

import (
	"regexp"
	"strings"
)

var (
	nonAlnumRegex  = regexp.MustCompile(`[^a-z0-9]+`)
	multiDashRegex = regexp.MustCompile(`-+`)
)

// Slugify derives a URL-safe slug from a variation type name
// ("Shoe Size" -> "shoe-size").
func Slugify(input string) string {
	slug := strings.ToLower(input)
	slug = strings.TrimSpace(slug)
	slug = nonAlnumRegex.ReplaceAllString(slug, "-")
	slug = multiDashRegex.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")

	return slug
}

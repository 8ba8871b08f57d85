package slug

import (
	"path"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	slashPattern   = regexp.MustCompile(`\s*/\s*`)
	nonAlnum       = regexp.MustCompile(`[^a-z0-9]+`)
	repeatedHyphen = regexp.MustCompile(`-{2,}`)

	// combiningMarks covers U+0300..U+036F, the block NFD splits Latin accents into.
	combiningMarks = runes.Predicate(func(r rune) bool { return r >= 0x0300 && r <= 0x036f })

	lower = cases.Lower(language.Und)
)

// Slugify converts free text into a lowercase hyphen-separated ASCII slug.
// The result never starts or ends with a hyphen, never contains "--", and
// Slugify(Slugify(s)) == Slugify(s).
func Slugify(value string) string {
	if value == "" {
		return ""
	}
	stripped, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(combiningMarks)), value)
	if err != nil {
		stripped = value
	}
	out := lower.String(stripped)
	out = strings.ReplaceAll(out, "&", " e ")
	out = slashPattern.ReplaceAllString(out, " ")
	out = nonAlnum.ReplaceAllString(out, "-")
	out = strings.Trim(out, "-")
	return repeatedHyphen.ReplaceAllString(out, "-")
}

// BaseName returns the final element of file with ext removed when it is a
// case-insensitive suffix.
func BaseName(file, ext string) string {
	base := path.Base(strings.ReplaceAll(file, "\\", "/"))
	if base == "." || base == "/" {
		return ""
	}
	if ext != "" && len(base) >= len(ext) && strings.EqualFold(base[len(base)-len(ext):], ext) {
		return base[:len(base)-len(ext)]
	}
	return base
}

// LastPathSegment returns the last non-empty "/"-separated segment of link.
func LastPathSegment(link string) string {
	parts := strings.Split(link, "/")
	for i := len(parts) - 1; i >= 0; i-- {
		if parts[i] != "" {
			return parts[i]
		}
	}
	return ""
}

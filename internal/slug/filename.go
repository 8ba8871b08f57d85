package slug

import (
	"regexp"
	"strings"
)

var (
	slashRun = regexp.MustCompile(`/+`)
	spaceRun = regexp.MustCompile(`\s{2,}`)
)

// FileNameFromName derives a video filename directly from a project name:
// slashes become spaces, whitespace runs collapse, and ext is appended.
// Case and accents are preserved.
func FileNameFromName(name, ext string) string {
	out := slashRun.ReplaceAllString(name, " ")
	out = spaceRun.ReplaceAllString(out, " ")
	return strings.TrimSpace(out) + ext
}

package videomatch

import (
	"strings"

	"greenline/internal/projects"
	"greenline/internal/slug"
)

const (
	StrategyExternal Strategy = "external"
	StrategyFallback Strategy = "fallback"
)

// Resolution is the file a viewer would be shown for a record.
type Resolution struct {
	File     string
	Strategy Strategy
}

// Resolve picks the video the site would play for rec without modifying it:
// the record's own value when it points at a known file (or an absolute
// URL/path), then the exact name slug, then the closest token overlap, and
// finally the fallback clip.
func (m *Matcher) Resolve(rec projects.Record) Resolution {
	if rec.Video != "" {
		if isExternal(rec.Video) {
			return Resolution{File: rec.Video, Strategy: StrategyExternal}
		}
		if entry, ok := m.fromField(rec.Video); ok && entry.File != m.Options.FallbackFile {
			return Resolution{File: entry.File, Strategy: StrategyCurrent}
		}
	}

	if entry, ok := m.Index.Lookup(slug.Slugify(rec.Name)); ok {
		return Resolution{File: entry.File, Strategy: StrategyName}
	}

	var fieldTokens []string
	if base := trimExt(rec.Video, m.Options.Extension); base != "" {
		fieldTokens = m.Tokenizer.TokensOf(base)
	}
	have := slug.Set(m.Tokenizer.TokensOf(rec.Name), fieldTokens)
	if entry, ok := bestOverlap(m.Index.Entries(), have); ok {
		return Resolution{File: entry.File, Strategy: StrategyTokens}
	}

	return Resolution{File: m.Options.FallbackFile, Strategy: StrategyFallback}
}

func (m *Matcher) fromField(value string) (Entry, bool) {
	clean := strings.TrimPrefix(value, "./")
	for _, candidate := range []string{clean, strings.TrimPrefix(clean, "videos/")} {
		if entry, ok := m.Index.LookupFile(candidate); ok {
			return entry, true
		}
	}
	return m.Index.Lookup(slug.Slugify(trimExt(clean, m.Options.Extension)))
}

// bestOverlap is the looser ranking used for display: the video with the most
// shared tokens wins (longer token lists break ties), and it is accepted with
// two hits, or one hit on a token of four or more characters.
func bestOverlap(entries []Entry, have []string) (Entry, bool) {
	if len(have) == 0 {
		return Entry{}, false
	}
	set := make(map[string]struct{}, len(have))
	for _, t := range have {
		set[t] = struct{}{}
	}

	var best Entry
	bestHits, haveBest := -1, false
	for _, e := range entries {
		if len(e.Tokens) == 0 {
			continue
		}
		hits := 0
		for _, t := range e.Tokens {
			if _, ok := set[t]; ok {
				hits++
			}
		}
		if hits > bestHits || (hits == bestHits && len(e.Tokens) > len(best.Tokens)) {
			best, bestHits, haveBest = e, hits, true
		}
	}
	if !haveBest {
		return Entry{}, false
	}
	if bestHits >= 2 {
		return best, true
	}
	if bestHits == 1 {
		for _, t := range best.Tokens {
			if _, ok := set[t]; ok && len(t) >= 4 {
				return best, true
			}
		}
	}
	return Entry{}, false
}

func isExternal(value string) bool {
	return strings.HasPrefix(value, "http://") || strings.HasPrefix(value, "https://") || strings.HasPrefix(value, "/")
}

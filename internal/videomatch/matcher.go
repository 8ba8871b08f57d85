package videomatch

import (
	"math"
	"slices"
	"strings"

	"greenline/internal/projects"
	"greenline/internal/slug"
)

// Strategy names how a record's video was chosen.
type Strategy string

const (
	StrategyName    Strategy = "name"
	StrategyTokens  Strategy = "tokens"
	StrategyCurrent Strategy = "current"
	StrategyLink    Strategy = "link"
	StrategyForced  Strategy = "forced"
	// StrategyCorrected marks a valid existing mapping rewritten to its canonical spelling.
	StrategyCorrected Strategy = "corrected"
)

// Options controls matcher behaviour.
type Options struct {
	Extension     string
	FallbackFile  string
	ForceFromName bool
}

// Change records one video field rewrite.
type Change struct {
	Project  string
	From     string
	To       string
	Strategy Strategy
}

// Report summarizes one Apply run.
type Report struct {
	Indexed   int
	Projects  int
	Updated   int
	Corrected []Change
	Matched   []Change
	Unmatched []string
}

// Matcher assigns videos to records. It holds no state between runs beyond
// the index it was built with.
type Matcher struct {
	Index     *Index
	Tokenizer *slug.Tokenizer
	Options   Options
}

// NewMatcher fills option defaults (".mp4", "background-validacao.mp4").
func NewMatcher(index *Index, tok *slug.Tokenizer, opts Options) *Matcher {
	if opts.Extension == "" {
		opts.Extension = ".mp4"
	}
	if opts.FallbackFile == "" {
		opts.FallbackFile = "background-validacao.mp4"
	}
	if tok == nil {
		tok = slug.NewTokenizer(slug.DefaultTables())
	}
	return &Matcher{Index: index, Tokenizer: tok, Options: opts}
}

// IsPlaceholder reports whether a video value should be replaced rather than
// kept: empty, a path, or the shared fallback clip.
func (m *Matcher) IsPlaceholder(video string) bool {
	return video == "" || strings.Contains(video, "/") || video == m.Options.FallbackFile
}

// Apply rewrites the Video field of records in place and reports what changed.
// A record counts as updated only when its stored value actually changes.
func (m *Matcher) Apply(records []projects.Record) Report {
	report := Report{Indexed: m.Index.Len(), Projects: len(records)}
	for i := range records {
		rec := &records[i]
		if m.Options.ForceFromName {
			forced := slug.FileNameFromName(rec.Name, m.Options.Extension)
			if rec.Video != forced {
				report.Matched = append(report.Matched, Change{Project: rec.Name, From: rec.Video, To: forced, Strategy: StrategyForced})
				rec.Video = forced
				report.Updated++
			}
			continue
		}

		current := rec.Video
		currentSlug := ""
		if current != "" {
			currentSlug = slug.Slugify(trimExt(current, m.Options.Extension))
		}

		if !m.IsPlaceholder(current) {
			if entry, ok := m.Index.Lookup(currentSlug); ok {
				canonical := m.canonical(entry)
				if current != canonical {
					report.Corrected = append(report.Corrected, Change{Project: rec.Name, From: current, To: canonical, Strategy: StrategyCorrected})
					rec.Video = canonical
					report.Updated++
				}
				continue
			}
		}

		entry, strategy, ok := m.choose(*rec, currentSlug)
		if !ok {
			report.Unmatched = append(report.Unmatched, rec.Name)
			continue
		}
		if next := m.canonical(entry); rec.Video != next {
			report.Matched = append(report.Matched, Change{Project: rec.Name, From: rec.Video, To: next, Strategy: strategy})
			rec.Video = next
			report.Updated++
		}
	}
	return report
}

// choose runs the name, token, current-value and link strategies in order.
func (m *Matcher) choose(rec projects.Record, currentSlug string) (Entry, Strategy, bool) {
	nameSlug := slug.Slugify(rec.Name)
	if entry, ok := m.Index.Lookup(nameSlug); ok {
		return entry, StrategyName, true
	}

	linkSlug := ""
	if rec.Link != "" {
		linkSlug = slug.Slugify(slug.LastPathSegment(rec.Link))
	}

	have := slug.Set(m.Tokenizer.Tokens(nameSlug), m.Tokenizer.Tokens(linkSlug))
	if entry, ok := bestSubsetMatch(m.Index.Entries(), have); ok {
		return entry, StrategyTokens, true
	}

	if currentSlug != "" {
		if entry, ok := m.Index.Lookup(currentSlug); ok {
			return entry, StrategyCurrent, true
		}
	}
	if linkSlug != "" {
		if entry, ok := m.Index.Lookup(linkSlug); ok {
			return entry, StrategyLink, true
		}
	}
	return Entry{}, "", false
}

type candidate struct {
	entry Entry
	hits  int
}

// bestSubsetMatch accepts a video when all of its tokens appear in have, or
// when enough of them do: at least max(2, ceil(0.6 * len)). Candidates rank by
// hits, then by token count; ties keep index order.
func bestSubsetMatch(entries []Entry, have []string) (Entry, bool) {
	if len(have) == 0 {
		return Entry{}, false
	}
	set := make(map[string]struct{}, len(have))
	for _, t := range have {
		set[t] = struct{}{}
	}

	var candidates []candidate
	for _, e := range entries {
		if !eligible(e.Tokens) {
			continue
		}
		hits := 0
		for _, t := range e.Tokens {
			if _, ok := set[t]; ok {
				hits++
			}
		}
		threshold := max(2, int(math.Ceil(float64(len(e.Tokens))*0.6)))
		if hits == len(e.Tokens) || hits >= threshold {
			candidates = append(candidates, candidate{entry: e, hits: hits})
		}
	}
	if len(candidates) == 0 {
		return Entry{}, false
	}
	slices.SortStableFunc(candidates, func(a, b candidate) int {
		if a.hits != b.hits {
			return b.hits - a.hits
		}
		return len(b.entry.Tokens) - len(a.entry.Tokens)
	})
	return candidates[0].entry, true
}

// eligible requires two meaningful tokens (length >= 2), or exactly one
// meaningful token of length >= 4.
func eligible(tokens []string) bool {
	if len(tokens) == 0 {
		return false
	}
	var meaningful []string
	for _, t := range tokens {
		if len(t) >= 2 {
			meaningful = append(meaningful, t)
		}
	}
	if len(meaningful) >= 2 {
		return true
	}
	return len(meaningful) == 1 && len(meaningful[0]) >= 4
}

func (m *Matcher) canonical(entry Entry) string {
	return slug.Slugify(slug.BaseName(entry.File, m.Options.Extension)) + m.Options.Extension
}

// trimExt removes a trailing ext (case-insensitive) without dropping directories.
func trimExt(value, ext string) string {
	if len(value) >= len(ext) && strings.EqualFold(value[len(value)-len(ext):], ext) {
		return value[:len(value)-len(ext)]
	}
	return value
}

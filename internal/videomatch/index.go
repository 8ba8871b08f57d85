package videomatch

import (
	"strings"

	"greenline/internal/slug"
)

// Entry is one indexed video.
type Entry struct {
	Slug   string
	File   string
	Tokens []string
}

// Index maps video slugs to files. The first file seen for a slug wins and
// entries keep insertion order.
type Index struct {
	entries []Entry
	bySlug  map[string]int
	byFile  map[string]int
}

// BuildIndex indexes every file whose name ends in ext (case-insensitive).
func BuildIndex(files []string, ext string, tok *slug.Tokenizer) *Index {
	ix := &Index{bySlug: make(map[string]int, len(files)), byFile: make(map[string]int, len(files))}
	lowerExt := strings.ToLower(ext)
	for _, file := range files {
		if !strings.HasSuffix(strings.ToLower(file), lowerExt) {
			continue
		}
		s := slug.Slugify(slug.BaseName(file, ext))
		if _, exists := ix.bySlug[s]; exists {
			continue
		}
		ix.bySlug[s] = len(ix.entries)
		ix.byFile[file] = len(ix.entries)
		ix.entries = append(ix.entries, Entry{Slug: s, File: file, Tokens: tok.Tokens(s)})
	}
	return ix
}

// Lookup returns the entry for an exact slug.
func (ix *Index) Lookup(s string) (Entry, bool) {
	if ix == nil {
		return Entry{}, false
	}
	i, ok := ix.bySlug[s]
	if !ok {
		return Entry{}, false
	}
	return ix.entries[i], true
}

// LookupFile returns the entry indexed under the exact filename.
func (ix *Index) LookupFile(file string) (Entry, bool) {
	if ix == nil {
		return Entry{}, false
	}
	i, ok := ix.byFile[file]
	if !ok {
		return Entry{}, false
	}
	return ix.entries[i], true
}

// Len returns the number of indexed slugs.
func (ix *Index) Len() int {
	if ix == nil {
		return 0
	}
	return len(ix.entries)
}

// Entries returns the indexed videos in insertion order.
func (ix *Index) Entries() []Entry {
	if ix == nil {
		return nil
	}
	return ix.entries
}

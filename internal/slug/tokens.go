package slug

import (
	"maps"
	"strings"
	"unicode/utf8"
)

// Tables holds the vocabulary used by a Tokenizer.
type Tables struct {
	Synonyms  map[string]string
	Stopwords []string
}

// DefaultTables returns the built-in Portuguese synonym and stopword tables.
func DefaultTables() Tables {
	return Tables{
		Synonyms: map[string]string{
			"tres":   "3",
			"três":   "3",
			"manuel": "manoel",
		},
		Stopwords: []string{
			"fazenda", "fazendas", "sitio", "sito", "lote", "matricula", "matriculas",
			"grupo", "grupos", "e", "do", "da", "dos", "das", "de", "del", "la", "el",
		},
	}
}

// Tokenizer splits slugs into normalized tokens.
type Tokenizer struct {
	synonyms  map[string]string
	stopwords map[string]struct{}
}

// NewTokenizer builds a Tokenizer. Empty tables fall back to DefaultTables
// section by section.
func NewTokenizer(tables Tables) *Tokenizer {
	defaults := DefaultTables()
	synonyms := tables.Synonyms
	if len(synonyms) == 0 {
		synonyms = defaults.Synonyms
	}
	stopwords := tables.Stopwords
	if len(stopwords) == 0 {
		stopwords = defaults.Stopwords
	}
	t := &Tokenizer{
		synonyms:  maps.Clone(synonyms),
		stopwords: make(map[string]struct{}, len(stopwords)),
	}
	for _, word := range stopwords {
		t.stopwords[word] = struct{}{}
	}
	return t
}

// Normalize applies synonym substitution, strips leading zeros from numeric
// tokens and removes one trailing "s" from tokens longer than four characters.
func (t *Tokenizer) Normalize(token string) string {
	token = strings.TrimSpace(token)
	if token == "" {
		return ""
	}
	if sub, ok := t.synonyms[token]; ok {
		token = sub
	}
	if len(token) > 1 && token[0] == '0' && allDigits(token) {
		token = strings.TrimLeft(token, "0")
		if token == "" {
			token = "0"
		}
	}
	if utf8.RuneCountInString(token) > 4 && strings.HasSuffix(token, "s") {
		token = token[:len(token)-1]
	}
	return token
}

// Tokens splits a slug on hyphens and returns its normalized tokens in order,
// without empties or stopwords. Duplicates are preserved.
func (t *Tokenizer) Tokens(slug string) []string {
	if slug == "" {
		return nil
	}
	parts := strings.Split(slug, "-")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		token := t.Normalize(part)
		if token == "" || t.IsStopword(token) {
			continue
		}
		out = append(out, token)
	}
	return out
}

// TokensOf slugifies text and tokenizes the result.
func (t *Tokenizer) TokensOf(text string) []string {
	return t.Tokens(Slugify(text))
}

// IsStopword reports whether token is dropped by Tokens.
func (t *Tokenizer) IsStopword(token string) bool {
	_, ok := t.stopwords[token]
	return ok
}

// Set returns the distinct tokens of every list, in first-seen order.
func Set(lists ...[]string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, list := range lists {
		for _, token := range list {
			if _, ok := seen[token]; ok {
				continue
			}
			seen[token] = struct{}{}
			out = append(out, token)
		}
	}
	return out
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

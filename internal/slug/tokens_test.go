package slug

import (
	"slices"
	"testing"
)

func TestNormalize(t *testing.T) {
	tok := NewTokenizer(DefaultTables())
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{" tres ", "3"},
		{"três", "3"},
		{"manuel", "manoel"},
		{"007", "7"},
		{"00", "0"},
		{"0", "0"},
		{"10", "10"},
		{"irmaos", "irmao"},
		{"reis", "reis"},
		{"santos", "santo"},
	}
	for _, tt := range tests {
		if got := tok.Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTokensDropsStopwords(t *testing.T) {
	tok := NewTokenizer(DefaultTables())
	got := tok.TokensOf("Fazenda Três Irmãos - Lote 007 da Matrícula 12")
	want := []string{"3", "irmao", "7", "12"}
	if !slices.Equal(got, want) {
		t.Fatalf("TokensOf = %v, want %v", got, want)
	}
	for _, token := range got {
		if tok.IsStopword(token) {
			t.Fatalf("stopword %q leaked into %v", token, got)
		}
	}
}

func TestTokensKeepsDuplicates(t *testing.T) {
	tok := NewTokenizer(DefaultTables())
	got := tok.Tokens("caure-caure-1")
	if !slices.Equal(got, []string{"caure", "caure", "1"}) {
		t.Fatalf("unexpected tokens %v", got)
	}
	if set := Set(got, []string{"1", "novo"}); !slices.Equal(set, []string{"caure", "1", "novo"}) {
		t.Fatalf("unexpected set %v", set)
	}
}

func TestCustomTablesReplaceDefaults(t *testing.T) {
	tok := NewTokenizer(Tables{
		Synonyms:  map[string]string{"dois": "2"},
		Stopwords: []string{"rancho"},
	})
	got := tok.TokensOf("Rancho Dois Fazenda Tres")
	want := []string{"2", "fazenda", "tres"}
	if !slices.Equal(got, want) {
		t.Fatalf("TokensOf = %v, want %v", got, want)
	}
}

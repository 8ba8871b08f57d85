package slug

import (
	"strings"
	"testing"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"Caure Grupo 1", "caure-grupo-1"},
		{"Fazenda Três Irmãos", "fazenda-tres-irmaos"},
		{"São João & Filhos", "sao-joao-e-filhos"},
		{"Lote 12 / Matrícula 0034", "lote-12-matricula-0034"},
		{"  --Açaí__Verde--  ", "acai-verde"},
		{"Caure Grupo 1.mp4", "caure-grupo-1-mp4"},
		{"!!!", ""},
		{"ÀÉÎÕÜ ç ñ", "aeiou-c-n"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Slugify(tt.in); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSlugifyShapeAndIdempotence(t *testing.T) {
	inputs := []string{
		"Fazenda Santa Maria / Lote 3",
		"-- R&D --",
		"Ñandú   del   Sur",
		"a//b\\\\c",
		"Projeto 100% Verde!",
		"ÇÃO",
	}
	for _, in := range inputs {
		once := Slugify(in)
		if strings.HasPrefix(once, "-") || strings.HasSuffix(once, "-") {
			t.Errorf("Slugify(%q) = %q has edge hyphen", in, once)
		}
		if strings.Contains(once, "--") {
			t.Errorf("Slugify(%q) = %q has repeated hyphen", in, once)
		}
		for _, r := range once {
			if !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '-') {
				t.Errorf("Slugify(%q) = %q contains %q", in, once, r)
			}
		}
		if twice := Slugify(once); twice != once {
			t.Errorf("Slugify not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestBaseName(t *testing.T) {
	tests := []struct {
		file, ext, want string
	}{
		{"Caure Grupo 1.MP4", ".mp4", "Caure Grupo 1"},
		{"./img/background-validacao.mp4", ".mp4", "background-validacao"},
		{"clip.mov", ".mp4", "clip.mov"},
		{"", ".mp4", ""},
	}
	for _, tt := range tests {
		if got := BaseName(tt.file, tt.ext); got != tt.want {
			t.Errorf("BaseName(%q, %q) = %q, want %q", tt.file, tt.ext, got, tt.want)
		}
	}
}

func TestLastPathSegment(t *testing.T) {
	tests := map[string]string{
		"https://registry.example.org/projects/caure-grupo-1/": "caure-grupo-1",
		"https://registry.example.org/projects/42":             "42",
		"":    "",
		"///": "",
	}
	for in, want := range tests {
		if got := LastPathSegment(in); got != want {
			t.Errorf("LastPathSegment(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFileNameFromName(t *testing.T) {
	tests := []struct {
		name, want string
	}{
		{"Fazenda Três Irmãos", "Fazenda Três Irmãos.mp4"},
		{"Caure / Grupo  1", "Caure Grupo 1.mp4"},
		{"  A//B  ", "A B.mp4"},
	}
	for _, tt := range tests {
		if got := FileNameFromName(tt.name, ".mp4"); got != tt.want {
			t.Errorf("FileNameFromName(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

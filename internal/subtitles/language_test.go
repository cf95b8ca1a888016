package subtitles

import (
	"errors"
	"testing"

	"ytbridge/internal/services"
)

func TestNormalizeLanguage(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"en", "en"},
		{"EN-us", "en-US"},
		{" de ", "de"},
		{"pt-br", "pt-BR"},
	}
	for _, tc := range cases {
		got, err := NormalizeLanguage(tc.in)
		if err != nil {
			t.Fatalf("NormalizeLanguage(%q) error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("NormalizeLanguage(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeLanguageRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "   ", "!!"} {
		if _, err := NormalizeLanguage(in); !errors.Is(err, services.ErrInvalidInput) {
			t.Fatalf("NormalizeLanguage(%q): expected ErrInvalidInput, got %v", in, err)
		}
	}
}

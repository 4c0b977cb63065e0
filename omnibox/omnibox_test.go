package omnibox

import (
	"errors"
	"testing"

	"nectar/page"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		scheme string
		want   string
	}{
		{
			name: "bare domain gets default scheme",
			in:   "example.com",
			want: "https://example.com",
		},
		{
			name: "existing scheme untouched",
			in:   "http://x",
			want: "http://x",
		},
		{
			name: "https url untouched",
			in:   "https://example.com/path?q=1",
			want: "https://example.com/path?q=1",
		},
		{
			name: "surrounding whitespace trimmed",
			in:   "  example.com/page  ",
			want: "https://example.com/page",
		},
		{
			name:   "configured scheme",
			in:     "example.com",
			scheme: "http",
			want:   "http://example.com",
		},
		{
			name: "host with port",
			in:   "localhost:8080",
			want: "https://localhost:8080",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.in, tt.scheme)
			if err != nil {
				t.Fatalf("Normalize(%q) failed: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeEmptyInput(t *testing.T) {
	for _, in := range []string{"", "   ", "\t\n"} {
		_, err := Normalize(in, "")
		if err == nil {
			t.Fatalf("Normalize(%q) should fail", in)
		}
		var perr *page.Error
		if !errors.As(err, &perr) || perr.Kind != page.ErrEmptyInput {
			t.Errorf("Normalize(%q) error = %v, want empty input kind", in, err)
		}
	}
}

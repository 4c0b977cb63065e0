package sites

import (
	"context"
	"testing"

	"nectar/page"
)

type stubHandler struct {
	name string
}

func (s *stubHandler) Name() string { return s.name }

func (s *stubHandler) Fetch(ctx context.Context, url string) *page.Result {
	return &page.Result{URL: url, Status: 200}
}

func TestLookupExactMatch(t *testing.T) {
	reg := NewRegistry()
	h := &stubHandler{name: "Reddit"}
	reg.Register("reddit.com", h)

	got, ok := reg.Lookup("reddit.com")
	if !ok {
		t.Fatal("expected handler for reddit.com")
	}
	if got.Name() != "Reddit" {
		t.Errorf("handler name = %q, want Reddit", got.Name())
	}
}

func TestLookupStripsOneSubdomainLabel(t *testing.T) {
	reg := NewRegistry()
	reg.Register("reddit.com", &stubHandler{name: "Reddit"})

	tests := []struct {
		domain string
		found  bool
	}{
		{"old.reddit.com", true},
		{"www.reddit.com", true},
		{"m.reddit.com", true},
		// Two strips would be needed - must not match
		{"a.b.reddit.com", false},
		{"example.com", false},
		// Two-label domains are never stripped
		{"notreddit.com", false},
	}

	for _, tt := range tests {
		_, ok := reg.Lookup(tt.domain)
		if ok != tt.found {
			t.Errorf("Lookup(%q) found = %v, want %v", tt.domain, ok, tt.found)
		}
	}
}

func TestRegisterLastWins(t *testing.T) {
	reg := NewRegistry()
	reg.Register("example.com", &stubHandler{name: "first"})
	reg.Register("example.com", &stubHandler{name: "second"})

	h, ok := reg.Lookup("example.com")
	if !ok {
		t.Fatal("expected handler")
	}
	if h.Name() != "second" {
		t.Errorf("handler name = %q, want second", h.Name())
	}
	if len(reg.Domains()) != 1 {
		t.Errorf("Domains() = %v, want one entry", reg.Domains())
	}
}

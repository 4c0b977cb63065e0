package reddit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"nectar/fetcher"
	"nectar/page"
)

func newTestHandler(t *testing.T, baseURL string) *Handler {
	t.Helper()
	h := New(fetcher.New(fetcher.Options{TimeoutSeconds: 5}), t.TempDir())
	h.baseURL = baseURL
	return h
}

func TestFetchSubredditListing(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(listingJSON))
	}))
	defer srv.Close()

	h := newTestHandler(t, srv.URL)
	res := h.Fetch(context.Background(), "https://old.reddit.com/r/Games/")

	if !res.OK() {
		t.Fatalf("Fetch failed: %v", res.Err)
	}
	if gotPath != "/r/Games.json" {
		t.Errorf("requested %q, want /r/Games.json", gotPath)
	}

	blocks, ok := res.Document.(page.Blocks)
	if !ok {
		t.Fatalf("Document is %T, want page.Blocks", res.Document)
	}
	if len(blocks) == 0 {
		t.Fatal("no blocks rendered")
	}

	md := res.MarkdownText()
	for _, want := range []string{
		"# r/Games",
		"First post",
		"By /u/alice in /r/Games",
		"42 points",
		"[7 Comments](https://reddit.com/r/Games/comments/abc/first_post/)",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("rendered listing missing %q:\n%s", want, md)
		}
	}
	if res.Title != "r/Games" {
		t.Errorf("Title = %q, want r/Games", res.Title)
	}
}

func TestFetchHomeInfersHeaderFromFirstPost(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/.json" {
			t.Errorf("requested %q, want /.json", r.URL.Path)
		}
		w.Write([]byte(listingJSON))
	}))
	defer srv.Close()

	h := newTestHandler(t, srv.URL)
	res := h.Fetch(context.Background(), "https://old.reddit.com/")

	if !res.OK() {
		t.Fatalf("Fetch failed: %v", res.Err)
	}
	if !strings.Contains(res.MarkdownText(), "# r/Games") {
		t.Error("front page header not inferred from first post's subreddit")
	}
}

func TestFetchPostRendersOnlySubmission(t *testing.T) {
	payload := `[` + listingJSON + `, {"kind": "Listing", "data": {"children": []}}]`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/r/Games/comments/abc.json" {
			t.Errorf("requested %q", r.URL.Path)
		}
		w.Write([]byte(payload))
	}))
	defer srv.Close()

	h := newTestHandler(t, srv.URL)
	res := h.Fetch(context.Background(), "https://old.reddit.com/r/Games/comments/abc/first_post/")

	if !res.OK() {
		t.Fatalf("Fetch failed: %v", res.Err)
	}
	md := res.MarkdownText()
	if !strings.Contains(md, "First post") {
		t.Errorf("submission missing:\n%s", md)
	}
	if strings.Contains(md, "Second post") {
		t.Errorf("post page must render only the submission:\n%s", md)
	}
	if res.Title != "First post" {
		t.Errorf("Title = %q, want First post", res.Title)
	}
}

func TestSummaryTruncatesOnRuneBoundary(t *testing.T) {
	// 199 ASCII bytes followed by a two-byte rune straddling the
	// truncation point, then padding past it.
	selftext := strings.Repeat("a", 199) + "é" + strings.Repeat("b", 50)
	post := &Post{SelfText: selftext}

	got := summaryOf(post)
	if !utf8.ValidString(got) {
		t.Fatalf("summary is not valid UTF-8: %q", got)
	}
	if got != strings.Repeat("a", 199) {
		t.Errorf("summary = %q, want the straddling rune dropped", got)
	}

	// Short selftext passes through untouched.
	post = &Post{SelfText: "héllo"}
	if got := summaryOf(post); got != "héllo" {
		t.Errorf("summary = %q, want %q", got, "héllo")
	}
}

func TestFetchUnresolvableEndpoint(t *testing.T) {
	// Server must never be reached
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("network call attempted for unresolvable endpoint")
	}))
	defer srv.Close()

	h := newTestHandler(t, srv.URL)
	res := h.Fetch(context.Background(), "https://old.reddit.com/u/someone")

	if res.OK() {
		t.Fatal("expected failure")
	}
	if res.Err.Kind != page.ErrUnresolvableEndpoint {
		t.Errorf("Kind = %v, want unresolvable endpoint", res.Err.Kind)
	}
	if res.Status != 0 {
		t.Errorf("Status = %d, want 0", res.Status)
	}
}

func TestFetchHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	h := newTestHandler(t, srv.URL)
	res := h.Fetch(context.Background(), "https://old.reddit.com/r/doesnotexist/")

	if res.OK() {
		t.Fatal("expected failure")
	}
	if res.Err.Kind != page.ErrHTTP {
		t.Errorf("Kind = %v, want http error", res.Err.Kind)
	}
	if res.Status != http.StatusNotFound {
		t.Errorf("Status = %d, want 404", res.Status)
	}
}

func TestFetchDistinguishesDecodeFromSchemaFailure(t *testing.T) {
	tests := []struct {
		name string
		body string
		kind page.ErrorKind
	}{
		{
			name: "malformed json",
			body: `{"kind": "Listing"`,
			kind: page.ErrDecodeFailure,
		},
		{
			name: "schema mismatch",
			body: `{"kind": "Listing", "data": {}}`,
			kind: page.ErrSchemaMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			h := newTestHandler(t, srv.URL)
			res := h.Fetch(context.Background(), "https://old.reddit.com/r/Games/")

			if res.OK() {
				t.Fatal("expected failure")
			}
			if res.Err.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", res.Err.Kind, tt.kind)
			}
			if res.Status != http.StatusOK {
				t.Errorf("Status = %d, want 200 (furthest stage reached)", res.Status)
			}
		})
	}
}

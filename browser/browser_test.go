package browser

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"nectar/config"
	"nectar/page"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	engine, err := NewWithDirs(config.Default(), t.TempDir(), t.TempDir())
	if err != nil {
		t.Fatalf("NewWithDirs() error = %v", err)
	}
	t.Cleanup(func() { engine.Close() })
	return engine
}

func TestResolveAndFetchGenericPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<html><head><title>Test Page</title>
			<meta name="description" content="a test page">
			</head><body><h1>Welcome</h1><p>Hello there.</p></body></html>`))
	}))
	defer srv.Close()

	engine := newTestEngine(t)
	tab := engine.OpenTab()

	result := engine.ResolveAndFetch(context.Background(), srv.URL, tab)
	if !result.OK() {
		t.Fatalf("ResolveAndFetch() failed: %v", result.Err)
	}
	if result.Title != "Test Page" {
		t.Errorf("Title = %q", result.Title)
	}
	md := result.MarkdownText()
	if !strings.Contains(md, "# Welcome") || !strings.Contains(md, "Hello there.") {
		t.Errorf("markdown missing content:\n%s", md)
	}

	// The tab now holds the same result.
	stored, ok := engine.TabContent(tab)
	if !ok || stored != result {
		t.Errorf("TabContent() = (%v, %v), want the fetched result", stored, ok)
	}

	// The visit was recorded in both history stores.
	entries, err := engine.SearchHistory("test page", 10)
	if err != nil {
		t.Fatalf("SearchHistory() error = %v", err)
	}
	if len(entries) != 1 || entries[0].Title != "Test Page" {
		t.Errorf("history entries = %v", entries)
	}
	recents := engine.RecentVisits()
	if len(recents) != 1 || recents[0].URL != result.URL {
		t.Errorf("recents = %v", recents)
	}
}

func TestResolveAndFetchEmptyInput(t *testing.T) {
	engine := newTestEngine(t)
	tab := engine.OpenTab()

	result := engine.ResolveAndFetch(context.Background(), "   ", tab)
	if result.OK() {
		t.Fatal("empty input produced a successful result")
	}
	if result.Err.Kind != page.ErrEmptyInput {
		t.Errorf("Err.Kind = %v, want ErrEmptyInput", result.Err.Kind)
	}

	// The failure is visible in the tab but never recorded.
	if stored, ok := engine.TabContent(tab); !ok || stored != result {
		t.Errorf("TabContent() = (%v, %v)", stored, ok)
	}
	entries, _ := engine.SearchHistory("", 10)
	if len(entries) != 0 {
		t.Errorf("failed visit recorded: %v", entries)
	}
	if len(engine.RecentVisits()) != 0 {
		t.Error("failed visit recorded in recents")
	}
}

func TestResolveAndFetchNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listens here anymore

	engine := newTestEngine(t)

	result := engine.ResolveAndFetch(context.Background(), srv.URL, "")
	if result.OK() {
		t.Fatal("dead server produced a successful result")
	}
	if result.Err.Kind != page.ErrNetworkFailure {
		t.Errorf("Err.Kind = %v, want ErrNetworkFailure", result.Err.Kind)
	}
	if result.Status != 0 {
		t.Errorf("Status = %d, want 0", result.Status)
	}

	entries, _ := engine.SearchHistory("", 10)
	if len(entries) != 0 {
		t.Errorf("failed visit recorded: %v", entries)
	}
}

func TestRedditDomainDispatch(t *testing.T) {
	engine := newTestEngine(t)

	// A reddit URL with no JSON endpoint fails before any network
	// traffic, which proves dispatch picked the site handler over the
	// generic fallback. User profile pages have no endpoint mapping.
	result := engine.ResolveAndFetch(context.Background(), "https://old.reddit.com/u/someone", "")
	if result.OK() {
		t.Fatal("unresolvable reddit path produced a successful result")
	}
	if result.Err.Kind != page.ErrUnresolvableEndpoint {
		t.Errorf("Err.Kind = %v, want ErrUnresolvableEndpoint", result.Err.Kind)
	}
}

func TestSchemeDefaulting(t *testing.T) {
	cfg := config.Default()
	cfg.Fetcher.DefaultScheme = "http"

	engine, err := NewWithDirs(cfg, t.TempDir(), t.TempDir())
	if err != nil {
		t.Fatalf("NewWithDirs() error = %v", err)
	}
	defer engine.Close()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html><body><p>ok</p></body></html>"))
	}))
	defer srv.Close()

	// Scheme-less input gets the configured default prepended.
	bare := strings.TrimPrefix(srv.URL, "http://")
	result := engine.ResolveAndFetch(context.Background(), bare, "")
	if !result.OK() {
		t.Fatalf("ResolveAndFetch(%q) failed: %v", bare, result.Err)
	}
	if result.URL != srv.URL {
		t.Errorf("URL = %q, want %q", result.URL, srv.URL)
	}
}

func TestTabLifecycleThroughEngine(t *testing.T) {
	engine := newTestEngine(t)

	a := engine.OpenTab()
	b := engine.OpenTab()
	if a == b {
		t.Fatal("OpenTab() returned duplicate ids")
	}

	engine.CloseTab(a)
	if _, ok := engine.TabContent(a); ok {
		t.Error("closed tab still readable")
	}
	if _, ok := engine.TabContent(b); !ok {
		t.Error("sibling tab lost")
	}
}

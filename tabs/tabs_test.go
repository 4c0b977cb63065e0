package tabs

import (
	"testing"

	"nectar/page"
)

func TestOpenCreatesEmptyTab(t *testing.T) {
	store := NewStore()

	id := store.Open()
	if id == "" {
		t.Fatal("Open() returned empty id")
	}

	result, ok := store.Get(id)
	if !ok {
		t.Fatal("Get() reports freshly opened tab as missing")
	}
	if result != nil {
		t.Errorf("fresh tab holds %v, want nil", result)
	}

	if other := store.Open(); other == id {
		t.Error("Open() returned duplicate id")
	}
}

func TestSetAndGet(t *testing.T) {
	store := NewStore()
	id := store.Open()

	first := &page.Result{URL: "https://example.com/1", Status: 200}
	store.Set(id, first)
	if got, _ := store.Get(id); got != first {
		t.Errorf("Get() = %v, want first result", got)
	}

	// A navigation replaces the previous page wholesale.
	second := &page.Result{URL: "https://example.com/2", Status: 200}
	store.Set(id, second)
	if got, _ := store.Get(id); got != second {
		t.Errorf("Get() after replace = %v, want second result", got)
	}
}

func TestSetUnknownTabCreatesIt(t *testing.T) {
	store := NewStore()

	store.Set("adopted", &page.Result{URL: "https://example.com"})
	result, ok := store.Get("adopted")
	if !ok || result == nil {
		t.Fatalf("Get() = (%v, %v), want adopted tab", result, ok)
	}
}

func TestCloseIsIsolated(t *testing.T) {
	store := NewStore()
	a := store.Open()
	b := store.Open()
	store.Set(a, &page.Result{URL: "https://a.example.com"})
	store.Set(b, &page.Result{URL: "https://b.example.com"})

	store.Close(a)

	if _, ok := store.Get(a); ok {
		t.Error("closed tab still present")
	}
	if result, ok := store.Get(b); !ok || result.URL != "https://b.example.com" {
		t.Errorf("sibling tab disturbed by close: (%v, %v)", result, ok)
	}
	if store.Len() != 1 {
		t.Errorf("Len() = %d, want 1", store.Len())
	}

	// Closing again, or closing garbage, is harmless.
	store.Close(a)
	store.Close("never-existed")
	if store.Len() != 1 {
		t.Errorf("Len() after no-op closes = %d, want 1", store.Len())
	}
}

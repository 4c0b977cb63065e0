// Package browser wires the fetching, dispatch, history and tab
// components into a single engine that callers drive with URLs.
package browser

import (
	"context"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"nectar/config"
	"nectar/fetcher"
	"nectar/generic"
	"nectar/history"
	"nectar/omnibox"
	"nectar/page"
	"nectar/reddit"
	"nectar/sites"
	"nectar/tabs"
)

// Engine is the facade over the pipeline: it normalizes input,
// dispatches to the right site handler, tracks tab state and records
// visits.
type Engine struct {
	cfg      *config.Config
	log      *logrus.Logger
	client   *fetcher.Client
	registry *sites.Registry
	fallback *generic.Handler
	tabs     *tabs.Store
	history  *history.Store
	recents  *history.Recents
}

// New builds an engine using the platform data and cache directories.
func New(cfg *config.Config) (*Engine, error) {
	dataDir, err := config.DataDir()
	if err != nil {
		return nil, err
	}
	cacheDir := cfg.Cache.Dir
	if cacheDir == "" {
		if cacheDir, err = config.CacheDir(); err != nil {
			return nil, err
		}
	}
	return NewWithDirs(cfg, dataDir, cacheDir)
}

// NewWithDirs builds an engine rooted at explicit directories. The
// history database and log file live under dataDir, thumbnails under
// cacheDir.
func NewWithDirs(cfg *config.Config, dataDir, cacheDir string) (*Engine, error) {
	log := newLogger(dataDir)

	client := fetcher.New(fetcher.Options{
		UserAgent:      cfg.Fetcher.UserAgent,
		TimeoutSeconds: cfg.Fetcher.TimeoutSeconds,
	})

	store, err := history.Open(
		filepath.Join(dataDir, "history.db"),
		time.Duration(cfg.History.RetentionDays)*24*time.Hour,
	)
	if err != nil {
		return nil, err
	}

	recents, err := history.LoadRecents(filepath.Join(dataDir, "recents.json"), cfg.History.RecentsLimit)
	if err != nil {
		store.Close()
		return nil, err
	}

	// Registration order is fixed at startup; every unclaimed domain
	// takes the generic path.
	registry := sites.NewRegistry()
	registry.Register(reddit.Domain, reddit.New(client, filepath.Join(cacheDir, "thumbnails")))

	return &Engine{
		cfg:      cfg,
		log:      log,
		client:   client,
		registry: registry,
		fallback: generic.New(client),
		tabs:     tabs.NewStore(),
		history:  store,
		recents:  recents,
	}, nil
}

// newLogger writes structured logs to nectar.log under dataDir. A
// terminal app can't log to stderr without corrupting its own display,
// so logging failures fall back to discarding output rather than
// aborting startup.
func newLogger(dataDir string) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.InfoLevel)

	f, err := os.OpenFile(filepath.Join(dataDir, "nectar.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.SetOutput(io.Discard)
		return log
	}
	log.SetOutput(f)
	return log
}

// Close releases the engine's durable resources.
func (e *Engine) Close() error {
	if err := e.recents.Save(); err != nil {
		e.log.WithError(err).Warn("saving recents")
	}
	return e.history.Close()
}

// ResolveAndFetch runs the full pipeline for one navigation: normalize
// the raw input, pick a handler by domain, fetch, store the result in
// the tab and record the visit on success. It always returns a Result;
// failures are carried in its Err field.
func (e *Engine) ResolveAndFetch(ctx context.Context, rawInput, tabID string) *page.Result {
	normalized, err := omnibox.Normalize(rawInput, e.cfg.Fetcher.DefaultScheme)
	if err != nil {
		result := page.Fail(rawInput, 0, page.ErrEmptyInput, err.Error())
		e.storeAndRecord(tabID, result)
		return result
	}

	result := e.handlerFor(normalized).Fetch(ctx, normalized)
	e.storeAndRecord(tabID, result)
	return result
}

// handlerFor selects the handler for a normalized URL. A URL whose
// host can't be parsed still gets the generic handler, which will
// report the fetch failure itself.
func (e *Engine) handlerFor(normalized string) sites.Handler {
	u, err := url.Parse(normalized)
	if err != nil {
		return e.fallback
	}
	if h, ok := e.registry.Lookup(strings.ToLower(u.Hostname())); ok {
		return h
	}
	return e.fallback
}

func (e *Engine) storeAndRecord(tabID string, result *page.Result) {
	if tabID != "" {
		e.tabs.Set(tabID, result)
	}

	if !result.OK() {
		e.log.WithFields(logrus.Fields{
			"url":    result.URL,
			"status": result.Status,
			"error":  result.Err.Error(),
		}).Warn("navigation failed")
		return
	}

	e.log.WithFields(logrus.Fields{
		"url":    result.URL,
		"status": result.Status,
		"title":  result.Title,
	}).Info("navigation")

	// Failed visits are never recorded.
	if err := e.history.Record(result.URL, result.Title, result.Summary); err != nil {
		e.log.WithError(err).Warn("recording history")
	}
	e.recents.Add(result.URL, result.Title)
	if err := e.recents.Save(); err != nil {
		e.log.WithError(err).Warn("saving recents")
	}
}

// OpenTab creates a new empty tab and returns its identifier.
func (e *Engine) OpenTab() string {
	return e.tabs.Open()
}

// CloseTab discards a tab and its page state.
func (e *Engine) CloseTab(id string) {
	e.tabs.Close(id)
}

// TabContent returns the page last loaded in tab id, or (nil, false)
// for an unknown tab.
func (e *Engine) TabContent(id string) (*page.Result, bool) {
	return e.tabs.Get(id)
}

// SearchHistory returns history entries matching query, most recent
// first. An empty query lists everything up to limit.
func (e *Engine) SearchHistory(query string, limit int) ([]history.Entry, error) {
	return e.history.Matching(query, limit)
}

// RecentVisits returns the flat recency list, newest first.
func (e *Engine) RecentVisits() []history.Visit {
	return e.recents.Visits
}

// Handlers returns the domains with registered site handlers.
func (e *Engine) Handlers() []string {
	return e.registry.Domains()
}

// Package generic implements the default content handler: fetch a
// URL, sniff the content type, and convert HTML into a markdown
// document. It is the fallback path for every domain without a
// site-specific handler.
package generic

import (
	"context"
	"net/url"
	"strings"

	readability "github.com/go-shiori/go-readability"

	"nectar/fetcher"
	"nectar/html"
	"nectar/page"
)

// Handler converts arbitrary web pages into markdown documents.
type Handler struct {
	client *fetcher.Client
}

// New creates the generic handler on top of the given fetch client.
func New(client *fetcher.Client) *Handler {
	return &Handler{client: client}
}

func (h *Handler) Name() string {
	return "Generic"
}

// Fetch issues a single GET and converts the response into a page
// result. It is total: network errors, timeouts, and parse failures
// all come back as a Result with Err set, never as a panic.
func (h *Handler) Fetch(ctx context.Context, pageURL string) *page.Result {
	res, err := h.client.Get(ctx, pageURL)
	if err != nil {
		return page.Fail(pageURL, 0, page.ErrNetworkFailure, err.Error())
	}

	if !strings.Contains(strings.ToLower(res.ContentType), "html") {
		// Non-HTML: present the raw text so nothing is silently lost
		return &page.Result{
			URL:      res.FinalURL,
			Status:   res.StatusCode,
			Document: page.Markdown("```\n" + res.Body + "\n```"),
		}
	}

	meta := html.ExtractMetadata(res.Body)

	root, perr := html.ParseString(res.Body)
	if perr != nil {
		return page.Fail(res.FinalURL, res.StatusCode, page.ErrDecodeFailure, "parsing HTML: "+perr.Error())
	}

	// Structural walk found nothing useful; let readability have a go
	// before giving up on the page.
	if !root.HasContent() {
		if extracted := h.readerView(res.Body, res.FinalURL); extracted != nil {
			root = extracted
		}
	}

	result := &page.Result{
		URL:      res.FinalURL,
		Status:   res.StatusCode,
		Document: page.Markdown(root.ToMarkdown()),
		Title:    meta.Title,
		Summary:  meta.Summary,
	}
	if result.Title == "" {
		result.Title = res.FinalURL
	}
	return result
}

// readerView extracts article content with readability and re-parses
// it into the block tree. Best-effort only.
func (h *Handler) readerView(rawHTML, pageURL string) *html.Node {
	u, err := url.Parse(pageURL)
	if err != nil {
		return nil
	}
	article, err := readability.FromReader(strings.NewReader(rawHTML), u)
	if err != nil || article.Content == "" {
		return nil
	}
	root, err := html.ParseString(article.Content)
	if err != nil || !root.HasContent() {
		return nil
	}
	return root
}

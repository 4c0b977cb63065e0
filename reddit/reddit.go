package reddit

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"golang.org/x/time/rate"

	"nectar/fetcher"
	"nectar/page"
)

// Domain is the domain this handler should be registered under.
// Subdomain variants (old., www., m.) reach it through the registry's
// label stripping.
const Domain = "reddit.com"

// Handler serves Reddit URLs from the public JSON API.
type Handler struct {
	client  *fetcher.Client
	limiter *rate.Limiter
	thumbs  *ThumbnailCache
	baseURL string
}

// New creates the Reddit handler. cacheDir is where thumbnails are
// stored; the client supplies the timeout and identity for API calls.
func New(client *fetcher.Client, cacheDir string) *Handler {
	return &Handler{
		client: client,
		// Reddit throttles unauthenticated clients hard; stay polite.
		limiter: rate.NewLimiter(rate.Every(time.Second), 2),
		thumbs:  NewThumbnailCache(cacheDir, client.Timeout(), client.UserAgent()),
		baseURL: CanonicalHost,
	}
}

func (h *Handler) Name() string {
	return "Reddit"
}

// Fetch maps the browsable URL to its JSON endpoint, fetches it, and
// renders either a listing or a single post. Every failure comes back
// as a Result with Err set; nothing escapes this boundary.
func (h *Handler) Fetch(ctx context.Context, pageURL string) *page.Result {
	comps := Classify(pageURL)

	path, ok := JSONPath(comps)
	if !ok {
		return page.Fail(pageURL, 0, page.ErrUnresolvableEndpoint,
			"could not determine Reddit JSON endpoint from URL")
	}
	endpoint := h.baseURL + path

	if err := h.limiter.Wait(ctx); err != nil {
		return page.Fail(pageURL, 0, page.ErrNetworkFailure, err.Error())
	}

	res, err := h.client.Get(ctx, endpoint)
	if err != nil {
		return page.Fail(pageURL, 0, page.ErrNetworkFailure, err.Error())
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return page.Fail(pageURL, res.StatusCode, page.ErrHTTP,
			fmt.Sprintf("Reddit API returned status %d", res.StatusCode))
	}

	switch comps.Kind {
	case KindHome, KindSubreddit:
		return h.listingResult(pageURL, res.StatusCode, []byte(res.Body), comps.Subreddit)
	default:
		return h.postResult(pageURL, res.StatusCode, []byte(res.Body))
	}
}

func (h *Handler) listingResult(pageURL string, status int, body []byte, subreddit string) *page.Result {
	listing, perr := DecodeListing(body)
	if perr != nil {
		return &page.Result{URL: pageURL, Status: status, Err: perr}
	}

	blocks := h.RenderListing(listing, subreddit)

	title := "r/" + subreddit
	if subreddit == "" {
		title = "Reddit"
		if posts := listing.Posts(); len(posts) > 0 {
			title = "r/" + posts[0].Subreddit
		}
	}

	return &page.Result{
		URL:      pageURL,
		Status:   status,
		Document: page.Blocks(blocks),
		Title:    title,
	}
}

// postResult renders the submission of a post page. The payload is an
// ordered pair of listings; only the first (the one-post listing) is
// rendered here. Comment-tree rendering is a separate concern.
func (h *Handler) postResult(pageURL string, status int, body []byte) *page.Result {
	listing, perr := DecodeThread(body)
	if perr != nil {
		return &page.Result{URL: pageURL, Status: status, Err: perr}
	}

	post := listing.Posts()[0]
	blocks := h.RenderPost(&post)

	return &page.Result{
		URL:      pageURL,
		Status:   status,
		Document: page.Blocks(blocks),
		Title:    post.Title,
		Summary:  summaryOf(&post),
	}
}

func summaryOf(post *Post) string {
	const max = 200
	text := post.SelfText
	if len(text) <= max {
		return text
	}
	// Back up to a rune boundary so the cut never splits a character
	cut := max
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}

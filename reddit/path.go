// Package reddit implements the site-specific handler for Reddit,
// backed by the public JSON API rather than HTML scraping.
package reddit

import (
	"net/url"
	"strings"
)

// CanonicalHost is the fixed host every JSON endpoint is synthesized
// against, regardless of which Reddit domain the user typed.
const CanonicalHost = "https://old.reddit.com"

// Kind classifies what a Reddit URL points at.
type Kind int

const (
	KindUnknown Kind = iota
	KindHome
	KindSubreddit
	KindPost
)

func (k Kind) String() string {
	switch k {
	case KindHome:
		return "home"
	case KindSubreddit:
		return "subreddit"
	case KindPost:
		return "post"
	}
	return "unknown"
}

// PathComponents are the parts extracted from a Reddit URL's path.
// Computed fresh per request, never persisted.
type PathComponents struct {
	Subreddit string
	PostID    string
	Kind      Kind
}

// Classify extracts path components from a Reddit URL. It is total:
// any URL yields a result, with unrecognized layouts mapping to
// KindUnknown.
//
// Recognized layouts:
//
//	/                                  home
//	/r/<subreddit>/                    subreddit listing
//	/r/<subreddit>/comments/<id>/...   post
//	/r/<subreddit>/comments/           subreddit (no id to show)
//	/comments/<id>/...                 post without subreddit
func Classify(rawURL string) PathComponents {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return PathComponents{Kind: KindUnknown}
	}

	var parts []string
	for _, p := range strings.Split(parsed.Path, "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}

	if len(parts) == 0 {
		return PathComponents{Kind: KindHome}
	}

	switch parts[0] {
	case "r":
		if len(parts) < 2 {
			return PathComponents{Kind: KindUnknown}
		}
		sub := parts[1]

		if len(parts) >= 3 && parts[2] == "comments" {
			if len(parts) >= 4 && parts[3] != "" {
				return PathComponents{Subreddit: sub, PostID: parts[3], Kind: KindPost}
			}
			// comments route without an id falls back to the listing
			return PathComponents{Subreddit: sub, Kind: KindSubreddit}
		}

		return PathComponents{Subreddit: sub, Kind: KindSubreddit}

	case "comments":
		if len(parts) >= 2 {
			return PathComponents{PostID: parts[1], Kind: KindPost}
		}
		return PathComponents{Kind: KindUnknown}
	}

	return PathComponents{Kind: KindUnknown}
}

// JSONPath synthesizes the JSON API path for classified path
// components. It returns false when no endpoint can be derived, in
// which case no network call should be attempted. The full endpoint
// is the path joined to CanonicalHost.
func JSONPath(comps PathComponents) (string, bool) {
	switch comps.Kind {
	case KindHome:
		return "/.json", true

	case KindSubreddit:
		if comps.Subreddit == "" {
			return "", false
		}
		return "/r/" + comps.Subreddit + ".json", true

	case KindPost:
		if comps.PostID == "" {
			return "", false
		}
		if comps.Subreddit != "" {
			return "/r/" + comps.Subreddit + "/comments/" + comps.PostID + ".json", true
		}
		return "/comments/" + comps.PostID + ".json", true
	}

	return "", false
}

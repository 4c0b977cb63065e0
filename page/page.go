// Package page defines the result type produced by content handlers.
package page

import "nectar/html"

// Content is the document payload of a Result. Exactly one concrete
// type is used per result: Markdown for text documents, Blocks for
// structured block trees. Consumers type-switch to handle both.
type Content interface {
	isContent()
}

// Markdown is a document rendered as markdown text.
type Markdown string

func (Markdown) isContent() {}

// Blocks is a document made of an ordered sequence of content nodes.
type Blocks []*html.Node

func (Blocks) isContent() {}

// Result is the outcome of resolving and fetching one URL.
// Handlers are total: every failure is expressed as a Result with Err
// set, never as a panic or an error return crossing the handler boundary.
type Result struct {
	// URL is the final URL after redirects, trimmed and non-empty.
	URL string

	// Status is the HTTP status code, or 0 if the network was never
	// reached successfully.
	Status int

	// Document holds the page content. Nil when Err is set.
	Document Content

	// Title and Summary are best-effort metadata; may be empty.
	Title   string
	Summary string

	// Err describes the failure when the fetch or parse failed.
	Err *Error
}

// OK reports whether the result represents a successful fetch.
func (r *Result) OK() bool {
	return r != nil && r.Err == nil
}

// MarkdownText returns the markdown form of the document, rendering
// block content through its markdown writer. Empty for failed results.
func (r *Result) MarkdownText() string {
	if r == nil || r.Document == nil {
		return ""
	}
	switch doc := r.Document.(type) {
	case Markdown:
		return string(doc)
	case Blocks:
		return html.NodesToMarkdown(doc)
	}
	return ""
}

// Fail builds a failed Result for url. Status carries the furthest
// stage reached: 0 for network failure, the HTTP code otherwise.
func Fail(url string, status int, kind ErrorKind, msg string) *Result {
	return &Result{
		URL:    url,
		Status: status,
		Err:    &Error{Kind: kind, Message: msg},
	}
}

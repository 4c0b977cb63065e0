package reddit

import (
	"fmt"

	"nectar/html"
)

// RenderListing converts a listing into content blocks: a subreddit
// header followed by each post. When subreddit is empty (browsing the
// front page) the header is inferred from the first post.
func (h *Handler) RenderListing(listing *Listing, subreddit string) []*html.Node {
	var blocks []*html.Node

	posts := listing.Posts()

	header := subreddit
	if header == "" && len(posts) > 0 {
		header = posts[0].Subreddit
	}
	if header != "" {
		blocks = append(blocks, &html.Node{Type: html.NodeHeading1, Text: "r/" + header})
	}

	for i := range posts {
		blocks = append(blocks, h.RenderPost(&posts[i])...)
	}

	return blocks
}

// RenderPost converts a single post into its content blocks: a linked
// title heading, a byline, an optional cached thumbnail, and a footer
// with score and comment-count link back to the permalink.
func (h *Handler) RenderPost(post *Post) []*html.Node {
	var blocks []*html.Node

	title := &html.Node{Type: html.NodeHeading2}
	if post.URL != "" {
		link := &html.Node{Type: html.NodeLink, Href: post.URL}
		link.Children = append(link.Children, &html.Node{Type: html.NodeText, Text: post.Title})
		title.Children = append(title.Children, link)
	} else {
		title.Text = post.Title
	}
	blocks = append(blocks, title)

	byline := &html.Node{Type: html.NodeParagraph}
	em := &html.Node{Type: html.NodeEmphasis}
	em.Children = append(em.Children, &html.Node{
		Type: html.NodeText,
		Text: fmt.Sprintf("By /u/%s in /r/%s", post.Author, post.Subreddit),
	})
	byline.Children = append(byline.Children, em)
	blocks = append(blocks, byline)

	// Thumbnail fetch is best-effort; absence of an image never fails
	// the page.
	if path, ok := h.thumbs.Path(post.Thumbnail); ok {
		blocks = append(blocks, &html.Node{Type: html.NodeImage, Src: path, Alt: post.Title})
	}

	if post.IsSelf && post.SelfText != "" {
		body := &html.Node{Type: html.NodeParagraph}
		body.Children = append(body.Children, &html.Node{Type: html.NodeText, Text: post.SelfText})
		blocks = append(blocks, body)
	}

	footer := &html.Node{Type: html.NodeParagraph}
	footer.Children = append(footer.Children, &html.Node{
		Type: html.NodeText,
		Text: fmt.Sprintf("%d points | ", post.Score),
	})
	comments := &html.Node{Type: html.NodeLink, Href: "https://reddit.com" + post.Permalink}
	comments.Children = append(comments.Children, &html.Node{
		Type: html.NodeText,
		Text: fmt.Sprintf("%d Comments", post.NumComments),
	})
	footer.Children = append(footer.Children, comments)
	blocks = append(blocks, footer)

	blocks = append(blocks, &html.Node{Type: html.NodeHR})

	return blocks
}

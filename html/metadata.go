package html

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Metadata is the best-effort title and summary of a page.
type Metadata struct {
	Title   string
	Summary string
}

// ExtractMetadata pulls the <title> and description metadata out of
// raw HTML. The summary combines <meta name="description"> and
// <meta property="og:description">: when both are present and differ
// they are joined with a newline, otherwise whichever exists is used.
func ExtractMetadata(rawHTML string) Metadata {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return Metadata{}
	}

	meta := Metadata{
		Title: strings.TrimSpace(doc.Find("title").First().Text()),
	}

	metaDesc := metaContent(doc, `meta[name="description"]`)
	ogDesc := metaContent(doc, `meta[property="og:description"]`)

	switch {
	case metaDesc != "" && ogDesc != "":
		if metaDesc == ogDesc {
			meta.Summary = metaDesc
		} else {
			meta.Summary = metaDesc + "\n" + ogDesc
		}
	case metaDesc != "":
		meta.Summary = metaDesc
	case ogDesc != "":
		meta.Summary = ogDesc
	}

	return meta
}

func metaContent(doc *goquery.Document, selector string) string {
	content, _ := doc.Find(selector).First().Attr("content")
	return strings.TrimSpace(content)
}

package html

import "strings"

// ToMarkdown renders a node tree as markdown text.
func (n *Node) ToMarkdown() string {
	if n == nil {
		return ""
	}
	var sb strings.Builder
	if n.Type == NodeDocument {
		writeBlocks(&sb, n.Children)
	} else {
		writeBlock(&sb, n)
	}
	return strings.TrimRight(sb.String(), "\n") + "\n"
}

// NodesToMarkdown renders an ordered sequence of nodes as markdown.
func NodesToMarkdown(nodes []*Node) string {
	var sb strings.Builder
	writeBlocks(&sb, nodes)
	return strings.TrimRight(sb.String(), "\n") + "\n"
}

func writeBlocks(sb *strings.Builder, nodes []*Node) {
	for _, n := range nodes {
		writeBlock(sb, n)
	}
}

func writeBlock(sb *strings.Builder, n *Node) {
	switch n.Type {
	case NodeDocument:
		writeBlocks(sb, n.Children)

	case NodeHeading1:
		sb.WriteString("# " + headingText(n) + "\n\n")

	case NodeHeading2:
		sb.WriteString("## " + headingText(n) + "\n\n")

	case NodeHeading3:
		sb.WriteString("### " + headingText(n) + "\n\n")

	case NodeParagraph:
		text := strings.TrimSpace(inlineText(n.Children))
		if text != "" {
			sb.WriteString(text + "\n\n")
		}

	case NodeBlockquote:
		var inner strings.Builder
		writeBlocks(&inner, n.Children)
		for _, line := range strings.Split(strings.TrimRight(inner.String(), "\n"), "\n") {
			sb.WriteString("> " + line + "\n")
		}
		sb.WriteString("\n")

	case NodeList:
		for _, item := range n.Children {
			sb.WriteString("- " + strings.TrimSpace(inlineText(item.Children)) + "\n")
		}
		sb.WriteString("\n")

	case NodeCodeBlock:
		sb.WriteString("```\n" + strings.TrimRight(n.Text, "\n") + "\n```\n\n")

	case NodeImage:
		sb.WriteString("![" + n.Alt + "](" + n.Src + ")\n\n")

	case NodeHR:
		sb.WriteString("---\n\n")

	default:
		// Inline node at block level: render as a paragraph
		text := strings.TrimSpace(inlineText([]*Node{n}))
		if text != "" {
			sb.WriteString(text + "\n\n")
		}
	}
}

// headingText renders a heading's content, which may be plain text or
// hold inline children such as a link.
func headingText(n *Node) string {
	if n.Text != "" {
		return n.Text
	}
	return strings.TrimSpace(inlineText(n.Children))
}

func inlineText(nodes []*Node) string {
	var sb strings.Builder
	for _, n := range nodes {
		switch n.Type {
		case NodeText:
			sb.WriteString(n.Text)
		case NodeLink:
			sb.WriteString("[" + strings.TrimSpace(inlineText(n.Children)) + "](" + n.Href + ")")
		case NodeStrong:
			sb.WriteString("**" + strings.TrimSpace(inlineText(n.Children)) + "**")
		case NodeEmphasis:
			sb.WriteString("*" + strings.TrimSpace(inlineText(n.Children)) + "*")
		case NodeCode:
			sb.WriteString("`" + n.Text + "`")
		case NodeImage:
			sb.WriteString("![" + n.Alt + "](" + n.Src + ")")
		default:
			sb.WriteString(inlineText(n.Children))
		}
	}
	return sb.String()
}

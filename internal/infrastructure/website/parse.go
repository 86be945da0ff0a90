package website

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/mlazarev/campaign-engine/internal/taxonomy"
)

// pageFacts is what one fetched page contributes to the evidence record.
type pageFacts struct {
	companyName string
	words       []string
	products    []string
	excerpt     string
}

// parsePage walks the HTML tree and pulls out the signals the profile
// resolver cares about. Malformed HTML is fine: x/net/html is tolerant and
// whatever parses still contributes.
func parsePage(raw string) *pageFacts {
	root, err := html.Parse(strings.NewReader(raw))
	if err != nil {
		// Parse only fails on reader errors; a string reader never does.
		return &pageFacts{}
	}

	walker := &pageWalker{}
	walker.walk(root)

	facts := &pageFacts{
		companyName: walker.companyName(),
		products:    walker.products,
	}

	bodyText := strings.Join(walker.textParts, " ")
	facts.words = taxonomy.Tokenize(bodyText + " " + walker.metaText)
	facts.excerpt = excerpt(bodyText, maxExcerptChars)
	return facts
}

type pageWalker struct {
	title     string
	siteName  string
	metaText  string
	headings  []string
	products  []string
	textParts []string
}

func (w *pageWalker) walk(node *html.Node) {
	switch node.Type {
	case html.ElementNode:
		switch node.Data {
		case "script", "style", "noscript":
			return
		case "title":
			w.title = nodeText(node)
			return
		case "meta":
			w.handleMeta(node)
		case "h1", "h2", "h3":
			if text := nodeText(node); text != "" {
				w.headings = append(w.headings, text)
				w.textParts = append(w.textParts, text)
			}
			return
		case "li":
			if text := nodeText(node); text != "" && len(taxonomy.Tokenize(text)) <= 6 {
				w.products = append(w.products, text)
			}
		}
	case html.TextNode:
		if text := strings.TrimSpace(node.Data); text != "" {
			w.textParts = append(w.textParts, text)
		}
	}

	for child := node.FirstChild; child != nil; child = child.NextSibling {
		w.walk(child)
	}
}

func (w *pageWalker) handleMeta(node *html.Node) {
	var property, name, content string
	for _, attr := range node.Attr {
		switch attr.Key {
		case "property":
			property = attr.Val
		case "name":
			name = attr.Val
		case "content":
			content = attr.Val
		}
	}
	switch {
	case property == "og:site_name":
		w.siteName = strings.TrimSpace(content)
	case name == "description" || property == "og:description":
		w.metaText += " " + content
	}
}

// companyName prefers og:site_name, then a cleaned <title>.
func (w *pageWalker) companyName() string {
	if w.siteName != "" {
		return w.siteName
	}
	return cleanTitle(w.title)
}

// cleanTitle strips the tagline part of titles like
// "Cozy Crumb Bakery | Fresh Sourdough Daily".
func cleanTitle(title string) string {
	for _, sep := range []string{"|", "–", "—", " - "} {
		if idx := strings.Index(title, sep); idx > 0 {
			title = title[:idx]
			break
		}
	}
	return strings.TrimSpace(title)
}

func nodeText(node *html.Node) string {
	var builder strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.TextNode {
			builder.WriteString(n.Data)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			collect(child)
		}
	}
	collect(node)
	return strings.Join(strings.Fields(builder.String()), " ")
}

func excerpt(text string, limit int) string {
	text = strings.TrimSpace(text)
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return strings.TrimSpace(string(runes[:limit]))
}

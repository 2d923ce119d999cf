package linkverify

import (
	"io"
	"strings"

	"golang.org/x/net/html"

	"git.home.luguber.info/inful/glossgen/internal/foundation/errors"
)

// Link represents an extracted link from HTML content.
type Link struct {
	URL        string // The href or src value
	Text       string // Link text
	Tag        string // HTML tag (a, img, link)
	IsInternal bool   // True if the link points into the site
}

// ExtractLinks extracts all links from an HTML document.
func ExtractLinks(r io.Reader) ([]Link, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryValidation, "failed to parse HTML").
			WithSeverity(errors.SeverityError).
			Build()
	}

	var links []Link
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if link, ok := elementLink(n); ok {
				links = append(links, link)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return links, nil
}

func elementLink(n *html.Node) (Link, bool) {
	var attr string
	switch n.Data {
	case "a", "link":
		attr = "href"
	case "img":
		attr = "src"
	default:
		return Link{}, false
	}
	v := getAttr(n, attr)
	if v == "" {
		return Link{}, false
	}
	return Link{
		URL:        v,
		Text:       extractText(n),
		Tag:        n.Data,
		IsInternal: isInternalLink(v),
	}, true
}

// getAttr retrieves an attribute value from an HTML node.
func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

// extractText extracts text content from an HTML node and its children.
func extractText(n *html.Node) string {
	if n.Type == html.TextNode {
		return strings.TrimSpace(n.Data)
	}
	var text strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		text.WriteString(extractText(c))
	}
	return strings.TrimSpace(text.String())
}

var skippedPrefixes = []string{"mailto:", "tel:", "javascript:", "data:", "#"}

// isInternalLink reports whether href names a page relative to the site root.
func isInternalLink(href string) bool {
	if strings.Contains(href, "://") || strings.HasPrefix(href, "//") {
		return false
	}
	for _, p := range skippedPrefixes {
		if strings.HasPrefix(href, p) {
			return false
		}
	}
	return true
}

// candidates lists the page names href may refer to: the literal value first,
// then the value without query or fragment.
func candidates(href string) []string {
	out := []string{href}
	if i := strings.IndexAny(href, "?#"); i > 0 {
		out = append(out, href[:i])
	}
	return out
}

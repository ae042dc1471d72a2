package analyzer

import (
	"encoding/json"
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"taglens/internal/domain"
)

// maxContentLength bounds the text excerpt handed to the suggestion engine.
const maxContentLength = 5000

var whitespaceRe = regexp.MustCompile(`\s+`)

// extractFromDocument applies the extraction rules to a parsed DOM. Both the
// renderer backend and the static fallback feed their documents through this
// single routine so the query logic exists once.
func extractFromDocument(doc *html.Node) *domain.PageData {
	data := &domain.PageData{
		OpenGraphTags: make(map[string]string),
		TwitterTags:   make(map[string]string),
		JSONLD:        []interface{}{},
	}

	var body *html.Node

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "title":
				if data.Title == "" {
					data.Title = cleanText(textContent(n))
				}
			case "meta":
				name := attrValue(n, "name")
				property := attrValue(n, "property")
				content := attrValue(n, "content")
				switch {
				case name == "description" && data.Description == "":
					data.Description = content
				case strings.HasPrefix(property, "og:") && content != "":
					data.OpenGraphTags[property] = content
				case strings.HasPrefix(name, "twitter:") && content != "":
					data.TwitterTags[name] = content
				}
			case "script":
				if attrValue(n, "type") == "application/ld+json" {
					// Each block parses independently; a malformed one is
					// skipped without affecting its siblings
					var parsed interface{}
					if err := json.Unmarshal([]byte(textContent(n)), &parsed); err == nil {
						data.JSONLD = append(data.JSONLD, parsed)
					}
				}
			case "body":
				if body == nil {
					body = n
				}
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	if body != nil {
		data.Content = truncateRunes(cleanText(visibleText(body)), maxContentLength)
	}

	return data
}

// attrValue returns the value of the named attribute, or "" if absent.
func attrValue(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// textContent concatenates all text nodes beneath n.
func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

// visibleText collects text beneath n, skipping elements a browser would not
// render as page text. Approximates the rendered text of the page.
func visibleText(n *html.Node) string {
	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "template":
				return
			}
		}
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteString(" ")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

// cleanText trims and collapses runs of whitespace to single spaces.
func cleanText(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

// truncateRunes bounds s to at most limit runes.
func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

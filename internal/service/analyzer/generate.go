package analyzer

import (
	"bytes"
	"encoding/json"
	"strings"

	"taglens/internal/domain"
)

// TagRequest is the hand-authored metadata for tag generation. Image and
// SiteName are optional; the corresponding tags are omitted when empty.
type TagRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image,omitempty"`
	URL         string `json:"url"`
	SiteName    string `json:"siteName,omitempty"`
	Type        string `json:"type"`
}

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	`"`, "&quot;",
	"'", "&#39;",
	"<", "&lt;",
	">", "&gt;",
)

type jsonLDPublisher struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

type jsonLDDocument struct {
	Context     string           `json:"@context"`
	Type        string           `json:"@type"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	URL         string           `json:"url"`
	Image       string           `json:"image,omitempty"`
	Publisher   *jsonLDPublisher `json:"publisher,omitempty"`
}

// GenerateTags renders OpenGraph, Twitter Card, and JSON-LD markup for the
// given metadata. Pure and deterministic: no network, no randomness. Every
// field value is HTML-escaped before being embedded in an attribute.
func GenerateTags(req TagRequest) string {
	var sb strings.Builder

	sb.WriteString("<!-- OpenGraph Meta Tags -->\n")
	writeMetaProperty(&sb, "og:title", req.Title)
	writeMetaProperty(&sb, "og:description", req.Description)
	if req.Image != "" {
		writeMetaProperty(&sb, "og:image", req.Image)
	}
	writeMetaProperty(&sb, "og:url", req.URL)
	writeMetaProperty(&sb, "og:type", req.Type)
	if req.SiteName != "" {
		writeMetaProperty(&sb, "og:site_name", req.SiteName)
	}

	sb.WriteString("\n<!-- Twitter Card Meta Tags -->\n")
	writeMetaName(&sb, "twitter:card", domain.DefaultFor(domain.FieldTwitterCard))
	writeMetaName(&sb, "twitter:title", req.Title)
	writeMetaName(&sb, "twitter:description", req.Description)
	if req.Image != "" {
		writeMetaName(&sb, "twitter:image", req.Image)
	}

	sb.WriteString("\n<!-- JSON-LD Schema -->\n")
	sb.WriteString("<script type=\"application/ld+json\">\n")
	sb.WriteString(renderJSONLD(req))
	sb.WriteString("\n</script>")

	return sb.String()
}

func writeMetaProperty(sb *strings.Builder, property, content string) {
	sb.WriteString(`<meta property="` + property + `" content="` + htmlEscaper.Replace(content) + "\" />\n")
}

func writeMetaName(sb *strings.Builder, name, content string) {
	sb.WriteString(`<meta name="` + name + `" content="` + htmlEscaper.Replace(content) + "\" />\n")
}

func renderJSONLD(req TagRequest) string {
	schemaType := "WebSite"
	if req.Type == domain.GenTypeArticle {
		schemaType = "Article"
	}

	doc := jsonLDDocument{
		Context:     "https://schema.org",
		Type:        schemaType,
		Name:        req.Title,
		Description: req.Description,
		URL:         req.URL,
		Image:       req.Image,
	}
	if req.SiteName != "" {
		doc.Publisher = &jsonLDPublisher{Type: "Organization", Name: req.SiteName}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		// Plain struct of strings; encoding cannot fail
		return "{}"
	}

	return strings.TrimRight(buf.String(), "\n")
}

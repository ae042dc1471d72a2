package domain

// Normalization field names. Each resolved metadata field has exactly one
// documented default, looked up from the table below so the fallback values
// live in one place instead of being inlined per call site.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldImage       = "image"
	FieldType        = "type"
	FieldLocale      = "locale"
	FieldImageAlt    = "imageAlt"
	FieldTwitterCard = "twitterCard"
)

var fieldDefaults = map[string]string{
	FieldTitle:       "Untitled",
	FieldDescription: "No description available.",
	FieldImage:       "https://example.com/default.jpg",
	FieldType:        OGTypeWebsite,
	FieldLocale:      "en_US",
	FieldImageAlt:    "Preview image",
	FieldTwitterCard: "summary_large_image",
}

// DefaultFor returns the documented default value for a normalized field.
// Unknown fields default to the empty string, which callers treat as a bug.
func DefaultFor(field string) string {
	return fieldDefaults[field]
}

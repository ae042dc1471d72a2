package urlcheck

import (
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
		want    string
	}{
		{
			name:  "Plain https URL",
			input: "https://example.com/page",
			want:  "https://example.com/page",
		},
		{
			name:  "URL with surrounding whitespace",
			input: "  https://example.com  ",
			want:  "https://example.com",
		},
		{
			name:    "Empty string",
			input:   "",
			wantErr: true,
		},
		{
			name:    "Missing scheme",
			input:   "example.com/page",
			wantErr: true,
		},
		{
			name:    "Non-http scheme",
			input:   "ftp://example.com/file",
			wantErr: true,
		},
		{
			name:    "Scheme but no host",
			input:   "https:///path-only",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := Parse(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if got := u.String(); got != tt.want {
				t.Errorf("Parse() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStripWWW(t *testing.T) {
	if got := StripWWW("www.example.com"); got != "example.com" {
		t.Errorf("StripWWW() = %v, want example.com", got)
	}
	if got := StripWWW("example.com"); got != "example.com" {
		t.Errorf("StripWWW() = %v, want example.com", got)
	}
}

package usecase

import (
	"strings"
	"testing"
)

func TestNormalizeAssetURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		raw      string
		secure   bool
		expected string
	}{
		{"secure keeps https", "https://s3.amazonaws.com/photos.angel.co/startups/i/42-medium.png", true, "https://s3.amazonaws.com/photos.angel.co/startups/i/42-medium.png"},
		{"secure rejects http", "http://angel.co/images/logo.png", true, ""},
		{"secure rejects javascript", "javascript:alert(1)", true, ""},
		{"insecure rewrites s3 bucket", "https://s3.amazonaws.com/photos.angel.co/startups/i/42-medium.png", false, "http://photos.angel.co/startups/i/42-medium.png"},
		{"insecure prefix only is not rewritten", "https://s3.amazonaws.com/photos.angel.co/", false, "https://s3.amazonaws.com/photos.angel.co/"},
		{"insecure prefix is case sensitive", "https://S3.amazonaws.com/photos.angel.co/a.png", false, "https://S3.amazonaws.com/photos.angel.co/a.png"},
		{"insecure keeps other https", "https://example.com/a.png", false, "https://example.com/a.png"},
		{"insecure keeps http", "http://example.com/a.png", false, "http://example.com/a.png"},
		{"insecure rejects ftp", "ftp://example.com/a.png", false, ""},
		{"insecure rejects data", "data:image/png;base64,AAAA", false, ""},
		{"empty", "", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := NormalizeAssetURL(tt.raw, tt.secure)
			if got != tt.expected {
				t.Errorf("NormalizeAssetURL(%q, %v) = %q, expected %q", tt.raw, tt.secure, got, tt.expected)
			}
		})
	}
}

func TestNormalizeAssetURL_SecureNeverHTTP(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"https://s3.amazonaws.com/photos.angel.co/a.png",
		"http://photos.angel.co/a.png",
		"http://s3.amazonaws.com/photos.angel.co/a.png",
		"HTTP://example.com/a.png",
		"https://example.com/b.jpg",
		"//example.com/c.gif",
	}
	for _, in := range inputs {
		got := NormalizeAssetURL(in, true)
		if got != "" && !strings.HasPrefix(strings.ToLower(got), "https://") {
			t.Errorf("secure context produced non-https url %q from %q", got, in)
		}
		if got != "" && got != in {
			t.Errorf("secure context altered url %q to %q", in, got)
		}
	}
}

func TestNormalizeAssetURL_S3RewriteExact(t *testing.T) {
	t.Parallel()

	remainders := []string{"a.png", "startups/i/1-medium_jpg.jpg?buster=1", "x/y/z"}
	for _, rest := range remainders {
		got := NormalizeAssetURL(s3PhotosPrefix+rest, false)
		if want := "http://photos.angel.co/" + rest; got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
	}
	if len(s3PhotosPrefix) != 41 {
		t.Errorf("expected bucket prefix of 41 characters, got %d", len(s3PhotosPrefix))
	}
}

func TestValidateURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw      string
		schemes  []string
		expected string
	}{
		{"  https://angel.co/acme  ", []string{"http", "https"}, "https://angel.co/acme"},
		{"HTTPS://angel.co/acme", []string{"https"}, "HTTPS://angel.co/acme"},
		{"angel.co/acme", []string{"http", "https"}, ""},
		{"/relative/path", []string{"http", "https"}, ""},
		{"http://", []string{"http"}, ""},
		{"http://exa mple.com", []string{"http"}, ""},
		{"http://example.com/\nx", []string{"http"}, ""},
		{"https://angel.co/\tacme", []string{"https"}, ""},
		{"https://angel.co/ac\x00me", []string{"https"}, ""},
		{"mailto:a@b.c", []string{"http", "https"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			t.Parallel()
			if got := ValidateURL(tt.raw, tt.schemes...); got != tt.expected {
				t.Errorf("ValidateURL(%q) = %q, expected %q", tt.raw, got, tt.expected)
			}
		})
	}
}

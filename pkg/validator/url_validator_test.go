package validator

import (
	"errors"
	"testing"
)

func TestValidateAcceptsHTTPAndHTTPS(t *testing.T) {
	v := NewDefaultValidator()

	for _, raw := range []string{
		"http://example.com",
		"https://example.com/page?x=1",
		"HTTPS://example.com",
		"https://example.com/path/with/trailing/",
	} {
		u, err := v.Validate(raw)
		if err != nil {
			t.Errorf("Validate(%q) returned error: %v", raw, err)
			continue
		}
		if u.Host == "" {
			t.Errorf("Validate(%q) returned URL without host", raw)
		}
	}
}

func TestValidateRejectsBadInput(t *testing.T) {
	v := NewDefaultValidator()

	tests := []struct {
		raw  string
		want error
	}{
		{"", ErrInvalidURL},
		{"not a url", ErrInvalidURL},
		{"://missing-scheme", ErrInvalidURL},
		{"/relative/path", ErrInvalidURL},
		{"http://", ErrInvalidURL},
		{"ftp://example.com/file", ErrUnsupportedScheme},
		{"javascript:alert(1)", ErrUnsupportedScheme},
		{"file:///etc/passwd", ErrUnsupportedScheme},
	}

	for _, tt := range tests {
		_, err := v.Validate(tt.raw)
		if err == nil {
			t.Errorf("Validate(%q) = nil, want error", tt.raw)
			continue
		}
		if !errors.Is(err, tt.want) {
			t.Errorf("Validate(%q) = %v, want %v", tt.raw, err, tt.want)
		}
	}
}

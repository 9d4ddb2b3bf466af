package validator

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrInvalidURL means the input could not be parsed as an absolute URL.
var ErrInvalidURL = errors.New("invalid url")

// ErrUnsupportedScheme means the URL scheme is not http or https.
var ErrUnsupportedScheme = errors.New("only http/https allowed")

// URLValidator validates fetch targets
type URLValidator interface {
	Validate(rawURL string) (*url.URL, error)
}

type DefaultValidator struct{}

func NewDefaultValidator() URLValidator {
	return &DefaultValidator{}
}

// Validate parses the raw string and checks it is an absolute http(s) URL.
// Pure; no network access.
func (v *DefaultValidator) Validate(rawURL string) (*url.URL, error) {
	if rawURL == "" {
		return nil, ErrInvalidURL
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}

	scheme := strings.ToLower(u.Scheme)
	if scheme == "" {
		return nil, ErrInvalidURL
	}
	if scheme != "http" && scheme != "https" {
		return nil, ErrUnsupportedScheme
	}

	if u.Host == "" {
		return nil, ErrInvalidURL
	}

	return u, nil
}

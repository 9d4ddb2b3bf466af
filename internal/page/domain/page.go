package domain

import (
	"time"
)

// Snippet kinds, matching how the excerpt was discovered.
const (
	SnippetKindHeading = "heading"
	SnippetKindSection = "section"
	SnippetKindKeyword = "keyword"
)

// Snippet is a bounded excerpt of page text. Exactly one of Heading,
// Selector or Keyword is set, depending on Kind.
type Snippet struct {
	Kind     string `json:"kind"`
	Heading  string `json:"heading,omitempty"`
	Selector string `json:"selector,omitempty"`
	Keyword  string `json:"keyword,omitempty"`
	Snippet  string `json:"snippet"`
}

// FetchResult is the structured extraction of a single page. It is the unit
// that gets cached and returned to callers.
type FetchResult struct {
	URL       string    `json:"url"`
	Title     string    `json:"title"`
	Snippets  []Snippet `json:"snippets"`
	Handles   []string  `json:"handles"`
	Links     []string  `json:"links"`
	FetchedAt int64     `json:"fetchedAt"` // unix milliseconds
}

// RawPage holds the raw HTML and final status of a fetched page.
type RawPage struct {
	HTML       string
	StatusCode int
}

// PageResponse is the API envelope for a fetch. Cached marks whether the
// result was served from the cache instead of a live fetch.
type PageResponse struct {
	OK     bool `json:"ok"`
	Cached bool `json:"cached"`
	FetchResult
}

// FetchRecord is one row of fetch history.
type FetchRecord struct {
	ID           int64     `json:"id" db:"id"`
	URL          string    `json:"url" db:"url"`
	Digest       string    `json:"digest" db:"digest"`
	Title        string    `json:"title" db:"title"`
	SnippetCount int       `json:"snippet_count" db:"snippet_count"`
	HandleCount  int       `json:"handle_count" db:"handle_count"`
	LinkCount    int       `json:"link_count" db:"link_count"`
	Cached       bool      `json:"cached" db:"cached"`
	FetchedAt    time.Time `json:"fetched_at" db:"fetched_at"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

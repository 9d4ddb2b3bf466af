package extractor

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/taizguy/zamapedia/internal/page/domain"
)

func fixedClock(e *Extractor, ts time.Time) *Extractor {
	e.now = func() time.Time { return ts }
	return e
}

func snippetsOfKind(result *domain.FetchResult, kind string) []domain.Snippet {
	var out []domain.Snippet
	for _, s := range result.Snippets {
		if s.Kind == kind {
			out = append(out, s)
		}
	}
	return out
}

func TestExtractHeadingPass(t *testing.T) {
	html := `<html><body>
		<div><h2>Season 3 Winners</h2><p>PAYLOAD</p></div>
		<div><h3>Unrelated heading</h3><p>ignored</p></div>
	</body></html>`

	e := New()
	result := e.Extract(html, "https://example.com/page")

	headings := snippetsOfKind(result, domain.SnippetKindHeading)
	if len(headings) != 1 {
		t.Fatalf("heading snippets = %d, want 1", len(headings))
	}
	if headings[0].Heading != "Season 3 Winners" {
		t.Errorf("Heading = %q, want %q", headings[0].Heading, "Season 3 Winners")
	}
	if !strings.Contains(headings[0].Snippet, "PAYLOAD") {
		t.Errorf("Snippet = %q, should contain PAYLOAD", headings[0].Snippet)
	}
}

func TestExtractHeadingMatchesOnceEvenWithMultipleKeywords(t *testing.T) {
	// "Season 2 Winners" contains both "winners" and "season 2"; the heading
	// is reported once, for its first matching keyword.
	html := `<html><body><div><h1>Season 2 Winners</h1><p>block</p></div></body></html>`

	result := New().Extract(html, "https://example.com")
	headings := snippetsOfKind(result, domain.SnippetKindHeading)
	if len(headings) != 1 {
		t.Errorf("heading snippets = %d, want 1", len(headings))
	}
}

func TestExtractSectionPass(t *testing.T) {
	html := `<html><body>
		<div class="Leaderboard-table">alice 100 bob 90</div>
		<section id="winner-announcement">carol wins</section>
		<div class="plain">nothing</div>
	</body></html>`

	result := New().Extract(html, "https://example.com")

	sections := snippetsOfKind(result, domain.SnippetKindSection)
	if len(sections) != 2 {
		t.Fatalf("section snippets = %d, want 2", len(sections))
	}
	if sections[0].Selector != "Leaderboard-table" {
		t.Errorf("Selector = %q, want original casing preserved", sections[0].Selector)
	}
	if sections[0].Snippet != "alice 100 bob 90" {
		t.Errorf("Snippet = %q", sections[0].Snippet)
	}
	if sections[1].Selector != "winner-announcement" {
		t.Errorf("Selector = %q", sections[1].Selector)
	}
}

func TestExtractKeywordPassFirstOccurrenceOnly(t *testing.T) {
	body := "intro leaderboard middle text leaderboard outro"
	html := "<html><body><p>" + body + "</p></body></html>"

	result := New().Extract(html, "https://example.com")

	keywords := snippetsOfKind(result, domain.SnippetKindKeyword)
	if len(keywords) != 1 {
		t.Fatalf("keyword snippets = %d, want 1", len(keywords))
	}
	if keywords[0].Keyword != "leaderboard" {
		t.Errorf("Keyword = %q", keywords[0].Keyword)
	}
	// Anchored at the first occurrence: window starts at the beginning of
	// the (short) body, not at the second match.
	if !strings.HasPrefix(keywords[0].Snippet, "intro leaderboard") {
		t.Errorf("Snippet = %q, should be anchored at first occurrence", keywords[0].Snippet)
	}
}

func TestExtractKeywordWindowClamped(t *testing.T) {
	pad := strings.Repeat("x", 500)
	body := pad + " leaderboard " + pad
	html := "<html><body><p>" + body + "</p></body></html>"

	result := New().Extract(html, "https://example.com")

	keywords := snippetsOfKind(result, domain.SnippetKindKeyword)
	if len(keywords) != 1 {
		t.Fatalf("keyword snippets = %d, want 1", len(keywords))
	}
	// 200 before + the rest of the window after; never more than 400 bytes.
	if got := len(keywords[0].Snippet); got != 400 {
		t.Errorf("window length = %d, want 400", got)
	}
	if !strings.Contains(keywords[0].Snippet, "leaderboard") {
		t.Errorf("window %q does not contain the keyword", keywords[0].Snippet)
	}
}

func TestExtractKeywordCasePreserved(t *testing.T) {
	html := "<html><body><p>The LEADERBOARD is live</p></body></html>"

	result := New().Extract(html, "https://example.com")

	keywords := snippetsOfKind(result, domain.SnippetKindKeyword)
	if len(keywords) != 1 {
		t.Fatalf("keyword snippets = %d, want 1", len(keywords))
	}
	if !strings.Contains(keywords[0].Snippet, "LEADERBOARD") {
		t.Errorf("Snippet = %q, original casing should be preserved", keywords[0].Snippet)
	}
}

func TestExtractPassesConcatenateWithoutDedup(t *testing.T) {
	// The same content matched by the heading, attribute and keyword passes
	// shows up once per pass.
	html := `<html><body>
		<div class="leaderboard"><h2>Leaderboard</h2><p>scores</p></div>
	</body></html>`

	result := New().Extract(html, "https://example.com")

	if len(snippetsOfKind(result, domain.SnippetKindHeading)) != 1 {
		t.Error("expected a heading snippet")
	}
	if len(snippetsOfKind(result, domain.SnippetKindSection)) != 1 {
		t.Error("expected a section snippet")
	}
	if len(snippetsOfKind(result, domain.SnippetKindKeyword)) != 1 {
		t.Error("expected a keyword snippet")
	}

	// Discovery order: heading pass first, then sections, then keywords.
	kinds := make([]string, len(result.Snippets))
	for i, s := range result.Snippets {
		kinds[i] = s.Kind
	}
	want := []string{domain.SnippetKindHeading, domain.SnippetKindSection, domain.SnippetKindKeyword}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("snippet order = %v, want %v", kinds, want)
		}
	}
}

func TestExtractSnippetTruncation(t *testing.T) {
	long := strings.Repeat("a", 3000)
	html := `<html><body><div><h2>Leaderboard</h2><p>` + long + `</p></div></body></html>`

	result := New().Extract(html, "https://example.com")

	headings := snippetsOfKind(result, domain.SnippetKindHeading)
	if len(headings) != 1 {
		t.Fatalf("heading snippets = %d, want 1", len(headings))
	}
	if got := len(headings[0].Snippet); got != 2000 {
		t.Errorf("snippet length = %d, want 2000", got)
	}
}

func TestExtractHandlesCapAndDedup(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("<html><body><p>")
	for i := 0; i < 300; i++ {
		fmt.Fprintf(&sb, "@user%03d ", i)
	}
	// Repeats of an already-seen handle must not create duplicates.
	sb.WriteString("@user000 @user001")
	sb.WriteString("</p></body></html>")

	result := New().Extract(sb.String(), "https://example.com")

	if len(result.Handles) != 200 {
		t.Fatalf("handles = %d, want 200", len(result.Handles))
	}
	seen := make(map[string]bool)
	for _, h := range result.Handles {
		if seen[h] {
			t.Fatalf("duplicate handle %q", h)
		}
		seen[h] = true
	}
	if result.Handles[0] != "@user000" {
		t.Errorf("first handle = %q, want document order preserved", result.Handles[0])
	}
}

func TestExtractLinksAllowListAndDedup(t *testing.T) {
	html := `<html><body>
		<a href="https://x.com/zama">x</a>
		<a href="https://twitter.com/zama">tw</a>
		<a href="https://x.com/zama">dup</a>
		<a href="https://guild.xyz/zama">guild</a>
		<a href="https://zama.ai/docs">docs</a>
		<a href="https://example.com/elsewhere">off-list</a>
	</body></html>`

	result := New().Extract(html, "https://example.com")

	want := []string{
		"https://x.com/zama",
		"https://twitter.com/zama",
		"https://guild.xyz/zama",
		"https://zama.ai/docs",
	}
	if len(result.Links) != len(want) {
		t.Fatalf("links = %v, want %v", result.Links, want)
	}
	for i := range want {
		if result.Links[i] != want[i] {
			t.Errorf("links[%d] = %q, want %q", i, result.Links[i], want[i])
		}
	}
}

func TestExtractTitleIsRequestHostname(t *testing.T) {
	html := "<html><head><title>Some Page Title</title></head><body></body></html>"

	result := New().Extract(html, "https://example.com/deep/path?q=1")

	if result.Title != "example.com" {
		t.Errorf("Title = %q, want request hostname, not the page <title>", result.Title)
	}
	if result.URL != "https://example.com/deep/path?q=1" {
		t.Errorf("URL = %q, want the unmodified request URL", result.URL)
	}
}

func TestExtractEmptyHTMLDegradesGracefully(t *testing.T) {
	ts := time.UnixMilli(1700000000000)
	e := fixedClock(New(), ts)

	result := e.Extract("", "https://example.com")

	if result.FetchedAt != ts.UnixMilli() {
		t.Errorf("FetchedAt = %d, want %d", result.FetchedAt, ts.UnixMilli())
	}
	if len(result.Snippets) != 0 || len(result.Handles) != 0 || len(result.Links) != 0 {
		t.Errorf("empty HTML should yield empty result, got %+v", result)
	}
	if result.Snippets == nil || result.Handles == nil || result.Links == nil {
		t.Error("collections should be empty, not nil, so they marshal as []")
	}
}

// Package extractor derives structured snippets, handles and links from raw
// HTML. Three passes run unconditionally and their outputs are concatenated
// in order: a heading scan, a class/id attribute scan, and a first-occurrence
// keyword scan over the body text. Nothing here touches the network or disk.
package extractor

import (
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/taizguy/zamapedia/internal/page/domain"
)

// headingKeywords gate the heading pass; a heading matches on the first
// keyword its lower-cased text contains.
var headingKeywords = []string{
	"leaderboard", "leaderboards", "winners", "winner",
	"top 1000", "season 2", "season 3", "season 4",
}

// bodyKeywords drive the keyword pass; only the first occurrence of each is
// reported.
var bodyKeywords = []string{
	"season 2", "season two", "season 3", "season 4",
	"winner", "winners", "top 1000", "leaderboard",
}

// linkDomains is the allow-list of outbound link destinations worth keeping.
var linkDomains = []string{
	"x.com", "twitter.com", "farcaster", "guild.xyz", "zama.ai", "zama.org",
}

var (
	handlePattern = regexp.MustCompile(`@[-_A-Za-z0-9]{3,30}`)
	whitespaceRE  = regexp.MustCompile(`\s+`)
)

const (
	maxSnippetLen  = 2000
	maxSelectorLen = 200
	maxHandles     = 200
	maxLinks       = 200
	keywordWindow  = 200
)

// Extractor turns raw HTML into a FetchResult. The clock is injectable for
// deterministic tests.
type Extractor struct {
	now func() time.Time
}

func New() *Extractor {
	return &Extractor{now: time.Now}
}

// Extract parses rawHTML and assembles the structured result. Malformed or
// empty HTML degrades to an empty-but-valid result rather than failing.
func (e *Extractor) Extract(rawHTML, requestedURL string) *domain.FetchResult {
	result := &domain.FetchResult{
		URL:       requestedURL,
		Title:     hostnameOf(requestedURL),
		Snippets:  []domain.Snippet{},
		Handles:   []string{},
		Links:     []string{},
		FetchedAt: e.now().UnixMilli(),
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return result
	}

	bodyText := collapse(doc.Find("body").Text())

	// Pass 1: headings containing a keyword; the excerpt is the heading's
	// parent block.
	doc.Find("h1,h2,h3,h4,h5").Each(func(_ int, s *goquery.Selection) {
		lower := strings.ToLower(s.Text())
		for _, kw := range headingKeywords {
			if strings.Contains(lower, kw) {
				excerpt := collapse(s.Parent().Text())
				result.Snippets = append(result.Snippets, domain.Snippet{
					Kind:    domain.SnippetKindHeading,
					Heading: strings.TrimSpace(s.Text()),
					Snippet: truncate(excerpt, maxSnippetLen),
				})
				break
			}
		}
	})

	// Pass 2: elements whose class/id mentions leader or winner.
	doc.Find("[class], [id]").Each(func(_ int, s *goquery.Selection) {
		class, _ := s.Attr("class")
		id, _ := s.Attr("id")
		combined := class + " " + id
		lower := strings.ToLower(combined)
		if strings.Contains(lower, "leader") || strings.Contains(lower, "winner") {
			result.Snippets = append(result.Snippets, domain.Snippet{
				Kind:     domain.SnippetKindSection,
				Selector: truncate(strings.TrimSpace(combined), maxSelectorLen),
				Snippet:  truncate(collapse(s.Text()), maxSnippetLen),
			})
		}
	})

	// Pass 3: first occurrence of each keyword in the body text, with a
	// +-200 character window clamped to the text bounds.
	lowerBody := strings.ToLower(bodyText)
	for _, kw := range bodyKeywords {
		idx := strings.Index(lowerBody, kw)
		if idx < 0 {
			continue
		}
		start := idx - keywordWindow
		if start < 0 {
			start = 0
		}
		end := idx + keywordWindow
		if end > len(bodyText) {
			end = len(bodyText)
		}
		if start > len(bodyText) {
			start = len(bodyText)
		}
		result.Snippets = append(result.Snippets, domain.Snippet{
			Kind:    domain.SnippetKindKeyword,
			Keyword: kw,
			Snippet: bodyText[start:end],
		})
	}

	// Social-handle-like tokens: first 200 matches in document order, then
	// deduplicated preserving first appearance.
	handles := handlePattern.FindAllString(bodyText, maxHandles)
	result.Handles = dedupe(handles, maxHandles)

	// Outbound links on the allow-list.
	var links []string
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok || href == "" {
			return
		}
		for _, d := range linkDomains {
			if strings.Contains(href, d) {
				links = append(links, href)
				break
			}
		}
	})
	result.Links = dedupe(links, maxLinks)

	return result
}

func hostnameOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}

// collapse squeezes runs of whitespace to single spaces and trims the ends.
func collapse(s string) string {
	return strings.TrimSpace(whitespaceRE.ReplaceAllString(s, " "))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// dedupe removes duplicates preserving first-seen order, capped at max.
func dedupe(in []string, max int) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
		if len(out) == max {
			break
		}
	}
	return out
}

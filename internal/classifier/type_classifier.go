package classifier

import (
	"net/url"
	"strings"

	"github.com/mangobot/mangobot/internal/domain"
)

var (
	videoDomains  = []string{"youtube.com", "youtu.be", "vimeo.com"}
	socialDomains = []string{"twitter.com", "x.com", "linkedin.com", "facebook.com", "instagram.com", "threads.net"}

	// Substring matches against the full URL, so bare suffixes like ".edu"
	// also catch paths and subdomains.
	academicDomains = []string{".edu", ".ac.uk", "arxiv.org", "researchgate.net", "scholar.google.com", "ncbi.nlm.nih.gov", "sciencedirect.com"}

	// A single occurrence of any of these is enough to call the page a
	// research paper. Pages merely containing the word "introduction" will
	// match; that imprecision is accepted.
	researchKeywords = []string{"abstract", "introduction", "methodology", "results", "conclusion", "references", "doi:"}
)

type typeRule struct {
	label domain.ResourceType
	match func(host, rawURL string, page domain.Page) bool
}

// typeRules is an ordered decision list; the first matching rule wins, so
// domain rules take precedence over structural and content heuristics.
var typeRules = []typeRule{
	{domain.TypeVideo, func(host, _ string, _ domain.Page) bool {
		return hostContainsAny(host, videoDomains)
	}},
	{domain.TypeSocial, func(host, _ string, _ domain.Page) bool {
		return hostContainsAny(host, socialDomains)
	}},
	{domain.TypeBook, func(host, rawURL string, _ domain.Page) bool {
		return strings.Contains(host, "amazon.com") && strings.Contains(rawURL, "/dp/")
	}},
	{domain.TypeBook, func(host, rawURL string, _ domain.Page) bool {
		return strings.Contains(host, "goodreads.com") && strings.Contains(rawURL, "/dp/")
	}},
	{domain.TypeArticle, func(_, _ string, page domain.Page) bool {
		return page.OGType == "article" || page.HasArticleTag
	}},
	{domain.TypeBook, func(_, _ string, page domain.Page) bool {
		return page.OGType == "book"
	}},
	{domain.TypeResearch, func(_, rawURL string, page domain.Page) bool {
		return isResearchPaper(rawURL, page)
	}},
}

// ClassifyType derives the resource type from the URL shape and the parsed
// page structure.
func ClassifyType(rawURL string, page domain.Page) domain.ResourceType {
	host := ""
	if u, err := url.Parse(rawURL); err == nil {
		host = u.Host
	}

	for _, rule := range typeRules {
		if rule.match(host, rawURL, page) {
			return rule.label
		}
	}

	return domain.TypeOther
}

func isResearchPaper(rawURL string, page domain.Page) bool {
	for _, d := range academicDomains {
		if strings.Contains(rawURL, d) {
			return true
		}
	}

	if strings.HasSuffix(strings.ToLower(rawURL), ".pdf") {
		return true
	}

	content := strings.ToLower(page.Content)
	for _, kw := range researchKeywords {
		if strings.Contains(content, kw) {
			return true
		}
	}

	return page.HasCitationMeta
}

func hostContainsAny(host string, domains []string) bool {
	for _, d := range domains {
		if strings.Contains(host, d) {
			return true
		}
	}
	return false
}

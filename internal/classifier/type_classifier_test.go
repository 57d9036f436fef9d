package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mangobot/mangobot/internal/domain"
)

func TestClassifyType(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		page     domain.Page
		expected domain.ResourceType
	}{
		{
			name:     "youtube is video regardless of content",
			url:      "https://www.youtube.com/watch?v=abc",
			page:     domain.Page{Content: "abstract introduction references"},
			expected: domain.TypeVideo,
		},
		{
			name:     "short video link",
			url:      "https://youtu.be/abc",
			expected: domain.TypeVideo,
		},
		{
			name:     "vimeo is video",
			url:      "https://vimeo.com/12345",
			expected: domain.TypeVideo,
		},
		{
			name:     "twitter is social media",
			url:      "https://twitter.com/someone/status/1",
			expected: domain.TypeSocial,
		},
		{
			name:     "social domain precedes research heuristic",
			url:      "https://x.com/someone/status/1",
			page:     domain.Page{Content: "Abstract: we present a methodology with references and doi:10.1/xyz", HasCitationMeta: true},
			expected: domain.TypeSocial,
		},
		{
			name:     "amazon book detail page",
			url:      "https://www.amazon.com/dp/0131103628",
			expected: domain.TypeBook,
		},
		{
			name:     "amazon without dp path is not a book",
			url:      "https://www.amazon.com/gp/cart",
			expected: domain.TypeOther,
		},
		{
			name:     "og type article",
			url:      "https://example.com/post",
			page:     domain.Page{OGType: "article"},
			expected: domain.TypeArticle,
		},
		{
			name:     "article tag without og type",
			url:      "https://example.com/post",
			page:     domain.Page{HasArticleTag: true},
			expected: domain.TypeArticle,
		},
		{
			name:     "og type book",
			url:      "https://example.com/some-book",
			page:     domain.Page{OGType: "book"},
			expected: domain.TypeBook,
		},
		{
			name:     "article block precedes research keywords",
			url:      "https://example.com/post",
			page:     domain.Page{HasArticleTag: true, Content: "introduction and conclusion"},
			expected: domain.TypeArticle,
		},
		{
			name:     "arxiv is research",
			url:      "https://arxiv.org/abs/1234",
			expected: domain.TypeResearch,
		},
		{
			name:     "edu domain is research",
			url:      "https://cs.stanford.edu/people",
			expected: domain.TypeResearch,
		},
		{
			name:     "pdf link is research",
			url:      "https://example.com/papers/final.PDF",
			expected: domain.TypeResearch,
		},
		{
			name:     "research keyword in content",
			url:      "https://example.com/page",
			page:     domain.Page{Content: "See the References section below."},
			expected: domain.TypeResearch,
		},
		{
			name:     "citation meta tags",
			url:      "https://example.com/page",
			page:     domain.Page{HasCitationMeta: true},
			expected: domain.TypeResearch,
		},
		{
			name:     "plain page is other",
			url:      "https://example.com/page",
			page:     domain.Page{Content: "just some text"},
			expected: domain.TypeOther,
		},
		{
			name:     "unparsable url falls through to content rules",
			url:      "https://exa mple.com/page",
			page:     domain.Page{Content: "nothing special"},
			expected: domain.TypeOther,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyType(tt.url, tt.page))
		})
	}
}

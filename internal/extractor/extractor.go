package extractor

import (
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/mangobot/mangobot/internal/domain"
)

// overridable in tests
var now = time.Now

// Extract parses raw HTML into the fields the classification pipeline
// needs: the trimmed document title, the concatenated paragraph text in
// document order, and the structural markers consulted by the type rules.
func Extract(htmlBody string) (domain.Page, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlBody))
	if err != nil {
		return domain.Page{}, fmt.Errorf("parse html: %w", err)
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		// Untitled pages fetched the same day collide on this name.
		title = "Title" + now().Format("02012006")
	}

	var paragraphs []string
	doc.Find("p").Each(func(_ int, sel *goquery.Selection) {
		paragraphs = append(paragraphs, sel.Text())
	})

	return domain.Page{
		Title:           title,
		Content:         strings.Join(paragraphs, " "),
		OGType:          doc.Find(`meta[property="og:type"]`).First().AttrOr("content", ""),
		HasArticleTag:   doc.Find("article").Length() > 0,
		HasCitationMeta: doc.Find(`meta[name="citation_title"], meta[name="citation_author"]`).Length() > 0,
	}, nil
}

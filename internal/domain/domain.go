package domain

import (
	"context"
	"errors"
)

// ResourceType is the coarse format classification of a captured resource.
// The values double as the Notion "Type" select option names.
type ResourceType string

const (
	TypeVideo    ResourceType = "Video"
	TypeSocial   ResourceType = "Social Media Post"
	TypeBook     ResourceType = "Book"
	TypeArticle  ResourceType = "Article"
	TypeResearch ResourceType = "Research"
	TypeBlocked  ResourceType = "Blocked"
	TypeOther    ResourceType = "Other"
)

// Subjects is the closed set of topical categories the language model
// chooses from. The option names match the Notion "Subject" select options.
var Subjects = []string{
	"💸 Economy",
	"🍑 Sexuality",
	"🗳 Politics",
	"📺 Media",
	"🧠 Mental Health",
	"🧬 Genetics",
	"📱 Technology",
	"💬 Other",
}

// SubjectBlocked is assigned to pages the remote site refused to serve.
// It is not part of the set offered to the language model.
const SubjectBlocked = "💬 Blocked"

// Entry is the structured record describing a classified resource. It is
// immutable once built; the creation timestamp is assigned by the sink at
// write time, not here.
type Entry struct {
	Name    string       `json:"name"`
	Link    string       `json:"link"`
	Type    ResourceType `json:"type"`
	Subject string       `json:"subject,omitempty"`
	Tags    []string     `json:"tags,omitempty"`
}

// Page holds what the extractor pulls out of a fetched HTML document. The
// structural fields exist so the type classifier can inspect the document
// without re-parsing it.
type Page struct {
	Title           string `json:"title"`
	Content         string `json:"content"`
	OGType          string `json:"og_type,omitempty"`
	HasArticleTag   bool   `json:"has_article_tag"`
	HasCitationMeta bool   `json:"has_citation_meta"`
}

// ClassificationResult is the transient output of the classification
// pipeline, consumed immediately when building an Entry.
type ClassificationResult struct {
	Type    ResourceType `json:"type"`
	Subject string       `json:"subject,omitempty"`
	Tags    []string     `json:"tags,omitempty"`
}

var (
	// ErrBlocked reports that the remote site answered 403.
	ErrBlocked = errors.New("blocked by the website")

	// ErrNoPending reports a confirm/cancel action with no stored entry.
	ErrNoPending = errors.New("no pending entry")
)

// PageFetcher retrieves the raw HTML body of a URL.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// SubjectTagger derives a subject and five tags from page content. Failures
// are absorbed at this boundary: a failed classification yields ("", nil)
// and the entry proceeds with degraded metadata.
type SubjectTagger interface {
	SubjectAndTags(ctx context.Context, content string) (string, []string)
}

// EntrySink durably stores a confirmed entry in the external knowledge base.
type EntrySink interface {
	CreateRecord(ctx context.Context, entry Entry) error
}

// PendingStore holds at most one classified-but-unconfirmed entry per user.
type PendingStore interface {
	Put(userID int64, entry Entry)
	Take(userID int64) (Entry, bool)
}

package classifier

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/sashabaranov/go-openai"

	"github.com/mangobot/mangobot/internal/domain"
)

const (
	// Content beyond this is not worth the tokens; the opening of a page
	// is enough to pick a subject.
	maxContentChars = 1000

	subjectMarker = "Subject:"
	tagsMarker    = "Tags:"
)

// ChatCompleter is the slice of the OpenAI client the tagger needs.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// SubjectTagger asks a language model for a subject from the closed
// category set and five abstraction-level tags.
type SubjectTagger struct {
	client ChatCompleter
}

func NewSubjectTagger(client ChatCompleter) *SubjectTagger {
	return &SubjectTagger{client: client}
}

// SubjectAndTags classifies content in a single model call. Every failure
// mode — transport error, empty response, missing marker lines — is
// absorbed here and yields ("", nil): the caller proceeds with degraded
// metadata rather than failing the submission. There is no retry; the user
// is waiting synchronously in the chat.
func (t *SubjectTagger) SubjectAndTags(ctx context.Context, content string) (string, []string) {
	resp, err := t.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: openai.GPT4oMini,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: "Analyze the text and provide the required information."},
			{Role: openai.ChatMessageRoleUser, Content: buildPrompt(content)},
		},
		MaxTokens:   150,
		Temperature: 0.7,
		TopP:        1,
	})
	if err != nil {
		log.Warn().Err(err).Msg("Subject classification call failed")
		return "", nil
	}

	if len(resp.Choices) == 0 {
		log.Warn().Msg("Subject classification returned no choices")
		return "", nil
	}

	subject, tags, err := parseClassification(resp.Choices[0].Message.Content)
	if err != nil {
		log.Warn().Err(err).Msg("Subject classification response unparsable")
		return "", nil
	}

	return subject, tags
}

func buildPrompt(content string) string {
	if runes := []rune(content); len(runes) > maxContentChars {
		content = string(runes[:maxContentChars])
	}

	var sb strings.Builder
	sb.WriteString("Analyze the following content and determine\n")
	sb.WriteString("1. The most appropriate subject from this list: ")
	sb.WriteString(strings.Join(domain.Subjects, ", "))
	sb.WriteString("\n2. Five relevant tags (e.g. Finance) for the content that helps to categorise them in a knowledge database. ")
	sb.WriteString("The tags preferably describe higher level, abstract concepts rather than specific person, or object mentioned. ")
	sb.WriteString("Tag and subject should not repeat.\n\n")
	sb.WriteString("Content: ")
	sb.WriteString(content)
	sb.WriteString("\n\nPlease respond in the following format:\n")
	sb.WriteString("Subject: [chosen subject]\n")
	sb.WriteString("Tags: [Tag1], [Tag2], [Tag3], [Tag4], [Tag5]\n")

	return sb.String()
}

// parseClassification expects one line starting with "Subject:" and one
// starting with "Tags:", the latter comma-separated.
func parseClassification(raw string) (string, []string, error) {
	var subjectLine, tagsLine string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case subjectLine == "" && strings.HasPrefix(line, subjectMarker):
			subjectLine = line
		case tagsLine == "" && strings.HasPrefix(line, tagsMarker):
			tagsLine = line
		}
	}

	if subjectLine == "" || tagsLine == "" {
		return "", nil, fmt.Errorf("response has no %q or %q line", subjectMarker, tagsMarker)
	}

	subject := strings.TrimSpace(strings.TrimPrefix(subjectLine, subjectMarker))

	var tags []string
	for _, tag := range strings.Split(strings.TrimPrefix(tagsLine, tagsMarker), ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}

	return subject, tags, nil
}

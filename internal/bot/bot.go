package bot

import (
	"context"
	"errors"
	"regexp"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mangobot/mangobot/internal/classifier"
	"github.com/mangobot/mangobot/internal/domain"
	"github.com/mangobot/mangobot/internal/extractor"
)

const (
	callbackConfirm = "confirm"
	callbackCancel  = "cancel"

	msgStart        = "Enter the URL of the resource."
	msgNotURL       = "That doesn't look right. Please send a valid URL."
	msgParseFailed  = "Hmm, something went wrong as I was parsing the URL. Please try again."
	msgConfirming   = "Sending source to Notion...🥭"
	msgCancelled    = "Got it. Operation cancelled. 🥭"
	msgNoPending    = "Sorry, I don't have the entry data. Please try again."
	msgSinkSuccess  = "New source successfully added to Notion."
	msgSinkFailed   = "Hmm, that didn't work. Please try again."
	msgProposeEntry = "🧐 Send this to Notion?"
)

var urlPattern = regexp.MustCompile(`^https?://\S+$`)

// Sender is the slice of the Telegram client the bot needs; *tgbotapi.BotAPI
// satisfies it.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type Dependencies struct {
	Telegram Sender
	Fetcher  domain.PageFetcher
	Tagger   domain.SubjectTagger
	Pending  domain.PendingStore
	Sink     domain.EntrySink
}

// Bot drives the conversational flow: URL in, classified entry proposed
// with Confirm/Cancel buttons, confirmed entries written to the sink.
type Bot struct {
	api     Sender
	fetcher domain.PageFetcher
	tagger  domain.SubjectTagger
	pending domain.PendingStore
	sink    domain.EntrySink
}

func New(deps Dependencies) *Bot {
	return &Bot{
		api:     deps.Telegram,
		fetcher: deps.Fetcher,
		tagger:  deps.Tagger,
		pending: deps.Pending,
		sink:    deps.Sink,
	}
}

// Run processes updates until the channel closes or ctx is cancelled.
// Updates are handled one at a time, so per-user message ordering is
// whatever Telegram delivered.
func (b *Bot) Run(ctx context.Context, updates tgbotapi.UpdatesChannel) {
	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			b.HandleUpdate(ctx, update)
		}
	}
}

func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil:
		b.handleMessage(ctx, update.Message)
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.IsCommand() {
		if msg.Command() == "start" {
			b.reply(msg.Chat.ID, msgStart)
		}
		return
	}

	text := strings.TrimSpace(msg.Text)
	if !urlPattern.MatchString(text) {
		b.reply(msg.Chat.ID, msgNotURL)
		return
	}

	b.handleURL(ctx, msg, text)
}

func (b *Bot) handleURL(ctx context.Context, msg *tgbotapi.Message, link string) {
	logger := log.With().
		Str("request_id", uuid.NewString()).
		Int64("user_id", msg.From.ID).
		Str("link", link).
		Logger()

	entry, err := b.classify(ctx, link, logger)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to classify URL")
		b.reply(msg.Chat.ID, msgParseFailed)
		return
	}

	// Last write wins: a fresh URL replaces any unresolved proposal.
	b.pending.Put(msg.From.ID, entry)
	logger.Info().Str("type", string(entry.Type)).Str("subject", entry.Subject).Msg("Entry proposed")

	proposal := tgbotapi.NewMessage(msg.Chat.ID, formatPreview(entry)+"\n\n"+msgProposeEntry)
	proposal.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🟢 Confirm", callbackConfirm),
			tgbotapi.NewInlineKeyboardButtonData("🔴 Cancel", callbackCancel),
		),
	)
	b.send(proposal)
}

// classify runs the fetch → extract → classify pipeline. A blocked page is
// not an error: it becomes a degraded entry the user can still file.
func (b *Bot) classify(ctx context.Context, link string, logger zerolog.Logger) (domain.Entry, error) {
	html, err := b.fetcher.Fetch(ctx, link)
	if errors.Is(err, domain.ErrBlocked) {
		logger.Warn().Msg("Blocked by the website")
		return domain.Entry{
			Name:    "Blocked",
			Link:    link,
			Type:    domain.TypeBlocked,
			Subject: domain.SubjectBlocked,
			Tags:    []string{},
		}, nil
	}
	if err != nil {
		return domain.Entry{}, err
	}

	page, err := extractor.Extract(html)
	if err != nil {
		return domain.Entry{}, err
	}

	subject, tags := b.tagger.SubjectAndTags(ctx, page.Content)

	return domain.Entry{
		Name:    page.Title,
		Link:    link,
		Type:    classifier.ClassifyType(link, page),
		Subject: subject,
		Tags:    tags,
	}, nil
}

func (b *Bot) handleCallback(ctx context.Context, query *tgbotapi.CallbackQuery) {
	if _, err := b.api.Request(tgbotapi.NewCallback(query.ID, "")); err != nil {
		log.Warn().Err(err).Msg("Failed to acknowledge callback query")
	}

	// Telegram omits the originating message on callbacks for old
	// proposals; there is nothing to edit then.
	if query.Message == nil {
		log.Warn().Int64("user_id", query.From.ID).Msg("Callback without originating message")
		return
	}

	chatID := query.Message.Chat.ID

	entry, ok := b.pending.Take(query.From.ID)
	if !ok {
		// Stray press after the slot was already cleared.
		log.Info().Int64("user_id", query.From.ID).Msg("Callback with no pending entry")
		b.edit(chatID, query.Message.MessageID, msgNoPending)
		return
	}

	switch query.Data {
	case callbackConfirm:
		b.edit(chatID, query.Message.MessageID, msgConfirming)
		if err := b.sink.CreateRecord(ctx, entry); err != nil {
			log.Error().Err(err).Str("link", entry.Link).Msg("Failed to add entry to Notion")
			b.reply(chatID, msgSinkFailed)
			return
		}
		log.Info().Str("link", entry.Link).Msg("Entry added to Notion")
		b.reply(chatID, msgSinkSuccess)
	case callbackCancel:
		b.edit(chatID, query.Message.MessageID, msgCancelled)
	default:
		log.Warn().Str("data", query.Data).Msg("Unknown callback data")
	}
}

func formatPreview(entry domain.Entry) string {
	lines := []string{
		"Name: " + entry.Name,
		"Subject: " + entry.Subject,
		"Type: " + string(entry.Type),
		"Tags: " + strings.Join(entry.Tags, ", "),
		"Link: " + entry.Link,
	}
	return strings.Join(lines, "\n")
}

func (b *Bot) reply(chatID int64, text string) {
	b.send(tgbotapi.NewMessage(chatID, text))
}

func (b *Bot) edit(chatID int64, messageID int, text string) {
	b.send(tgbotapi.NewEditMessageText(chatID, messageID, text))
}

func (b *Bot) send(c tgbotapi.Chattable) {
	if _, err := b.api.Send(c); err != nil {
		log.Error().Err(err).Msg("Failed to send Telegram message")
	}
}

package cli

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sashabaranov/go-openai"
	"github.com/spf13/cobra"

	"github.com/mangobot/mangobot/internal/bot"
	"github.com/mangobot/mangobot/internal/classifier"
	"github.com/mangobot/mangobot/internal/config"
	"github.com/mangobot/mangobot/internal/fetcher"
	"github.com/mangobot/mangobot/internal/notion"
	"github.com/mangobot/mangobot/internal/pending"
)

func NewStartCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the bot and begin polling Telegram for updates",
		RunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")

			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}

			setLogLevel(cfg.LogLevel, debug)

			api, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
			if err != nil {
				return fmt.Errorf("failed to create Telegram bot client: %w", err)
			}

			openaiConfig := openai.DefaultConfig(cfg.OpenAIAPIKey)
			openaiConfig.HTTPClient = &http.Client{Timeout: 60 * time.Second}

			b := bot.New(bot.Dependencies{
				Telegram: api,
				Fetcher:  fetcher.New(),
				Tagger:   classifier.NewSubjectTagger(openai.NewClientWithConfig(openaiConfig)),
				Pending:  pending.NewStore(),
				Sink:     notion.NewClient(cfg.NotionToken, cfg.NotionDatabaseID),
			})

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			updateConfig := tgbotapi.NewUpdate(0)
			updateConfig.Timeout = 30
			updates := api.GetUpdatesChan(updateConfig)

			go func() {
				<-ctx.Done()
				api.StopReceivingUpdates()
			}()

			log.Info().Str("username", api.Self.UserName).Msg("Mangobot started")

			b.Run(ctx, updates)

			log.Info().Msg("Mangobot stopped")

			return nil
		},
	}
}

func setLogLevel(level string, debug bool) {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		return
	}

	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		log.Warn().Str("level", level).Msg("Unknown log level, using info")
		parsed = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(parsed)
}

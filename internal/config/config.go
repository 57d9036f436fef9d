package config

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Config holds all bot configuration.
type Config struct {
	TelegramToken    string
	OpenAIAPIKey     string
	NotionToken      string
	NotionDatabaseID string
	LogLevel         string
}

// LoadConfig loads configuration from an optional config file and
// environment variables.
func LoadConfig() (*Config, error) {
	v := viper.New()

	v.SetDefault("LogLevel", "info")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	envMappings := map[string]string{
		"TelegramToken":    "TELEGRAM_TOKEN",
		"OpenAIAPIKey":     "OPENAI_API_KEY",
		"NotionToken":      "NOTION_TOKEN",
		"NotionDatabaseID": "NOTION_DATABASE_ID",
		"LogLevel":         "LOG_LEVEL",
	}

	for configKey, envVar := range envMappings {
		if err := v.BindEnv(configKey, envVar); err != nil {
			log.Warn().Err(err).Msgf("Failed to bind environment variable %s for %s", envVar, configKey)
		}
	}

	v.SetConfigName("mangobot")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("$HOME/.mangobot")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		log.Debug().Msg("Config file not found, using environment variables and defaults")
	} else {
		log.Info().Msgf("Using config file: %s", v.ConfigFileUsed())
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func validateConfig(config *Config) error {
	var missingVars []string

	if config.TelegramToken == "" {
		missingVars = append(missingVars, "TELEGRAM_TOKEN")
	}

	if config.OpenAIAPIKey == "" {
		missingVars = append(missingVars, "OPENAI_API_KEY")
	}

	if config.NotionToken == "" {
		missingVars = append(missingVars, "NOTION_TOKEN")
	}

	if config.NotionDatabaseID == "" {
		missingVars = append(missingVars, "NOTION_DATABASE_ID")
	}

	if len(missingVars) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missingVars, ", "))
	}

	return nil
}

package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// DiscordConfig holds the Discord bot settings
type DiscordConfig struct {
	Token   string
	AppID   string
	GuildID string

	APIURL string
	APIKey string

	// SessionID is the draw session the bot drives. Without DISCORD_SESSION_ID
	// it is derived from the guild, so restarts keep using the same session.
	SessionID uuid.UUID

	AnnounceChannelID  string
	WebhookPort        string
	ForceCommandUpdate bool

	LogLevel    string
	LogFormat   string
	Environment string
	Version     string
}

// LoadDiscord loads the bot configuration from environment variables
func LoadDiscord() (*DiscordConfig, error) {
	_ = godotenv.Load()

	cfg := &DiscordConfig{
		Token:             getEnv(EnvDiscordToken, ""),
		AppID:             getEnv(EnvDiscordAppID, ""),
		GuildID:           getEnv(EnvDiscordGuildID, ""),
		APIURL:            strings.TrimRight(getEnv(EnvAPIURL, DefaultAPIURL), "/"),
		APIKey:            getEnv(EnvAPIKey, ""),
		AnnounceChannelID: getEnv(EnvDiscordAnnounceChan, ""),
		WebhookPort:       getEnv(EnvDiscordWebhookPort, DefaultDiscordWebhookPort),
		LogLevel:          strings.ToLower(getEnv(EnvLogLevel, DefaultLogLevel)),
		LogFormat:         strings.ToLower(getEnv(EnvLogFormat, DefaultLogFormat)),
		Environment:       getEnv(EnvEnvironment, DefaultEnvironment),
		Version:           getEnv(EnvVersion, DefaultVersion),
	}

	if raw := getEnv(EnvDiscordForceUpdate, ""); raw != "" {
		force, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s value: %w", EnvDiscordForceUpdate, err)
		}
		cfg.ForceCommandUpdate = force
	}

	if raw := getEnv(EnvDiscordSessionID, ""); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s value: %w", EnvDiscordSessionID, err)
		}
		cfg.SessionID = id
	} else {
		cfg.SessionID = uuid.NewSHA1(uuid.NameSpaceOID, []byte(discordSessionNamespace+cfg.GuildID))
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values the bot cannot start without
func (c *DiscordConfig) Validate() error {
	if c.Token == "" {
		return fmt.Errorf("%s is required", EnvDiscordToken)
	}
	if c.AppID == "" {
		return fmt.Errorf("%s is required", EnvDiscordAppID)
	}
	if !strings.HasPrefix(c.APIURL, "http://") && !strings.HasPrefix(c.APIURL, "https://") {
		return fmt.Errorf("%s must be an http(s) URL, got %q", EnvAPIURL, c.APIURL)
	}
	if _, err := strconv.Atoi(c.WebhookPort); err != nil {
		return fmt.Errorf("invalid %s value: %w", EnvDiscordWebhookPort, err)
	}
	return nil
}

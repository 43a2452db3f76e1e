package config

import "time"

// Default dataset locations
const (
	DefaultParticipantsPath = "configs/participants.csv"
	DefaultPrizesPath       = "configs/prizes.csv"
)

// Defaults for values that are not required
const (
	DefaultPort                = 8080
	DefaultLogLevel            = "info"
	DefaultLogFormat           = "text"
	DefaultEnvironment         = "dev"
	DefaultServiceName         = "luckydraw"
	DefaultVersion             = "dev"
	DefaultLogDir              = "logs"
	DefaultSessionTTL          = 12 * time.Hour
	DefaultMaxSessions         = 256
	DefaultEventMaxRetries     = 5
	DefaultEventRetryDelay     = 2 * time.Second
	DefaultEventDeadLetterPath = "logs/event_deadletter.jsonl"
	DefaultAPIURL              = "http://localhost:8080"
	DefaultDiscordWebhookPort  = "8082"
)

// Environment variable names
const (
	EnvPort                = "PORT"
	EnvLogLevel            = "LOG_LEVEL"
	EnvLogFormat           = "LOG_FORMAT"
	EnvLogDir              = "LOG_DIR"
	EnvEnvironment         = "ENVIRONMENT"
	EnvServiceName         = "SERVICE_NAME"
	EnvVersion             = "VERSION"
	EnvAPIKey              = "API_KEY"
	EnvTrustedProxies      = "TRUSTED_PROXIES"
	EnvParticipantsPath    = "PARTICIPANTS_PATH"
	EnvPrizesPath          = "PRIZES_PATH"
	EnvSessionTTL          = "SESSION_TTL"
	EnvMaxSessions         = "MAX_SESSIONS"
	EnvRandomSeed          = "RANDOM_SEED"
	EnvEventMaxRetries     = "EVENT_MAX_RETRIES"
	EnvEventRetryDelay     = "EVENT_RETRY_DELAY"
	EnvEventDeadLetterPath = "EVENT_DEADLETTER_PATH"
	EnvSchemaVersion       = "ENV_SCHEMA_VERSION"
	EnvAPIURL              = "API_URL"
	EnvDiscordToken        = "DISCORD_TOKEN"
	EnvDiscordAppID        = "DISCORD_APP_ID"
	EnvDiscordGuildID      = "DISCORD_GUILD_ID"
	EnvDiscordSessionID    = "DISCORD_SESSION_ID"
	EnvDiscordAnnounceChan = "DISCORD_ANNOUNCE_CHANNEL_ID"
	EnvDiscordWebhookPort  = "DISCORD_WEBHOOK_PORT"
	EnvDiscordForceUpdate  = "DISCORD_FORCE_COMMAND_UPDATE"
)

// discordSessionNamespace seeds the default session ID derived from the guild
const discordSessionNamespace = "luckydraw:discord:"

// Example values shipped in .env.example
const (
	ExampleAPIKey = "generate_with_openssl_rand_hex_32"
)

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"

	"github.com/osse101/LuckyDraw_Go/internal/config"
	"github.com/osse101/LuckyDraw_Go/internal/discord"
	"github.com/osse101/LuckyDraw_Go/internal/logger"
)

// CommandFactory creates a Discord command and its handler for a session
type CommandFactory func(sessionID uuid.UUID) (*discordgo.ApplicationCommand, discord.CommandHandler)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadDiscord()
	if err != nil {
		return fmt.Errorf("configuration failed: %w", err)
	}
	if err := config.ValidateDiscordEnv(); err != nil {
		return fmt.Errorf("environment validation failed: %w", err)
	}

	lcfg := logger.ForEnvironment(cfg.Environment, "luckydraw-discord", cfg.Version)
	lcfg.Level, lcfg.Format = cfg.LogLevel, cfg.LogFormat
	logger.InitLogger(lcfg)
	slog.Info("Configured API URL", "url", cfg.APIURL, "session_id", cfg.SessionID)
	if cfg.APIKey == "" {
		slog.Warn("API_KEY not set, discord bot requests may fail")
	}

	bot, err := discord.New(discord.Config{
		Token:             cfg.Token,
		AppID:             cfg.AppID,
		GuildID:           cfg.GuildID,
		APIURL:            cfg.APIURL,
		APIKey:            cfg.APIKey,
		SessionID:         cfg.SessionID,
		AnnounceChannelID: cfg.AnnounceChannelID,
	})
	if err != nil {
		return fmt.Errorf("failed to create bot: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var stream *discord.SSEClient
	if cfg.AnnounceChannelID != "" {
		stream = discord.NewSSEClient(cfg.APIURL, cfg.APIKey, discord.AnnouncedEventTypes, cfg.SessionID.String())
		discord.NewAnnouncer(bot.Session, cfg.AnnounceChannelID).RegisterHandlers(stream)
		stream.Start(ctx)
		defer stream.Stop()
		slog.Info("Winner announcements enabled", "channel_id", cfg.AnnounceChannelID)
	}

	httpServer := discord.NewHTTPServer(cfg.WebhookPort, bot, stream, cfg.AnnounceChannelID, cfg.APIKey)
	httpServer.Start()
	defer httpServer.Stop()

	registerCommands(bot, cfg.SessionID, getCommandFactories())
	bot.Registry.RegisterAutocomplete(discord.CmdDraw, discord.GroupAutocomplete(cfg.SessionID))
	bot.Registry.RegisterAutocomplete(discord.CmdNext, discord.GroupAutocomplete(cfg.SessionID))

	if cfg.ForceCommandUpdate {
		slog.Info("Force command update enabled via environment variable")
	}
	if err := bot.RegisterCommands(bot.Registry, cfg.ForceCommandUpdate); err != nil {
		// Commands registered on an earlier run keep working
		slog.Error("Failed to register commands", "error", err)
	}

	return bot.Run(ctx)
}

// getCommandFactories returns every command the bot offers
func getCommandFactories() []CommandFactory {
	return []CommandFactory{
		func(uuid.UUID) (*discordgo.ApplicationCommand, discord.CommandHandler) {
			return discord.PingCommand()
		},
		discord.GroupsCommand,
		discord.DrawCommand,
		discord.DrawNextCommand,
		discord.WinnersCommand,
	}
}

func registerCommands(bot *discord.Bot, sessionID uuid.UUID, factories []CommandFactory) {
	for _, factory := range factories {
		cmd, handler := factory(sessionID)
		bot.Registry.Register(cmd, handler)
	}
}

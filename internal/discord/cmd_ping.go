package discord

import (
	"context"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"
)

// pingTimeout keeps the API check inside Discord's three second reply window
const pingTimeout = 2 * time.Second

// PingCommand answers with the bot and API status
func PingCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "ping",
		Description: "Check if the bot and the draw server are alive",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client DrawAPI) {
		ctx, cancel := interactionContext(i)
		defer cancel()
		ctx, cancelPing := context.WithTimeout(ctx, pingTimeout)
		defer cancelPing()

		content := "Pong! 🏓"
		if err := client.Ping(ctx); err != nil {
			content += "\n" + MsgServerDown
		}

		if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Content: content,
			},
		}); err != nil {
			slog.Error("Failed to respond to ping", "error", err)
		}
	}

	return cmd, handler
}

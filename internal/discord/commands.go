package discord

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/LuckyDraw_Go/internal/handler"
	"github.com/osse101/LuckyDraw_Go/internal/logger"
)

// commandTimeout bounds the API calls made while answering one interaction
const commandTimeout = 10 * time.Second

// CommandHandler handles a slash command
type CommandHandler func(s *discordgo.Session, i *discordgo.InteractionCreate, client DrawAPI)

// CommandRegistry holds the registered commands and their autocomplete handlers
type CommandRegistry struct {
	Commands      map[string]*discordgo.ApplicationCommand
	Handlers      map[string]CommandHandler
	Autocompleter map[string]CommandHandler
}

// NewCommandRegistry creates a new registry
func NewCommandRegistry() *CommandRegistry {
	return &CommandRegistry{
		Commands:      make(map[string]*discordgo.ApplicationCommand),
		Handlers:      make(map[string]CommandHandler),
		Autocompleter: make(map[string]CommandHandler),
	}
}

// Register adds a command to the registry
func (r *CommandRegistry) Register(cmd *discordgo.ApplicationCommand, handler CommandHandler) {
	r.Commands[cmd.Name] = cmd
	r.Handlers[cmd.Name] = handler
}

// RegisterAutocomplete attaches an autocomplete handler to a command
func (r *CommandRegistry) RegisterAutocomplete(name string, handler CommandHandler) {
	r.Autocompleter[name] = handler
}

// Handle routes an interaction to its command or autocomplete handler
func (r *CommandRegistry) Handle(s *discordgo.Session, i *discordgo.InteractionCreate, client DrawAPI) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		name := i.ApplicationCommandData().Name
		h, ok := r.Handlers[name]
		if !ok {
			slog.Warn(LogMsgUnhandledCommand, "command", name)
			return
		}
		RecordCommand()
		h(s, i, client)
	case discordgo.InteractionApplicationCommandAutocomplete:
		if h, ok := r.Autocompleter[i.ApplicationCommandData().Name]; ok {
			h(s, i, client)
		}
	}
}

// RegisterCommands registers or updates the commands with Discord, scoped to
// the configured guild when there is one. Nothing is sent when the commands
// already match, to stay clear of rate limits.
func (b *Bot) RegisterCommands(registry *CommandRegistry, forceUpdate bool) error {
	slog.Info(LogMsgCheckingCommands, "guild_id", b.GuildID)

	desiredCmds := make([]*discordgo.ApplicationCommand, 0, len(registry.Commands))
	for _, cmd := range registry.Commands {
		desiredCmds = append(desiredCmds, cmd)
	}

	if !forceUpdate {
		existingCmds, err := b.Session.ApplicationCommands(b.AppID, b.GuildID)
		if err != nil {
			return fmt.Errorf("failed to fetch existing commands: %w", err)
		}
		if commandsEqual(existingCmds, desiredCmds) {
			slog.Info(LogMsgCommandsUnchanged, "count", len(existingCmds))
			return nil
		}
		slog.Info(LogMsgCommandsUpdating, "existing", len(existingCmds), "desired", len(desiredCmds))
	} else {
		slog.Info(LogMsgForceUpdate, "count", len(desiredCmds))
	}

	if _, err := b.Session.ApplicationCommandBulkOverwrite(b.AppID, b.GuildID, desiredCmds); err != nil {
		return fmt.Errorf("failed to update commands: %w", err)
	}

	slog.Info(LogMsgCommandsUpdated, "count", len(desiredCmds))
	return nil
}

// commandsEqual checks if two command sets are equivalent
func commandsEqual(existing, desired []*discordgo.ApplicationCommand) bool {
	if len(existing) != len(desired) {
		return false
	}

	existingMap := make(map[string]*discordgo.ApplicationCommand, len(existing))
	for _, cmd := range existing {
		existingMap[cmd.Name] = cmd
	}

	for _, want := range desired {
		have, ok := existingMap[want.Name]
		if !ok || !commandEqual(have, want) {
			return false
		}
	}
	return true
}

func commandEqual(a, b *discordgo.ApplicationCommand) bool {
	if a.Name != b.Name || a.Description != b.Description {
		return false
	}
	if (a.DefaultMemberPermissions == nil) != (b.DefaultMemberPermissions == nil) {
		return false
	}
	if a.DefaultMemberPermissions != nil && *a.DefaultMemberPermissions != *b.DefaultMemberPermissions {
		return false
	}
	if len(a.Options) != len(b.Options) {
		return false
	}
	for i := range a.Options {
		if !optionEqual(a.Options[i], b.Options[i]) {
			return false
		}
	}
	return true
}

func optionEqual(a, b *discordgo.ApplicationCommandOption) bool {
	if a.Type != b.Type || a.Name != b.Name || a.Description != b.Description ||
		a.Required != b.Required || a.Autocomplete != b.Autocomplete {
		return false
	}
	if len(a.Choices) != len(b.Choices) {
		return false
	}
	for i := range a.Choices {
		if a.Choices[i].Name != b.Choices[i].Name || a.Choices[i].Value != b.Choices[i].Value {
			return false
		}
	}
	return true
}

// interactionContext returns a bounded context carrying the interaction ID
// as request ID, so API logs can be matched to the Discord command.
func interactionContext(i *discordgo.InteractionCreate) (context.Context, context.CancelFunc) {
	ctx := logger.WithRequestID(context.Background(), i.ID)
	return context.WithTimeout(ctx, commandTimeout)
}

// respondError replaces the deferred reply with a plain message
func respondError(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Content: &message,
	}); err != nil {
		slog.Error(LogMsgEditFailed, "error", err)
	}
}

// respondFriendlyError answers with a readable version of an API error
func respondFriendlyError(s *discordgo.Session, i *discordgo.InteractionCreate, err error) {
	respondError(s, i, formatFriendlyError(err))
}

// formatFriendlyError maps API failures onto short user-facing messages
func formatFriendlyError(err error) string {
	msg := err.Error()
	switch status := statusOf(err); {
	case status == http.StatusUnauthorized:
		return MsgUnauthorized
	case status == http.StatusNotFound && strings.Contains(msg, handler.ErrMsgSessionNotFoundError):
		return MsgSessionMissing
	case status == http.StatusNotFound:
		return MsgNothingToDraw
	case strings.Contains(msg, handler.ErrMsgNotEnoughPeopleError):
		return MsgNotEnoughPeople
	case strings.Contains(msg, handler.ErrMsgGroupInProgressError):
		return MsgGroupInProgress
	case status == 0 || status >= http.StatusInternalServerError:
		return MsgServerDown
	default:
		return "❌ " + strings.TrimPrefix(msg, "API error: ")
	}
}

// deferResponse acknowledges an interaction so slow API calls do not hit
// Discord's three second limit. Returns false if the handler should stop.
func deferResponse(s *discordgo.Session, i *discordgo.InteractionCreate) bool {
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	}); err != nil {
		slog.Error(LogMsgDeferFailed, "error", err)
		return false
	}
	return true
}

// handleEmbedResponse defers, runs action and sends its embed or the error
func handleEmbedResponse(
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
	action func(ctx context.Context) (*discordgo.MessageEmbed, error),
) {
	if !deferResponse(s, i) {
		return
	}

	ctx, cancel := interactionContext(i)
	defer cancel()

	embed, err := action(ctx)
	if err != nil {
		logger.FromContext(ctx).Error(LogMsgActionFailed, "command", i.ApplicationCommandData().Name, "error", err)
		respondFriendlyError(s, i, err)
		return
	}
	sendEmbed(s, i, embed)
}

// sendEmbed replaces the deferred reply with embed
func sendEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) {
	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Embeds: &[]*discordgo.MessageEmbed{embed},
	}); err != nil {
		slog.Error(LogMsgEditFailed, "error", err)
	}
}

// FooterLuckyDraw is the footer on every embed
const FooterLuckyDraw = "LuckyDraw"

func createEmbed(title, description string, color int) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       color,
		Footer: &discordgo.MessageEmbedFooter{
			Text: FooterLuckyDraw,
		},
	}
}

// getOptions extracts command options from an interaction
func getOptions(i *discordgo.InteractionCreate) []*discordgo.ApplicationCommandInteractionDataOption {
	return i.ApplicationCommandData().Options
}

// stringOption returns the value of the named string option
func stringOption(i *discordgo.InteractionCreate, name string) string {
	for _, opt := range getOptions(i) {
		if opt.Name == name && opt.Type == discordgo.ApplicationCommandOptionString {
			return strings.TrimSpace(opt.StringValue())
		}
	}
	return ""
}

package discord

import (
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
)

// GroupAutocomplete suggests the groups that still have prizes, filtered by
// what the user has typed so far.
func GroupAutocomplete(sessionID uuid.UUID) CommandHandler {
	return func(s *discordgo.Session, i *discordgo.InteractionCreate, client DrawAPI) {
		ctx, cancel := interactionContext(i)
		defer cancel()

		groups, err := sessionGroups(ctx, client, sessionID)
		if err != nil {
			slog.Error("Failed to get groups for autocomplete", "error", err)
		}

		respondAutocomplete(s, i, groupChoices(groups, getFocusedOptionValue(getOptions(i))))
	}
}

func groupChoices(groups []string, focused string) []*discordgo.ApplicationCommandOptionChoice {
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, min(len(groups), maxAutocomplete))
	for _, g := range groups {
		if focused != "" && !strings.Contains(strings.ToLower(g), focused) {
			continue
		}
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  g,
			Value: g,
		})
		if len(choices) >= maxAutocomplete {
			break
		}
	}
	return choices
}

func getFocusedOptionValue(options []*discordgo.ApplicationCommandInteractionDataOption) string {
	for _, opt := range options {
		if opt.Focused && opt.Type == discordgo.ApplicationCommandOptionString {
			return strings.ToLower(opt.StringValue())
		}
	}
	return ""
}

func respondAutocomplete(s *discordgo.Session, i *discordgo.InteractionCreate, choices []*discordgo.ApplicationCommandOptionChoice) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionApplicationCommandAutocompleteResult,
		Data: &discordgo.InteractionResponseData{
			Choices: choices,
		},
	})
	if err != nil {
		slog.Error(LogMsgAutocompleteFailed, "error", err)
	}
}

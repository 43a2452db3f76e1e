package discord

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/osse101/LuckyDraw_Go/internal/domain"
)

// Command names
const (
	CmdGroups  = "draw-groups"
	CmdDraw    = "draw"
	CmdNext    = "draw-next"
	CmdWinners = "draw-winners"

	optionGroup = "group"
)

// hostPermission limits draw commands to server administrators
var hostPermission = int64(discordgo.PermissionAdministrator)

func groupOption(description string) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:         discordgo.ApplicationCommandOptionString,
		Name:         optionGroup,
		Description:  description,
		Required:     true,
		Autocomplete: true,
	}
}

// GroupsCommand lists the prize groups that can still be drawn
func GroupsCommand(sessionID uuid.UUID) (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        CmdGroups,
		Description: "List the prize groups that still have prizes",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client DrawAPI) {
		handleEmbedResponse(s, i, func(ctx context.Context) (*discordgo.MessageEmbed, error) {
			groups, err := sessionGroups(ctx, client, sessionID)
			if err != nil {
				return nil, err
			}
			return groupsEmbed(groups), nil
		})
	}

	return cmd, handler
}

// DrawCommand draws every remaining prize of a group at once
func DrawCommand(sessionID uuid.UUID) (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:                     CmdDraw,
		Description:              "Draw all winners of a prize group",
		DefaultMemberPermissions: &hostPermission,
		Options:                  []*discordgo.ApplicationCommandOption{groupOption("Prize group to draw")},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client DrawAPI) {
		handleEmbedResponse(s, i, func(ctx context.Context) (*discordgo.MessageEmbed, error) {
			if _, err := client.StartSession(ctx, sessionID); err != nil {
				return nil, err
			}
			outcome, err := client.DrawGroup(ctx, sessionID, stringOption(i, optionGroup))
			if err != nil {
				return nil, err
			}
			return groupDrawEmbed(outcome), nil
		})
	}

	return cmd, handler
}

// DrawNextCommand reveals a group one prize per call
func DrawNextCommand(sessionID uuid.UUID) (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:                     CmdNext,
		Description:              "Reveal the next winner of a prize group",
		DefaultMemberPermissions: &hostPermission,
		Options:                  []*discordgo.ApplicationCommandOption{groupOption("Prize group to reveal")},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client DrawAPI) {
		handleEmbedResponse(s, i, func(ctx context.Context) (*discordgo.MessageEmbed, error) {
			if _, err := client.StartSession(ctx, sessionID); err != nil {
				return nil, err
			}
			outcome, err := client.DrawNext(ctx, sessionID, stringOption(i, optionGroup))
			if err != nil {
				return nil, err
			}
			return prizeDrawEmbed(outcome), nil
		})
	}

	return cmd, handler
}

// WinnersCommand shows the winners ledger
func WinnersCommand(sessionID uuid.UUID) (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        CmdWinners,
		Description: "Show every winner drawn so far",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client DrawAPI) {
		handleEmbedResponse(s, i, func(ctx context.Context) (*discordgo.MessageEmbed, error) {
			if _, err := client.StartSession(ctx, sessionID); err != nil {
				return nil, err
			}
			winners, err := client.Winners(ctx, sessionID)
			if err != nil {
				return nil, err
			}
			return ledgerEmbed(winners), nil
		})
	}

	return cmd, handler
}

func sessionGroups(ctx context.Context, client DrawAPI, sessionID uuid.UUID) ([]string, error) {
	if _, err := client.StartSession(ctx, sessionID); err != nil {
		return nil, err
	}
	return client.ListGroups(ctx, sessionID)
}

// displayGroup title-cases a group name for headings. Existing capitals are kept.
func displayGroup(group string) string {
	return cases.Title(language.English, cases.NoLower).String(group)
}

func groupsEmbed(groups []string) *discordgo.MessageEmbed {
	if len(groups) == 0 {
		return createEmbed(TitleGroups, MsgNoGroupsLeft, ColorInfo)
	}
	var sb strings.Builder
	for _, g := range groups {
		fmt.Fprintf(&sb, "• %s\n", g)
	}
	return createEmbed(TitleGroups, sb.String(), ColorInfo)
}

func groupDrawEmbed(outcome *domain.GroupDrawOutcome) *discordgo.MessageEmbed {
	title := fmt.Sprintf(TitleGroupDrawn, displayGroup(outcome.Group))
	return createEmbed(title, formatWinners(outcome.Winners), ColorWinner)
}

func prizeDrawEmbed(outcome *domain.PrizeDrawOutcome) *discordgo.MessageEmbed {
	embed := createEmbed(fmt.Sprintf(TitleWinnerDrawn, displayGroup(outcome.Group)), "", ColorWinner)
	embed.Fields = winnerFields(outcome.Winner)
	if outcome.GroupCompleted {
		embed.Description = MsgGroupFinished
	} else {
		embed.Description = fmt.Sprintf(MsgPrizesLeft, outcome.PrizesLeft)
	}
	if outcome.Winner.Image != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: outcome.Winner.Image}
	}
	return embed
}

func ledgerEmbed(winners []domain.WinnerRecord) *discordgo.MessageEmbed {
	if len(winners) == 0 {
		return createEmbed(TitleLedger, MsgNoWinnersYet, ColorInfo)
	}
	return createEmbed(TitleLedger, formatWinners(winners), ColorInfo)
}

func winnerFields(w domain.WinnerRecord) []*discordgo.MessageEmbedField {
	return []*discordgo.MessageEmbedField{
		{Name: FieldSequence, Value: fmt.Sprintf("%d", w.SequenceNumber), Inline: true},
		{Name: FieldWinner, Value: w.ParticipantName, Inline: true},
		{Name: FieldPrize, Value: w.PrizeName, Inline: true},
	}
}

// formatWinners renders one line per winner and trims the list to fit an
// embed description.
func formatWinners(winners []domain.WinnerRecord) string {
	var sb strings.Builder
	for idx, w := range winners {
		line := fmt.Sprintf("`#%d` **%s** · %s\n", w.SequenceNumber, w.ParticipantName, w.PrizeName)
		more := fmt.Sprintf(MsgLedgerTrimmed, len(winners)-idx)
		if sb.Len()+len(line)+len(more) > maxEmbedDescription {
			sb.WriteString(more)
			break
		}
		sb.WriteString(line)
	}
	return sb.String()
}

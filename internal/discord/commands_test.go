package discord

import (
	"errors"
	"net/http"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"

	"github.com/osse101/LuckyDraw_Go/internal/handler"
	"github.com/osse101/LuckyDraw_Go/mocks"
)

func TestCommandsEqual(t *testing.T) {
	perm := int64(8)
	base := func() *discordgo.ApplicationCommand {
		return &discordgo.ApplicationCommand{
			Name:                     CmdDraw,
			Description:              "Draw all winners of a prize group",
			DefaultMemberPermissions: &perm,
			Options:                  []*discordgo.ApplicationCommandOption{groupOption("Prize group to draw")},
		}
	}

	tests := []struct {
		name   string
		mutate func(c *discordgo.ApplicationCommand)
		equal  bool
	}{
		{"identical", func(c *discordgo.ApplicationCommand) {}, true},
		{"description changed", func(c *discordgo.ApplicationCommand) { c.Description = "other" }, false},
		{"permissions dropped", func(c *discordgo.ApplicationCommand) { c.DefaultMemberPermissions = nil }, false},
		{"option renamed", func(c *discordgo.ApplicationCommand) { c.Options[0].Name = "tier" }, false},
		{"autocomplete off", func(c *discordgo.ApplicationCommand) { c.Options[0].Autocomplete = false }, false},
		{"option added", func(c *discordgo.ApplicationCommand) {
			c.Options = append(c.Options, groupOption("extra"))
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			desired := base()
			existing := base()
			tt.mutate(existing)
			assert.Equal(t, tt.equal, commandsEqual(
				[]*discordgo.ApplicationCommand{existing},
				[]*discordgo.ApplicationCommand{desired},
			))
		})
	}

	t.Run("different count", func(t *testing.T) {
		assert.False(t, commandsEqual(nil, []*discordgo.ApplicationCommand{base()}))
	})
}

func TestCommandRegistry_Handle(t *testing.T) {
	tc := SetupTestContext(t)
	client := mocks.NewMockDrawAPI(t)
	registry := NewCommandRegistry()

	var ran, completed []string
	registry.Register(&discordgo.ApplicationCommand{Name: CmdDraw}, func(s *discordgo.Session, i *discordgo.InteractionCreate, c DrawAPI) {
		ran = append(ran, i.ApplicationCommandData().Name)
	})
	registry.RegisterAutocomplete(CmdDraw, func(s *discordgo.Session, i *discordgo.InteractionCreate, c DrawAPI) {
		completed = append(completed, i.ApplicationCommandData().Name)
	})

	before := commandCounter.Load()
	registry.Handle(tc.Session, newCommandInteraction(CmdDraw, nil), client)
	registry.Handle(tc.Session, newAutocompleteInteraction(CmdDraw, optionGroup, "go"), client)
	registry.Handle(tc.Session, newCommandInteraction("unknown", nil), client)

	assert.Equal(t, []string{CmdDraw}, ran)
	assert.Equal(t, []string{CmdDraw}, completed)
	assert.Equal(t, before+1, commandCounter.Load(), "only handled commands are counted")
}

func TestFormatFriendlyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"unauthorized", &APIError{StatusCode: http.StatusUnauthorized, Message: "Unauthorized"}, MsgUnauthorized},
		{"session missing", &APIError{StatusCode: http.StatusNotFound, Message: handler.ErrMsgSessionNotFoundError}, MsgSessionMissing},
		{"group gone", &APIError{StatusCode: http.StatusNotFound, Message: handler.ErrMsgGroupUnavailableError}, MsgNothingToDraw},
		{"not enough people", &APIError{StatusCode: http.StatusConflict, Message: handler.ErrMsgNotEnoughPeopleError}, MsgNotEnoughPeople},
		{"group in progress", &APIError{StatusCode: http.StatusConflict, Message: handler.ErrMsgGroupInProgressError}, MsgGroupInProgress},
		{"server error", &APIError{StatusCode: http.StatusInternalServerError}, MsgServerDown},
		{"transport error", errors.New("dial tcp: connection refused"), MsgServerDown},
		{"other client error", &APIError{StatusCode: http.StatusBadRequest, Message: "Invalid request"}, "❌ Invalid request"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatFriendlyError(tt.err))
		})
	}
}

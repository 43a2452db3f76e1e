package discord

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/LuckyDraw_Go/internal/domain"
	"github.com/osse101/LuckyDraw_Go/internal/handler"
	"github.com/osse101/LuckyDraw_Go/mocks"
)

var testSessionID = uuid.MustParse("7b0c3c52-3f0e-4c55-9a57-4a4f3f1f2a10")

func winner(seq int, name, prize, group string) domain.WinnerRecord {
	return domain.WinnerRecord{
		SequenceNumber:  seq,
		ParticipantID:   uuid.New(),
		ParticipantName: name,
		PrizeName:       prize,
		Group:           group,
	}
}

func expectSession(client *mocks.MockDrawAPI) {
	client.On("StartSession", mock.Anything, testSessionID).
		Return(&domain.SessionSummary{SessionID: testSessionID}, nil)
}

func TestDrawCommand_Success(t *testing.T) {
	tc := SetupTestContext(t)
	client := mocks.NewMockDrawAPI(t)
	expectSession(client)
	client.On("DrawGroup", mock.Anything, testSessionID, "gold").Return(&domain.GroupDrawOutcome{
		Group: "gold",
		Winners: []domain.WinnerRecord{
			winner(1, "Alice", "Laptop", "gold"),
			winner(2, "Bob", "Phone", "gold"),
		},
	}, nil)

	_, handle := DrawCommand(testSessionID)
	handle(tc.Session, newCommandInteraction(CmdDraw, map[string]string{optionGroup: " gold "}), client)

	responses := tc.Responses(t)
	require.Len(t, responses, 1)
	assert.Equal(t, discordgo.InteractionResponseDeferredChannelMessageWithSource, responses[0].Type)

	edit := tc.LastEdit(t)
	require.NotNil(t, edit.Embeds)
	embed := (*edit.Embeds)[0]
	assert.Equal(t, "🎉 Gold Winners", embed.Title)
	assert.Contains(t, embed.Description, "`#1` **Alice** · Laptop")
	assert.Contains(t, embed.Description, "`#2` **Bob** · Phone")
	assert.Equal(t, FooterLuckyDraw, embed.Footer.Text)
}

func TestDrawCommand_Rejected(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"not enough participants", &APIError{StatusCode: http.StatusConflict, Message: handler.ErrMsgNotEnoughPeopleError}, MsgNotEnoughPeople},
		{"exhausted group", &APIError{StatusCode: http.StatusNotFound, Message: handler.ErrMsgGroupUnavailableError}, MsgNothingToDraw},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tc := SetupTestContext(t)
			client := mocks.NewMockDrawAPI(t)
			expectSession(client)
			client.On("DrawGroup", mock.Anything, testSessionID, "gold").Return(nil, tt.err)

			_, handle := DrawCommand(testSessionID)
			handle(tc.Session, newCommandInteraction(CmdDraw, map[string]string{optionGroup: "gold"}), client)

			edit := tc.LastEdit(t)
			require.NotNil(t, edit.Content)
			assert.Equal(t, tt.want, *edit.Content)
		})
	}
}

func TestDrawCommand_SessionUnavailable(t *testing.T) {
	tc := SetupTestContext(t)
	client := mocks.NewMockDrawAPI(t)
	client.On("StartSession", mock.Anything, testSessionID).
		Return(nil, &APIError{StatusCode: http.StatusUnauthorized, Message: "Unauthorized"})

	_, handle := DrawCommand(testSessionID)
	handle(tc.Session, newCommandInteraction(CmdDraw, map[string]string{optionGroup: "gold"}), client)

	edit := tc.LastEdit(t)
	require.NotNil(t, edit.Content)
	assert.Equal(t, MsgUnauthorized, *edit.Content)
	client.AssertNotCalled(t, "DrawGroup", mock.Anything, mock.Anything, mock.Anything)
}

func TestDrawNextCommand(t *testing.T) {
	t.Run("prizes left", func(t *testing.T) {
		tc := SetupTestContext(t)
		client := mocks.NewMockDrawAPI(t)
		expectSession(client)
		w := winner(3, "Carol", "Mug", "silver")
		w.Image = "https://example.com/mug.png"
		client.On("DrawNext", mock.Anything, testSessionID, "silver").Return(&domain.PrizeDrawOutcome{
			Group:      "silver",
			Winner:     w,
			PrizesLeft: 2,
		}, nil)

		_, handle := DrawNextCommand(testSessionID)
		handle(tc.Session, newCommandInteraction(CmdNext, map[string]string{optionGroup: "silver"}), client)

		embed := (*tc.LastEdit(t).Embeds)[0]
		assert.Equal(t, "🎉 Silver Winner", embed.Title)
		assert.Equal(t, fmt.Sprintf(MsgPrizesLeft, 2), embed.Description)
		require.Len(t, embed.Fields, 3)
		assert.Equal(t, "3", embed.Fields[0].Value)
		assert.Equal(t, "Carol", embed.Fields[1].Value)
		assert.Equal(t, "Mug", embed.Fields[2].Value)
		require.NotNil(t, embed.Thumbnail)
		assert.Equal(t, w.Image, embed.Thumbnail.URL)
	})

	t.Run("last prize", func(t *testing.T) {
		tc := SetupTestContext(t)
		client := mocks.NewMockDrawAPI(t)
		expectSession(client)
		client.On("DrawNext", mock.Anything, testSessionID, "silver").Return(&domain.PrizeDrawOutcome{
			Group:          "silver",
			Winner:         winner(5, "Dan", "Pen", "silver"),
			GroupCompleted: true,
		}, nil)

		_, handle := DrawNextCommand(testSessionID)
		handle(tc.Session, newCommandInteraction(CmdNext, map[string]string{optionGroup: "silver"}), client)

		embed := (*tc.LastEdit(t).Embeds)[0]
		assert.Equal(t, MsgGroupFinished, embed.Description)
	})

	t.Run("another group in progress", func(t *testing.T) {
		tc := SetupTestContext(t)
		client := mocks.NewMockDrawAPI(t)
		expectSession(client)
		client.On("DrawNext", mock.Anything, testSessionID, "gold").
			Return(nil, &APIError{StatusCode: http.StatusConflict, Message: handler.ErrMsgGroupInProgressError})

		_, handle := DrawNextCommand(testSessionID)
		handle(tc.Session, newCommandInteraction(CmdNext, map[string]string{optionGroup: "gold"}), client)

		assert.Equal(t, MsgGroupInProgress, *tc.LastEdit(t).Content)
	})
}

func TestGroupsCommand(t *testing.T) {
	t.Run("lists groups", func(t *testing.T) {
		tc := SetupTestContext(t)
		client := mocks.NewMockDrawAPI(t)
		expectSession(client)
		client.On("ListGroups", mock.Anything, testSessionID).Return([]string{"gold", "silver"}, nil)

		_, handle := GroupsCommand(testSessionID)
		handle(tc.Session, newCommandInteraction(CmdGroups, nil), client)

		embed := (*tc.LastEdit(t).Embeds)[0]
		assert.Equal(t, TitleGroups, embed.Title)
		assert.Equal(t, "• gold\n• silver\n", embed.Description)
	})

	t.Run("all drawn", func(t *testing.T) {
		tc := SetupTestContext(t)
		client := mocks.NewMockDrawAPI(t)
		expectSession(client)
		client.On("ListGroups", mock.Anything, testSessionID).Return([]string{}, nil)

		_, handle := GroupsCommand(testSessionID)
		handle(tc.Session, newCommandInteraction(CmdGroups, nil), client)

		assert.Equal(t, MsgNoGroupsLeft, (*tc.LastEdit(t).Embeds)[0].Description)
	})
}

func TestWinnersCommand(t *testing.T) {
	t.Run("empty ledger", func(t *testing.T) {
		tc := SetupTestContext(t)
		client := mocks.NewMockDrawAPI(t)
		expectSession(client)
		client.On("Winners", mock.Anything, testSessionID).Return([]domain.WinnerRecord{}, nil)

		_, handle := WinnersCommand(testSessionID)
		handle(tc.Session, newCommandInteraction(CmdWinners, nil), client)

		assert.Equal(t, MsgNoWinnersYet, (*tc.LastEdit(t).Embeds)[0].Description)
	})

	t.Run("ledger in order", func(t *testing.T) {
		tc := SetupTestContext(t)
		client := mocks.NewMockDrawAPI(t)
		expectSession(client)
		client.On("Winners", mock.Anything, testSessionID).Return([]domain.WinnerRecord{
			winner(1, "Alice", "Laptop", "gold"),
			winner(2, "Bob", "Mug", "silver"),
		}, nil)

		_, handle := WinnersCommand(testSessionID)
		handle(tc.Session, newCommandInteraction(CmdWinners, nil), client)

		desc := (*tc.LastEdit(t).Embeds)[0].Description
		assert.Less(t, strings.Index(desc, "Alice"), strings.Index(desc, "Bob"))
	})
}

func TestFormatWinners_TrimsToEmbedLimit(t *testing.T) {
	winners := make([]domain.WinnerRecord, 500)
	for idx := range winners {
		winners[idx] = winner(idx+1, strings.Repeat("n", 20), strings.Repeat("p", 20), "gold")
	}

	out := formatWinners(winners)
	assert.LessOrEqual(t, len(out), maxEmbedDescription)
	assert.Contains(t, out, "`#1` ")
	assert.Regexp(t, `…and \d+ more$`, out)
}

func TestDisplayGroup(t *testing.T) {
	assert.Equal(t, "Gold", displayGroup("gold"))
	assert.Equal(t, "Vip Lounge", displayGroup("vip lounge"))
	assert.Equal(t, "VIP", displayGroup("VIP"))
}

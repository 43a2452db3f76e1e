package discord

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/LuckyDraw_Go/internal/sse"
)

// Announcer posts draw results from the API event stream to a channel
type Announcer struct {
	session   *discordgo.Session
	channelID string
}

// NewAnnouncer creates an announcer posting to channelID
func NewAnnouncer(session *discordgo.Session, channelID string) *Announcer {
	return &Announcer{
		session:   session,
		channelID: channelID,
	}
}

// AnnouncedEventTypes are the stream event types the announcer consumes
var AnnouncedEventTypes = []string{SSEEventTypeWinnerDrawn, SSEEventTypeGroupCompleted}

// RegisterHandlers registers the announcer's handlers with the client
func (a *Announcer) RegisterHandlers(client *SSEClient) {
	client.OnEvent(SSEEventTypeWinnerDrawn, a.handleWinnerDrawn)
	client.OnEvent(SSEEventTypeGroupCompleted, a.handleGroupCompleted)
}

func (a *Announcer) handleWinnerDrawn(event SSEEvent) error {
	var payload sse.WinnerPayload
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		slog.Warn(sseLogMsgParseError, "error", err, "event_type", event.Type)
		return nil
	}

	w := payload.Winner
	embed := createEmbed(fmt.Sprintf(TitleWinnerDrawn, displayGroup(w.Group)), "", ColorWinner)
	embed.Fields = winnerFields(w)
	if payload.PrizesLeft > 0 {
		embed.Description = fmt.Sprintf(MsgPrizesLeft, payload.PrizesLeft)
	}
	if w.Image != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: w.Image}
	}
	if !w.DrawnAt.IsZero() {
		embed.Timestamp = w.DrawnAt.Format(time.RFC3339)
	}

	return a.send(event, embed)
}

func (a *Announcer) handleGroupCompleted(event SSEEvent) error {
	var payload sse.GroupCompletedPayload
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		slog.Warn(sseLogMsgParseError, "error", err, "event_type", event.Type)
		return nil
	}

	embed := createEmbed(fmt.Sprintf(TitleCompleted, displayGroup(payload.Group)), "", ColorSuccess)
	remaining := MsgNoGroupsLeft
	if len(payload.RemainingGroups) > 0 {
		remaining = strings.Join(payload.RemainingGroups, ", ")
	}
	embed.Fields = []*discordgo.MessageEmbedField{
		{Name: FieldWinner + "s", Value: fmt.Sprintf("%d", len(payload.Winners)), Inline: true},
		{Name: FieldRemaining, Value: remaining, Inline: true},
	}

	return a.send(event, embed)
}

func (a *Announcer) send(event SSEEvent, embed *discordgo.MessageEmbed) error {
	if a.channelID == "" {
		return nil
	}
	if _, err := a.session.ChannelMessageSendEmbed(a.channelID, embed); err != nil {
		return fmt.Errorf("%s: %w", sseLogMsgNotificationError, err)
	}
	slog.Debug(sseLogMsgNotificationSent, "event_type", event.Type, "event_id", event.ID)
	return nil
}

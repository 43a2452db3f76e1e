package discord

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/require"
)

// MockRoundTripper implements http.RoundTripper for intercepting requests
type MockRoundTripper struct {
	RoundTripFunc func(req *http.Request) (*http.Response, error)
}

func (m *MockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	return m.RoundTripFunc(req)
}

// discordCall is one captured request to the Discord REST API
type discordCall struct {
	Method string
	Path   string
	Body   []byte
}

// TestContext is a Discord session whose REST calls are captured instead of sent
type TestContext struct {
	Session      *discordgo.Session
	DiscordMocks *MockRoundTripper

	mu    sync.Mutex
	calls []discordCall
}

func SetupTestContext(t *testing.T) *TestContext {
	t.Helper()

	session, err := discordgo.New("Bot test-token")
	require.NoError(t, err)

	tc := &TestContext{Session: session}
	tc.DiscordMocks = &MockRoundTripper{
		RoundTripFunc: func(req *http.Request) (*http.Response, error) {
			var body []byte
			if req.Body != nil {
				body, _ = io.ReadAll(req.Body)
			}
			tc.mu.Lock()
			tc.calls = append(tc.calls, discordCall{Method: req.Method, Path: req.URL.Path, Body: body})
			tc.mu.Unlock()

			return &http.Response{
				StatusCode: http.StatusOK,
				Body:       io.NopCloser(bytes.NewBufferString("{}")),
				Header:     make(http.Header),
				Request:    req,
			}, nil
		},
	}
	session.Client = &http.Client{Transport: tc.DiscordMocks}

	return tc
}

func (tc *TestContext) Calls() []discordCall {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	return append([]discordCall(nil), tc.calls...)
}

// Responses decodes every interaction callback that was sent
func (tc *TestContext) Responses(t *testing.T) []discordgo.InteractionResponse {
	t.Helper()
	var out []discordgo.InteractionResponse
	for _, c := range tc.Calls() {
		if c.Method == http.MethodPost && strings.HasSuffix(c.Path, "/callback") {
			var resp discordgo.InteractionResponse
			require.NoError(t, json.Unmarshal(c.Body, &resp))
			out = append(out, resp)
		}
	}
	return out
}

// LastEdit decodes the last edit of the original interaction reply
func (tc *TestContext) LastEdit(t *testing.T) *discordgo.WebhookEdit {
	t.Helper()
	calls := tc.Calls()
	for idx := len(calls) - 1; idx >= 0; idx-- {
		c := calls[idx]
		if c.Method == http.MethodPatch && strings.HasSuffix(c.Path, "/messages/@original") {
			var edit discordgo.WebhookEdit
			require.NoError(t, json.Unmarshal(c.Body, &edit))
			return &edit
		}
	}
	t.Fatal("no interaction edit was sent")
	return nil
}

// ChannelMessages decodes the messages posted to channelID
func (tc *TestContext) ChannelMessages(t *testing.T, channelID string) []discordgo.MessageSend {
	t.Helper()
	var out []discordgo.MessageSend
	for _, c := range tc.Calls() {
		if c.Method == http.MethodPost && strings.HasSuffix(c.Path, "/channels/"+channelID+"/messages") {
			var msg discordgo.MessageSend
			require.NoError(t, json.Unmarshal(c.Body, &msg))
			out = append(out, msg)
		}
	}
	return out
}

// newCommandInteraction builds a slash command interaction with string options
func newCommandInteraction(name string, options map[string]string) *discordgo.InteractionCreate {
	return newInteraction(discordgo.InteractionApplicationCommand, name, options, "")
}

// newAutocompleteInteraction builds an autocomplete interaction with focused as the typed value
func newAutocompleteInteraction(name, option, focused string) *discordgo.InteractionCreate {
	return newInteraction(discordgo.InteractionApplicationCommandAutocomplete, name, map[string]string{option: focused}, option)
}

func newInteraction(typ discordgo.InteractionType, name string, options map[string]string, focused string) *discordgo.InteractionCreate {
	var opts []*discordgo.ApplicationCommandInteractionDataOption
	for k, v := range options {
		opts = append(opts, &discordgo.ApplicationCommandInteractionDataOption{
			Name:    k,
			Type:    discordgo.ApplicationCommandOptionString,
			Value:   v,
			Focused: k == focused,
		})
	}
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			ID:      "interaction-1",
			AppID:   "app-1",
			Token:   "token-1",
			Type:    typ,
			GuildID: "guild-1",
			Member:  &discordgo.Member{User: &discordgo.User{ID: "user-1", Username: "host"}},
			Data: discordgo.ApplicationCommandInteractionData{
				Name:    name,
				Options: opts,
			},
		},
	}
}

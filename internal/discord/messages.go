package discord

// Friendly message constants for Discord responses
const (
	// Draw rejections
	MsgNothingToDraw   = "🎟️ **Nothing To Draw**\nThat group is unknown or already drawn. Try /draw-groups."
	MsgNotEnoughPeople = "👥 **Not Enough Participants**\nThere are fewer people left than prizes in that group."
	MsgGroupInProgress = "⏳ **Reveal In Progress**\nFinish revealing the current group with /draw-next first."
	MsgSessionMissing  = "❓ **No Active Raffle**\nThe draw session could not be found."

	// Transport
	MsgUnauthorized = "🔒 **Access Denied**\nThe bot is not allowed to talk to the draw server."
	MsgServerDown   = "📡 **Draw Server Unreachable**\nPlease try again in a moment."

	MsgGenericError = "❌ Something went wrong."
)

// Embed titles and labels
const (
	TitleGroups      = "🎁 Prize Groups"
	TitleGroupDrawn  = "🎉 %s Winners"
	TitleWinnerDrawn = "🎉 %s Winner"
	TitleLedger      = "📜 Winners"
	TitleCompleted   = "🏁 %s Complete"

	MsgNoGroupsLeft  = "Every prize has been drawn."
	MsgNoWinnersYet  = "No winners yet."
	MsgPrizesLeft    = "%d more to reveal in this group"
	MsgGroupFinished = "That was the last prize of the group."
	MsgLedgerTrimmed = "\n…and %d more"

	FieldWinner    = "Winner"
	FieldPrize     = "Prize"
	FieldSequence  = "#"
	FieldRemaining = "Groups left"
)

// Embed colors
const (
	ColorInfo    = 0x3498db
	ColorWinner  = 0xFFD700
	ColorSuccess = 0x2ecc71
)

// Discord limits
const (
	maxEmbedDescription = 4096
	maxAutocomplete     = 25
)

// Log messages
const (
	LogMsgBotReady            = "Bot is ready"
	LogMsgBotRunning          = "Discord bot is now running"
	LogMsgCheckingCommands    = "Checking Discord commands..."
	LogMsgCommandsUnchanged   = "Commands unchanged, skipping registration"
	LogMsgCommandsUpdating    = "Commands changed, updating..."
	LogMsgCommandsUpdated     = "Commands updated successfully"
	LogMsgForceUpdate         = "Force update enabled - replacing all commands"
	LogMsgActionFailed        = "Action failed"
	LogMsgEditFailed          = "Failed to edit interaction response"
	LogMsgDeferFailed         = "Failed to send deferred response"
	LogMsgAutocompleteFailed  = "Failed to respond to autocomplete"
	LogMsgUnhandledCommand    = "Unhandled command"
	LogMsgRetryingRequest     = "Retrying API request"
	LogMsgRequestFailed       = "API request failed"
	LogMsgServerErrorRetrying = "Server error, will retry"
)

package dataset

// Dataset formats
const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// Column names accepted for each field, matched case-insensitively after
// trimming. The first entry is the canonical name.
var (
	participantNameColumns = []string{"Name", "Participant", "Participant Name", "Full Name"}
	prizeGroupColumns      = []string{"Group", "Prize Group", "Category"}
	prizeNameColumns       = []string{"Prize", "Prize Name", "Item"}
	prizeImageColumns      = []string{"Image", "Image URL", "Picture"}
)

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgParticipantsLoaded = "Participants dataset loaded"
	LogMsgPrizesLoaded       = "Prizes dataset loaded"
)

// ============================================================================
// Error Messages
// ============================================================================

const (
	ErrMsgUnsupportedFormat = "unsupported dataset format"
	ErrMsgMissingColumn     = "missing required column"
	ErrMsgEmptyCell         = "empty required value"
	ErrMsgNoRows            = "dataset has no rows"
	ErrMsgNotAString        = "value must be a string"
	ErrMsgRowWidth          = "row has a different number of fields than the header"
)

const (
	ErrContextReadHeader = "failed to read header"
	ErrContextReadRow    = "failed to read row"
	ErrContextDecodeJSON = "failed to decode JSON dataset"
	ErrContextOpenFile   = "failed to open dataset"
)

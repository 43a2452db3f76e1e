package domain

import (
	"time"

	"github.com/google/uuid"
)

// Participant is one entrant loaded from the participants dataset.
// ID is assigned at load time and is the only identity used when a winner
// is removed from the remaining pool; names may repeat.
type Participant struct {
	ID    uuid.UUID         `json:"id"`
	Name  string            `json:"name"`
	Extra map[string]string `json:"extra,omitempty"`
}

// Prize is one row of the prizes dataset. A prize belongs to exactly one group.
type Prize struct {
	Group string `json:"group"`
	Prize string `json:"prize"`
	Image string `json:"image,omitempty"`
}

// WinnerRecord is an immutable ledger entry.
// SequenceNumber is the 1-based position in the session ledger at creation time.
type WinnerRecord struct {
	SequenceNumber  int       `json:"sequence_number"`
	ParticipantID   uuid.UUID `json:"participant_id"`
	ParticipantName string    `json:"participant_name"`
	PrizeName       string    `json:"prize_name"`
	Group           string    `json:"group"`
	Image           string    `json:"image,omitempty"`
	DrawnAt         time.Time `json:"drawn_at"`
}

// GroupDrawOutcome contains the winners created by one group draw, in draw order
type GroupDrawOutcome struct {
	Group   string         `json:"group"`
	Winners []WinnerRecord `json:"winners"`
}

// PrizeDrawOutcome is the result of drawing a single prize of a group
type PrizeDrawOutcome struct {
	Group          string       `json:"group"`
	Winner         WinnerRecord `json:"winner"`
	PrizesLeft     int          `json:"prizes_left"`
	GroupCompleted bool         `json:"group_completed"`
}

// GroupSummary tallies one group of the prizes dataset
type GroupSummary struct {
	Group   string `json:"group"`
	Prizes  int    `json:"prizes"`
	Drawn   int    `json:"drawn"`
	Pending bool   `json:"pending"`
}

// SessionSummary is a read-only view of a draw session
type SessionSummary struct {
	SessionID             uuid.UUID      `json:"session_id"`
	CreatedAt             time.Time      `json:"created_at"`
	RemainingParticipants int            `json:"remaining_participants"`
	RemainingPrizes       int            `json:"remaining_prizes"`
	WinnerCount           int            `json:"winner_count"`
	Groups                []GroupSummary `json:"groups"`
	InProgressGroup       string         `json:"in_progress_group,omitempty"`
}

// WinnersOfGroup filters a winners ledger down to one group, keeping
// sequence order.
func WinnersOfGroup(ledger []WinnerRecord, group string) []WinnerRecord {
	var out []WinnerRecord
	for _, w := range ledger {
		if w.Group == group {
			out = append(out, w)
		}
	}
	return out
}

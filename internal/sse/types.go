package sse

import "github.com/osse101/LuckyDraw_Go/internal/domain"

// WinnerPayload is streamed for every committed winner
type WinnerPayload struct {
	Winner     domain.WinnerRecord `json:"winner"`
	PrizesLeft int                 `json:"prizes_left"`
}

// GroupCompletedPayload is streamed when the last prize of a group is drawn
type GroupCompletedPayload struct {
	Group           string                `json:"group"`
	Winners         []domain.WinnerRecord `json:"winners"`
	RemainingGroups []string              `json:"remaining_groups"`
}

// SessionPayload is streamed when a session is created or deleted
type SessionPayload struct {
	Participants int      `json:"participants,omitempty"`
	Prizes       int      `json:"prizes,omitempty"`
	Groups       []string `json:"groups,omitempty"`
}

// DrawFailedPayload is streamed when a draw request is rejected
type DrawFailedPayload struct {
	Group  string `json:"group"`
	Reason string `json:"reason"`
}

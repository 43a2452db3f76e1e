package stage

import "github.com/osse101/LuckyDraw_Go/internal/domain"

// Action is a command sent by a presenter
type Action struct {
	Action string `json:"action"`
	Group  string `json:"group,omitempty"`
}

// Message is pushed to stage clients
type Message struct {
	Type       string                `json:"type"`
	Role       string                `json:"role,omitempty"`
	Group      string                `json:"group,omitempty"`
	Groups     []string              `json:"groups,omitempty"`
	Winner     *domain.WinnerRecord  `json:"winner,omitempty"`
	Winners    []domain.WinnerRecord `json:"winners,omitempty"`
	PrizesLeft *int                  `json:"prizes_left,omitempty"`
	Error      string                `json:"error,omitempty"`
}

package draw

import (
	"log/slog"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/osse101/LuckyDraw_Go/internal/domain"
)

// State is the mutable draw state of one session: the remaining participant
// pool, the remaining prizes and the append-only winners ledger.
//
// A State is created once per session and only changes through Engine calls.
// All access goes through mu, so an Engine call that is in the middle of a
// group is never interleaved with another mutation.
type State struct {
	mu sync.Mutex

	participants []domain.Participant
	prizes       []domain.Prize
	winners      []domain.WinnerRecord

	// groupOrder and groupTotals describe the original prizes dataset and
	// never change; they back Summary.
	groupOrder  []string
	groupTotals map[string]int

	// inProgress is set while a group is being revealed one prize at a time.
	inProgress *groupProgress
}

type groupProgress struct {
	group string
	drawn int
}

// Snapshot is a copy of the pools and ledger at one instant
type Snapshot struct {
	Participants []domain.Participant  `json:"participants"`
	Prizes       []domain.Prize        `json:"prizes"`
	Winners      []domain.WinnerRecord `json:"winners"`
}

// NewState builds a fresh state from the two source datasets.
// Inputs are copied. Participants without an ID, or whose ID repeats an
// earlier row, get a new random ID so that removal always targets exactly
// the record that won.
func NewState(participants []domain.Participant, prizes []domain.Prize) *State {
	s := &State{
		participants: make([]domain.Participant, 0, len(participants)),
		prizes:       slices.Clone(prizes),
		winners:      []domain.WinnerRecord{},
		groupTotals:  make(map[string]int),
	}

	seen := make(map[uuid.UUID]bool, len(participants))
	for _, p := range participants {
		if p.ID == uuid.Nil || seen[p.ID] {
			old := p.ID
			p.ID = uuid.New()
			if old != uuid.Nil {
				slog.Default().Debug(LogMsgDuplicateIDFixed, "name", p.Name, "old_id", old, "new_id", p.ID)
			}
		}
		seen[p.ID] = true
		s.participants = append(s.participants, p)
	}

	for _, prize := range s.prizes {
		if _, ok := s.groupTotals[prize.Group]; !ok {
			s.groupOrder = append(s.groupOrder, prize.Group)
		}
		s.groupTotals[prize.Group]++
	}

	return s
}

// Groups returns the distinct group names still present in the remaining
// prizes, in the order they first appear in the prizes dataset.
// A fully drawn group is no longer listed.
func (s *State) Groups() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remainingGroupsLocked()
}

// Winners returns a copy of the full ledger in sequence-number order.
func (s *State) Winners() []domain.WinnerRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.winners)
}

// RemainingParticipants returns a copy of the participants not yet drawn.
func (s *State) RemainingParticipants() []domain.Participant {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.participants)
}

// RemainingPrizes returns a copy of the prizes not yet removed.
func (s *State) RemainingPrizes() []domain.Prize {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.prizes)
}

// InProgressGroup reports the group currently being revealed prize by prize.
func (s *State) InProgressGroup() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inProgress == nil {
		return "", false
	}
	return s.inProgress.group, true
}

// Snapshot copies the pools and the ledger under one lock.
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Participants: slices.Clone(s.participants),
		Prizes:       slices.Clone(s.prizes),
		Winners:      slices.Clone(s.winners),
	}
}

// GroupSummaries tallies every group of the original prizes dataset.
func (s *State) GroupSummaries() []domain.GroupSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	remaining := make(map[string]int, len(s.groupOrder))
	for _, p := range s.prizes {
		remaining[p.Group]++
	}
	if s.inProgress != nil {
		remaining[s.inProgress.group] -= s.inProgress.drawn
	}

	out := make([]domain.GroupSummary, 0, len(s.groupOrder))
	for _, g := range s.groupOrder {
		total := s.groupTotals[g]
		out = append(out, domain.GroupSummary{
			Group:   g,
			Prizes:  total,
			Drawn:   total - remaining[g],
			Pending: remaining[g] > 0,
		})
	}
	return out
}

// Counts returns the sizes of the remaining pools and the ledger.
func (s *State) Counts() (participants, prizes, winners int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.participants), len(s.prizes), len(s.winners)
}

func (s *State) remainingGroupsLocked() []string {
	present := make(map[string]bool)
	for _, p := range s.prizes {
		present[p.Group] = true
	}
	groups := make([]string, 0, len(present))
	for _, g := range s.groupOrder {
		if present[g] {
			groups = append(groups, g)
		}
	}
	return groups
}

// groupPrizesLocked returns the remaining prizes of group in dataset order.
func (s *State) groupPrizesLocked(group string) []domain.Prize {
	var out []domain.Prize
	for _, p := range s.prizes {
		if p.Group == group {
			out = append(out, p)
		}
	}
	return out
}

// removeGroupLocked drops every remaining prize of group in one step.
func (s *State) removeGroupLocked(group string) {
	s.prizes = slices.DeleteFunc(s.prizes, func(p domain.Prize) bool {
		return p.Group == group
	})
}

// removeParticipant deletes exactly one participant, the one with id.
func removeParticipant(pool []domain.Participant, id uuid.UUID) []domain.Participant {
	idx := slices.IndexFunc(pool, func(p domain.Participant) bool { return p.ID == id })
	if idx < 0 {
		return pool
	}
	return slices.Delete(pool, idx, idx+1)
}

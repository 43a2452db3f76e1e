package draw

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/osse101/LuckyDraw_Go/internal/domain"
	"github.com/osse101/LuckyDraw_Go/internal/logger"
)

// Engine executes draws against a State. It holds no session data itself,
// only the random source and clock, so one Engine serves every session.
type Engine struct {
	pick Picker
	now  func() time.Time
}

// Option configures an Engine
type Option func(*Engine)

// WithClock overrides the clock used to stamp winner records.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// NewEngine creates an engine using pick for every winner selection.
// A nil picker falls back to SecurePicker.
func NewEngine(pick Picker, opts ...Option) *Engine {
	if pick == nil {
		pick = SecurePicker()
	}
	e := &Engine{pick: pick, now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// DrawGroup draws a winner for every remaining prize of group.
//
// Prizes are processed in dataset order. For each one a participant is picked
// uniformly from the pool as it stands at that moment and removed before the
// next pick, so nobody wins twice. After the last prize every prize of the
// group is removed and the group disappears from Groups.
//
// The call is atomic: it either commits a winner for every prize or leaves
// the state untouched. If the group is being revealed with DrawNext, DrawGroup
// finishes the prizes that are still pending.
func (e *Engine) DrawGroup(ctx context.Context, s *State, group string) (*domain.GroupDrawOutcome, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgDrawGroupCalled, "group", group)

	if group == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownOrExhaustedGroup, ErrMsgEmptyGroupName)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	groupPrizes, alreadyDrawn, err := s.checkDrawableLocked(group)
	if err != nil {
		log.Warn(LogMsgDrawRejected, "group", group, "error", err)
		return nil, err
	}
	pending := groupPrizes[alreadyDrawn:]

	if len(s.participants) < len(pending) {
		err := fmt.Errorf("%w: group %q has %d prizes, %d participants remain",
			domain.ErrInsufficientParticipants, group, len(pending), len(s.participants))
		log.Warn(LogMsgDrawRejected, "group", group, "error", err)
		return nil, err
	}

	created, err := e.drawPrizesLocked(s, pending)
	if err != nil {
		return nil, err
	}

	for _, w := range created {
		log.Debug(LogMsgWinnerDrawn, "seq", w.SequenceNumber, "participant_id", w.ParticipantID, "prize", w.PrizeName)
	}
	s.removeGroupLocked(group)
	s.inProgress = nil
	log.Info(LogMsgGroupExhausted, "group", group, "winners", len(created), "ledger_size", len(s.winners))

	return &domain.GroupDrawOutcome{
		Group:   group,
		Winners: created,
	}, nil
}

// DrawNext commits the winner of the next pending prize of group.
//
// The first call for a group checks that enough participants remain for the
// whole group and marks the group in progress; until its last prize is drawn
// no other group can be drawn. The last call removes the group's prizes and
// reports GroupCompleted. Callers pace reveals between calls; the engine
// itself never waits.
func (e *Engine) DrawNext(ctx context.Context, s *State, group string) (*domain.PrizeDrawOutcome, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgDrawNextCalled, "group", group)

	if group == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownOrExhaustedGroup, ErrMsgEmptyGroupName)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	groupPrizes, alreadyDrawn, err := s.checkDrawableLocked(group)
	if err != nil {
		log.Warn(LogMsgDrawRejected, "group", group, "error", err)
		return nil, err
	}

	if alreadyDrawn == 0 && len(s.participants) < len(groupPrizes) {
		err := fmt.Errorf("%w: group %q has %d prizes, %d participants remain",
			domain.ErrInsufficientParticipants, group, len(groupPrizes), len(s.participants))
		log.Warn(LogMsgDrawRejected, "group", group, "error", err)
		return nil, err
	}

	created, err := e.drawPrizesLocked(s, groupPrizes[alreadyDrawn:alreadyDrawn+1])
	if err != nil {
		return nil, err
	}

	log.Info(LogMsgWinnerDrawn, "group", group, "seq", created[0].SequenceNumber, "prize", created[0].PrizeName)

	drawn := alreadyDrawn + 1
	completed := drawn == len(groupPrizes)
	if completed {
		s.removeGroupLocked(group)
		s.inProgress = nil
		log.Info(LogMsgGroupExhausted, "group", group, "ledger_size", len(s.winners))
	} else {
		s.inProgress = &groupProgress{group: group, drawn: drawn}
	}

	return &domain.PrizeDrawOutcome{
		Group:          group,
		Winner:         created[0],
		PrizesLeft:     len(groupPrizes) - drawn,
		GroupCompleted: completed,
	}, nil
}

// checkDrawableLocked returns the remaining prizes of group and how many of
// them were already revealed by DrawNext.
func (s *State) checkDrawableLocked(group string) ([]domain.Prize, int, error) {
	groupPrizes := s.groupPrizesLocked(group)
	if len(groupPrizes) == 0 {
		return nil, 0, fmt.Errorf("%w: %q", domain.ErrUnknownOrExhaustedGroup, group)
	}

	if s.inProgress == nil {
		return groupPrizes, 0, nil
	}
	if s.inProgress.group != group {
		return nil, 0, fmt.Errorf("%w: %q must finish first", domain.ErrGroupInProgress, s.inProgress.group)
	}
	return groupPrizes, s.inProgress.drawn, nil
}

// drawPrizesLocked picks one winner per prize on a scratch copy of the pool
// and commits pool and ledger together only when every pick succeeded.
func (e *Engine) drawPrizesLocked(s *State, prizes []domain.Prize) ([]domain.WinnerRecord, error) {
	pool := slices.Clone(s.participants)
	created := make([]domain.WinnerRecord, 0, len(prizes))
	now := e.now()

	for _, prize := range prizes {
		idx, err := e.pick(len(pool))
		if err != nil {
			return nil, fmt.Errorf("%s: %w: %v", ErrContextPickFailed, domain.ErrRandomSourceFailed, err)
		}
		if idx < 0 || idx >= len(pool) {
			return nil, fmt.Errorf("%s %d (pool size %d): %w",
				ErrContextPickOutOfRange, idx, len(pool), domain.ErrRandomSourceFailed)
		}

		winner := pool[idx]
		created = append(created, domain.WinnerRecord{
			SequenceNumber:  len(s.winners) + len(created) + 1,
			ParticipantID:   winner.ID,
			ParticipantName: winner.Name,
			PrizeName:       prize.Prize,
			Group:           prize.Group,
			Image:           prize.Image,
			DrawnAt:         now,
		})
		pool = removeParticipant(pool, winner.ID)
	}

	s.participants = pool
	s.winners = append(s.winners, created...)
	return created, nil
}

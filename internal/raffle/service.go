// Package raffle is the application service around the draw engine. It
// resolves sessions, runs draws, publishes draw events and records metrics.
package raffle

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/LuckyDraw_Go/internal/dataset"
	"github.com/osse101/LuckyDraw_Go/internal/domain"
	"github.com/osse101/LuckyDraw_Go/internal/draw"
	"github.com/osse101/LuckyDraw_Go/internal/event"
	"github.com/osse101/LuckyDraw_Go/internal/logger"
	"github.com/osse101/LuckyDraw_Go/internal/metrics"
	"github.com/osse101/LuckyDraw_Go/internal/session"
)

// Service defines the raffle operations exposed to transports
type Service interface {
	CreateSession(ctx context.Context, participants []domain.Participant, prizes []domain.Prize) (*domain.SessionSummary, error)
	CreateSessionFromFiles(ctx context.Context, participantsPath, prizesPath string) (*domain.SessionSummary, error)
	InitSession(ctx context.Context, id uuid.UUID, load session.Loader) (*domain.SessionSummary, bool, error)
	ListGroups(ctx context.Context, sessionID uuid.UUID) ([]string, error)
	DrawGroup(ctx context.Context, sessionID uuid.UUID, group string) (*domain.GroupDrawOutcome, error)
	DrawNext(ctx context.Context, sessionID uuid.UUID, group string) (*domain.PrizeDrawOutcome, error)
	Winners(ctx context.Context, sessionID uuid.UUID) ([]domain.WinnerRecord, error)
	Summary(ctx context.Context, sessionID uuid.UUID) (*domain.SessionSummary, error)
	Snapshot(ctx context.Context, sessionID uuid.UUID) (*draw.Snapshot, error)
	DeleteSession(ctx context.Context, sessionID uuid.UUID) error
}

type service struct {
	sessions *session.Manager
	engine   *draw.Engine
	eventBus event.Bus
}

// NewService creates a new raffle service. eventBus may be nil.
func NewService(sessions *session.Manager, engine *draw.Engine, eventBus event.Bus) Service {
	return &service{
		sessions: sessions,
		engine:   engine,
		eventBus: eventBus,
	}
}

// FileLoader returns a session.Loader reading both datasets from disk
func FileLoader(participantsPath, prizesPath string) session.Loader {
	return func(ctx context.Context) ([]domain.Participant, []domain.Prize, error) {
		logger.FromContext(ctx).Info(LogMsgLoadingDatasets, "participants", participantsPath, "prizes", prizesPath)

		participants, err := dataset.LoadParticipants(ctx, participantsPath)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", ErrContextLoadParticipants, err)
		}
		prizes, err := dataset.LoadPrizes(ctx, prizesPath)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", ErrContextLoadPrizes, err)
		}
		return participants, prizes, nil
	}
}

// CreateSession starts a session over the given datasets
func (s *service) CreateSession(ctx context.Context, participants []domain.Participant, prizes []domain.Prize) (*domain.SessionSummary, error) {
	if err := validateDatasets(participants, prizes); err != nil {
		return nil, err
	}

	sess, err := s.sessions.Create(ctx, participants, prizes)
	if err != nil {
		return nil, err
	}
	s.sessionStarted(ctx, sess)
	return summarize(sess), nil
}

// CreateSessionFromFiles loads both datasets and starts a session over them
func (s *service) CreateSessionFromFiles(ctx context.Context, participantsPath, prizesPath string) (*domain.SessionSummary, error) {
	participants, prizes, err := FileLoader(participantsPath, prizesPath)(ctx)
	if err != nil {
		return nil, err
	}
	return s.CreateSession(ctx, participants, prizes)
}

// InitSession initializes the session id with load unless it already
// exists. The first call wins; later calls return the existing session
// unchanged and report false.
func (s *service) InitSession(ctx context.Context, id uuid.UUID, load session.Loader) (*domain.SessionSummary, bool, error) {
	validated := func(ctx context.Context) ([]domain.Participant, []domain.Prize, error) {
		participants, prizes, err := load(ctx)
		if err != nil {
			return nil, nil, err
		}
		if err := validateDatasets(participants, prizes); err != nil {
			return nil, nil, err
		}
		return participants, prizes, nil
	}

	sess, created, err := s.sessions.GetOrInit(ctx, id, validated)
	if err != nil {
		return nil, false, err
	}
	if created {
		s.sessionStarted(ctx, sess)
	}
	return summarize(sess), created, nil
}

// ListGroups returns the groups that still have prizes to draw
func (s *service) ListGroups(ctx context.Context, sessionID uuid.UUID) ([]string, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	return sess.State.Groups(), nil
}

// DrawGroup draws every remaining prize of group in one call
func (s *service) DrawGroup(ctx context.Context, sessionID uuid.UUID, group string) (*domain.GroupDrawOutcome, error) {
	ctx = logger.WithSessionID(ctx, sessionID)
	log := logger.FromContext(ctx)

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		recordDraw(metrics.ModeGroup, err, 0)
		return nil, err
	}

	start := time.Now()
	outcome, err := s.engine.DrawGroup(ctx, sess.State, group)
	recordDraw(metrics.ModeGroup, err, time.Since(start))
	if err != nil {
		s.drawFailed(ctx, sessionID, group, err)
		return nil, fmt.Errorf("%s: %w", ErrContextDrawGroup, err)
	}

	for i, w := range outcome.Winners {
		s.publish(ctx, event.NewWinnerDrawnEvent(sessionID, w, len(outcome.Winners)-i-1))
	}
	// The group may have been started with DrawNext; the ledger holds all of its winners.
	remaining := sess.State.Groups()
	groupLedger := domain.WinnersOfGroup(sess.State.Winners(), outcome.Group)
	s.publish(ctx, event.NewGroupCompletedEvent(sessionID, outcome.Group, groupLedger, remaining))

	log.Info(LogMsgGroupDrawn, "group", group, "winners", len(outcome.Winners), "groups_left", len(remaining))
	return outcome, nil
}

// DrawNext draws the next pending prize of group
func (s *service) DrawNext(ctx context.Context, sessionID uuid.UUID, group string) (*domain.PrizeDrawOutcome, error) {
	ctx = logger.WithSessionID(ctx, sessionID)
	log := logger.FromContext(ctx)

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		recordDraw(metrics.ModeNext, err, 0)
		return nil, err
	}

	start := time.Now()
	outcome, err := s.engine.DrawNext(ctx, sess.State, group)
	recordDraw(metrics.ModeNext, err, time.Since(start))
	if err != nil {
		s.drawFailed(ctx, sessionID, group, err)
		return nil, fmt.Errorf("%s: %w", ErrContextDrawNext, err)
	}

	s.publish(ctx, event.NewWinnerDrawnEvent(sessionID, outcome.Winner, outcome.PrizesLeft))
	if outcome.GroupCompleted {
		s.publish(ctx, event.NewGroupCompletedEvent(sessionID, outcome.Group, domain.WinnersOfGroup(sess.State.Winners(), outcome.Group), sess.State.Groups()))
	}

	log.Info(LogMsgPrizeDrawn, "group", group, "seq", outcome.Winner.SequenceNumber,
		"prizes_left", outcome.PrizesLeft, "completed", outcome.GroupCompleted)
	return outcome, nil
}

// Winners returns the full ledger of the session
func (s *service) Winners(ctx context.Context, sessionID uuid.UUID) ([]domain.WinnerRecord, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	return sess.State.Winners(), nil
}

// Summary reports the per-group tallies and pool sizes of the session
func (s *service) Summary(ctx context.Context, sessionID uuid.UUID) (*domain.SessionSummary, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	return summarize(sess), nil
}

// Snapshot copies the pools and ledger of the session
func (s *service) Snapshot(ctx context.Context, sessionID uuid.UUID) (*draw.Snapshot, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	snap := sess.State.Snapshot()
	return &snap, nil
}

// DeleteSession ends the session
func (s *service) DeleteSession(ctx context.Context, sessionID uuid.UUID) error {
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		logger.FromContext(ctx).Warn(LogMsgSessionDeleteFail, "session_id", sessionID, "error", err)
		return err
	}
	s.publish(ctx, event.NewSessionDeletedEvent(sessionID))
	return nil
}

func (s *service) sessionStarted(ctx context.Context, sess *session.Session) {
	participants, prizes, _ := sess.State.Counts()
	groups := sess.State.Groups()
	metrics.SessionsActive.Inc()
	s.publish(ctx, event.NewSessionCreatedEvent(sess.ID, participants, prizes, groups))
	logger.FromContext(ctx).Info(LogMsgSessionReady, "session_id", sess.ID,
		"participants", participants, "prizes", prizes, "groups", len(groups))
}

func (s *service) drawFailed(ctx context.Context, sessionID uuid.UUID, group string, err error) {
	logger.FromContext(ctx).Warn(LogMsgDrawFailed, "group", group, "error", err)
	s.publish(ctx, event.NewDrawFailedEvent(sessionID, group, err))
}

func (s *service) publish(ctx context.Context, evt event.Event) {
	if s.eventBus == nil {
		return
	}
	if err := s.eventBus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishFailed, "type", evt.Type, "error", err)
	}
}

func validateDatasets(participants []domain.Participant, prizes []domain.Prize) error {
	if len(participants) == 0 {
		return fmt.Errorf("%w: %s", domain.ErrInvalidDataset, ErrMsgNoParticipants)
	}
	if len(prizes) == 0 {
		return fmt.Errorf("%w: %s", domain.ErrInvalidDataset, ErrMsgNoPrizes)
	}
	return nil
}

func summarize(sess *session.Session) *domain.SessionSummary {
	participants, prizes, winners := sess.State.Counts()
	inProgress, _ := sess.State.InProgressGroup()
	return &domain.SessionSummary{
		SessionID:             sess.ID,
		CreatedAt:             sess.CreatedAt,
		RemainingParticipants: participants,
		RemainingPrizes:       prizes,
		WinnerCount:           winners,
		Groups:                sess.State.GroupSummaries(),
		InProgressGroup:       inProgress,
	}
}

func recordDraw(mode string, err error, elapsed time.Duration) {
	metrics.DrawsTotal.WithLabelValues(mode, drawOutcome(err)).Inc()
	if err == nil {
		metrics.DrawDuration.WithLabelValues(mode).Observe(elapsed.Seconds())
	}
}

func drawOutcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.Is(err, domain.ErrSessionNotFound):
		return metrics.OutcomeSessionMissing
	case errors.Is(err, domain.ErrUnknownOrExhaustedGroup):
		return metrics.OutcomeUnknownGroup
	case errors.Is(err, domain.ErrInsufficientParticipants):
		return metrics.OutcomeInsufficient
	case errors.Is(err, domain.ErrGroupInProgress):
		return metrics.OutcomeInProgress
	case errors.Is(err, domain.ErrRandomSourceFailed):
		return metrics.OutcomeRandomFailure
	default:
		return metrics.OutcomeError
	}
}

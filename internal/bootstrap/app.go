package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/osse101/LuckyDraw_Go/internal/config"
	"github.com/osse101/LuckyDraw_Go/internal/dataset"
	"github.com/osse101/LuckyDraw_Go/internal/draw"
	"github.com/osse101/LuckyDraw_Go/internal/handler"
	"github.com/osse101/LuckyDraw_Go/internal/metrics"
	"github.com/osse101/LuckyDraw_Go/internal/raffle"
	"github.com/osse101/LuckyDraw_Go/internal/server"
	"github.com/osse101/LuckyDraw_Go/internal/session"
	"github.com/osse101/LuckyDraw_Go/internal/sse"
	"github.com/osse101/LuckyDraw_Go/internal/stage"
)

// App holds every long-lived component of the server process.
type App struct {
	Config   *config.Config
	Events   *EventSystem
	Sessions *session.Manager
	Raffle   raffle.Service
	SSE      *sse.Hub
	Stage    *stage.Registry
	Server   *server.Server
}

// NewApp wires the draw engine, session store, live transports and HTTP
// server from cfg. The SSE hub is started; the HTTP server is not.
func NewApp(cfg *config.Config) (*App, error) {
	events, err := InitializeEventSystem(cfg)
	if err != nil {
		return nil, err
	}

	hub := sse.NewHub()
	hub.Start()
	RegisterEventHandlers(events.Bus, hub)

	// The stage registry needs the raffle service, which needs the session
	// store, whose evict callback needs the registry.
	var stages *stage.Registry
	sessions := session.NewManager(cfg.MaxSessions, cfg.SessionTTL,
		session.WithEvictCallback(func(id uuid.UUID) {
			metrics.SessionsActive.Dec()
			if stages != nil {
				stages.Close(id)
			}
			slog.Debug(LogMsgSessionExpired, "session_id", id)
		}))

	engine := draw.NewEngine(NewPicker(cfg))
	svc := raffle.NewService(sessions, engine, events.Publisher)
	stages = stage.NewRegistry(svc)

	defaults := handler.DatasetPaths{Participants: cfg.ParticipantsPath, Prizes: cfg.PrizesPath}
	srv := server.NewServer(cfg.Port, cfg.APIKey, cfg.TrustedProxies, server.Dependencies{
		Raffle:    svc,
		Defaults:  defaults,
		Events:    hub,
		Stage:     stages,
		Readiness: []handler.HealthChecker{DatasetCheck(defaults)},
	})

	return &App{
		Config:   cfg,
		Events:   events,
		Sessions: sessions,
		Raffle:   svc,
		SSE:      hub,
		Stage:    stages,
		Server:   srv,
	}, nil
}

// NewPicker returns the seeded picker when RANDOM_SEED is configured and
// the crypto/rand picker otherwise.
func NewPicker(cfg *config.Config) draw.Picker {
	if cfg.HasRandomSeed {
		slog.Warn(LogMsgSeededPicker, "seed", cfg.RandomSeed)
		return draw.SeededPicker(cfg.RandomSeed)
	}
	slog.Info(LogMsgSecurePicker)
	return draw.SecurePicker()
}

// DatasetCheck reports not ready while the default datasets cannot be
// parsed. Sessions can still be created from inline or uploaded data.
func DatasetCheck(paths handler.DatasetPaths) handler.HealthChecker {
	return handler.HealthCheckFunc(func(ctx context.Context) error {
		if _, err := dataset.LoadParticipants(ctx, paths.Participants); err != nil {
			return fmt.Errorf("%s: %w", LogMsgDatasetCheckError, err)
		}
		if _, err := dataset.LoadPrizes(ctx, paths.Prizes); err != nil {
			return fmt.Errorf("%s: %w", LogMsgDatasetCheckError, err)
		}
		return nil
	})
}

package bootstrap

import (
	"context"
	"log/slog"
)

// GracefulShutdown stops the application in order:
// 1. HTTP server (stop accepting new requests)
// 2. Live connections (stage websockets, SSE hub)
// 3. Event publisher (flush pending events to the bus or dead-letter file)
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, app *App) {
	slog.Info(LogMsgShuttingDownServer)
	if app.Server != nil {
		if err := app.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	slog.Info(LogMsgShuttingDownLive)
	if app.Stage != nil {
		app.Stage.CloseAll()
	}
	if app.SSE != nil {
		app.SSE.Stop()
	}

	slog.Info(LogMsgShuttingDownEventPublisher)
	if app.Events != nil {
		if err := app.Events.Publisher.Shutdown(ctx); err != nil {
			slog.Error(LogMsgResilientPublisherFailed, "error", err)
		}
	}

	slog.Info(LogMsgServerStopped)
}

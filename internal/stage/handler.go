package stage

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/osse101/LuckyDraw_Go/internal/domain"
	"github.com/osse101/LuckyDraw_Go/internal/logger"
	"github.com/osse101/LuckyDraw_Go/internal/metrics"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Stage screens are often served from a different origin than the API.
	CheckOrigin: func(*http.Request) bool { return true },
}

// Handler upgrades GET /sessions/{id}/stage to a websocket. role=presenter
// allows the connection to trigger draws; everyone else watches.
func Handler(reg *Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		sessionID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, "invalid session id", http.StatusBadRequest)
			return
		}

		// The hub is registered before the session check so that a delete
		// racing this request either fails the check or closes the hub.
		hub := reg.Hub(sessionID)
		if _, err := reg.drawer.ListGroups(r.Context(), sessionID); err != nil {
			if errors.Is(err, domain.ErrSessionNotFound) {
				reg.Close(sessionID)
				http.Error(w, "session not found", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		role := RoleViewer
		if r.URL.Query().Get(QueryParamRole) == RolePresenter {
			role = RolePresenter
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Warn(LogMsgUpgradeFailed, "session_id", sessionID, "error", err)
			return
		}

		client := newClient(r.Context(), hub, conn, role)
		if !hub.join(client) {
			conn.Close()
			return
		}

		metrics.LiveConnections.WithLabelValues(metrics.TransportStage).Inc()
		log.Info(LogMsgClientJoined, "session_id", sessionID, "client_id", client.id, "role", role)

		go client.writePump()
		client.readPump()

		metrics.LiveConnections.WithLabelValues(metrics.TransportStage).Dec()
		log.Info(LogMsgClientLeft, "session_id", sessionID, "client_id", client.id)
	}
}

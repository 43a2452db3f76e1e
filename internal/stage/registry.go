package stage

import (
	"sync"

	"github.com/google/uuid"
)

// Registry owns the stage hub of every session that has one
type Registry struct {
	drawer Drawer

	mu   sync.Mutex
	hubs map[uuid.UUID]*Hub
}

// NewRegistry creates an empty registry whose hubs draw through drawer
func NewRegistry(drawer Drawer) *Registry {
	return &Registry{
		drawer: drawer,
		hubs:   make(map[uuid.UUID]*Hub),
	}
}

// Hub returns the running hub of sessionID, starting it on first use
func (r *Registry) Hub(sessionID uuid.UUID) *Hub {
	r.mu.Lock()
	defer r.mu.Unlock()

	if h, ok := r.hubs[sessionID]; ok {
		return h
	}
	h := newHub(sessionID, r.drawer)
	r.hubs[sessionID] = h
	go h.run()
	return h
}

// Close removes the hub of sessionID, if any, and tells it to stop. It does
// not wait for the hub goroutine, which may itself be waiting on the session
// store, so it is safe to call from a session eviction callback.
func (r *Registry) Close(sessionID uuid.UUID) {
	r.mu.Lock()
	h, ok := r.hubs[sessionID]
	delete(r.hubs, sessionID)
	r.mu.Unlock()

	if ok {
		h.signalClose()
	}
}

// CloseAll stops every hub
func (r *Registry) CloseAll() {
	r.mu.Lock()
	hubs := r.hubs
	r.hubs = make(map[uuid.UUID]*Hub)
	r.mu.Unlock()

	for _, h := range hubs {
		h.Close()
	}
}

// Len returns the number of running hubs
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.hubs)
}

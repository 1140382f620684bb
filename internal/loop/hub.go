package loop

import (
	"sort"
	"sync"
	"time"
)

// EventType identifies the type of hub event.
type EventType int

const (
	EventServerShutdown EventType = iota
)

// Event is sent from the hub to connected clients.
type Event struct {
	Type EventType
}

// Handle represents a client's registration with the hub.
type Handle struct {
	ID     int
	Name   string
	Events chan Event
}

// Hub tracks the clients connected to a server so they can be told about
// a shutdown. Each client runs its own game; the hub shares no game state.
type Hub struct {
	mu      sync.RWMutex
	clients map[int]*Handle
	nextID  int
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[int]*Handle),
		nextID:  1,
	}
}

// Register adds a client and returns its handle.
func (h *Hub) Register(name string) *Handle {
	h.mu.Lock()
	defer h.mu.Unlock()
	handle := &Handle{
		ID:     h.nextID,
		Name:   name,
		Events: make(chan Event, 4),
	}
	h.nextID++
	h.clients[handle.ID] = handle
	return handle
}

// Unregister removes a client and closes its event channel.
func (h *Hub) Unregister(id int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if handle, ok := h.clients[id]; ok {
		close(handle.Events)
		delete(h.clients, id)
	}
}

// Count returns the number of connected clients.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Names returns the names of connected clients, sorted.
func (h *Hub) Names() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	names := make([]string, 0, len(h.clients))
	for _, handle := range h.clients {
		names = append(names, handle.Name)
	}
	sort.Strings(names)
	return names
}

// Shutdown notifies all connected clients about the shutdown and waits for
// them to disconnect, up to timeout.
func (h *Hub) Shutdown(timeout time.Duration) {
	h.mu.RLock()
	for _, handle := range h.clients {
		select {
		case handle.Events <- Event{Type: EventServerShutdown}:
		default:
		}
	}
	h.mu.RUnlock()

	deadline := time.After(timeout)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-deadline:
			return
		case <-ticker.C:
			if h.Count() == 0 {
				return
			}
		}
	}
}

package notification

import "sync"

// Conn is the subset of a websocket connection the registry needs.
type Conn interface {
	WriteJSON(v interface{}) error
}

// client pairs a connection with the mutex that serializes writes to it.
// The websocket library supports at most one concurrent writer per
// connection, and Send can be called from any request goroutine as well
// as the pub/sub bridge.
type client struct {
	conn Conn
	wmu  sync.Mutex
}

// Registry maps user IDs to live websocket connections for this process.
// A second connection for the same user replaces the first. Send is a
// graceful no-op when the user has no connection here.
type Registry struct {
	mu      sync.RWMutex
	clients map[uint]*client
}

// NewRegistry creates an empty connection registry.
func NewRegistry() *Registry {
	return &Registry{clients: make(map[uint]*client)}
}

// Register associates a connection with a user.
func (r *Registry) Register(userID uint, conn Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients[userID] = &client{conn: conn}
}

// Unregister drops the user's connection if conn is still the one
// registered. A stale close must not evict a newer connection.
func (r *Registry) Unregister(userID uint, conn Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cl, ok := r.clients[userID]; ok && cl.conn == conn {
		delete(r.clients, userID)
	}
}

// Send pushes a payload to the user's connection and reports whether a
// delivery was attempted. Writes to one connection are serialized; a
// write error drops the connection.
func (r *Registry) Send(userID uint, payload interface{}) bool {
	r.mu.RLock()
	cl, ok := r.clients[userID]
	r.mu.RUnlock()
	if !ok {
		return false
	}

	cl.wmu.Lock()
	err := cl.conn.WriteJSON(payload)
	cl.wmu.Unlock()
	if err != nil {
		r.mu.Lock()
		if r.clients[userID] == cl {
			delete(r.clients, userID)
		}
		r.mu.Unlock()
		return false
	}
	return true
}

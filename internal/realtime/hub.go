// Package realtime carries live list-change events to connected clients
// over WebSocket. The Hub is the connection registry: it maps connections
// to the rooms they have joined and fans broadcasts out to room members.
//
// The hub performs no access checks on joinList. The REST layer is the
// authorizer; a client is expected to subscribe only after an authorized
// fetch. The hub is a pure multiplexer over room membership.
package realtime

import (
	"log"
	"sync"

	"taskhive-be/internal/jwt"
)

// TokenValidator verifies a bearer token presented over the socket
type TokenValidator interface {
	ValidateToken(token string) (*jwt.Claims, error)
}

// Hub is the process-wide connection registry and change broadcaster.
// Constructed once per server process; all mutation of room membership
// happens under a single mutex.
type Hub struct {
	validator TokenValidator

	mu    sync.Mutex
	rooms map[string]map[*Client]struct{}
}

// NewHub creates the connection registry
func NewHub(validator TokenValidator) *Hub {
	return &Hub{
		validator: validator,
		rooms:     make(map[string]map[*Client]struct{}),
	}
}

func listRoom(listID string) string { return "list:" + listID }
func userRoom(userID string) string { return "user:" + userID }

// Authenticate verifies the token and joins the connection to its
// identity room. Re-authentication is idempotent; presenting a token for
// a different user moves the connection to that user's room.
func (h *Hub) Authenticate(c *Client, token string) error {
	claims, err := h.validator.ValidateToken(token)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if c.userID != "" && c.userID != claims.UserID {
		h.leaveRoom(c, userRoom(c.userID))
	}
	c.userID = claims.UserID
	h.joinRoom(c, userRoom(claims.UserID))
	return nil
}

// JoinList subscribes the connection to a list's room
func (h *Hub) JoinList(c *Client, listID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.joinRoom(c, listRoom(listID))
}

// LeaveList removes the connection from a list's room
func (h *Hub) LeaveList(c *Client, listID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.leaveRoom(c, listRoom(listID))
}

// Unregister removes the connection from every room it holds, including
// its identity room, and closes its outbound queue. Called exactly once
// when the connection's read loop ends.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	for room := range c.rooms {
		h.leaveRoom(c, room)
	}
	close(c.send)
}

// ToList broadcasts an event to every connection subscribed to the list's
// room. Fire-and-forget: offline or slow connections simply miss it.
func (h *Hub) ToList(listID, event string, payload interface{}) {
	h.broadcast(listRoom(listID), event, payload)
}

// ToUser broadcasts an event to every session of the given user,
// regardless of which lists those sessions have open
func (h *Hub) ToUser(userID, event string, payload interface{}) {
	h.broadcast(userRoom(userID), event, payload)
}

func (h *Hub) broadcast(room, event string, payload interface{}) {
	message, err := encodeServerMessage(event, payload)
	if err != nil {
		log.Printf("realtime: failed to encode %s event: %v", event, err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.rooms[room] {
		select {
		case c.send <- message:
		default:
			// Slow consumer; drop the event rather than block the emitter
		}
	}
}

// RoomSize reports how many connections are subscribed to a list's room
func (h *Hub) RoomSize(listID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.rooms[listRoom(listID)])
}

// joinRoom and leaveRoom must be called with h.mu held
func (h *Hub) joinRoom(c *Client, room string) {
	if c.closed {
		return
	}
	members, ok := h.rooms[room]
	if !ok {
		members = make(map[*Client]struct{})
		h.rooms[room] = members
	}
	members[c] = struct{}{}
	c.rooms[room] = struct{}{}
}

func (h *Hub) leaveRoom(c *Client, room string) {
	if members, ok := h.rooms[room]; ok {
		delete(members, c)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
	delete(c.rooms, room)
}

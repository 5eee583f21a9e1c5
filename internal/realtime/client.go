package realtime

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBufferSize = 32
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The browser client connects from the frontend origin; tokens are the
	// real gate, presented over the socket after connect
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Client is one WebSocket connection. It starts unauthenticated; a valid
// token over the socket binds it to a user and its identity room.
type Client struct {
	id   string
	hub  *Hub
	conn *websocket.Conn
	send chan []byte

	// Guarded by hub.mu
	userID string
	rooms  map[string]struct{}
	closed bool
}

func newClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		id:    uuid.NewString(),
		hub:   hub,
		conn:  conn,
		send:  make(chan []byte, sendBufferSize),
		rooms: make(map[string]struct{}),
	}
}

// ServeWS returns the gin handler that upgrades GET /ws connections
func ServeWS(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("realtime: upgrade failed: %v", err)
			return
		}

		client := newClient(hub, conn)
		log.Printf("realtime: client %s connected", client.id)

		go client.writePump()
		client.readPump()
	}
}

// readPump consumes messages from the connection until it closes, then
// tears down every room membership
func (c *Client) readPump() {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
		log.Printf("realtime: client %s disconnected", c.id)
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("realtime: client %s read error: %v", c.id, err)
			}
			return
		}

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Printf("realtime: client %s sent malformed message: %v", c.id, err)
			continue
		}
		c.handleMessage(msg)
	}
}

func (c *Client) handleMessage(msg ClientMessage) {
	switch msg.Event {
	case EventAuthenticate:
		if err := c.hub.Authenticate(c, msg.Data); err != nil {
			log.Printf("realtime: client %s authentication failed: %v", c.id, err)
		}
	case EventJoinList:
		c.hub.JoinList(c, msg.Data)
		if reply, err := encodeServerMessage(EventJoinedList, listRoom(msg.Data)); err == nil {
			select {
			case c.send <- reply:
			default:
			}
		}
	case EventLeaveList:
		c.hub.LeaveList(c, msg.Data)
	default:
		log.Printf("realtime: client %s sent unknown event %q", c.id, msg.Event)
	}
}

// writePump pushes queued broadcasts to the connection and keeps it alive
// with pings. Exits when the hub closes the send channel.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

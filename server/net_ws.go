package server

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait  = 5 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
	readLimit  = 1 << 16
)

// Client is one websocket connection attached to a room.
type Client struct {
	id   string
	ws   *websocket.Conn
	send chan []byte

	closeOnce sync.Once
}

func NewClient(id string, ws *websocket.Conn) *Client {
	return &Client{
		id:   id,
		ws:   ws,
		send: make(chan []byte, 64),
	}
}

// Enqueue queues b for writing. It reports false when the queue is full and
// the message was dropped.
func (c *Client) Enqueue(b []byte) bool {
	select {
	case c.send <- b:
		return true
	default:
		return false
	}
}

// Close ends the write pump, which closes the connection. Only the room's
// tick goroutine calls it.
func (c *Client) Close() {
	c.closeOnce.Do(func() { close(c.send) })
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.ws.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump decodes client messages into room inputs until the connection
// fails, then asks the room to drop the client.
func (c *Client) readPump(room *Room, log *zap.Logger) {
	defer func() {
		room.leave(c)
		_ = c.ws.Close()
	}()
	c.ws.SetReadLimit(readLimit)
	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, payload, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug("read", zap.String("client", c.id), zap.Error(err))
			}
			return
		}
		in, err := ParseInput(payload)
		if err != nil {
			room.metrics.IncRejected()
			log.Debug("bad input", zap.String("client", c.id), zap.Error(err))
			continue
		}
		in.ClientID = c.id
		room.OnInput(in)
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleWS attaches a websocket to a room: /ws?room=<id>&client=<name>.
func (m *Manager) HandleWS(w http.ResponseWriter, r *http.Request) {
	roomID := roomParam(r)
	clientID := r.URL.Query().Get("client")
	if clientID == "" {
		clientID = r.RemoteAddr
	}

	room, err := m.GetOrCreateRoom(roomID)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, ErrManagerClosed) {
			status = http.StatusServiceUnavailable
		}
		http.Error(w, err.Error(), status)
		return
	}

	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		m.log.Warn("upgrade", zap.Error(err))
		return
	}

	client := NewClient(clientID, ws)
	if !room.join(client) {
		_ = ws.Close()
		return
	}
	go client.writePump()
	go client.readPump(room, m.log)
}

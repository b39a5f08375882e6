package notify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Hub keeps the websocket connections of signed in users and pushes
// notifications to them
type Hub struct {
	upgrader websocket.Upgrader
	mutex    sync.Mutex
	clients  map[string]map[*conn]struct{}
}

// conn serializes writes, gorilla connections allow one concurrent writer
type conn struct {
	ws    *websocket.Conn
	mutex sync.Mutex
}

// event is the frame written to the socket
type event struct {
	Event string  `json:"event"`
	Data  Message `json:"data"`
}

// NewHub returns an empty hub
func NewHub() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		clients: make(map[string]map[*conn]struct{}),
	}
}

// Serve upgrades the request and holds the connection for userID until the
// client goes away
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, userID string) error {
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	c := &conn{ws: ws}
	h.add(userID, c)
	zap.S().Infow("user connected to notifications", "userId", userID)

	defer func() {
		h.remove(userID, c)
		_ = ws.Close()
		zap.S().Infow("user disconnected from notifications", "userId", userID)
	}()

	for {
		if _, _, err := ws.NextReader(); err != nil {
			return nil
		}
	}
}

// Connected returns the number of open connections of userID
func (h *Hub) Connected(userID string) int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.clients[userID])
}

// Notify pushes msg to every open connection of every recipient with a user id.
// Recipients that are not connected are skipped.
func (h *Hub) Notify(ctx context.Context, msg Message) error {
	var errs []error
	for _, r := range msg.Recipients {
		if r.UserID == "" {
			continue
		}
		for _, c := range h.conns(r.UserID) {
			if err := ctx.Err(); err != nil {
				return errors.Join(append(errs, err)...)
			}
			if err := c.write(event{Event: msg.Event, Data: msg}); err != nil {
				errs = append(errs, fmt.Errorf("failed to push %s to user %s: %w", msg.Event, r.UserID, err))
				h.remove(r.UserID, c)
				_ = c.ws.Close()
			}
		}
	}
	return errors.Join(errs...)
}

func (h *Hub) add(userID string, c *conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if h.clients[userID] == nil {
		h.clients[userID] = make(map[*conn]struct{})
	}
	h.clients[userID][c] = struct{}{}
}

func (h *Hub) remove(userID string, c *conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	delete(h.clients[userID], c)
	if len(h.clients[userID]) == 0 {
		delete(h.clients, userID)
	}
}

func (h *Hub) conns(userID string) []*conn {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	out := make([]*conn, 0, len(h.clients[userID]))
	for c := range h.clients[userID] {
		out = append(out, c)
	}
	return out
}

func (c *conn) write(v interface{}) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.ws.WriteJSON(v)
}

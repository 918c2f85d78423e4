package server

import (
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/gravitas-015/hexplane/internal/network"
	"github.com/gravitas-015/hexplane/pkg/hex"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 4096
)

// Connection represents a WebSocket hit-testing session
type Connection struct {
	ws     *websocket.Conn
	server *Server

	// Buffered channel for outbound messages. sendMu orders sends against
	// Close so nothing writes to the channel after it is closed.
	send   chan []byte
	sendMu sync.Mutex
	closed bool
}

// NewConnection creates a new connection
func NewConnection(ws *websocket.Conn, server *Server) *Connection {
	return &Connection{
		ws:     ws,
		server: server,
		send:   make(chan []byte, 64),
	}
}

// Handle manages the connection lifecycle
func (c *Connection) Handle() {
	c.ws.SetReadLimit(maxMessageSize)
	c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		c.ws.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	go c.writePump()
	c.readPump() // Blocking
}

// readPump pumps messages from the WebSocket connection to the handlers
func (c *Connection) readPump() {
	defer c.Close()

	for {
		_, message, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket read error: %v", err)
			}
			break
		}

		var clientMsg network.ClientMessage
		if err := json.Unmarshal(message, &clientMsg); err != nil {
			log.Printf("Failed to parse client message: %v", err)
			c.SendError("invalid_message", "Failed to parse message")
			continue
		}

		c.handleMessage(&clientMsg)
	}
}

// writePump pumps messages from the send channel to the WebSocket connection
func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.ws.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.ws.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Printf("WebSocket write error: %v", err)
				return
			}

		case <-ticker.C:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.server.ctx.Done():
			// Server shutting down
			return
		}
	}
}

// handleMessage routes messages to appropriate handlers
func (c *Connection) handleMessage(msg *network.ClientMessage) {
	switch msg.Type {
	case network.MsgTypeLocate:
		c.handleLocate(msg.Payload)

	case network.MsgTypeOrigin:
		c.handleOrigin(msg.Payload)

	case network.MsgTypePing:
		c.handlePing()

	default:
		log.Printf("Unknown message type: %s", msg.Type)
		c.SendError("unknown_message_type", "Unknown message type")
	}
}

// handleLocate resolves a world point to the hexagon containing it
func (c *Connection) handleLocate(payload json.RawMessage) {
	var req network.LocatePayload
	if err := json.Unmarshal(payload, &req); err != nil {
		c.SendError("invalid_payload", "Invalid locate payload")
		return
	}

	addr, err := hex.WorldToAddress(hex.WorldPoint{X: req.X, Y: req.Y})
	if err != nil {
		c.sendMappingError(err)
		return
	}

	c.SendMessage(&network.ServerMessage{
		Type:    network.MsgTypeAddress,
		Payload: network.AddressPayload{I: addr.I, J: addr.J},
	})
}

// handleOrigin resolves an address to its world origin
func (c *Connection) handleOrigin(payload json.RawMessage) {
	var req network.OriginPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		c.SendError("invalid_payload", "Invalid origin payload")
		return
	}

	origin, err := hex.AddressToWorld(hex.Address{I: req.I, J: req.J})
	if err != nil {
		c.sendMappingError(err)
		return
	}

	c.SendMessage(&network.ServerMessage{
		Type:    network.MsgTypeWorld,
		Payload: network.WorldPayload{X: origin.X, Y: origin.Y},
	})
}

// handlePing handles ping requests
func (c *Connection) handlePing() {
	c.SendMessage(&network.ServerMessage{
		Type:    network.MsgTypePong,
		Payload: map[string]interface{}{"timestamp": time.Now().Unix()},
	})
}

// sendMappingError maps coordinate-conversion failures to protocol errors
func (c *Connection) sendMappingError(err error) {
	if errors.Is(err, hex.ErrInvalidInput) {
		c.SendError("invalid_input", err.Error())
		return
	}
	c.SendError("internal_error", err.Error())
}

// SendMessage sends a message to the client
func (c *Connection) SendMessage(msg *network.ServerMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Failed to marshal message: %v", err)
		return
	}

	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	if c.closed {
		return
	}

	select {
	case c.send <- data:
	default:
		log.Printf("Send buffer full, dropping message")
	}
}

// SendError sends an error message to the client
func (c *Connection) SendError(code, message string) {
	c.SendMessage(&network.ServerMessage{
		Type: network.MsgTypeError,
		Payload: network.ErrorPayload{
			Code:    code,
			Message: message,
		},
	})
}

// Close closes the connection. Safe to call more than once and concurrently
// with SendMessage.
func (c *Connection) Close() {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

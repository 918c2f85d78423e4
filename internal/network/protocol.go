package network

import "encoding/json"

// Message types - Client → Server
const (
	MsgTypeLocate = "locate" // world point → address (hit-testing)
	MsgTypeOrigin = "origin" // address → world origin
	MsgTypePing   = "ping"
)

// Message types - Server → Client
const (
	MsgTypeAddress = "address"
	MsgTypeWorld   = "world"
	MsgTypeError   = "error"
	MsgTypePong    = "pong"
)

// ClientMessage represents any message from client to server
type ClientMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// ServerMessage represents any message from server to client
type ServerMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// --- Client Message Payloads ---

// LocatePayload asks which hexagon contains a world point
type LocatePayload struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// OriginPayload asks for the world origin of an address
type OriginPayload struct {
	I int64 `json:"i"`
	J int64 `json:"j"`
}

// --- Server Message Payloads ---

// AddressPayload answers a locate request
type AddressPayload struct {
	I int64 `json:"i"`
	J int64 `json:"j"`
}

// WorldPayload answers an origin request
type WorldPayload struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ErrorPayload reports a request failure
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

package app

import (
	"encoding/json"

	"github.com/tutorbridge/meetsignal/internal/core"
)

// Outbound event shapes. Flat envelopes with a "type" discriminator,
// matching what the signal adapter speaks on the inbound side.

type newParticipantEvent struct {
	Type     string      `json:"type"`
	SocketID core.ConnID `json:"socketId"`
}

type partnerLeftEvent struct {
	Type     string      `json:"type"`
	SocketID core.ConnID `json:"socketId"`
}

type roomMessageEvent struct {
	Type      string      `json:"type"`
	Message   string      `json:"message"`
	Sender    string      `json:"sender"`
	Timestamp int64       `json:"timestamp"`
	SocketID  core.ConnID `json:"socketId"`
}

// relayEvent keys the opaque blob by kind, so an offer goes out as
// {"type":"offer","from":...,"offer":<blob>} and so on.
func relayEvent(kind core.SignalKind, from core.ConnID, payload json.RawMessage) map[string]any {
	return map[string]any{
		"type":              kind.String(),
		"from":              from,
		kind.PayloadField(): payload,
	}
}

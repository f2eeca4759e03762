package stream

import (
	"encoding/json"

	"github.com/zanemountcastle/vibe-trading/internal/domain"
)

// Message is the wire envelope for feed traffic, matching the platform's
// tagged form: {"type": ..., "payload": ...}.
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Message types understood by the feed.
const (
	TypeConnect     = "Connect"
	TypeSubscribe   = "Subscribe"
	TypeUnsubscribe = "Unsubscribe"
	TypeHeartbeat   = "Heartbeat"
	TypeMarketData  = "MarketData"
	TypeError       = "Error"
)

// FeedMarketData is the only feed the mock simulates.
const FeedMarketData = "market_data"

// ConnectPayload is sent to a client right after the upgrade.
type ConnectPayload struct {
	ClientID string `json:"client_id"`
}

// SubscribePayload carries Subscribe/Unsubscribe requests.
type SubscribePayload struct {
	Feed    string   `json:"feed"`
	Symbols []string `json:"symbols,omitempty"`
}

// ErrorPayload reports a protocol-level problem to the client.
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// newMessage wraps a payload; encoding only fails for unserializable types,
// which none of the payloads here are.
func newMessage(msgType string, payload any) Message {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Message{Type: msgType}
	}
	return Message{Type: msgType, Payload: raw}
}

// marketDataMessage wraps a quote for the market_data feed.
func marketDataMessage(q domain.Quote) Message {
	return newMessage(TypeMarketData, q)
}

package stream

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/zanemountcastle/vibe-trading/internal/domain"
	"github.com/zanemountcastle/vibe-trading/internal/sim"
)

func dialTestFeed(t *testing.T) *websocket.Conn {
	t.Helper()

	feed := NewFeed(sim.NewGenerator(), 20*time.Millisecond, time.Second)
	srv := httptest.NewServer(feed)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	var msg Message
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("ReadJSON failed: %v", err)
	}
	return msg
}

func TestFeed_ConnectHandshake(t *testing.T) {
	conn := dialTestFeed(t)

	msg := readMessage(t, conn)
	if msg.Type != TypeConnect {
		t.Fatalf("First message type = %q, want Connect", msg.Type)
	}

	var p ConnectPayload
	if err := json.Unmarshal(msg.Payload, &p); err != nil {
		t.Fatalf("Connect payload: %v", err)
	}
	if p.ClientID == "" {
		t.Error("Connect should carry a client_id")
	}
}

func TestFeed_SubscribeReceivesMarketData(t *testing.T) {
	conn := dialTestFeed(t)
	readMessage(t, conn) // Connect

	sub := newMessage(TypeSubscribe, SubscribePayload{Feed: FeedMarketData, Symbols: []string{"BTC-USD"}})
	if err := conn.WriteJSON(sub); err != nil {
		t.Fatal(err)
	}

	msg := readMessage(t, conn)
	if msg.Type != TypeMarketData {
		t.Fatalf("Message type = %q, want MarketData", msg.Type)
	}

	var q domain.Quote
	if err := json.Unmarshal(msg.Payload, &q); err != nil {
		t.Fatalf("MarketData payload: %v", err)
	}
	if q.Symbol != "BTC/USD" {
		t.Errorf("symbol = %q, want BTC/USD", q.Symbol)
	}
	price := q.Price.InexactFloat64()
	if price < 34500 || price > 35500 {
		t.Errorf("BTC price %v outside band", price)
	}
	if !q.Bid.LessThan(q.Price) || !q.Price.LessThan(q.Ask) {
		t.Errorf("expected bid < price < ask, got %v %v %v", q.Bid, q.Price, q.Ask)
	}
}

func TestFeed_UnsubscribeStopsPushes(t *testing.T) {
	conn := dialTestFeed(t)
	readMessage(t, conn) // Connect

	conn.WriteJSON(newMessage(TypeSubscribe, SubscribePayload{Feed: FeedMarketData, Symbols: []string{"ETH-USD"}}))
	readMessage(t, conn) // at least one push arrives

	conn.WriteJSON(newMessage(TypeUnsubscribe, SubscribePayload{Feed: FeedMarketData}))

	// Give the unsubscribe time to land, drain in-flight pushes, then the
	// stream should go quiet.
	time.Sleep(100 * time.Millisecond)
	for drained := 0; ; drained++ {
		conn.SetReadDeadline(time.Now().Add(150 * time.Millisecond))
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			return // timed out: no more pushes
		}
		if drained > 20 {
			t.Fatal("Pushes kept arriving after unsubscribe")
		}
	}
}

func TestFeed_UnknownFeedIsError(t *testing.T) {
	conn := dialTestFeed(t)
	readMessage(t, conn) // Connect

	conn.WriteJSON(newMessage(TypeSubscribe, SubscribePayload{Feed: "orders"}))

	msg := readMessage(t, conn)
	if msg.Type != TypeError {
		t.Fatalf("Message type = %q, want Error", msg.Type)
	}
	var p ErrorPayload
	if err := json.Unmarshal(msg.Payload, &p); err != nil {
		t.Fatal(err)
	}
	if p.Code != "unknown_feed" {
		t.Errorf("code = %q, want unknown_feed", p.Code)
	}
}

func TestFeed_HeartbeatEcho(t *testing.T) {
	conn := dialTestFeed(t)
	readMessage(t, conn) // Connect

	conn.WriteJSON(Message{Type: TypeHeartbeat})

	msg := readMessage(t, conn)
	if msg.Type != TypeHeartbeat {
		t.Fatalf("Message type = %q, want Heartbeat", msg.Type)
	}
}

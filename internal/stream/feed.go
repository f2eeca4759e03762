package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/zanemountcastle/vibe-trading/internal/infra"
	"github.com/zanemountcastle/vibe-trading/internal/sim"
)

// Path is the route the feed is mounted on.
const Path = "ws"

const readTimeout = 90 * time.Second

// Feed simulates the platform's WebSocket market-data stream: clients
// subscribe to the market_data feed with a symbol list and receive one
// synthetic quote per symbol per tick.
type Feed struct {
	gen          *sim.Generator
	tickInterval time.Duration
	pingInterval time.Duration
	upgrader     websocket.Upgrader
	logger       *slog.Logger
}

// NewFeed creates a Feed pushing quotes every tick interval.
func NewFeed(gen *sim.Generator, tick, ping time.Duration) *Feed {
	return &Feed{
		gen:          gen,
		tickInterval: tick,
		pingInterval: ping,
		upgrader: websocket.Upgrader{
			// The mock accepts any origin, like its CORS-open HTTP side.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		logger: slog.Default().With("module", "stream"),
	}
}

// client is one connected consumer. Writes go through the mutex because
// the push loop and the read loop both send frames.
type client struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
	mu      sync.RWMutex
	symbols map[string]struct{}
}

func (c *client) send(msg Message) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteJSON(msg)
}

func (c *client) ping() error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second))
}

func (c *client) subscribe(symbols []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, s := range symbols {
		c.symbols[s] = struct{}{}
	}
}

func (c *client) unsubscribe(symbols []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(symbols) == 0 {
		clear(c.symbols)
		return
	}
	for _, s := range symbols {
		delete(c.symbols, s)
	}
}

func (c *client) subscribed() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.symbols))
	for s := range c.symbols {
		out = append(out, s)
	}
	return out
}

// ServeHTTP upgrades the connection and runs the feed until the client
// disconnects or the request context ends.
func (f *Feed) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := f.upgrader.Upgrade(w, r, nil)
	if err != nil {
		f.logger.Warn("WebSocket upgrade failed", slog.Any("error", err))
		return
	}
	defer conn.Close()

	infra.GlobalMetrics.IncrementStreams()
	defer infra.GlobalMetrics.DecrementStreams()

	c := &client{conn: conn, symbols: make(map[string]struct{})}

	clientID := fmt.Sprintf("client-%d", time.Now().UnixNano())
	if err := c.send(newMessage(TypeConnect, ConnectPayload{ClientID: clientID})); err != nil {
		return
	}
	f.logger.Info("Stream client connected", slog.String("client_id", clientID))

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	go f.pushLoop(ctx, c)
	f.readLoop(ctx, c)

	f.logger.Info("Stream client disconnected", slog.String("client_id", clientID))
}

// readLoop consumes client messages until the connection drops.
func (f *Feed) readLoop(ctx context.Context, c *client) {
	c.conn.SetReadDeadline(time.Now().Add(readTimeout))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(readTimeout))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		c.conn.SetReadDeadline(time.Now().Add(readTimeout))

		var msg Message
		if err := json.Unmarshal(raw, &msg); err != nil {
			c.send(newMessage(TypeError, ErrorPayload{Code: "bad_message", Message: "message is not valid JSON"}))
			continue
		}
		f.handle(c, msg)

		select {
		case <-ctx.Done():
			return
		default:
		}
	}
}

func (f *Feed) handle(c *client, msg Message) {
	switch msg.Type {
	case TypeSubscribe, TypeUnsubscribe:
		var p SubscribePayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			c.send(newMessage(TypeError, ErrorPayload{Code: "bad_payload", Message: "invalid subscribe payload"}))
			return
		}
		if p.Feed != FeedMarketData {
			c.send(newMessage(TypeError, ErrorPayload{Code: "unknown_feed", Message: "unknown feed: " + p.Feed}))
			return
		}
		if msg.Type == TypeSubscribe {
			c.subscribe(p.Symbols)
		} else {
			c.unsubscribe(p.Symbols)
		}
	case TypeHeartbeat:
		c.send(Message{Type: TypeHeartbeat})
	default:
		c.send(newMessage(TypeError, ErrorPayload{Code: "unknown_type", Message: "unknown message type: " + msg.Type}))
	}
}

// pushLoop emits quotes for subscribed symbols and keeps the connection
// alive with pings.
func (f *Feed) pushLoop(ctx context.Context, c *client) {
	ticker := time.NewTicker(f.tickInterval)
	defer ticker.Stop()
	pinger := time.NewTicker(f.pingInterval)
	defer pinger.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-pinger.C:
			if err := c.ping(); err != nil {
				return
			}
		case <-ticker.C:
			for _, symbol := range c.subscribed() {
				if err := c.send(marketDataMessage(f.gen.Quote(symbol))); err != nil {
					return
				}
				infra.GlobalMetrics.RecordQuoteGenerated()
			}
		}
	}
}

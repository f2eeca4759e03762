package server

import (
	"log/slog"
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/zanemountcastle/vibe-trading/internal/fixture"
	"github.com/zanemountcastle/vibe-trading/internal/infra"
	"github.com/zanemountcastle/vibe-trading/internal/sim"
	"github.com/zanemountcastle/vibe-trading/internal/stream"
)

const (
	apiPrefix      = "api/"
	marketDataPath = "market/data"
	rootDescriptor = "index.json"
)

// Router resolves inbound paths against the fixture tree. Extension-less
// paths are API-style: they serve their directory's index.json, synthesize
// market data, or fail with 404. Paths with an extension belong to the
// host static file server, which owns MIME sniffing and byte streaming.
type Router struct {
	fixtures *fixture.Store
	gen      *sim.Generator
	feed     *stream.Feed
	static   http.Handler
	logger   *slog.Logger
}

// NewRouter creates a Router over a fixture store. feed may be nil to
// disable the WebSocket endpoint.
func NewRouter(fixtures *fixture.Store, gen *sim.Generator, feed *stream.Feed) *Router {
	return &Router{
		fixtures: fixtures,
		gen:      gen,
		feed:     feed,
		static:   http.FileServer(http.Dir(fixtures.Root())),
		logger:   slog.Default().With("module", "router"),
	}
}

func (rt *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	infra.GlobalMetrics.RecordRequest()

	// Methods other than GET belong to the static-file delegate.
	if r.Method != http.MethodGet {
		rt.static.ServeHTTP(w, r)
		return
	}

	p := strings.Trim(r.URL.Path, "/")

	if rt.feed != nil && p == stream.Path && websocket.IsWebSocketUpgrade(r) {
		rt.feed.ServeHTTP(w, r)
		return
	}

	// Root request serves the root descriptor.
	if p == "" {
		rt.serveFixture(w, rootDescriptor)
		return
	}

	// A final segment with an extension is a plain file request.
	if strings.Contains(path.Base(p), ".") {
		rt.static.ServeHTTP(w, r)
		return
	}

	// Directory-style endpoint: serve its index.json if present.
	if idx := p + "/" + rootDescriptor; rt.fixtures.Exists(idx) {
		rt.serveFixture(w, idx)
		return
	}

	// Dynamic market data: api/market/data/<symbol>.
	if strings.HasPrefix(p, apiPrefix) && strings.Contains(p, marketDataPath) {
		if parts := strings.Split(p, "/"); len(parts) > 3 {
			rt.serveQuote(w, parts[3])
			return
		}
	}

	rt.fail(w, r.URL.Path)
}

func (rt *Router) serveFixture(w http.ResponseWriter, rel string) {
	data, err := rt.fixtures.Read(rel)
	if err != nil {
		// The fixture vanished between lookup and read, or never existed.
		// The error names the attempted fixture path, not the request path.
		rt.fail(w, rel)
		return
	}
	infra.GlobalMetrics.RecordFixtureServed()
	writeJSON(w, data)
}

func (rt *Router) serveQuote(w http.ResponseWriter, symbol string) {
	data, err := rt.gen.Envelope(symbol)
	if err != nil {
		rt.logger.Error("Failed to encode quote", slog.String("symbol", symbol), slog.Any("error", err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	infra.GlobalMetrics.RecordQuoteGenerated()
	writeJSON(w, data)
}

// fail reports the single error kind the router produces, carrying the
// path that could not be resolved.
func (rt *Router) fail(w http.ResponseWriter, reqPath string) {
	infra.GlobalMetrics.RecordNotFound()
	rt.logger.Debug("Not found", slog.String("path", reqPath))
	http.Error(w, "File not found: "+reqPath, http.StatusNotFound)
}

func writeJSON(w http.ResponseWriter, data []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

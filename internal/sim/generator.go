package sim

import (
	"encoding/json"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/zanemountcastle/vibe-trading/internal/domain"
)

// priceBand is the synthetic price range for a symbol prefix.
type priceBand struct {
	prefix string
	base   float64
	jitter float64
}

// Checked in order, first match wins. Prefix match is case-sensitive;
// unknown symbols fall through to the catch-all band.
var priceBands = []priceBand{
	{"BTC", 35000, 500},
	{"ETH", 2200, 50},
	{"SOL", 80, 5},
	{"AAPL", 175, 2},
}

const (
	defaultBase   = 100
	defaultJitter = 10
	spreadRatio   = 0.001 // 0.1% bid/ask spread
	volumeFloor   = 1000
	volumeJitter  = 5000
)

// Generator produces synthetic market quotes. Safe for concurrent use:
// randomness comes from the shared math/rand/v2 source, and no state is
// kept between calls.
type Generator struct{}

// NewGenerator creates a Generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// Quote builds a fresh quote for a ticker symbol. Every symbol yields a
// quote; bid < price < ask always holds since the spread is positive.
func (g *Generator) Quote(symbol string) domain.Quote {
	base := g.basePrice(symbol)
	spread := base * spreadRatio

	return domain.Quote{
		Symbol:    strings.ReplaceAll(symbol, "-", "/"),
		Price:     round2(base),
		Bid:       round2(base - spread/2),
		Ask:       round2(base + spread/2),
		Volume:    round2(volumeFloor + uniform(0, volumeJitter)),
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
		Exchange:  domain.Exchanges[rand.IntN(len(domain.Exchanges))],
	}
}

// Envelope returns the quote wrapped under the "data" key and
// pretty-printed with 2-space indent, as the platform API serializes it.
func (g *Generator) Envelope(symbol string) ([]byte, error) {
	return json.MarshalIndent(domain.QuoteEnvelope{Data: g.Quote(symbol)}, "", "  ")
}

func (g *Generator) basePrice(symbol string) float64 {
	for _, b := range priceBands {
		if strings.HasPrefix(symbol, b.prefix) {
			return b.base + uniform(-b.jitter, b.jitter)
		}
	}
	return defaultBase + uniform(-defaultJitter, defaultJitter)
}

func uniform(lo, hi float64) float64 {
	return lo + rand.Float64()*(hi-lo)
}

func round2(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}

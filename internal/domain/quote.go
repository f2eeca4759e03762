package domain

import "github.com/shopspring/decimal"

func init() {
	// Quote fields are numbers on the wire, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Quote is a synthetic market-data record mimicking an exchange price feed.
// A fresh one is generated per request; nothing is cached or persisted.
type Quote struct {
	Symbol    string          `json:"symbol"`    // Slash-separated pair (e.g., "BTC/USD")
	Price     decimal.Decimal `json:"price"`     // Mid price, 2 decimals
	Bid       decimal.Decimal `json:"bid"`       // Price minus half spread
	Ask       decimal.Decimal `json:"ask"`       // Price plus half spread
	Volume    decimal.Decimal `json:"volume"`    // 24h volume, 2 decimals
	Timestamp string          `json:"timestamp"` // ISO-8601 UTC instant, trailing Z
	Exchange  string          `json:"exchange"`  // One of Exchanges
}

// QuoteEnvelope wraps a quote under the single top-level "data" key the
// platform API uses for payloads.
type QuoteEnvelope struct {
	Data Quote `json:"data"`
}

// Exchanges lists the venues a synthetic quote can be attributed to.
var Exchanges = []string{"Binance", "Coinbase", "Kraken", "FTX"}

package monitor

import (
	"time"
)

// Observation is one shop's current price for one configuration, fed
// into the change detector. CompositeKey combines identity and shop.
type Observation struct {
	CompositeKey string
	IdentityKey  string
	Shop         string
	DisplayName  string
	VNDPrice     int
	HasPrice     bool
	URL          string
	ScrapedAt    time.Time
}

// CompositeKey builds the history store key for one shop's view of
// one configuration. History is tracked per shop, never merged across
// shops.
func CompositeKey(shop, key string) string {
	return shop + "_" + key
}

// Change records a price movement for one composite key between two
// collection runs. ChangeVND is negative for drops.
type Change struct {
	Shop      string  `json:"shop"`
	Model     string  `json:"model"`
	OldPrice  int     `json:"old_price"`
	NewPrice  int     `json:"new_price"`
	ChangeVND int     `json:"change_vnd"`
	ChangePct float64 `json:"change_pct"`
	URL       string  `json:"url,omitempty"`
}

// NewProduct records a composite key seen for the first time.
type NewProduct struct {
	Shop  string `json:"shop"`
	Model string `json:"model"`
	Price int    `json:"price"`
	URL   string `json:"url,omitempty"`
}

// Report is the output of one change detection run. Drops are ordered
// by descending absolute VND delta. Products present in history but
// absent from the run are neither reported nor removed.
type Report struct {
	PriceDrops     []Change     `json:"price_drops"`
	PriceIncreases []Change     `json:"price_increases"`
	NewProducts    []NewProduct `json:"new_products"`
	Timestamp      string       `json:"timestamp"`

	// Skipped counts current observations without a usable price.
	Skipped int `json:"-"`
	// ColdStart is set when the history store could not be read and
	// the run proceeded against an empty history.
	ColdStart bool `json:"-"`
}

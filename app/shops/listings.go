package shops

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/lphan/macwatch/app/catalog"
)

// Dump is the listing file the fetch layer writes for one shop, one
// batch per collection run.
type Dump struct {
	ScrapedAt time.Time     `json:"scraped_at"`
	Listings  []DumpListing `json:"listings"`
}

type DumpListing struct {
	Title     string `json:"title"`
	PriceText string `json:"price_text"`
	URL       string `json:"url"`
}

// LoadListings reads a shop's listing dump and converts it into raw
// listings tagged with the shop name. A missing or malformed dump is
// an error for this shop only; the caller decides whether the run
// continues.
func LoadListings(config *Config) ([]catalog.RawListing, error) {
	data, err := os.ReadFile(config.Shop.ListingsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read listings for shop %s: %w", config.Name, err)
	}

	var dump Dump
	if err := json.Unmarshal(data, &dump); err != nil {
		return nil, fmt.Errorf("failed to parse listings for shop %s: %w", config.Name, err)
	}

	scrapedAt := dump.ScrapedAt
	if scrapedAt.IsZero() {
		scrapedAt = time.Now()
	}

	raw := make([]catalog.RawListing, 0, len(dump.Listings))
	for _, l := range dump.Listings {
		raw = append(raw, catalog.RawListing{
			Shop:      config.Name,
			Title:     l.Title,
			PriceText: l.PriceText,
			URL:       l.URL,
			ScrapedAt: scrapedAt,
		})
	}

	return raw, nil
}

package catalog

import (
	"time"
)

// ModelType distinguishes the MacBook product line a listing belongs to.
type ModelType string

const (
	ModelTypeAir  ModelType = "MacBook Air"
	ModelTypePro  ModelType = "MacBook Pro"
	ModelTypeBase ModelType = "MacBook"
)

// RawListing is a single scraped product listing as delivered by the
// fetch layer. Title and price are free text in whatever format the
// shop uses.
type RawListing struct {
	Shop      string    `json:"shop"`
	Title     string    `json:"title"`
	PriceText string    `json:"price_text"`
	URL       string    `json:"url"`
	ScrapedAt time.Time `json:"scraped_at"`
}

// Spec holds the hardware attributes recovered from a listing title.
// Unrecognized fields stay at their zero value.
type Spec struct {
	ModelType   ModelType
	Chip        string // "M1".."M5", empty when no chip token matched
	ChipVariant string // "Pro" or "Max"
	ScreenSize  string // inches, e.g. "14" or "13.6"
	CPUCores    int
	GPUCores    int
	RAMGB       int
	StorageGB   int
	Year        int

	// IdentityKey is derived solely from the normalized hardware
	// attributes and is empty when the chip is unknown. Listings
	// sharing an identity key describe the same configuration.
	IdentityKey string
	DisplayName string

	// NeedsReview marks titles whose RAM/storage split relies on the
	// last-token heuristic with three or more GB/TB quantities.
	NeedsReview bool
}

// Listing is a normalized raw listing: parsed spec plus an extracted
// whole-VND price. HasPrice is false when the price text carried no
// digits; such listings stay in the catalog but are excluded from
// monetary comparisons.
type Listing struct {
	Shop      string
	RawTitle  string
	Spec      Spec
	VNDPrice  int
	HasPrice  bool
	URL       string
	ScrapedAt time.Time
}

// Observation is one shop's price for a canonical product.
type Observation struct {
	Shop      string
	VNDPrice  int
	URL       string
	ScrapedAt time.Time
}

// Product aggregates every shop observation sharing one identity key.
type Product struct {
	IdentityKey  string
	DisplayName  string
	Observations []Observation
}

// Catalog is the full result of one collection cycle: canonical
// products plus the raw listings they were built from. Listings
// without an identity key appear only in Raw.
type Catalog struct {
	Products []Product
	Raw      []Listing
	BuiltAt  time.Time
}

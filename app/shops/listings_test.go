package shops

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadListings(t *testing.T) {
	dir := t.TempDir()
	dumpFile := filepath.Join(dir, "cellphones.json")

	dump := `{
  "scraped_at": "2025-10-20T09:00:00Z",
  "listings": [
    {"title": "MacBook Pro 14 M4 16GB 512GB", "price_text": "39.990.000₫", "url": "https://cellphones.com.vn/mbp14-m4.html"},
    {"title": "MacBook Air 13.6 inch M3 8GB RAM SSD 256GB", "price_text": "", "url": "https://cellphones.com.vn/mba-m3.html"}
  ]
}`
	if err := os.WriteFile(dumpFile, []byte(dump), 0644); err != nil {
		t.Fatalf("failed to write dump: %v", err)
	}

	config := &Config{
		Name: "cellphones",
		Shop: Info{Name: "CellphoneS", ListingsFile: dumpFile},
	}

	raw, err := LoadListings(config)
	if err != nil {
		t.Fatalf("LoadListings error: %v", err)
	}

	if len(raw) != 2 {
		t.Fatalf("got %d listings, want 2", len(raw))
	}
	if raw[0].Shop != "cellphones" {
		t.Errorf("Shop = %q, want cellphones", raw[0].Shop)
	}
	if raw[0].PriceText != "39.990.000₫" {
		t.Errorf("PriceText = %q", raw[0].PriceText)
	}
	if raw[0].ScrapedAt.IsZero() {
		t.Error("ScrapedAt is zero, want value from dump")
	}
}

func TestLoadListings_MissingFile(t *testing.T) {
	config := &Config{
		Name: "fptshop",
		Shop: Info{Name: "FPT Shop", ListingsFile: filepath.Join(t.TempDir(), "nope.json")},
	}

	if _, err := LoadListings(config); err == nil {
		t.Error("LoadListings = nil error for missing file, want error")
	}
}

func TestLoadListings_MalformedJSON(t *testing.T) {
	dir := t.TempDir()
	dumpFile := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(dumpFile, []byte("{not json"), 0644); err != nil {
		t.Fatalf("failed to write dump: %v", err)
	}

	config := &Config{
		Name: "topzone",
		Shop: Info{Name: "TopZone", ListingsFile: dumpFile},
	}

	if _, err := LoadListings(config); err == nil {
		t.Error("LoadListings = nil error for malformed JSON, want error")
	}
}

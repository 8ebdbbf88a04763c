package catalog

import (
	"fmt"
	"strings"
)

// CuratedEntry is one configuration in the fixed comparison view.
type CuratedEntry struct {
	ID            string
	Model         string
	Configuration string
}

// CuratedComparison is the whitelist of configurations exposed by the
// comparison endpoint. The payload is restricted to exactly this set;
// scraped configurations outside it are served only through the raw
// catalog and the change reports.
var CuratedComparison = []CuratedEntry{
	{ID: "m3-max-36-1tb", Model: `MacBook Pro 16"`, Configuration: "M3 Max, 36GB RAM, 1TB SSD"},
	{ID: "m4-pro-24-512gb", Model: `MacBook Pro 16"`, Configuration: "M4 Pro, 24GB RAM, 512GB SSD"},
	{ID: "m4-max-36-1tb", Model: `MacBook Pro 16"`, Configuration: "M4 Max, 36GB RAM, 1TB SSD"},
	{ID: "m4-max-48-1tb", Model: `MacBook Pro 16"`, Configuration: "M4 Max, 48GB RAM, 1TB SSD"},
}

// CuratedID reduces a parsed spec to the whitelist identifier format:
// chip, variant, RAM and storage. Model line and screen size are fixed
// per whitelist entry, so they take no part in the match. Empty when
// any of the needed attributes is unresolved.
func (s Spec) CuratedID() string {
	if s.Chip == "" || s.RAMGB <= 0 || s.StorageGB <= 0 {
		return ""
	}

	chipPart := strings.ToLower(s.Chip)
	if s.ChipVariant != "" {
		chipPart += "-" + strings.ToLower(s.ChipVariant)
	}

	return fmt.Sprintf("%s-%d-%s", chipPart, s.RAMGB, storageKeyPart(s.StorageGB))
}

// CheapestCurated returns the lowest-priced listing matching a curated
// whitelist identifier, or nil when no shop currently lists it.
func (c *Catalog) CheapestCurated(id string) *Listing {
	var best *Listing
	for i := range c.Raw {
		l := &c.Raw[i]
		if !l.HasPrice || l.Spec.CuratedID() != id {
			continue
		}
		if best == nil || l.VNDPrice < best.VNDPrice {
			best = l
		}
	}
	return best
}

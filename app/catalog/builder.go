package catalog

import (
	"log/slog"
	"time"
)

// NormalizeListings converts raw scraped listings into normalized
// ones: the title is parsed into a spec and the price text into a
// whole-VND amount. The function is total; listings that cannot be
// fully resolved are kept with the unresolved fields absent.
func NormalizeListings(raw []RawListing) []Listing {
	listings := make([]Listing, 0, len(raw))

	for _, r := range raw {
		spec := ParseSpec(r.Title)
		price, ok := ExtractPrice(r.PriceText)

		if spec.NeedsReview {
			slog.Warn("Ambiguous RAM/storage split, flagging for review",
				"shop", r.Shop, "title", r.Title)
		}

		listings = append(listings, Listing{
			Shop:      r.Shop,
			RawTitle:  r.Title,
			Spec:      spec,
			VNDPrice:  price,
			HasPrice:  ok,
			URL:       r.URL,
			ScrapedAt: r.ScrapedAt,
		})
	}

	return listings
}

// Build groups normalized listings into canonical products by
// identity key, preserving first-seen order. Listings without an
// identity key or without a usable price stay in the raw catalog but
// contribute no observation.
func Build(listings []Listing, builtAt time.Time) Catalog {
	catalog := Catalog{
		Raw:     listings,
		BuiltAt: builtAt,
	}

	index := make(map[string]int)

	for _, l := range listings {
		key := l.Spec.IdentityKey
		if key == "" || !l.HasPrice {
			continue
		}

		i, ok := index[key]
		if !ok {
			catalog.Products = append(catalog.Products, Product{
				IdentityKey: key,
				DisplayName: l.Spec.DisplayName,
			})
			i = len(catalog.Products) - 1
			index[key] = i
		}

		catalog.Products[i].Observations = append(catalog.Products[i].Observations, Observation{
			Shop:      l.Shop,
			VNDPrice:  l.VNDPrice,
			URL:       l.URL,
			ScrapedAt: l.ScrapedAt,
		})
	}

	return catalog
}

// Lookup returns the canonical product for an identity key, or nil.
func (c *Catalog) Lookup(identityKey string) *Product {
	for i := range c.Products {
		if c.Products[i].IdentityKey == identityKey {
			return &c.Products[i]
		}
	}
	return nil
}

// CheapestObservation returns the lowest-priced observation of a
// product. Returns nil for a product without observations.
func (p *Product) CheapestObservation() *Observation {
	var best *Observation
	for i := range p.Observations {
		if best == nil || p.Observations[i].VNDPrice < best.VNDPrice {
			best = &p.Observations[i]
		}
	}
	return best
}

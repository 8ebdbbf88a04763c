package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

// SourceAPI and SourceFallback identify where a served rate came
// from; the comparison payload surfaces this to callers.
const (
	SourceAPI      = "exchangerate-api.com"
	SourceFallback = "configured fallback"

	cacheTTL = time.Hour
)

// Provider serves the VND-per-INR rate, fetching it from the exchange
// rate API and caching the result. When the API is unreachable the
// configured fallback rate is used; serving no rate at all is not an
// option for the comparison view.
type Provider struct {
	httpClient *http.Client
	url        string
	userAgent  string
	fallback   float64

	mu        sync.Mutex
	rate      float64
	source    string
	fetchedAt time.Time
}

func NewProvider(httpClient *http.Client, url, userAgent string, fallback float64) *Provider {
	return &Provider{
		httpClient: httpClient,
		url:        url,
		userAgent:  userAgent,
		fallback:   fallback,
	}
}

type apiResponse struct {
	Rates map[string]float64 `json:"rates"`
}

// Run returns the current VND-per-INR rate and its source. The
// returned rate is always positive: a failed fetch falls back to the
// configured rate, and the configuration layer rejects non-positive
// fallbacks at startup.
func (p *Provider) Run(ctx context.Context) (float64, string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.rate > 0 && time.Since(p.fetchedAt) < cacheTTL {
		return p.rate, p.source, nil
	}

	rate, err := p.fetch(ctx)
	if err != nil {
		slog.Warn("Exchange rate fetch failed, using fallback", "error", err, "fallback", p.fallback)
		if p.fallback <= 0 {
			return 0, "", fmt.Errorf("no exchange rate available: %w", err)
		}
		rate = p.fallback
		p.source = SourceFallback
	} else {
		p.source = SourceAPI
	}

	p.rate = rate
	p.fetchedAt = time.Now()

	return p.rate, p.source, nil
}

func (p *Provider) fetch(ctx context.Context) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", p.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch exchange rate: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("exchange rate API returned HTTP %d", resp.StatusCode)
	}

	var decoded apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return 0, fmt.Errorf("failed to decode exchange rate response: %w", err)
	}

	rate, ok := decoded.Rates["VND"]
	if !ok || rate <= 0 {
		return 0, fmt.Errorf("exchange rate response has no usable VND rate")
	}

	return rate, nil
}

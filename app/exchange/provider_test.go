package exchange

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestProvider_FetchesRateFromAPI(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"base":"INR","rates":{"VND":297.2,"USD":0.012}}`))
	}))
	defer server.Close()

	provider := NewProvider(server.Client(), server.URL, "MacWatch/test", 298)

	rate, source, err := provider.Run(context.Background())
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if rate != 297.2 {
		t.Errorf("rate = %v, want 297.2", rate)
	}
	if source != SourceAPI {
		t.Errorf("source = %q, want %q", source, SourceAPI)
	}
}

func TestProvider_CachesRate(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{"rates":{"VND":300}}`))
	}))
	defer server.Close()

	provider := NewProvider(server.Client(), server.URL, "MacWatch/test", 298)

	for i := 0; i < 3; i++ {
		if _, _, err := provider.Run(context.Background()); err != nil {
			t.Fatalf("Run error: %v", err)
		}
	}

	if calls != 1 {
		t.Errorf("API called %d times, want 1 (cached)", calls)
	}
}

func TestProvider_FallsBackWhenAPIFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer server.Close()

	provider := NewProvider(server.Client(), server.URL, "MacWatch/test", 298)

	rate, source, err := provider.Run(context.Background())
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if rate != 298 {
		t.Errorf("rate = %v, want fallback 298", rate)
	}
	if source != SourceFallback {
		t.Errorf("source = %q, want %q", source, SourceFallback)
	}
}

func TestProvider_ErrorsWithoutAnyRate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"rates":{}}`))
	}))
	defer server.Close()

	provider := NewProvider(server.Client(), server.URL, "MacWatch/test", 0)

	if _, _, err := provider.Run(context.Background()); err == nil {
		t.Error("Run = nil error with no fetched rate and no fallback, want error")
	}
}

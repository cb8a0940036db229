package edgar

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jwhan/fintab/pkg/config"
	"github.com/jwhan/fintab/pkg/httputil"
	"github.com/jwhan/fintab/pkg/logger"
)

const tickerIndexFixture = `{
	"0": {"cik_str": 320193, "ticker": "AAPL", "title": "Apple Inc."},
	"1": {"cik_str": 789019, "ticker": "MSFT", "title": "MICROSOFT CORP"},
	"2": {"cik_str": 1067983, "ticker": "BRK-B", "title": "BERKSHIRE HATHAWAY INC"}
}`

func testClient(t *testing.T, indexURL, baseURL string) *Client {
	t.Helper()

	cfg := &config.Config{
		Env:      "test",
		LogLevel: "error",
		EDGAR: config.EDGARConfig{
			BaseURL:     baseURL,
			TickerIndex: indexURL,
			UserAgent:   "fintab-test/1.0 (test@fintab.dev)",
			RateLimit:   10,
		},
	}
	log := logger.New(cfg)
	httpClient := httputil.New(cfg, log).DisableRetry()

	// nil cache: Redis-less operation must work
	return NewClient(cfg, log, httpClient, nil)
}

func TestResolveCIK(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); ua != "fintab-test/1.0 (test@fintab.dev)" {
			t.Errorf("Expected declared User-Agent, got %q", ua)
		}
		w.Write([]byte(tickerIndexFixture))
	}))
	defer server.Close()

	client := testClient(t, server.URL, server.URL)
	ctx := context.Background()

	tests := []struct {
		ticker   string
		wantCIK  string
		wantName string
	}{
		{"AAPL", "0000320193", "Apple Inc."},
		{"aapl", "0000320193", "Apple Inc."}, // case-insensitive lookup
		{"BRK-B", "0001067983", "BERKSHIRE HATHAWAY INC"},
	}

	for _, tt := range tests {
		t.Run(tt.ticker, func(t *testing.T) {
			company, err := client.ResolveCIK(ctx, tt.ticker)
			if err != nil {
				t.Fatalf("ResolveCIK(%q) error = %v", tt.ticker, err)
			}
			if company.CIK != tt.wantCIK {
				t.Errorf("CIK = %q, want %q", company.CIK, tt.wantCIK)
			}
			if company.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", company.Name, tt.wantName)
			}
		})
	}
}

func TestResolveCIKNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(tickerIndexFixture))
	}))
	defer server.Close()

	client := testClient(t, server.URL, server.URL)

	_, err := client.ResolveCIK(context.Background(), "ZZZZZ")
	if err == nil {
		t.Fatal("Expected error for unknown ticker")
	}

	var notFound *ErrTickerNotFound
	if !errors.As(err, &notFound) {
		t.Fatalf("Expected ErrTickerNotFound, got %T: %v", err, err)
	}
	if notFound.Ticker != "ZZZZZ" {
		t.Errorf("Ticker = %q, want ZZZZZ", notFound.Ticker)
	}
}

func TestCompanyFacts(t *testing.T) {
	var requestedPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestedPath = r.URL.Path
		w.Write([]byte(companyFactsFixture))
	}))
	defer server.Close()

	client := testClient(t, server.URL, server.URL)

	facts, err := client.CompanyFacts(context.Background(), "0000320193")
	if err != nil {
		t.Fatalf("CompanyFacts() error = %v", err)
	}

	if requestedPath != "/api/xbrl/companyfacts/CIK0000320193.json" {
		t.Errorf("Unexpected request path %q", requestedPath)
	}

	if facts.EntityName != "Apple Inc." {
		t.Errorf("EntityName = %q, want Apple Inc.", facts.EntityName)
	}
	if len(facts.Facts.USGAAP) != 2 {
		t.Errorf("Expected 2 concepts, got %d", len(facts.Facts.USGAAP))
	}
}

func TestCompanyFactsServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := testClient(t, server.URL, server.URL)

	_, err := client.CompanyFacts(context.Background(), "0000000000")
	if err == nil {
		t.Fatal("Expected error for 404 response")
	}
}

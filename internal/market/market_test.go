package market

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func floatPtr(v float64) *float64 { return &v }

func TestMapSymbol(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"sol", "SOL"},
		{"SOL", "SOL"},
		{"aptos", "APT"},
		{"Sonic Labs (prev. Fantom)", "FTM"},
		{"sky (formerly makerdao)", "SKY"},
	}
	for _, tt := range tests {
		if got := MapSymbol(tt.in); got != tt.want {
			t.Errorf("MapSymbol(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestFormatters(t *testing.T) {
	if got := formatBillionsUSD(floatPtr(45_123_000_000)); got != "$45.12 billion" {
		t.Errorf("Unexpected market cap: %q", got)
	}
	if got := formatVolume(floatPtr(2_010_000_000)); got != "$2010.00 million (24h)" {
		t.Errorf("Unexpected volume: %q", got)
	}
	if got := formatSupply(floatPtr(467_220_000), "SOL"); got != "467.22 million SOL" {
		t.Errorf("Unexpected supply: %q", got)
	}

	if got := formatBillionsUSD(nil); got != "N/A" {
		t.Errorf("Expected N/A for nil, got %q", got)
	}
	if got := formatVolume(floatPtr(0)); got != "N/A" {
		t.Errorf("Expected N/A for zero, got %q", got)
	}
	if got := formatSupply(nil, "SOL"); got != "N/A" {
		t.Errorf("Expected N/A for nil supply, got %q", got)
	}
}

func TestQuote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-CMC_PRO_API_KEY") != "test-key" {
			t.Errorf("Expected API key header, got %q", r.Header.Get("X-CMC_PRO_API_KEY"))
		}
		if got := r.URL.Query().Get("symbol"); got != "SOL" {
			t.Errorf("Expected symbol SOL, got %q", got)
		}
		w.Write([]byte(`{"data": {"SOL": {
			"circulating_supply": 467220000,
			"total_supply": 580000000,
			"quote": {"USD": {"market_cap": 45123000000, "volume_24h": 2010000000}}
		}}}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", srv.URL, time.Second)
	stats, err := client.Quote(context.Background(), "sol")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if stats.MarketCap != "$45.12 billion" {
		t.Errorf("Unexpected market cap: %q", stats.MarketCap)
	}
	if stats.TradingVolume != "$2010.00 million (24h)" {
		t.Errorf("Unexpected volume: %q", stats.TradingVolume)
	}
	if stats.CirculatingSupply != "467.22 million SOL" {
		t.Errorf("Unexpected circulating supply: %q", stats.CirculatingSupply)
	}
	if stats.TotalSupply != "580.00 million SOL" {
		t.Errorf("Unexpected total supply: %q", stats.TotalSupply)
	}
}

func TestQuoteNullFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": {"SOL": {
			"circulating_supply": null,
			"total_supply": null,
			"quote": {"USD": {"market_cap": 45123000000, "volume_24h": null}}
		}}}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", srv.URL, time.Second)
	stats, err := client.Quote(context.Background(), "sol")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if stats.TradingVolume != "N/A" || stats.CirculatingSupply != "N/A" || stats.TotalSupply != "N/A" {
		t.Errorf("Expected N/A for null fields, got %+v", stats)
	}
}

func TestQuoteSymbolNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": {}}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", srv.URL, time.Second)
	if _, err := client.Quote(context.Background(), "sol"); err == nil {
		t.Fatal("Expected error for missing symbol")
	}
}

func TestQuoteErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewClient("test-key", srv.URL, time.Second)
	if _, err := client.Quote(context.Background(), "sol"); err == nil {
		t.Fatal("Expected error for non-200 status")
	}
}

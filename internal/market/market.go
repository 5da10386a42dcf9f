package market

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"coinbrief/internal/core"
	"coinbrief/internal/logger"
)

// DefaultBaseURL is the CoinMarketCap quotes endpoint.
const DefaultBaseURL = "https://pro-api.coinmarketcap.com/v1/cryptocurrency/quotes/latest"

// symbolMapping covers projects whose roster symbol differs from the symbol
// CoinMarketCap lists them under.
var symbolMapping = map[string]string{
	"aptos":                     "APT",
	"sonic labs (prev. fantom)": "FTM",
	"sky (formerly makerdao)":   "SKY",
	"benqi liquid staked avax":  "QI",
	"venus usdt":                "VUSDT",
}

// Client fetches market statistics from CoinMarketCap.
type Client struct {
	client  *http.Client
	apiKey  string
	baseURL string
}

// NewClient creates a market data client. baseURL falls back to the
// production endpoint when empty.
func NewClient(apiKey, baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		client:  &http.Client{Timeout: timeout},
		apiKey:  apiKey,
		baseURL: baseURL,
	}
}

// MapSymbol resolves a roster symbol to the CoinMarketCap listing symbol.
func MapSymbol(symbol string) string {
	if mapped, ok := symbolMapping[strings.ToLower(symbol)]; ok {
		return mapped
	}
	return strings.ToUpper(symbol)
}

// quoteResponse mirrors the slice of the CMC payload we consume. Numeric
// fields are pointers because the API returns null for unlisted supplies.
type quoteResponse struct {
	Data map[string]struct {
		CirculatingSupply *float64 `json:"circulating_supply"`
		TotalSupply       *float64 `json:"total_supply"`
		Quote             struct {
			USD struct {
				MarketCap *float64 `json:"market_cap"`
				Volume24h *float64 `json:"volume_24h"`
			} `json:"USD"`
		} `json:"quote"`
	} `json:"data"`
}

// Quote fetches market statistics for one symbol, pre-formatted for
// display. Fields the API had no figure for carry "N/A".
func (c *Client) Quote(ctx context.Context, symbol string) (*core.MarketStats, error) {
	cmcSymbol := MapSymbol(symbol)

	reqURL := fmt.Sprintf("%s?%s", c.baseURL, url.Values{
		"symbol":  {cmcSymbol},
		"convert": {"USD"},
	}.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accepts", "application/json")
	req.Header.Set("X-CMC_PRO_API_KEY", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch quote for %s: %w", cmcSymbol, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("quote request for %s returned status %d: %s", cmcSymbol, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload quoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode quote response: %w", err)
	}

	coin, ok := payload.Data[cmcSymbol]
	if !ok {
		logger.Warn("Symbol not found in quote response", "symbol", cmcSymbol)
		return nil, fmt.Errorf("symbol %s not found in quote response", cmcSymbol)
	}

	stats := &core.MarketStats{
		MarketCap:         formatBillionsUSD(coin.Quote.USD.MarketCap),
		TradingVolume:     formatVolume(coin.Quote.USD.Volume24h),
		CirculatingSupply: formatSupply(coin.CirculatingSupply, cmcSymbol),
		TotalSupply:       formatSupply(coin.TotalSupply, cmcSymbol),
	}
	return stats, nil
}

const notAvailable = "N/A"

func formatBillionsUSD(v *float64) string {
	if v == nil || *v == 0 {
		return notAvailable
	}
	return fmt.Sprintf("$%.2f billion", *v/1e9)
}

func formatVolume(v *float64) string {
	if v == nil || *v == 0 {
		return notAvailable
	}
	return fmt.Sprintf("$%.2f million (24h)", *v/1e6)
}

func formatSupply(v *float64, symbol string) string {
	if v == nil || *v == 0 {
		return notAvailable
	}
	return fmt.Sprintf("%.2f million %s", *v/1e6, symbol)
}

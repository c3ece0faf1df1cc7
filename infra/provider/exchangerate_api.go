package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/amirasaad/fxconvert/pkg/config"
	"github.com/amirasaad/fxconvert/pkg/exchange"
)

// ExchangeRateAPIProvider implements exchange.RateSource for exchangerate-api.com.
type ExchangeRateAPIProvider struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// ExchangeRateAPIResponseV4 represents the open v4 response from the ExchangeRate API
// Example: { "base": "USD", "date": "2024-01-01", "time_last_updated": 1704067201, "rates": { "USD": 1, "BRL": 4.85 } }
type ExchangeRateAPIResponseV4 struct {
	Provider        string             `json:"provider"`
	Terms           string             `json:"terms"`
	Base            string             `json:"base"`
	Date            string             `json:"date"`
	TimeLastUpdated int64              `json:"time_last_updated"`
	Rates           map[string]float64 `json:"rates"`
}

// NewExchangeRateAPIProvider creates a new ExchangeRate API provider using config
func NewExchangeRateAPIProvider(
	cfg *config.ExchangeRate,
	httpClient *http.Client,
	logger *slog.Logger,
) *ExchangeRateAPIProvider {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.HTTPTimeout}
	}
	return &ExchangeRateAPIProvider{
		baseURL:    strings.TrimRight(cfg.ApiUrl, "/"),
		httpClient: httpClient,
		logger:     logger.With("provider", "exchangerate-api"),
	}
}

// FetchRates fetches every rate relative to base.
func (p *ExchangeRateAPIProvider) FetchRates(ctx context.Context, base string) (*exchange.Quote, error) {
	endpoint := fmt.Sprintf("%s/%s", p.baseURL, url.PathEscape(base))
	p.logger.Debug("Fetching exchange rates from API", "url", endpoint)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &exchange.ProviderError{
			Provider:   p.Name(),
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("API returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))),
		}
	}

	var apiResp ExchangeRateAPIResponseV4
	if err = json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(apiResp.Rates) == 0 {
		return nil, fmt.Errorf("response for %s carries no rates", base)
	}

	asOf := time.Now().UTC()
	if apiResp.TimeLastUpdated > 0 {
		asOf = time.Unix(apiResp.TimeLastUpdated, 0).UTC()
	}

	quoteBase := apiResp.Base
	if quoteBase == "" {
		quoteBase = base
	}

	return &exchange.Quote{
		Base:  exchange.NormalizeCode(quoteBase),
		Rates: apiResp.Rates,
		AsOf:  asOf,
	}, nil
}

// Name returns the provider's name
func (p *ExchangeRateAPIProvider) Name() string {
	return "exchangerate-api"
}

// Ensure ExchangeRateAPIProvider implements exchange.RateSource
var _ exchange.RateSource = (*ExchangeRateAPIProvider)(nil)

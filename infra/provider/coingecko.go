package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/amirasaad/fxconvert/pkg/config"
	"github.com/amirasaad/fxconvert/pkg/exchange"
)

// CoinGeckoProvider implements exchange.PriceSource using the CoinGecko
// simple price endpoint.
type CoinGeckoProvider struct {
	baseURL    string
	assets     map[string]string // coingecko id -> table code
	httpClient *http.Client
	logger     *slog.Logger
}

// SimplePriceResponse is keyed by coin id then by lower-case vs currency.
// Example: { "bitcoin": { "usd": 67187.33 } }
type SimplePriceResponse map[string]map[string]float64

// NewCoinGeckoProvider creates a new CoinGecko provider using config
func NewCoinGeckoProvider(
	cfg *config.Crypto,
	httpClient *http.Client,
	logger *slog.Logger,
) *CoinGeckoProvider {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.HTTPTimeout}
	}
	assets := make(map[string]string, len(cfg.Assets))
	for id, code := range cfg.Assets {
		assets[strings.ToLower(strings.TrimSpace(id))] = exchange.NormalizeCode(code)
	}
	return &CoinGeckoProvider{
		baseURL:    strings.TrimRight(cfg.ApiUrl, "/"),
		assets:     assets,
		httpClient: httpClient,
		logger:     logger.With("provider", "coingecko"),
	}
}

// FetchPrices returns the price of one unit of every configured asset in vs.
// An asset missing from the response is left out; a response with none of
// them is an error.
func (p *CoinGeckoProvider) FetchPrices(ctx context.Context, vs string) (map[string]float64, error) {
	if len(p.assets) == 0 {
		return map[string]float64{}, nil
	}
	vs = strings.ToLower(strings.TrimSpace(vs))

	ids := make([]string, 0, len(p.assets))
	for id := range p.assets {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	query := url.Values{}
	query.Set("ids", strings.Join(ids, ","))
	query.Set("vs_currencies", vs)
	endpoint := p.baseURL + "/simple/price?" + query.Encode()
	p.logger.Debug("Fetching asset prices", "url", endpoint)

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

	var apiResp SimplePriceResponse
	if err = json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	prices := make(map[string]float64, len(p.assets))
	for id, code := range p.assets {
		quotes, ok := apiResp[id]
		if !ok {
			p.logger.Warn("Asset missing from response", "id", id)
			continue
		}
		price, ok := quotes[vs]
		if !ok {
			p.logger.Warn("Asset not quoted in currency", "id", id, "vs", vs)
			continue
		}
		prices[code] = price
	}
	if len(prices) == 0 {
		return nil, fmt.Errorf("no asset quoted in %s", strings.ToUpper(vs))
	}
	return prices, nil
}

// Name returns the provider's name
func (p *CoinGeckoProvider) Name() string {
	return "coingecko"
}

// Ensure CoinGeckoProvider implements exchange.PriceSource
var _ exchange.PriceSource = (*CoinGeckoProvider)(nil)

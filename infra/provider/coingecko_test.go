package provider

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/amirasaad/fxconvert/pkg/config"
	"github.com/amirasaad/fxconvert/pkg/exchange"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCoinGecko(t *testing.T, assets map[string]string, handler http.HandlerFunc) *CoinGeckoProvider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	cfg := &config.Crypto{Enabled: true, ApiUrl: srv.URL + "/api/v3", Assets: assets, HTTPTimeout: time.Second}
	return NewCoinGeckoProvider(cfg, srv.Client(), discardLogger())
}

func TestCoinGeckoProvider_FetchPrices(t *testing.T) {
	p := newCoinGecko(t, map[string]string{"bitcoin": "btc"}, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v3/simple/price", r.URL.Path)
		assert.Equal(t, "bitcoin", r.URL.Query().Get("ids"))
		assert.Equal(t, "usd", r.URL.Query().Get("vs_currencies"))
		_, _ = io.WriteString(w, `{"bitcoin":{"usd":50000}}`)
	})

	prices, err := p.FetchPrices(context.Background(), "USD")
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"BTC": 50000}, prices)
	assert.Equal(t, "coingecko", p.Name())
}

func TestCoinGeckoProvider_MultipleAssetsPartialResponse(t *testing.T) {
	assets := map[string]string{"bitcoin": "BTC", "ethereum": "ETH"}
	p := newCoinGecko(t, assets, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "bitcoin,ethereum", r.URL.Query().Get("ids"))
		_, _ = io.WriteString(w, `{"bitcoin":{"eur":46000}}`)
	})

	prices, err := p.FetchPrices(context.Background(), "eur")
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"BTC": 46000}, prices)
}

func TestCoinGeckoProvider_BaseNotQuoted(t *testing.T) {
	p := newCoinGecko(t, map[string]string{"bitcoin": "BTC"}, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"bitcoin":{}}`)
	})

	_, err := p.FetchPrices(context.Background(), "XAF")
	assert.ErrorContains(t, err, "no asset quoted in XAF")
}

func TestCoinGeckoProvider_Errors(t *testing.T) {
	t.Run("rate limited", func(t *testing.T) {
		p := newCoinGecko(t, map[string]string{"bitcoin": "BTC"}, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		})
		_, err := p.FetchPrices(context.Background(), "usd")
		var perr *exchange.ProviderError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, http.StatusTooManyRequests, perr.StatusCode)
	})

	t.Run("malformed json", func(t *testing.T) {
		p := newCoinGecko(t, map[string]string{"bitcoin": "BTC"}, func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `{"bitcoin": 1}`)
		})
		_, err := p.FetchPrices(context.Background(), "usd")
		assert.ErrorContains(t, err, "failed to decode response")
	})
}

func TestCoinGeckoProvider_NoAssets(t *testing.T) {
	p := newCoinGecko(t, nil, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})
	prices, err := p.FetchPrices(context.Background(), "usd")
	require.NoError(t, err)
	assert.Empty(t, prices)
}

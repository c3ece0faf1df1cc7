package exchange

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_LoadEmpty(t *testing.T) {
	s := NewStore("BTC")
	assert.Nil(t, s.Load())

	_, ok := s.Load().Rate("USD")
	assert.False(t, ok)
}

func TestUpdate_InstallPrimary(t *testing.T) {
	s := NewStore("BTC")
	rates := map[string]float64{"USD": 1, "brl": 5.1, "EUR": 0.92}
	asOf := time.Date(2024, 1, 1, 0, 0, 1, 0, time.UTC)

	table := s.Begin("usd").InstallPrimary(rates, "exchangerate-api", asOf)
	require.NotNil(t, table)
	assert.Same(t, table, s.Load())
	assert.Equal(t, "USD", table.Base)
	assert.Equal(t, asOf, table.FetchedAt)
	assert.Equal(t, 3, table.Len())

	for code, want := range rates {
		got, ok := table.Rate(code)
		require.True(t, ok, code)
		assert.InDelta(t, want, got, 1e-12)
		assert.Equal(t, "exchangerate-api", table.Source(code))
	}
}

func TestUpdate_InstallPrimaryZeroAsOf(t *testing.T) {
	s := NewStore()
	before := time.Now().UTC()
	table := s.Begin("USD").InstallPrimary(map[string]float64{"USD": 1}, "primary", time.Time{})
	assert.False(t, table.FetchedAt.Before(before.Add(-time.Second)))
}

func TestUpdate_InstallPrimaryKeepsAssetKeys(t *testing.T) {
	s := NewStore("BTC")
	table := s.Begin("USD").InstallPrimary(map[string]float64{"USD": 1, "BTC": 0.00002}, "primary", time.Time{})

	rate, ok := table.Rate("BTC")
	require.True(t, ok)
	assert.InDelta(t, 0.00002, rate, 1e-12)
	assert.Equal(t, "primary", table.Source("BTC"))
	assert.True(t, s.IsAsset("btc"))
}

func TestUpdate_AssetAfterPrimary(t *testing.T) {
	s := NewStore("BTC")
	u := s.Begin("USD")
	first := u.InstallPrimary(map[string]float64{"USD": 1, "BTC": 0.00003}, "primary", time.Time{})

	table := u.SetAsset("BTC", 0.00002, "coingecko")
	require.NotNil(t, table)
	assert.NotSame(t, first, table)
	assert.Equal(t, first.ID, table.ID)

	// the published snapshot is never mutated
	rate, _ := first.Rate("BTC")
	assert.InDelta(t, 0.00003, rate, 1e-12)

	rate, ok := s.Load().Rate("BTC")
	require.True(t, ok)
	assert.InDelta(t, 0.00002, rate, 1e-12)
	assert.Equal(t, "coingecko", s.Load().Source("BTC"))
}

func TestUpdate_AssetBeforePrimary(t *testing.T) {
	s := NewStore("BTC")
	u := s.Begin("USD")

	assert.Nil(t, u.SetAsset("BTC", 0.00002, "coingecko"))
	assert.Nil(t, s.Load())

	table := u.InstallPrimary(map[string]float64{"USD": 1, "EUR": 0.9, "BTC": 0.00003}, "primary", time.Time{})
	rate, ok := table.Rate("BTC")
	require.True(t, ok)
	assert.InDelta(t, 0.00002, rate, 1e-12)
	assert.Equal(t, "coingecko", table.Source("BTC"))
}

func TestUpdate_FailDiscardsAssetQuotes(t *testing.T) {
	s := NewStore("BTC")
	prev := s.Begin("USD")
	prev.InstallPrimary(map[string]float64{"USD": 1}, "primary", time.Time{})
	prev.SetAsset("BTC", 0.00002, "coingecko")
	before := s.Load()

	t.Run("quote before failure", func(t *testing.T) {
		u := s.Begin("USD")
		assert.Nil(t, u.SetAsset("BTC", 0.00005, "coingecko"))
		u.Fail()
		assert.Same(t, before, s.Load())
	})

	t.Run("quote after failure", func(t *testing.T) {
		u := s.Begin("USD")
		u.Fail()
		assert.Nil(t, u.SetAsset("BTC", 0.00005, "coingecko"))
		assert.Same(t, before, s.Load())
	})

	rate, _ := s.Load().Rate("BTC")
	assert.InDelta(t, 0.00002, rate, 1e-12)
}

func TestUpdate_HeldQuotesDoNotOutliveCycle(t *testing.T) {
	s := NewStore("BTC")
	stale := s.Begin("USD")
	assert.Nil(t, stale.SetAsset("BTC", 0.00009, "coingecko"))
	stale.Fail()

	table := s.Begin("USD").InstallPrimary(map[string]float64{"USD": 1}, "primary", time.Time{})
	_, ok := table.Rate("BTC")
	assert.False(t, ok)
}

func TestUpdate_RefreshKeepsAssetForSameBase(t *testing.T) {
	s := NewStore("BTC")
	u := s.Begin("USD")
	u.InstallPrimary(map[string]float64{"USD": 1}, "primary", time.Time{})
	u.SetAsset("BTC", 0.00002, "coingecko")

	table := s.Begin("USD").InstallPrimary(map[string]float64{"USD": 1, "EUR": 0.91}, "primary", time.Time{})
	rate, ok := table.Rate("BTC")
	assert.True(t, ok)
	assert.InDelta(t, 0.00002, rate, 1e-12)
}

func TestUpdate_BaseChangeDropsAsset(t *testing.T) {
	s := NewStore("BTC")
	usd := s.Begin("USD")
	usd.InstallPrimary(map[string]float64{"USD": 1}, "primary", time.Time{})
	usd.SetAsset("BTC", 0.00002, "coingecko")

	table := s.Begin("EUR").InstallPrimary(map[string]float64{"EUR": 1, "USD": 1.1}, "primary", time.Time{})
	_, ok := table.Rate("BTC")
	assert.False(t, ok)

	// a late quote of the USD cycle does not land in the EUR table
	assert.Nil(t, usd.SetAsset("BTC", 0.00002, "coingecko"))
	_, ok = s.Load().Rate("BTC")
	assert.False(t, ok)
}

func TestStore_ConcurrentReadersSeeWholeTables(t *testing.T) {
	s := NewStore("BTC")
	s.Begin("USD").InstallPrimary(map[string]float64{"USD": 1, "EUR": 0.9, "BRL": 5}, "primary", time.Time{})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		u := s.Begin("USD")
		wg.Add(2)
		go func() {
			defer wg.Done()
			u.InstallPrimary(map[string]float64{"USD": 1, "EUR": 0.9, "BRL": 5}, "primary", time.Time{})
		}()
		go func() {
			defer wg.Done()
			u.SetAsset("BTC", 0.00002, "coingecko")
		}()
	}
	for i := 0; i < 100; i++ {
		table := s.Load()
		assert.GreaterOrEqual(t, table.Len(), 3)
	}
	wg.Wait()
}

// Package mocks holds testify mocks of the exchange source interfaces.
package mocks

import (
	"context"

	"github.com/amirasaad/fxconvert/pkg/exchange"
	"github.com/stretchr/testify/mock"
)

// RateSource is a mock type for the exchange.RateSource type
type RateSource struct {
	mock.Mock
}

// FetchRates provides a mock function with given fields: ctx, base
func (m *RateSource) FetchRates(ctx context.Context, base string) (*exchange.Quote, error) {
	ret := m.Called(ctx, base)
	var quote *exchange.Quote
	if v := ret.Get(0); v != nil {
		quote = v.(*exchange.Quote)
	}
	return quote, ret.Error(1)
}

// Name provides a mock function with no fields
func (m *RateSource) Name() string {
	return m.Called().String(0)
}

// NewRateSource creates a new instance of RateSource. It also registers a
// cleanup function to assert the mock's expectations.
func NewRateSource(t interface {
	mock.TestingT
	Cleanup(func())
}) *RateSource {
	m := &RateSource{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// PriceSource is a mock type for the exchange.PriceSource type
type PriceSource struct {
	mock.Mock
}

// FetchPrices provides a mock function with given fields: ctx, vs
func (m *PriceSource) FetchPrices(ctx context.Context, vs string) (map[string]float64, error) {
	ret := m.Called(ctx, vs)
	var prices map[string]float64
	if v := ret.Get(0); v != nil {
		prices = v.(map[string]float64)
	}
	return prices, ret.Error(1)
}

// Name provides a mock function with no fields
func (m *PriceSource) Name() string {
	return m.Called().String(0)
}

// NewPriceSource creates a new instance of PriceSource. It also registers a
// cleanup function to assert the mock's expectations.
func NewPriceSource(t interface {
	mock.TestingT
	Cleanup(func())
}) *PriceSource {
	m := &PriceSource{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

var (
	_ exchange.RateSource  = (*RateSource)(nil)
	_ exchange.PriceSource = (*PriceSource)(nil)
)

package main

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/amirasaad/fxconvert/pkg/exchange"
	"github.com/stretchr/testify/assert"
)

func setupUpstream(t *testing.T) *atomic.Int32 {
	t.Helper()
	calls := new(atomic.Int32)
	mux := http.NewServeMux()
	mux.HandleFunc("/v4/latest/", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		base := strings.TrimPrefix(r.URL.Path, "/v4/latest/")
		if base != "USD" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = io.WriteString(w, `{"base":"USD","rates":{"USD":1,"BRL":5,"EUR":0.9}}`)
	})
	mux.HandleFunc("/api/v3/simple/price", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"bitcoin":{"usd":50000}}`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	chdir(t, t.TempDir())
	t.Setenv("EXCHANGE_RATE_API_URL", srv.URL+"/v4/latest")
	t.Setenv("CRYPTO_API_URL", srv.URL+"/api/v3")
	t.Setenv("LOG_LEVEL", "8")
	return calls
}

func TestRun_Convert(t *testing.T) {
	setupUpstream(t)
	var stdout, stderr bytes.Buffer

	code := run([]string{"convert", "10", "usd", "brl"}, &stdout, &stderr)
	assert.Equal(t, 0, code, stderr.String())
	assert.Equal(t, "$10.00 = R$ 50,00\n", stdout.String())
}

func TestRun_ConvertInvalidAmountSkipsFetch(t *testing.T) {
	calls := setupUpstream(t)
	var stdout, stderr bytes.Buffer

	code := run([]string{"convert", "abc", "USD", "BRL"}, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), exchange.MessageInvalidAmount)
	assert.Zero(t, calls.Load())
}

func TestRun_ConvertUnknownCode(t *testing.T) {
	setupUpstream(t)
	var stdout, stderr bytes.Buffer

	code := run([]string{"convert", "1", "USD", "GBP"}, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), exchange.MessageRatesUnavailable)
}

func TestRun_Rates(t *testing.T) {
	setupUpstream(t)
	var stdout, stderr bytes.Buffer

	code := run([]string{"rates"}, &stdout, &stderr)
	assert.Equal(t, 0, code, stderr.String())
	out := stdout.String()
	assert.Contains(t, out, "Rates for 1 USD")
	assert.Contains(t, out, "BTC")
	assert.Contains(t, out, "(coingecko)")
	assert.Contains(t, out, "(exchangerate-api)")
}

func TestRun_RatesUpstreamFailure(t *testing.T) {
	setupUpstream(t)
	var stdout, stderr bytes.Buffer

	code := run([]string{"rates", "XXX"}, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "Error fetching rates")
}

func TestRun_Currencies(t *testing.T) {
	setupUpstream(t)
	var stdout, stderr bytes.Buffer

	code := run([]string{"currencies"}, &stdout, &stderr)
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout.String(), "Real Brasileiro")
	assert.Contains(t, stdout.String(), "Franco Suíço")

	t.Setenv("CURRENCY_LOAD_EXTRA", "false")
	stdout.Reset()
	assert.Equal(t, 0, run([]string{"currencies"}, &stdout, &stderr))
	assert.Equal(t, 6, strings.Count(stdout.String(), "\n"))
}

func TestRun_InvalidCode(t *testing.T) {
	calls := setupUpstream(t)
	var stdout, stderr bytes.Buffer

	assert.Equal(t, 2, run([]string{"convert", "1", "U$", "BRL"}, &stdout, &stderr))
	assert.Equal(t, 2, run([]string{"rates", "us"}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "Invalid currency code")
	assert.Zero(t, calls.Load())
}

func TestRun_Usage(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 2, run(nil, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "Usage")

	setupUpstream(t)
	stderr.Reset()
	assert.Equal(t, 2, run([]string{"bogus"}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "Unknown command")
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, added in Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}

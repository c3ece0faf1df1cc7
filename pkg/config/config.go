package config

import (
	"time"
)

type Log struct {
	Level      int    `envconfig:"LEVEL" default:"0"`
	Format     string `envconfig:"FORMAT" default:"text"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"2006-01-02 15:04:05"`
	Prefix     string `envconfig:"PREFIX" default:"[fxconvert]"`
}

type Server struct {
	Scheme string `envconfig:"SCHEME" default:"http"`
	Host   string `envconfig:"HOST" default:"localhost"`
	Port   int    `envconfig:"PORT" default:"3000"`
}

// RateLimit configures the per-client limiter in front of the HTTP API.
type RateLimit struct {
	MaxRequests int           `envconfig:"MAX_REQUESTS" default:"100"`
	Window      time.Duration `envconfig:"WINDOW" default:"1m"`
}

// ExchangeRate configures the primary multi-currency rate API.
type ExchangeRate struct {
	ApiUrl          string        `envconfig:"API_URL" default:"https://api.exchangerate-api.com/v4/latest"`
	Base            string        `envconfig:"BASE" default:"USD"`
	HTTPTimeout     time.Duration `envconfig:"HTTP_TIMEOUT" default:"10s"`
	RefreshInterval time.Duration `envconfig:"REFRESH_INTERVAL" default:"0s"`
}

// Crypto configures the single-asset price API.
// Assets maps CoinGecko ids to the codes used in the rate table.
type Crypto struct {
	Enabled     bool              `envconfig:"ENABLED" default:"true"`
	ApiUrl      string            `envconfig:"API_URL" default:"https://api.coingecko.com/api/v3"`
	Assets      map[string]string `envconfig:"ASSETS" default:"bitcoin:BTC"`
	HTTPTimeout time.Duration     `envconfig:"HTTP_TIMEOUT" default:"10s"`
}

// Currency configures display metadata loaded on top of the built-in set.
// An empty MetaFile loads the bundled extra currencies.
type Currency struct {
	LoadExtra bool   `envconfig:"LOAD_EXTRA" default:"true"`
	MetaFile  string `envconfig:"META_FILE"`
}

type App struct {
	Env          string        `envconfig:"APP_ENV" default:"development"`
	Server       *Server       `envconfig:"SERVER"`
	Log          *Log          `envconfig:"LOG"`
	RateLimit    *RateLimit    `envconfig:"RATE_LIMIT"`
	ExchangeRate *ExchangeRate `envconfig:"EXCHANGE_RATE"`
	Crypto       *Crypto       `envconfig:"CRYPTO"`
	Currency     *Currency     `envconfig:"CURRENCY"`
}

// AssetCodes returns the table codes owned by the crypto price source.
func (c *Crypto) AssetCodes() []string {
	if c == nil || !c.Enabled {
		return nil
	}
	codes := make([]string, 0, len(c.Assets))
	for _, code := range c.Assets {
		codes = append(codes, code)
	}
	return codes
}

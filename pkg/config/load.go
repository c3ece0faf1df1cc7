package config

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// DefaultEnvFiles are tried in order when Load is called without paths.
var DefaultEnvFiles = []string{".env.local", ".env"}

// Load reads the first env file found among envFilePath (or
// DefaultEnvFiles) into the process environment and builds the config
// from it. Missing files are not an error.
func Load(envFilePath ...string) (*App, error) {
	logger := slog.Default()
	logger.Info("Loading environment variables")

	if len(envFilePath) == 0 {
		envFilePath = DefaultEnvFiles
	}

	// First file found wins
	for _, name := range envFilePath {
		path, ok := findEnvFile(name)
		if !ok {
			logger.Debug("Environment file not found", "name", name)
			continue
		}

		logger.Info("Loading environment from file", "path", path)
		if err := godotenv.Load(path); err != nil {
			logger.Error("Failed to load environment file", "path", path, "error", err)
			continue
		}
		return loadFromEnv()
	}

	logger.Info("No environment file found, using process environment")
	return loadFromEnv()
}

// findEnvFile looks for name in the working directory and its parents,
// stopping at the module root (the first directory holding go.mod) so a
// binary run inside the repo never picks up an unrelated file above it.
func findEnvFile(name string) (string, bool) {
	if filepath.IsAbs(name) {
		_, err := os.Stat(name)
		return name, err == nil
	}
	dir, err := os.Getwd()
	if err != nil {
		return "", false
	}
	for {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return "", false
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

func loadFromEnv() (*App, error) {
	var cfg App
	err := envconfig.Process("", &cfg)
	if err != nil {
		return nil, err
	}

	if cfg.Env == "" {
		cfg.Env = "development"
	}

	slog.Default().Info("App config loaded",
		"env", cfg.Env,
		"server_port", cfg.Server.Port,
		"log_format", cfg.Log.Format,
		"exchange_api_url", cfg.ExchangeRate.ApiUrl,
		"exchange_base", cfg.ExchangeRate.Base,
		"exchange_refresh_interval", cfg.ExchangeRate.RefreshInterval,
		"crypto_enabled", cfg.Crypto.Enabled,
		"crypto_api_url", cfg.Crypto.ApiUrl,
		"crypto_assets", cfg.Crypto.Assets,
	)
	return &cfg, nil
}

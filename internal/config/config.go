package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Server settings
	ListenAddr string `json:"listen_addr"`
	Debug      bool   `json:"debug"`

	// Gateway trust
	AllowAnonymous bool   `json:"allow_anonymous"`
	SharedSecret   string `json:"-"`
	GatewaySecret  string `json:"-"`

	// CORS
	CORSOrigins []string `json:"cors_origins"`
}

// DefaultConfig returns configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		ListenAddr:     ":8080",
		Debug:          false,
		AllowAnonymous: false,
		CORSOrigins:    []string{"*"},
	}
}

// Load loads configuration from the environment, honoring a local
// .env file when present
func Load() *Config {
	_ = godotenv.Load()

	cfg := DefaultConfig()

	if addr := os.Getenv("LEDGER_LISTEN_ADDR"); addr != "" {
		cfg.ListenAddr = addr
	}
	if debug := os.Getenv("LEDGER_DEBUG"); debug == "true" || debug == "1" {
		cfg.Debug = true
	}
	if anon := os.Getenv("LEDGER_ALLOW_ANONYMOUS"); anon == "true" || anon == "1" {
		cfg.AllowAnonymous = true
	}
	if secret := os.Getenv("LEDGER_SHARED_SECRET"); secret != "" {
		cfg.SharedSecret = secret
	}
	if secret := os.Getenv("LEDGER_GATEWAY_SECRET"); secret != "" {
		cfg.GatewaySecret = secret
	}
	if origins := os.Getenv("LEDGER_CORS_ORIGINS"); origins != "" {
		cfg.CORSOrigins = splitOrigins(origins)
	}

	return cfg
}

func splitOrigins(s string) []string {
	var origins []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

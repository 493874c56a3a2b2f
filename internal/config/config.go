package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/netip"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            string
	LogLevel        string
	GinMode         string
	ShutdownTimeout time.Duration
	BidRateLimit    float64 // bids per second per client; 0 disables limiting
	BidRateBurst    int
	TrustedProxies  []string // IPs or CIDRs allowed to set X-Forwarded-For; empty trusts none
}

// Load reads an optional .env file and then the process environment
func Load() (*Config, error) {
	// a missing .env is normal; a broken one is not
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: load .env: %w", err)
	}

	shutdownTimeout := 10 * time.Second
	if raw := os.Getenv("SHUTDOWN_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("config: invalid SHUTDOWN_TIMEOUT %q: %w", raw, err)
		}
		shutdownTimeout = d
	}

	bidRate, err := strconv.ParseFloat(getEnv("BID_RATE_LIMIT", "0"), 64)
	if err != nil || bidRate < 0 {
		return nil, fmt.Errorf("config: invalid BID_RATE_LIMIT %q", os.Getenv("BID_RATE_LIMIT"))
	}

	bidBurst, err := strconv.Atoi(getEnv("BID_RATE_BURST", "10"))
	if err != nil || bidBurst < 1 {
		return nil, fmt.Errorf("config: invalid BID_RATE_BURST %q", os.Getenv("BID_RATE_BURST"))
	}

	proxies, err := parseProxies(os.Getenv("TRUSTED_PROXIES"))
	if err != nil {
		return nil, err
	}

	return &Config{
		Port:            getEnv("PORT", "8080"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		GinMode:         getEnv("GIN_MODE", "release"),
		ShutdownTimeout: shutdownTimeout,
		BidRateLimit:    bidRate,
		BidRateBurst:    bidBurst,
		TrustedProxies:  proxies,
	}, nil
}

// parseProxies splits a comma-separated list of IPs and CIDRs
func parseProxies(raw string) ([]string, error) {
	var proxies []string
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if _, err := netip.ParsePrefix(p); err != nil {
			if _, err := netip.ParseAddr(p); err != nil {
				return nil, fmt.Errorf("config: invalid TRUSTED_PROXIES entry %q", p)
			}
		}
		proxies = append(proxies, p)
	}
	return proxies, nil
}

// Addr returns the listen address for the HTTP server
func (c *Config) Addr() string {
	return fmt.Sprintf(":%s", c.Port)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

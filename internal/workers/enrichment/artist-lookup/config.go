// internal/workers/enrichment/artist-lookup/config.go
package artistlookup

import "time"

type Config struct {
	Timeout         time.Duration
	CallbackURL     string
	CallbackTimeout time.Duration
	MaxGenres       int
}

func DefaultConfig() *Config {
	return &Config{
		Timeout:         30 * time.Second,
		CallbackURL:     "http://localhost:8080/webhook/artist-result",
		CallbackTimeout: 5 * time.Second,
		MaxGenres:       3,
	}
}

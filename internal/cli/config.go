package cli

import (
	"github.com/caarlos0/env/v11"
)

// Config holds CLI configuration
type Config struct {
	ServerURL string `env:"FATETABLE_SERVER" envDefault:"http://localhost:8080"`
	User      string `env:"FATETABLE_USER"`
	Output    string `env:"FATETABLE_OUTPUT" envDefault:"text"`
	Verbose   bool
}

// DefaultConfig returns a Config with default values, overridden by any
// FATETABLE_* environment variables
func DefaultConfig() *Config {
	c := &Config{}
	if err := env.Parse(c); err != nil {
		// Only malformed values fail to parse; fall back to the defaults
		return &Config{ServerURL: "http://localhost:8080", Output: "text"}
	}
	return c
}

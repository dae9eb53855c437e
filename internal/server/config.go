package server

import (
	"encoding/json"
	"os"
	"time"
)

// Config collects the server and engine settings accepted at startup.
// Values from a JSON file override the defaults, command line flags
// override both.
type Config struct {
	Addr        string `json:"addr"`
	Hash        int    `json:"hash"`
	Difficulty  string `json:"difficulty"`
	Depth       int    `json:"depth"`
	TimeLimitMs int    `json:"time_limit_ms"`
}

func DefaultConfig() Config {
	return Config{
		Addr:       ":8080",
		Hash:       16,
		Difficulty: "medium",
	}
}

// LoadConfig reads a JSON config file on top of the defaults.
func LoadConfig(path string) (Config, error) {
	var cfg = DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// TimeLimit returns the per-search wall clock limit, zero when unset.
func (c Config) TimeLimit() time.Duration {
	return time.Duration(c.TimeLimitMs) * time.Millisecond
}

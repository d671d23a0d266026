package config

import (
	"fmt"
	"math/big"
	"os"
	"strconv"
	"strings"
)

// Config holds the instantiation parameters a demo CLI needs to stand
// up a blockchain, mine it, and verify proofs against it.
type Config struct {
	// Difficulty is the proof-of-work target every mined block's hash
	// must fall under, as a hex-encoded big integer.
	Difficulty string

	// Coinbase is the fixed reward every block's coinbase transaction pays.
	Coinbase int64

	// NumBlocks is how many blocks to pre-generate when bootstrapping a
	// demo chain.
	NumBlocks uint64

	// K is the suffix proof's stability parameter (spec §4.D).
	K int

	// M is the infix proof's goodness parameter (spec §4.D).
	M int

	// LogLevel is one of debug/info/warn/error.
	LogLevel string
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Difficulty: "0" + strings.Repeat("f", 39), // one leading zero nibble: a low, demo-friendly difficulty
		Coinbase:   50,
		NumBlocks:  100,
		K:          6,
		M:          15,
		LogLevel:   "info",
	}
}

// LoadFromEnv loads configuration from environment variables, falling
// back to DefaultConfig for anything unset.
func LoadFromEnv() *Config {
	cfg := DefaultConfig()

	if difficulty := os.Getenv("DIFFICULTY"); difficulty != "" {
		cfg.Difficulty = difficulty
	}

	if coinbase := os.Getenv("COINBASE"); coinbase != "" {
		if v, err := strconv.ParseInt(coinbase, 10, 64); err == nil {
			cfg.Coinbase = v
		}
	}

	if numBlocks := os.Getenv("NUM_BLOCKS"); numBlocks != "" {
		if v, err := strconv.ParseUint(numBlocks, 10, 64); err == nil {
			cfg.NumBlocks = v
		}
	}

	if k := os.Getenv("NIPOPOW_K"); k != "" {
		if v, err := strconv.Atoi(k); err == nil {
			cfg.K = v
		}
	}

	if m := os.Getenv("NIPOPOW_M"); m != "" {
		if v, err := strconv.Atoi(m); err == nil {
			cfg.M = v
		}
	}

	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		cfg.LogLevel = logLevel
	}

	return cfg
}

// Validate checks that the configuration describes a usable chain.
func (c *Config) Validate() error {
	if _, ok := new(big.Int).SetString(c.Difficulty, 16); !ok {
		return fmt.Errorf("invalid difficulty hex: %s", c.Difficulty)
	}
	if c.Coinbase <= 0 {
		return fmt.Errorf("coinbase reward must be positive, got %d", c.Coinbase)
	}
	if c.K <= 0 {
		return fmt.Errorf("k must be positive, got %d", c.K)
	}
	if c.M <= 0 {
		return fmt.Errorf("m must be positive, got %d", c.M)
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	return nil
}

// String returns a human-readable summary of the configuration.
func (c *Config) String() string {
	return fmt.Sprintf(`Chain configuration:
  Difficulty: %s
  Coinbase:   %d
  NumBlocks:  %d
  K:          %d
  M:          %d
  LogLevel:   %s`,
		c.Difficulty, c.Coinbase, c.NumBlocks, c.K, c.M, c.LogLevel,
	)
}

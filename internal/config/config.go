// Package config loads and holds all pipeline tuning configuration.
// Settings are layered: defaults → redact-config.json → environment variables (env vars win).
package config

import (
	"encoding/json"
	"log"
	"os"
	"strconv"
)

// Config holds the full set of pipeline tuning knobs.
type Config struct {
	LogLevel string `json:"logLevel"`

	// FuzzyMatcher (Component E).
	MaxEditDistance int  `json:"maxEditDistance"`
	EnablePhonetic  bool `json:"enablePhonetic"`
	MinTermLength   int  `json:"minTermLength"`
	FuzzyCacheSize  int  `json:"fuzzyCacheSize"`

	// ChaosAnalyzer (Component G).
	ChaosCacheSize int `json:"chaosCacheSize"`

	// WeightedPHIScorer (Component J).
	DecisionThreshold float64 `json:"decisionThreshold"`

	// StreamingKernel (Component L).
	StreamMode       string `json:"streamMode"` // "sentence" or "immediate"
	StreamBufferSize int    `json:"streamBufferSize"`
	StreamOverlap    int    `json:"streamOverlap"`
}

// Load returns config with defaults overridden by redact-config.json and env vars.
func Load() *Config {
	cfg := defaults()
	loadFile(cfg, "redact-config.json")
	loadEnv(cfg)
	return cfg
}

func defaults() *Config {
	return &Config{
		LogLevel:          "info",
		MaxEditDistance:   2,
		EnablePhonetic:    true,
		MinTermLength:     3,
		FuzzyCacheSize:    10000,
		ChaosCacheSize:    100,
		DecisionThreshold: 0.50,
		StreamMode:        "sentence",
		StreamBufferSize:  4096,
		StreamOverlap:     64,
	}
}

func loadFile(cfg *Config, path string) {
	data, err := os.ReadFile(path) //nolint:gosec // G703: path is a controlled config file path, not user input
	if err != nil {
		return // file is optional
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		log.Printf("[CONFIG] Warning: could not parse %s: %v", path, err)
	} else {
		log.Printf("[CONFIG] Loaded %s", path)
	}
}

func loadEnv(cfg *Config) {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("MAX_EDIT_DISTANCE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxEditDistance = n
		}
	}
	if v := os.Getenv("ENABLE_PHONETIC"); v == "false" {
		cfg.EnablePhonetic = false
	}
	if v := os.Getenv("MIN_TERM_LENGTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MinTermLength = n
		}
	}
	if v := os.Getenv("FUZZY_CACHE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.FuzzyCacheSize = n
		}
	}
	if v := os.Getenv("CHAOS_CACHE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.ChaosCacheSize = n
		}
	}
	if v := os.Getenv("DECISION_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.DecisionThreshold = f
		}
	}
	if v := os.Getenv("STREAM_MODE"); v != "" {
		cfg.StreamMode = v
	}
	if v := os.Getenv("STREAM_BUFFER_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.StreamBufferSize = n
		}
	}
	if v := os.Getenv("STREAM_OVERLAP"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.StreamOverlap = n
		}
	}
}

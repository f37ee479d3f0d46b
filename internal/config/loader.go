package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, an optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if PLANNER_CONFIG is set
//  3. env (prefix PLANNER_)
func Load(ctx context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("PLANNER_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: PLANNER_ADDR, PLANNER_MONGO_URI, ...
	// Keys map to the koanf tags on the struct, underscores preserved.
	envProvider := env.Provider("PLANNER_", ".", func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), "planner_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if cfg.Addr == "" {
		return nil, fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if cfg.MongoURI != "" && cfg.MongoDatabase == "" {
		return nil, fmt.Errorf("%w: mongo_database required with mongo_uri", ErrInvalidConfig)
	}
	if cfg.DefaultPageLimit < 1 || cfg.MaxPageLimit < cfg.DefaultPageLimit {
		return nil, fmt.Errorf("%w: page limits out of range", ErrInvalidConfig)
	}
	return &cfg, nil
}

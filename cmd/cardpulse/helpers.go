package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jonathan/cardpulse/internal/config"
	"github.com/jonathan/cardpulse/internal/store"
)

// configPath is shared by all subcommands via the root --config flag.
var configPath string

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to JSON config file")
}

// loadAppConfig merges the optional config file with built-in defaults and
// the environment. GEMINI_API_KEY wins over the config file for the API key.
func loadAppConfig() (config.Config, error) {
	cfg := config.Config{}
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = *loaded
	}

	cfg = cfg.MergeWithDefaults(config.Defaults())
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		cfg.APIKey = key
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// openStore opens the snapshot database and loads the collection.
func openStore(ctx context.Context, cfg config.Config) (*store.Store, error) {
	st, err := store.Open(cfg.DataPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open store at %s: %w", cfg.DataPath, err)
	}

	outcome, err := st.Load(ctx)
	if err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("failed to load collection: %w", err)
	}
	if outcome == store.RecoveredCorrupt {
		log.Printf("Recovered from a corrupt snapshot; starting with an empty collection")
	}
	return st, nil
}

func scanTimeout(cfg config.Config) time.Duration {
	return time.Duration(cfg.ScanTimeoutSeconds) * time.Second
}

func successReset(cfg config.Config) time.Duration {
	return time.Duration(cfg.SuccessResetSeconds) * time.Second
}

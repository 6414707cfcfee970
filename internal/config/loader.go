package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// EnvPrefix prefixes all environment variable overrides.
const EnvPrefix = "FORMSTORM_"

// Load reads the configuration file at path, layered over Default and
// under any FORMSTORM_* environment overrides. A missing file is not an
// error; the defaults apply.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Defaults apply.
		case err != nil:
			return cfg, fmt.Errorf("reading config file %s: %w", path, err)
		default:
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parsing config file %s: %w", path, err)
			}
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Parse decodes TOML bytes over the defaults, without environment
// overrides.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// applyEnv overlays FORMSTORM_* variables onto cfg.
func applyEnv(cfg *Config) error {
	if v, ok := os.LookupEnv(EnvPrefix + "MAX_HISTORY"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sMAX_HISTORY: %w", EnvPrefix, err)
		}
		cfg.History.MaxEntries = n
	}
	if v, ok := os.LookupEnv(EnvPrefix + "BATCH_TIMEOUT"); ok {
		var d Duration
		if err := d.UnmarshalText([]byte(v)); err != nil {
			return fmt.Errorf("%sBATCH_TIMEOUT: %w", EnvPrefix, err)
		}
		cfg.History.BatchTimeout = d
	}
	if v, ok := os.LookupEnv(EnvPrefix + "MERGE_ENABLED"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sMERGE_ENABLED: %w", EnvPrefix, err)
		}
		cfg.History.MergeEnabled = b
	}
	if v, ok := os.LookupEnv(EnvPrefix + "PALETTE"); ok {
		cfg.Palette.Path = v
	}
	return nil
}

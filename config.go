package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

const (
	defaultPort            = "8080"
	defaultUploadPerMinute = 5
	defaultPlacePerSecond  = 60
	defaultMaxExtent       = 1000
)

// Config holds the server settings. Values are layered: defaults, then
// the optional TOML file, then environment variables, then CLI flags.
type Config struct {
	Port            string `toml:"port"`
	ProjectID       string `toml:"gcp_project_id"`
	Region          string `toml:"gcp_region"`
	Model           string `toml:"gemini_model"`
	UploadPerMinute int    `toml:"upload_per_minute"`
	PlacePerSecond  int    `toml:"place_per_second"`
	// MaxExtent bounds every word coordinate accepted over HTTP, so the
	// playing area is at most MaxExtent cells on a side.
	MaxExtent       uint   `toml:"max_extent"`
}

// DefaultConfig returns the settings used when nothing else is configured.
func DefaultConfig() Config {
	return Config{
		Port:            defaultPort,
		Region:          defaultRegion,
		Model:           defaultModel,
		UploadPerMinute: defaultUploadPerMinute,
		PlacePerSecond:  defaultPlacePerSecond,
		MaxExtent:       defaultMaxExtent,
	}
}

// LoadConfig reads path (if non-empty) over the defaults and applies
// environment overrides.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(os.Getenv); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	if v := getenv("PORT"); v != "" {
		c.Port = v
	}
	if v := getenv("GCP_PROJECT_ID"); v != "" {
		c.ProjectID = v
	}
	if v := getenv("GCP_REGION"); v != "" {
		c.Region = v
	}
	if v := getenv("GEMINI_MODEL"); v != "" {
		c.Model = v
	}
	if v := getenv("UPLOAD_PER_MINUTE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return fmt.Errorf("UPLOAD_PER_MINUTE: invalid value %q", v)
		}
		c.UploadPerMinute = n
	}
	if v := getenv("PLACE_PER_SECOND"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return fmt.Errorf("PLACE_PER_SECOND: invalid value %q", v)
		}
		c.PlacePerSecond = n
	}
	if v := getenv("MAX_EXTENT"); v != "" {
		n, err := strconv.ParseUint(v, 10, 0)
		if err != nil || n == 0 {
			return fmt.Errorf("MAX_EXTENT: invalid value %q", v)
		}
		c.MaxExtent = uint(n)
	}
	return nil
}

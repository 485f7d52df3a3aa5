package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Load reads the configuration at path. A missing file yields the defaults
// with environment overrides applied.
func Load(path string) (*Config, error) {
	if path == "" {
		path = "./cardtext.yaml"
	}

	cfg := Default()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		mergeEnvVars(cfg)
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigNotFound, err)
	}

	ext := filepath.Ext(path)
	switch ext {
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("%w: JSON parsing failed: %v", ErrInvalidFormat, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("%w: YAML parsing failed: %v", ErrInvalidFormat, err)
		}
	default:
		return nil, fmt.Errorf("%w: unsupported config file format: %s", ErrInvalidFormat, ext)
	}

	cfg.fillDefaults()
	mergeEnvVars(cfg)
	return cfg, nil
}

func mergeEnvVars(cfg *Config) {
	if port := getEnvInt("CARDTEXT_PORT", 0); port != 0 {
		cfg.Server.Port = port
	}
	if address := os.Getenv("CARDTEXT_ADDRESS"); address != "" {
		cfg.Server.Address = address
	}
	if level := os.Getenv("CARDTEXT_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if dpi := getEnvInt("CARDTEXT_DPI", 0); dpi != 0 {
		cfg.Card.DPI = dpi
	}
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

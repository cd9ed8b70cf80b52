package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ManifestPath string // .hcl command declarations and invocations

	LogFormat  string
	LogLevel   string
	Spawn      bool   // spawn built commands instead of printing them
	Invocation string // when set, build only the invocation with this name
}

// NewConfig validates a Config and returns it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ManifestPath == "" {
		return nil, errors.New("ManifestPath is a required configuration field and cannot be empty")
	}

	return &cfg, nil
}

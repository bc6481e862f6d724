package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ModulesPath string // path to a .hcl manifest file or a directory of them
	Entry       string // entrypoint override; empty means use the manifest's entrypoint blocks
	Check       bool   // validate the module graph eagerly and exit without resolving

	LogFormat       string
	LogLevel        string
	HealthcheckPort int
}

// NewConfig validates a Config and returns it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ModulesPath == "" {
		return nil, errors.New("ModulesPath is a required configuration field and cannot be empty")
	}

	return &cfg, nil
}

package config

import (
	"github.com/yndnr/login-challenge-go/internal/infra/confloader"
)

// Load builds the configuration from defaults, the YAML file at path
// (optional), LOGINCHALLENGE_* environment variables and overrides, in
// increasing priority. overrides is keyed by dotted path and usually holds
// command-line flags that were set explicitly.
//
// The result is not verified; call Verify before use.
func Load(path string, overrides map[string]any) (*Config, error) {
	l := confloader.NewLoader(
		confloader.WithDefaults(DefaultMap()),
		confloader.WithConfigFile(path),
		confloader.WithOverrides(overrides),
	)

	cfg := &Config{}
	if err := l.Load(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

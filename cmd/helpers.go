package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/radview/internal/config"
	"github.com/radview/internal/logging"
	"github.com/radview/internal/profile"
	"github.com/radview/internal/service"
)

// setup loads the configuration named by the global --config flag and
// initializes logging from it.
func setup(c *cli.Context) (*config.Config, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	logging.Setup(cfg.Log.Level)
	return cfg, nil
}

// loadProfile resolves the Radicle home (config override first) and loads
// the profile there.
func loadProfile(cfg *config.Config) (*profile.Profile, error) {
	if cfg.Home != "" {
		return profile.LoadAt(profile.Home(cfg.Home))
	}
	return profile.Load()
}

// loadService builds the full service stack for one command invocation.
// The returned close func releases its database handles.
func loadService(c *cli.Context) (*service.Service, func(), error) {
	cfg, err := setup(c)
	if err != nil {
		return nil, nil, err
	}
	p, err := loadProfile(cfg)
	if err != nil {
		return nil, nil, err
	}
	svc, err := service.FromProfile(p)
	if err != nil {
		return nil, nil, err
	}
	return svc, func() { _ = svc.Close() }, nil
}

// printJSON writes a value to stdout as indented JSON.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

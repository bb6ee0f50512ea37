package main

import (
	"context"

	"github.com/KARTHIKRAIG/MEDIMORPH/logger"
	"github.com/KARTHIKRAIG/MEDIMORPH/meddb"
	"github.com/KARTHIKRAIG/MEDIMORPH/medrec"
)

// loadConfig resolves the connection config: defaults (with their
// environment overrides), then the optional --config file, then the
// explicit --uri and --database flags.
func loadConfig() (*meddb.Config, error) {
	config := meddb.DefaultConfig()
	if configPath != "" {
		var err error
		if config, err = meddb.LoadConfig(configPath); err != nil {
			return nil, err
		}
	}
	if uriFlag != "" {
		config.URI = uriFlag
	}
	if dbFlag != "" {
		config.Database = dbFlag
	}

	log, err := logger.New()
	if err != nil {
		return nil, err
	}
	config.Logger = log

	return config, nil
}

// withStore wraps a command body in connect/open/disconnect.
func withStore(run func(ctx context.Context, store *medrec.Store) error) error {
	config, err := loadConfig()
	if err != nil {
		return err
	}

	access, err := meddb.Connect(config)
	if err != nil {
		return err
	}
	defer func() {
		_ = access.Disconnect()
	}()

	store, err := medrec.Open(access, config.Logger)
	if err != nil {
		return err
	}

	return run(context.Background(), store)
}

package repomanager

import (
	"fmt"

	"github.com/dmitrijs2005/edupilot/internal/server/config"
)

// Open builds the manager for the configured storage driver.
func Open(cfg *config.Config) (RepositoryManager, error) {
	switch cfg.StorageDriver {
	case config.DriverPostgres:
		m, err := OpenPostgres(cfg.DatabaseDSN)
		if err != nil {
			return nil, err
		}
		return m, nil
	case config.DriverSQLite:
		m, err := OpenSQLite(cfg.DatabaseDSN)
		if err != nil {
			return nil, err
		}
		return m, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

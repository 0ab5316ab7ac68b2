package commands

import (
	"database/sql"

	"github.com/vijay120/duckling-1/am"
	"github.com/vijay120/duckling-1/db"
	"github.com/vijay120/duckling-1/errors"
	"github.com/vijay120/duckling-1/logger"
)

// openDatabase opens and migrates the prediction cache. If dbPath is
// empty the path comes from am config.
func openDatabase(dbPath string) (*sql.DB, error) {
	if dbPath == "" {
		cfg, err := am.Load()
		if err != nil {
			return nil, errors.Wrap(err, "failed to load config")
		}
		dbPath = cfg.GetDatabasePath()
	}

	database, err := db.Open(dbPath, logger.Logger)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open database at %s", dbPath)
	}

	if err := db.Migrate(database, logger.Logger); err != nil {
		database.Close()
		return nil, errors.Wrapf(err, "failed to run migrations on %s", dbPath)
	}

	return database, nil
}

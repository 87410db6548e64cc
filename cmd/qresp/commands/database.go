package commands

import (
	"github.com/teranos/qresp/am"
	"github.com/teranos/qresp/db"
	"github.com/teranos/qresp/errors"
	"github.com/teranos/qresp/journal"
	"github.com/teranos/qresp/logger"
)

// openJournal opens and migrates the journal database. An empty path falls back to
// the configured journal.path. The returned close func releases the connection.
func openJournal(path string) (*journal.Journal, func() error, error) {
	if path == "" {
		cfg, err := am.Load()
		if err != nil {
			return nil, nil, errors.Wrap(err, "failed to load configuration")
		}
		path = cfg.Journal.Path
	}

	conn, err := db.OpenWithMigrations(path, logger.Logger)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "failed to open journal at %s", path)
	}
	return journal.New(conn, logger.ComponentLogger("journal")), conn.Close, nil
}

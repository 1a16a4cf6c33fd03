package sqlite

import (
	"context"
	"log/slog"

	"github.com/micro-ha/smarthome-dashboard/internal/storage"
)

// DB is the shared sqlite handle behind the user and device repositories.
type DB struct {
	storage *storage.Repository
	logger  *slog.Logger
}

// Open initializes the sqlite database and runs migrations.
func Open(ctx context.Context, dbPath string, logger *slog.Logger) (*DB, error) {
	base, err := storage.New(ctx, dbPath, logger)
	if err != nil {
		return nil, err
	}
	logger.Debug("database ready", "path", dbPath)
	return &DB{
		storage: base,
		logger:  logger,
	}, nil
}

// Close closes active sqlite connection pool.
func (d *DB) Close() error {
	if d == nil || d.storage == nil {
		return nil
	}
	return d.storage.Close()
}

// Ping checks the underlying connection; used by the health endpoint.
func (d *DB) Ping(ctx context.Context) error {
	return d.storage.Ping(ctx)
}

package storage

import "context"

// Ping reports whether the database still answers queries.
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

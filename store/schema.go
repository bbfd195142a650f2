package store

import (
	"context"
	"database/sql"
)

const pointsSchema = `
CREATE TABLE IF NOT EXISTS points (
    dataset TEXT NOT NULL,
    ordinal INTEGER NOT NULL,
    point BLOB NOT NULL,
    PRIMARY KEY (dataset, ordinal)
);
`

// EnsureSchema creates the points table in the provided database if it does
// not already exist.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, pointsSchema)
	return err
}

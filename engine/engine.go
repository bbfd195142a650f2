package engine

import "database/sql"

// Open registers the point functions and opens a SQLite database holding
// point sets through the modernc.org/sqlite driver. Registration comes first so every connection of the returned
// pool sees pt_distance and pt_distance2.
//
// Pass a file path such as "./points.sqlite" for a durable store, or
// ":memory:" for a scratch database.
func Open(dsn string) (*sql.DB, error) {
	if err := RegisterPointFunctions(); err != nil {
		return nil, err
	}
	return sql.Open("sqlite", dsn)
}

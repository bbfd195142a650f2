package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/viant/proximity/engine"
	"github.com/viant/proximity/finder"
	"github.com/viant/proximity/geometry"
)

// ErrEmptyDataset is returned when a dataset name is empty.
var ErrEmptyDataset = errors.New("store: dataset name is empty")

// Match is one stored point found by WithinDistance.
type Match struct {
	ID       int
	Distance float64
}

// SQLiteStore keeps named point sets in a SQLite database. Point i of a
// dataset is stored with ordinal i, so a loaded set can back a spatial index
// whose ids are dense.
type SQLiteStore struct {
	db            *sql.DB
	name          string
	builder       IndexBuilder
	finderOptions []finder.Option

	mu         sync.Mutex
	cache      map[string]*cached
	generation uint64
}

// NewSQLiteStore creates a SQLite-backed store and ensures the points schema
// exists. The point functions and the proximity virtual table module are
// registered first, and the store is bound to its name for virtual tables;
// functions are only visible to connections opened afterwards. The module reads datasets on a separate connection, so
// proximity queries need a file database that allows more than one open
// connection.
func NewSQLiteStore(db *sql.DB, opts ...Option) (*SQLiteStore, error) {
	if db == nil {
		return nil, fmt.Errorf("store: db is nil")
	}
	if err := engine.RegisterPointFunctions(); err != nil {
		return nil, err
	}
	s := &SQLiteStore{db: db, name: DefaultName, builder: buildRTree, cache: map[string]*cached{}}
	for _, opt := range opts {
		opt(s)
	}
	if err := registerModule(db, s); err != nil {
		return nil, err
	}
	if err := EnsureSchema(context.Background(), db); err != nil {
		return nil, err
	}
	return s, nil
}

// SavePoints replaces the dataset with points in a single transaction.
func (s *SQLiteStore) SavePoints(ctx context.Context, dataset string, points []geometry.Point) error {
	if dataset == "" {
		return ErrEmptyDataset
	}
	for i, p := range points {
		if !geometry.IsValid(p) {
			return fmt.Errorf("store: point %d of %q is not finite", i, dataset)
		}
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM points WHERE dataset = ?`, dataset); err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO points(dataset, ordinal, point) VALUES(?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, p := range points {
		if _, err := stmt.ExecContext(ctx, dataset, i, geometry.EncodePoint(p)); err != nil {
			return fmt.Errorf("store: insert point %d of %q: %w", i, dataset, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	s.Invalidate(dataset)
	return nil
}

// LoadPoints returns the points of dataset in ordinal order. An unknown
// dataset yields an empty slice.
func (s *SQLiteStore) LoadPoints(ctx context.Context, dataset string) ([]geometry.Point, error) {
	if dataset == "" {
		return nil, ErrEmptyDataset
	}
	rows, err := s.db.QueryContext(ctx, `SELECT ordinal, point FROM points WHERE dataset = ? ORDER BY ordinal`, dataset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []geometry.Point
	for rows.Next() {
		var ordinal int
		var blob []byte
		if err := rows.Scan(&ordinal, &blob); err != nil {
			return nil, err
		}
		if ordinal != len(out) {
			return nil, fmt.Errorf("store: dataset %q has a gap at ordinal %d", dataset, len(out))
		}
		p, err := geometry.DecodePoint(blob)
		if err != nil {
			return nil, fmt.Errorf("store: point %d of %q: %w", ordinal, dataset, err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Datasets lists stored dataset names in ascending order.
func (s *SQLiteStore) Datasets(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT dataset FROM points ORDER BY dataset`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		out = append(out, name)
	}
	return out, rows.Err()
}

// Remove deletes a dataset. Removing an unknown dataset is not an error.
func (s *SQLiteStore) Remove(ctx context.Context, dataset string) error {
	if dataset == "" {
		return ErrEmptyDataset
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM points WHERE dataset = ?`, dataset); err != nil {
		return err
	}
	s.Invalidate(dataset)
	return nil
}

// WithinDistance returns every point of dataset within distance d of needle,
// ordered by distance then id.
func (s *SQLiteStore) WithinDistance(ctx context.Context, dataset string, needle geometry.Point, d float64) ([]Match, error) {
	if dataset == "" {
		return nil, ErrEmptyDataset
	}
	if math.IsNaN(d) || d < 0 {
		return nil, fmt.Errorf("store: invalid distance %v", d)
	}
	if !geometry.IsValid(needle) {
		return nil, fmt.Errorf("store: needle is not finite")
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT ordinal, distance FROM (
    SELECT ordinal, pt_distance(point, ?) AS distance FROM points WHERE dataset = ?
) WHERE distance <= ? ORDER BY distance, ordinal`, geometry.EncodePoint(needle), dataset, d)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Match
	for rows.Next() {
		var m Match
		if err := rows.Scan(&m.ID, &m.Distance); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

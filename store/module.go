package store

import (
	"context"
	"database/sql"
	"fmt"
	"iter"
	"slices"
	"strings"
	"sync"

	"github.com/viant/proximity/finder"
	"github.com/viant/proximity/geometry"
	"modernc.org/sqlite/vtab"
)

// ModuleName is the virtual table module registered by RegisterModule.
const ModuleName = "proximity"

const moduleSchema = "CREATE TABLE %s(dataset TEXT HIDDEN, needle BLOB HIDDEN, k INTEGER HIDDEN, radius REAL HIDDEN, id INTEGER, distance REAL)"

const (
	colDataset = iota
	colNeedle
	colK
	colRadius
	colID
	colDistance
)

const (
	idxKNearest = iota + 1
	idxRange
)

// Module implements vtab.Module for proximity queries over stored datasets:
//
//	CREATE VIRTUAL TABLE near USING proximity;
//	SELECT id, distance FROM near WHERE dataset = 'a' AND needle = ? AND k = 3;
//	SELECT id, distance FROM near WHERE dataset = 'a' AND needle = ? AND radius = 2.5;
//
// The needle is an encoded point. Rows come back ordered by distance then id.
// A table is bound to the store registered under the name given as its
// argument (USING proximity(name)), DefaultName when omitted.
type Module struct{}

// stores maps store names to the store serving their virtual tables.
var stores = struct {
	mu     sync.RWMutex
	byName map[string]*SQLiteStore
}{byName: map[string]*SQLiteStore{}}

func bindStore(name string, s *SQLiteStore) {
	stores.mu.Lock()
	stores.byName[name] = s
	stores.mu.Unlock()
}

func lookupStore(name string) *SQLiteStore {
	stores.mu.RLock()
	defer stores.mu.RUnlock()
	return stores.byName[name]
}

// Table is one proximity virtual table instance.
type Table struct {
	store *SQLiteStore
}

type row struct {
	id       int
	distance float64
}

// Cursor scans the result of one proximity query.
type Cursor struct {
	table   *Table
	plan    int
	dataset string
	needle  []byte
	k       int64
	radius  float64
	rows    []row
	pos     int
}

func registerModule(db *sql.DB, s *SQLiteStore) error {
	if err := vtab.RegisterModule(db, ModuleName, &Module{}); err != nil {
		if !strings.Contains(err.Error(), "already registered") {
			return fmt.Errorf("store: register %s module: %w", ModuleName, err)
		}
	}
	bindStore(s.name, s)
	return nil
}

// Create declares the virtual table schema.
func (m *Module) Create(ctx vtab.Context, args []string) (vtab.Table, error) {
	return m.connect(ctx, args)
}

// Connect attaches to an existing proximity table.
func (m *Module) Connect(ctx vtab.Context, args []string) (vtab.Table, error) {
	return m.connect(ctx, args)
}

func (m *Module) connect(ctx vtab.Context, args []string) (vtab.Table, error) {
	if len(args) < 3 {
		return nil, fmt.Errorf("proximity: expects at least 3 args, got %d", len(args))
	}
	if err := ctx.EnableConstraintSupport(); err != nil {
		return nil, fmt.Errorf("proximity: EnableConstraintSupport failed: %w", err)
	}
	name := DefaultName
	if len(args) > 3 {
		if arg := strings.Trim(strings.TrimSpace(args[3]), `'"`); arg != "" {
			name = arg
		}
	}
	s := lookupStore(name)
	if s == nil {
		return nil, fmt.Errorf("proximity: no store named %q", name)
	}
	if err := ctx.Declare(fmt.Sprintf(moduleSchema, args[2])); err != nil {
		return nil, err
	}
	return &Table{store: s}, nil
}

// BestIndex requires dataset and needle equality constraints plus either k or
// radius; k wins when both are given.
func (t *Table) BestIndex(info *vtab.IndexInfo) error {
	var dataset, needle, k, radius *vtab.Constraint
	for i := range info.Constraints {
		c := &info.Constraints[i]
		if !c.Usable || c.Op != vtab.OpEQ {
			continue
		}
		switch c.Column {
		case colDataset:
			dataset = c
		case colNeedle:
			needle = c
		case colK:
			k = c
		case colRadius:
			radius = c
		}
	}
	if dataset == nil || needle == nil || (k == nil && radius == nil) {
		return fmt.Errorf("proximity: dataset, needle and one of k or radius are required")
	}
	dataset.ArgIndex, dataset.Omit = 0, true
	needle.ArgIndex, needle.Omit = 1, true
	if k != nil {
		k.ArgIndex, k.Omit = 2, true
		info.IdxNum = idxKNearest
		return nil
	}
	radius.ArgIndex, radius.Omit = 2, true
	info.IdxNum = idxRange
	return nil
}

// Open allocates a new cursor.
func (t *Table) Open() (vtab.Cursor, error) { return &Cursor{table: t}, nil }

// Disconnect releases nothing; dataset indexes live in the store.
func (t *Table) Disconnect() error { return nil }

// Destroy releases nothing; the points table is owned by the store.
func (t *Table) Destroy() error { return nil }

// Filter runs the query selected by BestIndex.
func (c *Cursor) Filter(idxNum int, _ string, vals []vtab.Value) error {
	c.rows, c.pos, c.plan = nil, 0, idxNum
	if len(vals) < 3 {
		return fmt.Errorf("proximity: expected 3 arguments, got %d", len(vals))
	}
	dataset, ok := vals[0].(string)
	if !ok {
		return fmt.Errorf("proximity: dataset must be TEXT, got %T", vals[0])
	}
	blob, ok := vals[1].([]byte)
	if !ok {
		return fmt.Errorf("proximity: needle must be a BLOB, got %T", vals[1])
	}
	needle, err := geometry.DecodePoint(blob)
	if err != nil {
		return err
	}
	c.dataset, c.needle = dataset, blob

	ctx := context.Background()
	entry, release, err := c.table.store.dataset(ctx, dataset)
	if err != nil {
		return err
	}
	defer release()
	var results iter.Seq2[[]int, error]
	switch idxNum {
	case idxKNearest:
		k, ok := vals[2].(int64)
		if !ok {
			return fmt.Errorf("proximity: k must be INTEGER, got %T", vals[2])
		}
		c.k = k
		// Datasets smaller than k return every point.
		f, err := finder.NewKNearestFinder(entry.idx, entry.points, int(min(k, int64(len(entry.points)))), c.table.store.finderOptions...)
		if err != nil {
			return err
		}
		results = f.Neighbors(ctx, slices.Values([]geometry.Point{needle}))
	case idxRange:
		radius, err := asFloat(vals[2])
		if err != nil {
			return err
		}
		c.radius = radius
		f, err := finder.NewRangeFinder(entry.idx, entry.points, radius, c.table.store.finderOptions...)
		if err != nil {
			return err
		}
		results = f.Neighbors(ctx, slices.Values([]geometry.Point{needle}))
	default:
		return fmt.Errorf("proximity: unsupported query plan %d", idxNum)
	}
	for ids, err := range results {
		if err != nil {
			return err
		}
		for _, id := range ids {
			c.rows = append(c.rows, row{id: id, distance: geometry.Distance(needle, entry.points[id])})
		}
	}
	return nil
}

func asFloat(v vtab.Value) (float64, error) {
	switch val := v.(type) {
	case float64:
		return val, nil
	case int64:
		return float64(val), nil
	default:
		return 0, fmt.Errorf("proximity: radius must be REAL, got %T", v)
	}
}

// Next advances the cursor.
func (c *Cursor) Next() error {
	if c.pos < len(c.rows) {
		c.pos++
	}
	return nil
}

// Eof reports end-of-rows.
func (c *Cursor) Eof() bool { return c.pos >= len(c.rows) }

// Column returns the value of a column in the current row.
func (c *Cursor) Column(col int) (vtab.Value, error) {
	if c.pos >= len(c.rows) {
		return nil, fmt.Errorf("proximity: Column out of range (pos=%d,len=%d)", c.pos, len(c.rows))
	}
	switch col {
	case colDataset:
		return c.dataset, nil
	case colNeedle:
		return c.needle, nil
	case colK:
		if c.plan != idxKNearest {
			return nil, nil
		}
		return c.k, nil
	case colRadius:
		if c.plan != idxRange {
			return nil, nil
		}
		return c.radius, nil
	case colID:
		return int64(c.rows[c.pos].id), nil
	case colDistance:
		return c.rows[c.pos].distance, nil
	}
	return nil, fmt.Errorf("proximity: unsupported column %d", col)
}

// Rowid returns the id of the current row.
func (c *Cursor) Rowid() (int64, error) {
	if c.pos >= len(c.rows) {
		return 0, fmt.Errorf("proximity: Rowid out of range (pos=%d,len=%d)", c.pos, len(c.rows))
	}
	return int64(c.rows[c.pos].id), nil
}

// Close releases the rows.
func (c *Cursor) Close() error { c.rows, c.pos = nil, 0; return nil }

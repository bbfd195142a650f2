package config

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/proximity/finder"
	"github.com/viant/proximity/geometry"
	"github.com/viant/proximity/index/bruteforce"
	"github.com/viant/proximity/index/cover"
	"github.com/viant/proximity/index/rtree"
	"github.com/viant/proximity/metrics"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "proximity.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, KindRTree, cfg.Index.Kind)
	assert.Equal(t, 8, cfg.Index.MaxEntries)
	assert.Equal(t, 3, cfg.Index.MinEntries)
	assert.Equal(t, cover.DefaultBase, cfg.Index.Base)
	assert.Equal(t, finder.DefaultEpsilon, cfg.Search.Epsilon)
	assert.Equal(t, ":memory:", cfg.Store.DSN)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := writeConfig(t, `
index:
  kind: cover
  base: 2
search:
  epsilon: 0.001
  workers: 4
logging:
  level: debug
  format: json
metrics:
  enabled: true
`)
	t.Setenv("PROXIMITY_SEARCH_WORKERS", "2")
	t.Setenv("PROXIMITY_STORE_DSN", "/tmp/points.db")
	t.Setenv("PROXIMITY_METRICS_NAMESPACE", "geo")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, KindCover, cfg.Index.Kind)
	assert.Equal(t, 2.0, cfg.Index.Base)
	assert.Equal(t, 8, cfg.Index.MaxEntries)
	assert.Equal(t, 0.001, cfg.Search.Epsilon)
	assert.Equal(t, 2, cfg.Search.Workers)
	assert.Equal(t, "/tmp/points.db", cfg.Store.DSN)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "geo", cfg.Metrics.Namespace)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "index: [unbalanced"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "index:\n  kind: kdtree\n"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "index:\n  kind: cover\n  base: 1\n"))
	assert.Error(t, err)

	t.Setenv("PROXIMITY_SEARCH_EPSILON", "-1")
	_, err = Load("")
	assert.Error(t, err)
}

func TestIndexConfig_New(t *testing.T) {
	testCases := []struct {
		kind   string
		expect any
	}{
		{kind: KindRTree, expect: &rtree.Tree{}},
		{kind: KindCover, expect: &cover.Index{}},
		{kind: KindBruteForce, expect: &bruteforce.Index{}},
	}
	for _, tc := range testCases {
		t.Run(tc.kind, func(t *testing.T) {
			cfg := IndexConfig{Kind: tc.kind, MaxEntries: 4, MinEntries: 2, Base: 2}
			idx, err := cfg.New()
			require.NoError(t, err)
			assert.IsType(t, tc.expect, idx)
			assert.Equal(t, 0, idx.Count())

			points := []geometry.Point{{X: 1}, {X: 2}, {X: 3}, {X: 4}, {X: 5}}
			idx, err = cfg.Build(points)
			require.NoError(t, err)
			assert.IsType(t, tc.expect, idx)
			assert.Equal(t, len(points), idx.Count())
		})
	}

	_, err := IndexConfig{Kind: "kdtree"}.New()
	assert.Error(t, err)
	_, err = IndexConfig{Kind: "kdtree"}.Build(nil)
	assert.Error(t, err)
}

func TestConfig_FinderOptions(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	cfg.Metrics.Enabled = true

	var buf bytes.Buffer
	logger := cfg.Logging.Logger(&buf)
	collector, err := cfg.Metrics.Collector(prometheus.NewRegistry())
	require.NoError(t, err)

	points := []geometry.Point{{X: 0}, {X: 1}, {X: 2}, {X: 10}}
	idx, err := cfg.Index.Build(points)
	require.NoError(t, err)

	results, err := finder.BatchKNearest(context.Background(), idx, points,
		[]geometry.Point{{X: 0.9}, {X: 9}}, 2, cfg.Search.Workers, cfg.FinderOptions(logger, collector)...)
	require.NoError(t, err)
	assert.Equal(t, [][]int{{1, 0}, {3, 2}}, results)
}

func TestMetricsConfig_Collector(t *testing.T) {
	collector, err := MetricsConfig{}.Collector(prometheus.NewRegistry())
	require.NoError(t, err)
	assert.Equal(t, metrics.Noop{}, collector)

	collector, err = MetricsConfig{Enabled: true, Namespace: "proximity"}.Collector(prometheus.NewRegistry())
	require.NoError(t, err)
	assert.IsType(t, &metrics.PrometheusCollector{}, collector)
}

func TestStoreConfig_Open(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	cfg.Index.Kind = KindCover
	cfg.Store.DSN = filepath.Join(t.TempDir(), "points.sqlite")

	db, s, err := cfg.Store.Open(cfg.StoreOptions(cfg.FinderOptions(nil, nil)...)...)
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	points := []geometry.Point{{X: 1}, {X: 2}, {X: 3}}
	require.NoError(t, s.SavePoints(ctx, "set", points))
	got, err := s.LoadPoints(ctx, "set")
	require.NoError(t, err)
	assert.Equal(t, points, got)

	matches, err := s.WithinDistance(ctx, "set", geometry.Point{X: 2}, 1)
	require.NoError(t, err)
	assert.Len(t, matches, 3)
}

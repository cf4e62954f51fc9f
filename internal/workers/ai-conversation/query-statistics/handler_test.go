// internal/workers/ai-conversation/query-statistics/handler_test.go
package querystatistics

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"youth-employment-chat/internal/catalog"
	"youth-employment-chat/internal/common/logger"
	"youth-employment-chat/internal/models"
	"youth-employment-chat/internal/store"
)

type fakeStore struct {
	mu      sync.Mutex
	rows    map[string][]models.Row
	errs    map[string]error
	block   map[string]bool
	calls   int
	specs   []store.QuerySpec
	failAll bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		rows:  make(map[string][]models.Row),
		errs:  make(map[string]error),
		block: make(map[string]bool),
	}
}

func (f *fakeStore) Query(ctx context.Context, spec store.QuerySpec) ([]models.Row, error) {
	f.mu.Lock()
	f.calls++
	f.specs = append(f.specs, spec)
	rows, err, block, failAll := f.rows[spec.Table], f.errs[spec.Table], f.block[spec.Table], f.failAll
	f.mu.Unlock()

	if failAll {
		return nil, errors.New("connection refused")
	}
	if block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return rows, err
}

func (f *fakeStore) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func table(t *testing.T, cat *catalog.Catalog, key string) string {
	t.Helper()
	d, ok := cat.Lookup(key)
	require.True(t, ok)
	return d.Table
}

func setupMiniRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func newTestHandler(t *testing.T, st store.TabularStore, rc *redis.Client, ttl time.Duration) *Handler {
	t.Helper()
	cfg := DefaultConfig()
	cfg.DatasetTimeout = 100 * time.Millisecond
	cfg.CacheTTL = ttl
	h, err := NewHandler(cfg, catalog.Default(), st, rc, logger.NewTestLogger(t))
	require.NoError(t, err)
	return h
}

func TestFanOut_QueriesEveryDatasetWithItsSpec(t *testing.T) {
	cat := catalog.Default()
	st := newFakeStore()
	h := newTestHandler(t, st, nil, 0)

	result := h.FanOut(context.Background())

	assert.Equal(t, cat.Len(), st.callCount())
	assert.Empty(t, result.Datasets)
	assert.Empty(t, result.Sources)
	assert.Zero(t, result.DataPoints)

	for _, spec := range st.specs {
		assert.Equal(t, catalog.PeriodColumn, spec.OrderBy)
		assert.False(t, spec.Ascending)
		assert.Greater(t, spec.Limit, 0)
	}
}

func TestFanOut_PartialFailure(t *testing.T) {
	cat := catalog.Default()
	st := newFakeStore()
	st.rows[table(t, cat, catalog.KeyEmployment)] = []models.Row{
		{"시점": "2024.05", "고용률": 46.2},
		{"시점": "2023.05", "고용률": 46.5},
	}
	st.rows[table(t, cat, catalog.KeySalary)] = []models.Row{{"시점": "2024.05", "계": 3500.0}}
	st.rows[table(t, cat, catalog.KeyQuitReason)] = []models.Row{{"시점": "2024.05"}}
	st.errs[table(t, cat, catalog.KeyUnemployment)] = errors.New("relation does not exist")
	st.block[table(t, cat, catalog.KeyMajorMatch)] = true

	h := newTestHandler(t, st, nil, 0)
	result := h.FanOut(context.Background())

	assert.Len(t, result.Datasets, 3)
	assert.Contains(t, result.Datasets, catalog.KeyEmployment)
	assert.Contains(t, result.Datasets, catalog.KeySalary)
	assert.NotContains(t, result.Datasets, catalog.KeyUnemployment)
	assert.NotContains(t, result.Datasets, catalog.KeyMajorMatch)
	assert.Equal(t, 4, result.DataPoints)
	assert.Equal(t, []string{"연령별 경제활동상태", "첫 일자리 월평균임금", "퇴직사유"}, result.Sources)
}

func TestFanOut_TotalOutageIsEmptyNotError(t *testing.T) {
	st := newFakeStore()
	st.failAll = true
	h := newTestHandler(t, st, nil, 0)

	out, err := h.Execute(context.Background(), &Input{})
	require.NoError(t, err)
	assert.Empty(t, out.FanOut.Datasets)
	assert.NotNil(t, out.FanOut.Sources)
}

func TestFanOut_CachesCompleteResults(t *testing.T) {
	cat := catalog.Default()
	mr, rc := setupMiniRedis(t)

	st := newFakeStore()
	st.rows[table(t, cat, catalog.KeySalary)] = []models.Row{{"시점": "2024.05", "계": 3500.0}}
	h := newTestHandler(t, st, rc, time.Minute)

	first := h.FanOut(context.Background())
	require.Equal(t, 1, first.DataPoints)
	assert.True(t, mr.Exists(CacheKey))
	assert.Equal(t, time.Minute, mr.TTL(CacheKey))
	calls := st.callCount()

	second := h.FanOut(context.Background())
	assert.Equal(t, calls, st.callCount(), "second fan-out is served from cache")
	assert.Equal(t, first.Sources, second.Sources)
	assert.Equal(t, first.DataPoints, second.DataPoints)
	assert.Equal(t, 3500.0, second.Datasets[catalog.KeySalary][0]["계"])
}

func TestFanOut_PartialResultsAreNotCached(t *testing.T) {
	cat := catalog.Default()
	mr, rc := setupMiniRedis(t)

	st := newFakeStore()
	st.rows[table(t, cat, catalog.KeySalary)] = []models.Row{{"시점": "2024.05"}}
	st.errs[table(t, cat, catalog.KeyEmployment)] = errors.New("timeout")
	h := newTestHandler(t, st, rc, time.Minute)

	h.FanOut(context.Background())
	assert.False(t, mr.Exists(CacheKey))
}

func TestFanOut_CacheFailuresAreIgnored(t *testing.T) {
	cat := catalog.Default()
	mr, rc := setupMiniRedis(t)

	st := newFakeStore()
	st.rows[table(t, cat, catalog.KeySalary)] = []models.Row{{"시점": "2024.05"}}
	h := newTestHandler(t, st, rc, time.Minute)

	require.NoError(t, mr.Set(CacheKey, "{corrupt"))
	result := h.FanOut(context.Background())
	assert.Equal(t, 1, result.DataPoints)

	mr.Close()
	result = h.FanOut(context.Background())
	assert.Equal(t, 1, result.DataPoints)
}

func TestFanOut_CachedPayloadRoundTrip(t *testing.T) {
	mr, rc := setupMiniRedis(t)

	cached := models.NewFanOutResult()
	cached.Sources = []string{"첫 일자리 월평균임금"}
	cached.Datasets[catalog.KeySalary] = []models.Row{{"시점": "2023.05"}}
	cached.DataPoints = 1
	payload, _ := json.Marshal(cached)
	require.NoError(t, mr.Set(CacheKey, string(payload)))

	st := newFakeStore()
	h := newTestHandler(t, st, rc, time.Minute)
	result := h.FanOut(context.Background())

	assert.Zero(t, st.callCount())
	assert.Equal(t, cached.Sources, result.Sources)
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	cfg.DatasetTimeout = 0
	assert.Error(t, cfg.Validate())

	_, err := NewHandler(DefaultConfig(), nil, newFakeStore(), nil, logger.NewNoOpLogger())
	assert.Error(t, err)
}

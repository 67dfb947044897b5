package pipelineinfra

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Abraxas-365/stagetrack/pkg/errx"
	"github.com/Abraxas-365/stagetrack/pkg/pipeline"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	data   map[string]string
	ttl    time.Duration
	getErr error
	setErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: map[string]string{}}
}

func (f *fakeStore) Get(ctx context.Context, key string) *redis.StringCmd {
	if f.getErr != nil {
		return redis.NewStringResult("", f.getErr)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeStore) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	if f.setErr != nil {
		return redis.NewStatusResult("", f.setErr)
	}
	f.data[key] = string(value.([]byte))
	f.ttl = expiration
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeStore) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	var n int64
	for _, k := range keys {
		if _, ok := f.data[k]; ok {
			delete(f.data, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

type countingSource struct {
	calls int
	err   error
	def   *pipeline.Definition
}

func (s *countingSource) Load(ctx context.Context) (*pipeline.Definition, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	if s.def != nil {
		return s.def, nil
	}
	return pipeline.DefaultDefinition(), nil
}

const testKey = "pipeline_definition:default:local:pipeline.yaml"

func newTestCache(store RedisStore, src pipeline.DefinitionSource) *RedisDefinitionCache {
	return NewRedisDefinitionCache(store, src, "default", "local:pipeline.yaml", time.Minute)
}

func TestRedisDefinitionCache_MissThenHit(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	src := &countingSource{}
	cache := newTestCache(store, src)

	first, err := cache.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, src.calls)
	assert.Contains(t, store.data, testKey)
	assert.Equal(t, time.Minute, store.ttl)

	second, err := cache.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, src.calls, "second load is served from redis")
	assert.Equal(t, first, second)
}

func TestRedisDefinitionCache_RedisDownFallsThrough(t *testing.T) {
	store := newFakeStore()
	store.getErr = errors.New("connection refused")
	store.setErr = errors.New("connection refused")
	src := &countingSource{}

	def, err := newTestCache(store, src).Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, def)
	assert.Equal(t, 1, src.calls)
}

func TestRedisDefinitionCache_CorruptEntryReloads(t *testing.T) {
	store := newFakeStore()
	store.data[testKey] = "not json"
	src := &countingSource{}

	_, err := newTestCache(store, src).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, src.calls)
	assert.NotEqual(t, "not json", store.data[testKey])
}

func TestRedisDefinitionCache_SourceErrorIsReturned(t *testing.T) {
	src := &countingSource{err: pipeline.ErrDefinitionNotFound()}

	_, err := newTestCache(newFakeStore(), src).Load(context.Background())
	assert.Error(t, err)
}

func TestRedisDefinitionCache_Invalidate(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	cache := newTestCache(store, &countingSource{})

	_, err := cache.Load(ctx)
	require.NoError(t, err)
	require.NoError(t, cache.Invalidate(ctx))
	assert.Empty(t, store.data)
}

func TestRedisDefinitionCache_InvalidDefinitionIsNotStored(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	src := &countingSource{def: &pipeline.Definition{
		StageOrder:  []string{"A"},
		StageNames:  map[string]string{},
		StageGroups: map[string][]string{"A": {"x"}},
	}}
	cache := newTestCache(store, src)

	_, err := pipeline.Load(ctx, cache)
	require.Error(t, err)
	assert.True(t, errx.IsCode(err, pipeline.CodeMissingStageName))
	assert.Empty(t, store.data)

	// el archivo corregido se lee en el siguiente arranque
	src.def = pipeline.DefaultDefinition()
	cfg, err := pipeline.Load(ctx, cache)
	require.NoError(t, err)
	assert.Equal(t, len(pipeline.DefaultDefinition().StageOrder), cfg.Len())
	assert.Equal(t, 2, src.calls)
	assert.Contains(t, store.data, testKey)
}

func TestRedisDefinitionCache_InvalidCachedEntryIsDiscarded(t *testing.T) {
	store := newFakeStore()
	store.data[testKey] = `{"stage_order":["A"],"stage_names":{},"stage_groups":{}}`
	src := &countingSource{}

	_, err := pipeline.Load(context.Background(), newTestCache(store, src))
	require.NoError(t, err)
	assert.Equal(t, 1, src.calls)
	assert.Contains(t, store.data[testKey], `"stage_names":{"`)
}

func TestRedisDefinitionCache_KeyIncludesOrigin(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()

	_, err := NewRedisDefinitionCache(store, &countingSource{}, "default", "s3:a.yaml", time.Minute).Load(ctx)
	require.NoError(t, err)

	other := &countingSource{}
	_, err = NewRedisDefinitionCache(store, other, "default", "s3:b.yaml", time.Minute).Load(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, other.calls, "a different document path misses the cache")
	assert.Contains(t, store.data, "pipeline_definition:default:s3:a.yaml")
	assert.Contains(t, store.data, "pipeline_definition:default:s3:b.yaml")
}

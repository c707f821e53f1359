package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/tattoo-scheduler/internal/httperr"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/models"
)

type countingStore struct {
	records map[uint]models.Availability
	gets    int

	// afterRead roda entre a leitura do banco e o retorno do Get.
	afterRead func()
}

func newCountingStore() *countingStore {
	return &countingStore{records: map[uint]models.Availability{}}
}

func (s *countingStore) Get(_ context.Context, id uint) (*models.Availability, error) {
	s.gets++
	av, ok := s.records[id]
	if hook := s.afterRead; hook != nil {
		s.afterRead = nil
		hook()
	}
	if !ok {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}
	return &av, nil
}

func (s *countingStore) Save(_ context.Context, av *models.Availability) error {
	s.records[av.ProfessionalID] = *av
	return nil
}

func (s *countingStore) Delete(_ context.Context, id uint) error {
	if _, ok := s.records[id]; !ok {
		return httperr.ErrBusiness(httperr.CodeNotFound)
	}
	delete(s.records, id)
	return nil
}

func setup(t *testing.T) (*AvailabilityCache, *countingStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	store := newCountingStore()
	return NewAvailabilityCache(store, rdb, time.Minute, zap.NewNop()), store, mr
}

func TestCacheReadThrough(t *testing.T) {
	c, store, mr := setup(t)
	ctx := context.Background()

	store.records[4] = models.Availability{ProfessionalID: 4, Schedule: `{"monday":[]}`}

	av, err := c.Get(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, `{"monday":[]}`, av.Schedule)
	assert.True(t, mr.Exists("availability:4"))

	av, err = c.Get(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, uint(4), av.ProfessionalID)
	assert.Equal(t, 1, store.gets)

	mr.FastForward(2 * time.Minute)
	_, err = c.Get(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, 2, store.gets)
}

func TestCacheInvalidatesOnWrite(t *testing.T) {
	c, store, mr := setup(t)
	ctx := context.Background()

	require.NoError(t, c.Save(ctx, &models.Availability{ProfessionalID: 4, Schedule: "a"}))
	_, err := c.Get(ctx, 4)
	require.NoError(t, err)
	require.True(t, mr.Exists("availability:4"))

	require.NoError(t, c.Save(ctx, &models.Availability{ProfessionalID: 4, Schedule: "b"}))
	assert.False(t, mr.Exists("availability:4"))

	av, err := c.Get(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, "b", av.Schedule)

	require.NoError(t, c.Delete(ctx, 4))
	assert.False(t, mr.Exists("availability:4"))
	assert.Equal(t, 2, store.gets)

	_, err = c.Get(ctx, 4)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeNotFound))
}

func TestCacheSkipsFillWhenWriteRacesRead(t *testing.T) {
	c, store, mr := setup(t)
	ctx := context.Background()

	store.records[4] = models.Availability{ProfessionalID: 4, Schedule: "old"}
	store.afterRead = func() {
		require.NoError(t, c.Save(ctx, &models.Availability{ProfessionalID: 4, Schedule: "new"}))
	}

	av, err := c.Get(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, "old", av.Schedule)
	assert.False(t, mr.Exists("availability:4"))

	av, err = c.Get(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, "new", av.Schedule)
	assert.True(t, mr.Exists("availability:4"))
}

func TestCacheFallsBackWhenRedisIsDown(t *testing.T) {
	c, store, mr := setup(t)
	ctx := context.Background()

	store.records[9] = models.Availability{ProfessionalID: 9, Schedule: "x"}
	mr.Close()

	av, err := c.Get(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, "x", av.Schedule)

	require.NoError(t, c.Save(ctx, &models.Availability{ProfessionalID: 9, Schedule: "y"}))
	assert.Equal(t, "y", store.records[9].Schedule)
}

func TestNewRedisPing(t *testing.T) {
	mr := miniredis.RunT(t)

	rdb, err := NewRedis(context.Background(), mr.Addr(), "", 0)
	require.NoError(t, err)
	_ = rdb.Close()

	mr.Close()
	_, err = NewRedis(context.Background(), mr.Addr(), "", 0)
	assert.Error(t, err)
}

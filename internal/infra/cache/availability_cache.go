package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/tattoo-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/models"
)

// AvailabilityCache é um read-through na frente do Store. Falhas do Redis
// nunca impedem a leitura: caem direto para o banco.
//
// Cada escrita incrementa a geração do profissional; um Get só grava no
// Redis se a geração lida antes do banco continuar a mesma.
type AvailabilityCache struct {
	next availability.Store
	rdb  *redis.Client
	ttl  time.Duration
	log  *zap.Logger
}

func NewAvailabilityCache(
	next availability.Store,
	rdb *redis.Client,
	ttl time.Duration,
	log *zap.Logger,
) *AvailabilityCache {
	return &AvailabilityCache{next: next, rdb: rdb, ttl: ttl, log: log}
}

var errStaleRead = errors.New("availability changed during read")

func availabilityKey(professionalID uint) string {
	return fmt.Sprintf("availability:%d", professionalID)
}

func generationKey(professionalID uint) string {
	return fmt.Sprintf("availability:%d:gen", professionalID)
}

type stringGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func readGeneration(ctx context.Context, rdb stringGetter, professionalID uint) (int64, error) {
	gen, err := rdb.Get(ctx, generationKey(professionalID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func (c *AvailabilityCache) Get(
	ctx context.Context,
	professionalID uint,
) (*models.Availability, error) {

	key := availabilityKey(professionalID)

	raw, err := c.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var av models.Availability
		if jerr := json.Unmarshal(raw, &av); jerr == nil {
			return &av, nil
		}
		c.log.Warn("discarding corrupt availability cache entry", zap.String("key", key))
	case errors.Is(err, redis.Nil):
		// miss
	default:
		c.log.Warn("availability cache read failed", zap.String("key", key), zap.Error(err))
	}

	gen, genErr := readGeneration(ctx, c.rdb, professionalID)

	av, err := c.next.Get(ctx, professionalID)
	if err != nil {
		return nil, err
	}

	if genErr != nil {
		return av, nil
	}

	if err := c.fill(ctx, professionalID, gen, av); err != nil {
		if errors.Is(err, errStaleRead) || errors.Is(err, redis.TxFailedErr) {
			c.log.Debug("skipping stale availability cache fill", zap.String("key", key))
		} else {
			c.log.Warn("availability cache write failed", zap.String("key", key), zap.Error(err))
		}
	}

	return av, nil
}

// fill grava o valor lido só se nenhuma escrita aconteceu desde gen.
func (c *AvailabilityCache) fill(ctx context.Context, professionalID uint, gen int64, av *models.Availability) error {
	b, err := json.Marshal(av)
	if err != nil {
		return err
	}

	key := availabilityKey(professionalID)
	return c.rdb.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := readGeneration(ctx, tx, professionalID)
		if err != nil {
			return err
		}
		if cur != gen {
			return errStaleRead
		}
		_, err = tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
			p.Set(ctx, key, b, c.ttl)
			return nil
		})
		return err
	}, generationKey(professionalID))
}

func (c *AvailabilityCache) Save(ctx context.Context, av *models.Availability) error {
	if err := c.next.Save(ctx, av); err != nil {
		return err
	}
	c.invalidate(ctx, av.ProfessionalID)
	return nil
}

func (c *AvailabilityCache) Delete(ctx context.Context, professionalID uint) error {
	if err := c.next.Delete(ctx, professionalID); err != nil {
		return err
	}
	c.invalidate(ctx, professionalID)
	return nil
}

func (c *AvailabilityCache) invalidate(ctx context.Context, professionalID uint) {
	key := availabilityKey(professionalID)
	_, err := c.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Incr(ctx, generationKey(professionalID))
		p.Del(ctx, key)
		return nil
	})
	if err != nil {
		c.log.Warn("availability cache invalidation failed", zap.String("key", key), zap.Error(err))
	}
}

var _ availability.Store = (*AvailabilityCache)(nil)

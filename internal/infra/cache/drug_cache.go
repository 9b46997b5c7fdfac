package cache

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"pharmacy/internal/domain/entity"
	"pharmacy/internal/domain/service"
	"pharmacy/internal/errors"

	"github.com/redis/go-redis/v9"
)

const drugKeyPrefix = "pharmacy:drug:"

var _ service.DrugCache = (*RedisDrugCache)(nil)

// RedisDrugCache stores single drug records as JSON under pharmacy:drug:{id}.
type RedisDrugCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewRedisDrugCache creates a cache whose entries expire after ttl.
func NewRedisDrugCache(client redis.Cmdable, ttl time.Duration) *RedisDrugCache {
	return &RedisDrugCache{client: client, ttl: ttl}
}

func (c *RedisDrugCache) Get(ctx context.Context, id int64) (*entity.Drug, bool, error) {
	data, err := c.client.Get(ctx, drugKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrapf(err, "failed to read drug %d from cache", id)
	}

	var drug entity.Drug
	if err := json.Unmarshal(data, &drug); err != nil {
		return nil, false, errors.Wrapf(err, "failed to decode cached drug %d", id)
	}

	return &drug, true, nil
}

func (c *RedisDrugCache) Set(ctx context.Context, drug *entity.Drug) error {
	data, err := json.Marshal(drug)
	if err != nil {
		return errors.Wrapf(err, "failed to encode drug %d", drug.ID)
	}

	if err := c.client.Set(ctx, drugKey(drug.ID), data, c.ttl).Err(); err != nil {
		return errors.Wrapf(err, "failed to cache drug %d", drug.ID)
	}

	return nil
}

func (c *RedisDrugCache) Delete(ctx context.Context, id int64) error {
	if err := c.client.Del(ctx, drugKey(id)).Err(); err != nil {
		return errors.Wrapf(err, "failed to evict drug %d", id)
	}

	return nil
}

func drugKey(id int64) string {
	return drugKeyPrefix + strconv.FormatInt(id, 10)
}

type noopDrugCache struct{}

// NewNoopDrugCache returns a cache that never stores anything.
func NewNoopDrugCache() service.DrugCache {
	return noopDrugCache{}
}

func (noopDrugCache) Get(context.Context, int64) (*entity.Drug, bool, error) {
	return nil, false, nil
}

func (noopDrugCache) Set(context.Context, *entity.Drug) error {
	return nil
}

func (noopDrugCache) Delete(context.Context, int64) error {
	return nil
}

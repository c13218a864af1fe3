package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmehdipour/customers-api/internal/model"
	"github.com/redis/go-redis/v9"
)

const (
	customerKeyPrefix = "customers:"      // customers:{id} -> customer JSON
	customerIndexKey  = "customers:index" // list of ids in insertion order
)

// RedisCustomersRepository keeps one JSON document per customer plus an
// ordered id index.
type RedisCustomersRepository struct {
	client *redis.Client
}

var _ CustomersRepository = (*RedisCustomersRepository)(nil)

func NewRedisCustomersRepository(client *redis.Client) *RedisCustomersRepository {
	return &RedisCustomersRepository{client: client}
}

func (r *RedisCustomersRepository) List(ctx context.Context) ([]model.Customer, error) {
	ids, err := r.client.LRange(ctx, customerIndexKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("read customer index: %w", err)
	}
	out := make([]model.Customer, 0, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = customerKeyPrefix + id
	}
	vals, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("read customers: %w", err)
	}

	for i, v := range vals {
		s, ok := v.(string)
		if !ok {
			// index entry without a document
			continue
		}
		c, err := decodeCustomer(s)
		if err != nil {
			return nil, fmt.Errorf("decode customer %s: %w", ids[i], err)
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *RedisCustomersRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	s, err := r.client.Get(ctx, r.key(id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get customer %s: %w", id, err)
	}
	c, err := decodeCustomer(s)
	if err != nil {
		return nil, fmt.Errorf("decode customer %s: %w", id, err)
	}
	return &c, nil
}

func (r *RedisCustomersRepository) Add(ctx context.Context, c model.Customer) error {
	data, err := json.Marshal(c.Clone())
	if err != nil {
		return fmt.Errorf("marshal customer: %w", err)
	}
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, r.key(c.ID), data, 0)
		pipe.RPush(ctx, customerIndexKey, c.ID.String())
		return nil
	})
	if err != nil {
		return fmt.Errorf("insert customer %s: %w", c.ID, err)
	}
	return nil
}

// Update overwrites the document only when it already exists.
func (r *RedisCustomersRepository) Update(ctx context.Context, id uuid.UUID, c model.Customer) error {
	c = c.Clone()
	c.ID = id
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal customer: %w", err)
	}
	if err := r.client.SetXX(ctx, r.key(id), data, 0).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("update customer %s: %w", id, err)
	}
	return nil
}

func (r *RedisCustomersRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, r.key(id))
		pipe.LRem(ctx, customerIndexKey, 0, id.String())
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete customer %s: %w", id, err)
	}
	return nil
}

func (r *RedisCustomersRepository) key(id uuid.UUID) string {
	return customerKeyPrefix + id.String()
}

func decodeCustomer(s string) (model.Customer, error) {
	var c model.Customer
	if err := json.Unmarshal([]byte(s), &c); err != nil {
		return model.Customer{}, err
	}
	if c.Projects == nil {
		c.Projects = []model.Project{}
	}
	return c, nil
}

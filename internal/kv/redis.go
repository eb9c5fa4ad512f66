package kv

import (
	"context"
	"errors"

	"github.com/go-redis/redis/v8"
)

// Redis stores blobs as plain string values in a local redis instance.
// All keys are namespaced with prefix.
type Redis struct {
	client *redis.Client
	prefix string
}

var _ Store = (*Redis)(nil)

func NewRedis(client *redis.Client, prefix string) *Redis {
	return &Redis{client: client, prefix: prefix}
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, Wrap("get", key, err)
	}
	return value, true, nil
}

func (r *Redis) Set(ctx context.Context, key string, value []byte) error {
	return Wrap("set", key, r.client.Set(ctx, r.prefix+key, value, 0).Err())
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	return Wrap("delete", key, r.client.Del(ctx, r.prefix+key).Err())
}

func (r *Redis) Close() error {
	return r.client.Close()
}

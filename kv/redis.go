package kv

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
)

// Redis backs the gateway with a Redis instance. Keys map one-to-one onto
// Redis keys; prefix listing uses SCAN with a MATCH glob, so a scan racing
// concurrent writers may miss or duplicate entries.
type Redis struct {
	conn *redis.Client
}

func NewRedis(addr, password string) (*Redis, error) {
	conn := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	if err := conn.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	return &Redis{conn: conn}, nil
}

func (r *Redis) Get(ctx context.Context, key string) (json.RawMessage, error) {
	val, err := r.conn.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return json.RawMessage(val), nil
}

func (r *Redis) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.conn.Set(ctx, key, raw, 0).Err()
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	return r.conn.Del(ctx, key).Err()
}

func (r *Redis) ScanPrefix(ctx context.Context, prefix string) ([]Entry, error) {
	var entries []Entry
	iter := r.conn.Scan(ctx, 0, prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		val, err := r.conn.Get(ctx, key).Bytes()
		if err == redis.Nil {
			continue // deleted between SCAN and GET
		}
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry{Key: key, Value: json.RawMessage(val)})
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// Conn exposes the underlying client for pub/sub use.
func (r *Redis) Conn() *redis.Client {
	return r.conn
}

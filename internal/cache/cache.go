package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"padelmania/internal/cart"
)

// CartTTL keeps an abandoned cart around for a month.
const CartTTL = cart.TTL

// CartStorage keeps each session cart as one JSON value in Redis and
// publishes cart events on a channel named like the key.
type CartStorage struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCartStorage(client *redis.Client) *CartStorage {
	return &CartStorage{client: client, ttl: CartTTL}
}

func (s *CartStorage) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, cart.ErrNotFound
	}
	return data, err
}

func (s *CartStorage) Save(ctx context.Context, key string, data []byte) error {
	return s.client.Set(ctx, key, data, s.ttl).Err()
}

func (s *CartStorage) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}

func (s *CartStorage) Notify(ctx context.Context, key, event string) error {
	return s.client.Publish(ctx, key, event).Err()
}

// Subscribe listens for the events of one cart. The subscription is
// confirmed before it is returned, so no event published afterwards is lost.
func (s *CartStorage) Subscribe(ctx context.Context, key string) (*redis.PubSub, error) {
	pubsub := s.client.Subscribe(ctx, key)
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, err
	}
	return pubsub, nil
}

// Ping reports whether Redis answers.
func (s *CartStorage) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

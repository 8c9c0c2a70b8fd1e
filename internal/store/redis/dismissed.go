// Package redis backs the dismissed-recommendation set with Redis so
// dismissals survive server restarts and expire on their own.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const dismissTTL = 30 * 24 * time.Hour

type Store struct {
	client *redis.Client
}

// New connects to Redis and verifies the connection with a ping.
func New(ctx context.Context, addr, password string, db int) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}

	log.Info().Str("addr", addr).Msg("connected to redis")
	return &Store{client: client}, nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

func dismissKey(id string) string {
	return "linkwise:recommendations:dismissed:" + id
}

func (s *Store) Dismiss(ctx context.Context, id string) error {
	key := dismissKey(id)
	if err := s.client.Set(ctx, key, 1, dismissTTL).Err(); err != nil {
		return fmt.Errorf("failed to record dismissal: %w", err)
	}

	log.Debug().Str("id", id).Msg("recommendation dismissal recorded")
	return nil
}

func (s *Store) IsDismissed(ctx context.Context, id string) (bool, error) {
	n, err := s.client.Exists(ctx, dismissKey(id)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check dismissal: %w", err)
	}
	return n > 0, nil
}

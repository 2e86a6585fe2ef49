// Package readmodel implements the cache-invalidation contract between
// mutations and projections: every mutation names the read-model groups it
// makes stale, cached projections are dropped by group, and subscribers
// (connected console sessions) are told which collections to refetch.
package readmodel

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Read-model group names declared by mutations
const (
	GroupBookings      = "bookings"
	GroupWorkdays      = "workdays"
	GroupExtraServices = "extra-services"
)

const (
	keyPrefix   = "readmodel:"
	groupPrefix = "readmodel-group:"
	cacheTTL    = 15 * time.Minute
)

// Publisher receives the groups each invalidation names. The events hub
// implements this to push refetch signals to console sessions.
type Publisher interface {
	PublishInvalidation(ctx context.Context, groups []string)
}

// Invalidator is the mutation-side contract
type Invalidator interface {
	Invalidate(ctx context.Context, groups ...string)
}

// Store caches serialized projections in Redis, tagged by the read-model
// groups they were computed from. A nil Redis client degrades to a cache that
// always misses; invalidation signals still reach the publisher.
type Store struct {
	redis     *redis.Client
	publisher Publisher
}

// NewStore creates the projection cache
func NewStore(redisClient *redis.Client, publisher Publisher) *Store {
	return &Store{redis: redisClient, publisher: publisher}
}

// Get returns the cached payload for key, if any
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool) {
	if s.redis == nil {
		return nil, false
	}
	val, err := s.redis.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		return nil, false
	}
	return val, true
}

// Set caches payload under key and tags it with the groups it derives from
func (s *Store) Set(ctx context.Context, key string, payload []byte, groups ...string) {
	if s.redis == nil {
		return
	}

	pipe := s.redis.TxPipeline()
	pipe.Set(ctx, keyPrefix+key, payload, cacheTTL)
	for _, g := range groups {
		pipe.SAdd(ctx, groupPrefix+g, keyPrefix+key)
		pipe.Expire(ctx, groupPrefix+g, cacheTTL)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Failed to cache projection")
	}
}

// Invalidate drops every cached projection tagged with any of the groups and
// notifies the publisher.
func (s *Store) Invalidate(ctx context.Context, groups ...string) {
	if s.redis != nil {
		for _, g := range groups {
			keys, err := s.redis.SMembers(ctx, groupPrefix+g).Result()
			if err != nil {
				log.Warn().Err(err).Str("group", g).Msg("Failed to read invalidation group")
				continue
			}
			if len(keys) > 0 {
				s.redis.Del(ctx, keys...)
			}
			s.redis.Del(ctx, groupPrefix+g)
		}
	}

	if s.publisher != nil {
		s.publisher.PublishInvalidation(ctx, groups)
	}
}

package results

import (
	"context"
	"errors"
	"time"

	"storage-search-service/internal/domain"
	"storage-search-service/internal/platform/obs"

	redis "github.com/redis/go-redis/v9"
	"github.com/rotisserie/eris"
)

const DefaultRedisKey = "storage-search:results"

// RedisResultStore keeps the latest result set under a single key.
type RedisResultStore struct {
	rdb *redis.Client
	key string
	ttl time.Duration
}

// NewRedisResultStore connects using a redis:// URL. A zero ttl keeps the
// value until the next save.
func NewRedisResultStore(url, key string, ttl time.Duration) (*RedisResultStore, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, eris.Wrap(err, "redis result store: parse url")
	}
	return NewRedisResultStoreWithClient(redis.NewClient(opt), key, ttl), nil
}

func NewRedisResultStoreWithClient(rdb *redis.Client, key string, ttl time.Duration) *RedisResultStore {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisResultStore{rdb: rdb, key: key, ttl: ttl}
}

func (s *RedisResultStore) SaveResults(ctx context.Context, results []domain.LocationResult) (err error) {
	defer obs.Time(ctx, "results.redis.Save")(&err)

	b, err := encodeResults(results)
	if err != nil {
		return eris.Wrap(err, "save results")
	}

	if err := s.rdb.Set(ctx, s.key, b, s.ttl).Err(); err != nil {
		return eris.Wrapf(err, "save results: set %q", s.key)
	}
	return nil
}

func (s *RedisResultStore) LatestResults(ctx context.Context) ([]domain.LocationResult, error) {
	b, err := s.rdb.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrNoResults
	}
	if err != nil {
		return nil, eris.Wrapf(err, "latest results: get %q", s.key)
	}

	return decodeResults(b)
}

// Ping verifies the connection.
func (s *RedisResultStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

func (s *RedisResultStore) Close() error {
	return s.rdb.Close()
}

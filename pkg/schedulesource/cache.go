package schedulesource

import (
	"bytes"
	"context"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	redisstore "github.com/eko/gocache/store/redis/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/travigo/islandferry/pkg/ferry"
)

const cacheKeyPrefix = "islandferry/schedule/"

// CachedSource keeps the raw document JSON of another source in redis. Cache failures are
// logged and fall through to the wrapped source.
type CachedSource struct {
	Source Source
	Cache  *cache.Cache[string]
}

func NewCachedSource(source Source, client *redis.Client, expiration time.Duration) *CachedSource {
	redisStore := redisstore.NewRedis(client, store.WithExpiration(expiration))

	return &CachedSource{
		Source: source,
		Cache:  cache.New[string](redisStore),
	}
}

func (s *CachedSource) Name() string {
	return s.Source.Name()
}

func (s *CachedSource) key() string {
	return cacheKeyPrefix + s.Source.Name()
}

func (s *CachedSource) Load(ctx context.Context) (*ferry.Document, error) {
	cached, err := s.Cache.Get(ctx, s.key())
	if err == nil {
		document, err := ferry.ParseDocument([]byte(cached))
		if err == nil {
			cacheHitCount.With(prometheus.Labels{"source": s.Name()}).Inc()
			return document, nil
		}

		log.Warn().Err(err).Str("source", s.Name()).Msg("Discarding unreadable cached schedule")
	}

	document, err := s.Source.Load(ctx)
	if err != nil {
		return nil, err
	}

	var encoded bytes.Buffer
	if err := document.Encode(&encoded); err != nil {
		log.Error().Err(err).Str("source", s.Name()).Msg("Failed to encode schedule for cache")
		return document, nil
	}

	if err := s.Cache.Set(ctx, s.key(), encoded.String()); err != nil {
		log.Warn().Err(err).Str("source", s.Name()).Msg("Failed to cache schedule")
	}

	return document, nil
}

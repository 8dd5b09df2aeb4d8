package schedulesource

import (
	"github.com/redis/go-redis/v9"
	"github.com/travigo/islandferry/pkg/config"
)

// FromConfig builds the configured source, cached in redis when a client is given.
func FromConfig(cfg config.ScheduleConfig, client *redis.Client) (Source, error) {
	timeout, err := cfg.Timeout()
	if err != nil {
		return nil, err
	}

	source := NewSource(cfg.Source, timeout)
	if client == nil {
		return source, nil
	}

	expiration, err := cfg.Expiration()
	if err != nil {
		return nil, err
	}

	return NewCachedSource(source, client, expiration), nil
}

package redis_client

import (
	"context"
	"errors"
	"strconv"

	"github.com/redis/go-redis/v9"
	"github.com/travigo/islandferry/pkg/util"
)

var Client *redis.Client

// ErrNotConfigured is returned by Connect when no redis address is set.
var ErrNotConfigured = errors.New("redis address not configured")

const defaultConnectionPassword = ""
const defaultDatabase = 0

// Connect opens the shared client from ISLANDFERRY_REDIS_* variables. Redis is optional
// for islandferry, so a missing address returns ErrNotConfigured and leaves Client nil.
func Connect(ctx context.Context) error {
	env := util.GetEnvironmentVariables()

	address := util.GetPrefixedVariable(env, "REDIS_ADDRESS")
	if address == "" {
		return ErrNotConfigured
	}

	password := defaultConnectionPassword
	database := defaultDatabase

	if value := util.GetPrefixedVariable(env, "REDIS_PASSWORD"); value != "" {
		password = value
	}

	if value := util.GetPrefixedVariable(env, "REDIS_DATABASE"); value != "" {
		n, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		database = n
	}

	client := redis.NewClient(&redis.Options{
		Addr:     address,
		Password: password,
		DB:       database,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return err
	}

	Client = client

	return nil
}

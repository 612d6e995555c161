// Package db manages the connection to the redis server shared by the session storage, the rate limiter and the jobs.
package db

import (
	"context"
	"strings"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// RedisConfig represents a configuration for redis connection
type RedisConfig struct {
	Addr     string `toml:"address"`
	Username string `toml:"username"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// Enabled reports whether a redis server has been configured
func (c RedisConfig) Enabled() bool {
	return c.Addr != ""
}

// Open opens a connection to the redis server and checks it's reachable
func Open(ctx context.Context, config RedisConfig) (*redis.Client, error) {
	addrType := "tcp"
	if strings.HasPrefix(config.Addr, "/") { // for unix sockets
		addrType = "unix"
	}

	rdb := redis.NewClient(&redis.Options{
		Network:  addrType,
		Addr:     config.Addr,
		Username: config.Username,
		Password: config.Password,
		DB:       config.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, errors.Wrapf(err, "db: error connecting to %s", config.Addr)
	}
	log.WithFields(log.Fields{"network": addrType, "db": config.DB}).Debug("connected to redis")
	return rdb, nil
}

// Close closes the connection to redis server
func Close(rdb *redis.Client) {
	if rdb == nil {
		return
	}
	if err := rdb.Close(); err != nil {
		log.Errorf("failed to close redis connection: %v", err)
	}
}

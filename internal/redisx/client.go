package redisx

import (
	"time"

	"github.com/redis/go-redis/v9"
)

// New builds the client used as a read-through cache for immutable orders.
func New(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})
}

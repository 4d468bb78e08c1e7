package rdx

import (
	"time"

	"auris/globals"

	"github.com/redis/go-redis/v9"
)

// Conn is the process-wide redis client. Redis backs only best-effort
// session state and counters; the storefront stays usable without it.
var Conn = redis.NewClient(&redis.Options{
	Addr: "localhost:6379",
})

// Configure points the client at the configured address. Called once at
// boot, before any worker starts.
func Configure(addr string) {
	Conn = redis.NewClient(&redis.Options{
		Addr: addr,
	})
}

func RdxSetWithTTL(key, value string, ttl time.Duration) error {
	return Conn.Set(globals.Ctx, key, value, ttl).Err()
}

func RdxGet(key string) (string, error) {
	return Conn.Get(globals.Ctx, key).Result()
}

func RdxDel(key string) error {
	return Conn.Del(globals.Ctx, key).Err()
}

func RdxIncrBy(key string, n int64) error {
	return Conn.IncrBy(globals.Ctx, key, n).Err()
}

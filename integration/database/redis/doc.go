// Package redis provides Redis client initialization and health checking.
//
// Connect validates the connection URL, retries the initial ping with a fixed
// interval and hands back a ready *redis.Client. Healthcheck returns a probe
// suitable for readiness checks.
//
//	cfg := redis.Config{ConnectionURL: "redis://localhost:6379/0", RetryAttempts: 3}
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
// Supported URL schemes are redis:// and rediss:// (TLS).
package redis

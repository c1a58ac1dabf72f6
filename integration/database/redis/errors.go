package redis

import "errors"

// Configuration problems and connectivity failures are distinct so callers
// can tell a typo in STOREFRONT_REDIS_URL from a server that is down.
var (
	ErrEmptyConnectionURL           = errors.New("redis: connection url is empty")
	ErrFailedToParseRedisConnString = errors.New("redis: invalid connection url")
	ErrRedisNotReady                = errors.New("redis: server did not answer ping")
	ErrHealthcheckFailed            = errors.New("redis: healthcheck failed")
)

// Package health runs dependency checks for the storefront client.
//
// Checks follow the func(context.Context) error signature so connectors can
// hand theirs over directly:
//
//	report := health.Readiness(ctx, logger,
//		health.Named("api", client.Health),
//		health.Named("redis", redis.Healthcheck(rdb)),
//	)
//	if !report.Ready() {
//		// ...
//	}
package health

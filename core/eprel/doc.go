// Package eprel is a client for the EPREL public API (European Product
// Registry for Energy Labelling).
//
// The client handles pagination, rate limiting and retries for product
// fetches, and normalizes the deployment-dependent response shapes (bare
// array vs object with items/total under varying keys) into Page values.
//
// # Rate limiting
//
// One rate.Limiter is shared by every outbound call of a Client, including
// binary asset downloads. Two consecutive calls are therefore always at
// least Config.RequestDelay apart, regardless of which product group they
// target.
//
// # Failure classification
//
//   - 401/403 return ErrAuth and are never retried.
//   - 429 returns RateLimitError; the client sleeps for the server-indicated
//     Retry-After (default 60s) and retries within the attempt budget.
//   - Other non-2xx and transport failures are retried with exponential
//     backoff (2s..60s) up to Config.MaxRetries attempts, then surfaced.
//
// # Usage
//
//	client, err := eprel.NewClient(cfg.API, log)
//	page, err := client.FetchPage(ctx, "dishwashers", 1, 100)
//	err = client.StreamAll(ctx, "tyres", 1, 0, func(item map[string]any) error {
//	    ...
//	})
package eprel

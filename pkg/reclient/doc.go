// Package reclient is the entry point for constructing a Redis Enterprise
// REST API client that implements reapi.Client.
//
// Quick start
//
//	cli, err := reclient.NewBuilder().
//	  BaseURL("https://cluster.example.com:9443").
//	  Credentials("admin@redis.local", "secret").
//	  Insecure(true).
//	  Build()
//	if err != nil { log.Fatal(err) }
//
//	dbs, err := cli.Databases().List(ctx)
//
// Or from the environment (REDIS_ENTERPRISE_URL, REDIS_ENTERPRISE_USER,
// REDIS_ENTERPRISE_PASSWORD, REDIS_ENTERPRISE_INSECURE):
//
//	cli, err := reclient.NewFromEnv()
//	if reapi.IsUnauthorized(err) {
//	  // REDIS_ENTERPRISE_PASSWORD is not set
//	}
//
// Build and NewFromEnv fail before any request is sent when the base URL is
// missing or not a URL, the timeout is not positive, or the User-Agent is not
// a valid header value. These failures are validation-kind errors.
package reclient

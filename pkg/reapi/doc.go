// Package reapi defines the public types and interfaces of the Redis
// Enterprise REST API client.
//
// Clients are created through pkg/reclient:
//
//	client, err := reclient.NewBuilder().
//		BaseURL("https://cluster.example.com:9443").
//		Credentials("admin@example.com", "secret").
//		Insecure(true).
//		Build()
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	db, err := client.Databases().Get(ctx, 1)
//
// # Errors
//
// Every failure is a *Error carrying one ErrorKind. Use errors.Is with the
// kind sentinels (ErrNotFound, ErrTimeout, ...) or the Is* helpers:
//
//	if reapi.IsNotFound(err) {
//		// handle missing database
//	}
//
// A response field that fails to decode is reported as KindField with the
// dotted path of the offending field in FieldPath.
//
// # Streams
//
// Watch and Stream methods return a Stream that polls lazily. Nothing is
// fetched until the caller pulls, and a fetch failure ends the stream:
//
//	for event, err := range client.Databases().Watch(ctx, 1, 5*time.Second).All() {
//		if err != nil {
//			return err
//		}
//		if event.Previous != nil {
//			fmt.Printf("status %s -> %s\n", *event.Previous, *event.Current.Status)
//		}
//	}
//
// # Unknown fields
//
// Typed resources keep response keys they do not model in their Extra map
// and write them back when marshaled, so newer server versions round-trip.
package reapi

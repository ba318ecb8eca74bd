// Package csrf issues and checks single-use tokens that protect
// state-changing requests against cross-site request forgery.
//
// A token is 32 bytes from crypto/rand, hex encoded to 64 characters. It is
// valid until it expires (one hour by default) or is consumed, whichever
// comes first. Consume succeeds for exactly one caller even when several
// requests race with the same token; after that Validate and Consume report
// false forever.
//
//	m := csrf.NewManager(csrf.WithTTL(30 * time.Minute))
//	defer m.Close()
//
//	token, err := m.Generate(ctx) // embed in the form or hand to the SPA
//	...
//	if !m.Consume(ctx, submitted) {
//		// reject
//	}
//
// # Stores
//
// MemoryStore is the default: a sharded map whose consume step is one
// compare-and-swap. RedisStore shares tokens between replicas and consumes
// with GETDEL; it stores a blake2b digest of each token as the key, never the
// token itself.
//
// # Middleware
//
// Middleware enforces tokens on every method except GET, HEAD, OPTIONS and
// TRACE, reading the X-CSRF-Token header or the csrf_token form field.
// Rejected requests get 403 unless WithErrorHandler says otherwise.
package csrf

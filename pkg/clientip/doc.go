// Package clientip resolves the originating client address of an
// *http.Request for rate limiting and logging.
//
// By default only the TCP peer address is used. Proxy headers are consulted
// only when listed as trusted, in the order given:
//
//	res := clientip.NewResolver("CF-Connecting-IP", "X-Forwarded-For")
//	handler = res.Middleware(handler)
//
//	// downstream
//	ip := clientip.FromContext(r.Context())
//
// Header values are parsed with net.ParseIP and normalised, so injected
// text, ports and malformed addresses are ignored and resolution falls
// through to the next source. IP never returns an error; an empty string
// means no valid address was found.
package clientip

// Package requestid tags every HTTP request with a correlation id.
//
// Middleware reuses a well-formed X-Request-ID header from the client or
// generates a UUIDv4, stores the id in the request context and echoes it in
// the response. Ids are limited to 128 characters of [a-zA-Z0-9_-], so a
// client cannot smuggle markup or log-forging sequences through the header.
//
//	r := chi.NewRouter()
//	r.Use(requestid.Middleware())
//
// LoggerExtractor plugs the id into pkg/logger:
//
//	log := logger.New(logger.WithContextExtractors(requestid.LoggerExtractor()))
package requestid

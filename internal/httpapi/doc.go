// Package httpapi serves the guardkit primitives as a small JSON API.
//
//	GET  /healthz                liveness
//	GET  /readyz                 readiness (e.g. Redis ping)
//	GET  /v1/csrf                issue a CSRF token
//	POST /v1/sanitize            {"input","allow_html","max_length"}
//	POST /v1/escape              {"input"}
//	POST /v1/validate/email      {"value"}
//	POST /v1/validate/password   {"value"}
//	POST /v1/validate/url        {"value"}
//	POST /v1/contact             {"name","email","message"}, X-CSRF-Token required
//
// Every /v1 route is limited per client address. Contact submissions are
// additionally limited per sender email. Responses use one envelope:
// {"data": ...} on success and {"error": {"code","message","details"}} on
// failure.
package httpapi

// Package graph provides an app-only HTTP client for Microsoft Graph.
//
// This package provides:
//   - OAuth2 client credentials token acquisition and caching
//   - A generic authenticated request primitive with transparent token renewal
//   - Rate limiting for Microsoft Graph API requests
//   - Error handling for Microsoft Graph API responses
//
// # Client Credentials Flow
//
// App-only access authenticates as the application itself, not as a signed-in
// user, against the tenant-specific v2.0 endpoint:
//   - Token URL: https://login.microsoftonline.com/{tenant}/oauth2/v2.0/token
//
// The "https://graph.microsoft.com/.default" scope requests whatever
// application permissions the app registration has been granted (with admin
// consent). No user interaction and no refresh token are involved; a new
// access token is simply requested whenever needed.
//
// # Token Lifecycle
//
// Access tokens live for roughly an hour. The token source caches the current
// token in memory and renews it when a request finds it within five minutes
// of expiry. Should Graph still reject a request with the
// InvalidAuthenticationToken error code, the cached token is discarded and
// the request retried exactly once with a fresh one. Any other failure is
// returned to the caller untouched.
//
// # Rate Limits
//
// Microsoft Graph allows approximately 10,000 requests per 10 minutes per
// app. This package implements conservative client-side rate limiting to
// avoid hitting quotas. Throttled (429) responses are surfaced to the
// caller, never retried; their Retry-After value only delays future requests.
package graph

// Package github lists published fastText releases through the GitHub API.
//
// Requests go through go-github with an optional static oauth2 token and a
// rate limiter that combines a token bucket with the X-RateLimit headers
// GitHub returns.
package github

// Package settings provides the compiled-in frontend settings for each
// deployment environment: the backend API base URL and the Auth0 tenant,
// audience, client identifier and callback URL.
//
// Profiles are embedded into the binary and validated on load. A loaded
// Settings value is read-only and safe to share between goroutines. The
// default environment is fixed at build time:
//
//	go build ./cmd/server                  # development
//	go build -tags production ./cmd/server # production
package settings

// Package application provides application initialization and dependency wiring.
// It loads the compiled-in settings for the configured environment and builds
// the identity provider, metrics, handlers, routers and HTTP server around
// them, keeping the main package focused on CLI parsing and orchestration.
package application

// Package config loads the server's runtime configuration from multiple
// sources (YAML files, environment variables optionally seeded from a .env
// file, CLI flags) with precedence: CLI flags > YAML config > Environment
// variables > Defaults. The frontend settings themselves are compiled in and
// live in package settings; only the choice of environment can be overridden
// here, and only from YAML or the command line.
package config

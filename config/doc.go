// Package config loads service configuration from YAML files and
// environment variables.
//
// Configuration is resolved in layers: a config.yml found near the
// binary (cmd/<service>/config.yml) provides the base, a .env file is
// loaded next, and process environment variables override both. Env
// keys map onto nested config keys by underscore splitting, so
// AUTH_TOKEN_SECRET reaches auth.token.secret without explicit binds.
package config

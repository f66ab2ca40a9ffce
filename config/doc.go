// Package config loads the application configuration from .env, a YAML
// file and environment variables.
package config

// Package config assembles the application configuration from
// environment variables and an optional .env file.
//
// Each core package owns its partial config struct; this package
// composes them and binds defaults declared via 'default' struct tags
// so that every key is overridable through the environment
// (SERVER_PORT, LOG_LEVEL, MERGE_POLICY, ...).
package config

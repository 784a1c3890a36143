// Package config handles configuration loading, parsing, and validation
// from defaults, an optional YAML file and TASKBOARD_* environment variables.
// It covers both the API server and the command line client.
package config

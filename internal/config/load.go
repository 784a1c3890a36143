package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of every environment variable read by Load and
// LoadClient.
const EnvPrefix = "TASKBOARD"

var serverDefaults = map[string]any{
	"server.port":                        8080,
	"server.log_level":                   "info",
	"server.log_format":                  "json",
	"database.max_open_conns":            10,
	"database.max_idle_conns":            5,
	"database.conn_max_lifetime_minutes": 5,
	"auth.token_lifetime_minutes":        60,
	"auth.bcrypt_cost":                   10,
	"cache.ttl_seconds":                  300,
}

var serverKeys = []string{
	"server.port",
	"server.log_level",
	"server.log_format",
	"database.url",
	"database.max_open_conns",
	"database.max_idle_conns",
	"database.conn_max_lifetime_minutes",
	"auth.jwt_secret",
	"auth.token_lifetime_minutes",
	"auth.bcrypt_cost",
	"cache.redis_url",
	"cache.ttl_seconds",
}

var clientDefaults = map[string]any{
	"client.api_url":              "http://localhost:8080",
	"client.log_level":            "warn",
	"client.worker_count":         4,
	"client.queue_size":           256,
	"client.call_timeout_seconds": 10,
}

var clientKeys = []string{
	"client.api_url",
	"client.session_path",
	"client.log_level",
	"client.worker_count",
	"client.queue_size",
	"client.call_timeout_seconds",
}

// Load reads the server configuration from defaults, an optional config.yaml
// in the working directory and TASKBOARD_* environment variables, in
// increasing order of precedence.
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile is Load with an explicit config file. An empty path searches the
// working directory for config.yaml and tolerates its absence.
func LoadFile(path string) (*Config, error) {
	v, err := newViper(path, serverDefaults, serverKeys)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

// LoadClient reads the command line client configuration. Keys live under
// the "client" section of the file, for example TASKBOARD_CLIENT_API_URL.
func LoadClient(path string) (*ClientConfig, error) {
	v, err := newViper(path, clientDefaults, clientKeys)
	if err != nil {
		return nil, err
	}

	var wrapper struct {
		Client ClientConfig `mapstructure:"client"`
	}
	if err := v.Unmarshal(&wrapper); err != nil {
		return nil, fmt.Errorf("failed to unmarshal client configuration: %w", err)
	}
	if err := validator.New().Struct(&wrapper.Client); err != nil {
		return nil, fmt.Errorf("client configuration validation failed: %w", err)
	}
	return &wrapper.Client, nil
}

func newViper(path string, defaults map[string]any, keys []string) (*viper.Viper, error) {
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Unmarshal only sees keys viper knows about, so every key is bound.
	for _, key := range keys {
		envVar := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, envVar); err != nil {
			return nil, fmt.Errorf("error binding environment variable %s: %w", envVar, err)
		}
	}

	return v, nil
}

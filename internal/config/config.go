package config

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Config is the root configuration of the roster binary.
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Server  ServerConfig  `yaml:"server"`
	CORS    CORSConfig    `yaml:"cors"`
	Log     LogConfig     `yaml:"log"`
	Actors  ActorsConfig  `yaml:"actors"`
}

// StorageConfig selects and locates the storage medium.
type StorageConfig struct {
	Adapter  string `yaml:"adapter"   env:"ROSTER_ADAPTER"   env-default:"fs"`
	Path     string `yaml:"path"      env:"ROSTER_DATA"`
	ReadOnly bool   `yaml:"read_only" env:"ROSTER_READ_ONLY"`

	// Unsafe lets dev builds (go run, go test) write the real data path
	// instead of a sandbox under the temp dir.
	Unsafe bool `yaml:"unsafe" env:"ROSTER_UNSAFE"`
}

// ServerConfig holds HTTP server settings for `roster serve`.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"ROSTER_SERVER_HOST"             env-default:"127.0.0.1"`
	Port            int           `yaml:"port"             env:"ROSTER_SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"ROSTER_SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"ROSTER_SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"ROSTER_SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`

	// DisableWatch stops reloading the stores when another process writes the medium.
	DisableWatch bool `yaml:"disable_watch" env:"ROSTER_SERVER_DISABLE_WATCH"`
}

// Addr returns host:port.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// CORSConfig holds CORS settings for the HTTP API.
type CORSConfig struct {
	AllowedOrigins string `yaml:"allowed_origins" env:"ROSTER_CORS_ALLOWED_ORIGINS" env-default:"*"`
	MaxAge         int    `yaml:"max_age"         env:"ROSTER_CORS_MAX_AGE"         env-default:"300"`
}

// Origins splits AllowedOrigins on commas.
func (c CORSConfig) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"ROSTER_LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"ROSTER_LOG_FORMAT" env-default:"text"`
}

// ActorsConfig names the users recorded for decorated mutations.
type ActorsConfig struct {
	Employees string `yaml:"employees" env:"ROSTER_ACTOR_EMPLOYEES" env-default:"Administrator"`
	Employers string `yaml:"employers" env:"ROSTER_ACTOR_EMPLOYERS" env-default:"HR Manager"`
}

// Adapters lists the accepted storage adapter names.
var Adapters = []string{"fs", "sqlite", "memory", "none"}

// Validate checks the loaded values. Load calls it automatically.
func (c *Config) Validate() error {
	if !slices.Contains(Adapters, c.Storage.Adapter) {
		return fmt.Errorf("storage.adapter must be one of %s (got %q)", strings.Join(Adapters, ", "), c.Storage.Adapter)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json (got %q)", c.Log.Format)
	}
	return nil
}

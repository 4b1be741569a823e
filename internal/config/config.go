// Package config loads the bot configuration: built-in defaults, an
// optional TOML file, then KOMPIS_ environment variables, each layer
// overriding the one before it.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Session backends.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Config is the full runtime configuration.
type Config struct {
	Telegram struct {
		Token string `koanf:"token"`
	} `koanf:"telegram"`

	Server struct {
		Addr string `koanf:"addr"`
	} `koanf:"server"`

	Session struct {
		Backend    string `koanf:"backend"`
		TTLSeconds int    `koanf:"ttl_seconds"`
	} `koanf:"session"`

	Redis struct {
		Addr     string `koanf:"addr"`
		Password string `koanf:"password"`
		DB       int    `koanf:"db"`
	} `koanf:"redis"`

	Audit struct {
		Path string `koanf:"path"`
	} `koanf:"audit"`

	Flows struct {
		Paths    []string `koanf:"paths"`
		Kommuner string   `koanf:"kommuner"`
	} `koanf:"flows"`

	Dialog struct {
		InitialNode       string `koanf:"initial_node"`
		ConfirmRejectNode string `koanf:"confirm_reject_node"`
	} `koanf:"dialog"`

	Log struct {
		Level string `koanf:"level"`
	} `koanf:"log"`
}

// Load reads configuration from defaults, the given TOML file (may be
// empty, in which case well-known locations are probed), and KOMPIS_
// environment variables.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	_ = k.Load(confmap.Provider(map[string]interface{}{
		"server.addr":         ":8080",
		"session.backend":     BackendMemory,
		"session.ttl_seconds": 0,
		"redis.addr":          "localhost:6379",
		"audit.path":          "kompis.db",
		"flows.paths":         []string{"data/flows/topics.yaml"},
		"flows.kommuner":      "data/kommuner.json",
		"dialog.initial_node": "",
		"log.level":           "info",
	}, "."), nil)

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), toml.Parser()); err != nil {
			return nil, fmt.Errorf("load config %s: %w", configPath, err)
		}
	} else {
		for _, path := range []string{"./kompis.toml", "$HOME/.kompis.toml"} {
			path = os.ExpandEnv(path)
			if _, err := os.Stat(path); err == nil {
				if err := k.Load(file.Provider(path), toml.Parser()); err == nil {
					break
				}
			}
		}
	}

	// KOMPIS_TELEGRAM_TOKEN maps to telegram.token, and so on. Only the
	// first underscore becomes a separator so keys like ttl_seconds
	// survive the round trip.
	_ = k.Load(env.Provider("KOMPIS_", ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, "KOMPIS_"))
		return strings.Replace(s, "_", ".", 1)
	}), nil)

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Validate checks the loaded configuration for values the server cannot
// start without.
func (c *Config) Validate() error {
	if c.Telegram.Token == "" {
		return fmt.Errorf("telegram token is required")
	}
	switch c.Session.Backend {
	case BackendMemory:
	case BackendRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("redis addr is required for the redis session backend")
		}
	default:
		return fmt.Errorf("unknown session backend %q", c.Session.Backend)
	}
	if len(c.Flows.Paths) == 0 {
		return fmt.Errorf("at least one flow file is required")
	}
	return nil
}

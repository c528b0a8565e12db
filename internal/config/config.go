package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the pathrace.yaml file. Every field has a usable default.
type Config struct {
	Server   ServerConfig              `yaml:"server"`
	Redis    RedisConfig               `yaml:"redis"`
	Session  SessionConfig             `yaml:"session"`
	Playback PlaybackConfig            `yaml:"playback"`
	Compare  CompareConfig             `yaml:"compare"`
	Presets  map[string]map[string]any `yaml:"presets"` // extra presets, same shape as the built-ins
}

type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// RedisConfig selects the Redis session store. An empty Addr keeps
// sessions in memory.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix"`
}

type SessionConfig struct {
	TTL time.Duration `yaml:"ttl"`
}

type PlaybackConfig struct {
	Interval time.Duration `yaml:"interval"`
	Speed    int           `yaml:"speed"`
}

type CompareConfig struct {
	Parallel int `yaml:"parallel"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ShutdownTimeout: 5 * time.Second,
		},
		Redis:    RedisConfig{Prefix: "pathrace"},
		Session:  SessionConfig{TTL: time.Hour},
		Playback: PlaybackConfig{Interval: 50 * time.Millisecond, Speed: 1},
		Compare:  CompareConfig{Parallel: 1},
	}
}

// Load reads a YAML config file over the defaults. An empty path or a
// missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

// Catalog returns the built-in presets merged with the ones declared in
// the config file.
func (c Config) Catalog() (*Catalog, error) {
	cat, err := LoadCatalog()
	if err != nil {
		return nil, err
	}
	if err := cat.Merge(c.Presets); err != nil {
		return nil, err
	}
	return cat, nil
}

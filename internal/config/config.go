package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all hexplane configuration
type Config struct {
	Render RenderConfig `yaml:"render"`
	Server ServerConfig `yaml:"server"`
	Auth   AuthConfig   `yaml:"auth"`
	Redis  RedisConfig  `yaml:"redis"`
}

// RenderConfig holds default grid rendering settings
type RenderConfig struct {
	IMin   int64   `yaml:"i_min"`
	IMax   int64   `yaml:"i_max"`
	JMin   int64   `yaml:"j_min"`
	JMax   int64   `yaml:"j_max"`
	Size   float64 `yaml:"size"`   // world-to-output scale
	Mode   string  `yaml:"mode"`   // "palette" or "hash"
	Scheme string  `yaml:"scheme"` // colorscheme JSON path; empty = built-in
}

// ServerConfig holds server-specific settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// AuthConfig holds hit-testing endpoint authentication settings
type AuthConfig struct {
	TokenSecret string `yaml:"token_secret"` // empty disables auth on /ws
}

// RedisConfig holds the optional rendered-tile cache settings
type RedisConfig struct {
	Address         string `yaml:"address"` // empty disables the cache
	Password        string `yaml:"password"`
	DB              int    `yaml:"db"`
	CachePrefix     string `yaml:"cache_prefix"`
	CacheTTLSeconds int    `yaml:"cache_ttl_seconds"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	ApplyDefaults(&cfg)
	return &cfg, nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	var cfg Config
	ApplyDefaults(&cfg)
	return &cfg
}

// ApplyDefaults fills in defaults for settings that were not provided.
func ApplyDefaults(cfg *Config) {
	if cfg.Render.IMin == 0 && cfg.Render.IMax == 0 {
		cfg.Render.IMax = 11
	}
	if cfg.Render.JMin == 0 && cfg.Render.JMax == 0 {
		cfg.Render.JMax = 11
	}
	if cfg.Render.Size == 0 {
		cfg.Render.Size = 24
	}
	if cfg.Render.Mode == "" {
		cfg.Render.Mode = "palette"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8089
	}
	if cfg.Redis.CachePrefix == "" {
		cfg.Redis.CachePrefix = "hexplane:tile:"
	}
	if cfg.Redis.CacheTTLSeconds == 0 {
		cfg.Redis.CacheTTLSeconds = 300
	}
}

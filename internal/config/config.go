// Package config loads explorer and server settings from a YAML file,
// a .env file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/litescript/ls-starfield/internal/starfield"
)

const (
	DefaultCellWidth  = 4
	DefaultCellHeight = 2
	DefaultPanSpeed   = 50.0 / 1000.0
	DefaultFPS        = 30
	DefaultKeyHold    = 200 * time.Millisecond
	DefaultTheme      = "pico"
	DefaultAddr       = ":8080"
	DefaultRPS        = 20
	DefaultBurst      = 40
)

type Config struct {
	Seed      Seed           `yaml:"seed"`
	LogLevel  string         `yaml:"log_level" env:"STARFIELD_LOG_LEVEL"`
	LogFormat string         `yaml:"log_format" env:"STARFIELD_LOG_FORMAT"`
	Explorer  ExplorerConfig `yaml:"explorer"`
	Server    ServerConfig   `yaml:"server"`
}

type ExplorerConfig struct {
	CellWidth  int           `yaml:"cell_width"`
	CellHeight int           `yaml:"cell_height"`
	PanSpeed   float64       `yaml:"pan_speed"`
	FPS        int           `yaml:"fps"`
	KeyHold    time.Duration `yaml:"key_hold"`
	Theme      string        `yaml:"theme"`
}

type ServerConfig struct {
	Addr           string          `yaml:"addr" env:"STARFIELD_ADDR"`
	AllowedOrigins []string        `yaml:"allowed_origins" env:"STARFIELD_ALLOWED_ORIGINS" envSeparator:","`
	RateLimit      RateLimitConfig `yaml:"rate_limit"`
}

type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" env:"STARFIELD_RATE_LIMIT_ENABLED"`
	RPS     float64 `yaml:"rps" env:"STARFIELD_RATE_LIMIT_RPS"`
	Burst   int     `yaml:"burst" env:"STARFIELD_RATE_LIMIT_BURST"`
}

// Seed is a field seed that decodes leniently: a YAML value that is not
// an integer yields starfield.DefaultSeed instead of an error.
type Seed int64

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *Seed) UnmarshalYAML(value *yaml.Node) error {
	*s = Seed(starfield.ParseSeed(value.Value))
	return nil
}

// seedEnv is read separately so a malformed seed falls back to the
// default instead of failing the parse.
type seedEnv struct {
	Seed *string `env:"STARFIELD_SEED"`
}

func DefaultConfig() *Config {
	return &Config{
		Seed:      Seed(starfield.DefaultSeed),
		LogLevel:  "info",
		LogFormat: "text",
		Explorer: ExplorerConfig{
			CellWidth:  DefaultCellWidth,
			CellHeight: DefaultCellHeight,
			PanSpeed:   DefaultPanSpeed,
			FPS:        DefaultFPS,
			KeyHold:    DefaultKeyHold,
			Theme:      DefaultTheme,
		},
		Server: ServerConfig{
			Addr:           DefaultAddr,
			AllowedOrigins: []string{"*"},
			RateLimit: RateLimitConfig{
				Enabled: true,
				RPS:     DefaultRPS,
				Burst:   DefaultBurst,
			},
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Resolve builds the effective configuration: defaults, then the YAML file
// at path (skipped when path is empty), then .env and the environment.
func Resolve(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		loaded, err := Load(path)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// ApplyEnv overrides cfg with any STARFIELD_* variables that are set.
func ApplyEnv(cfg *Config) error {
	if err := ParseEnv(cfg); err != nil {
		return err
	}
	var s seedEnv
	if err := ParseEnv(&s); err != nil {
		return err
	}
	if s.Seed != nil {
		cfg.Seed = Seed(starfield.ParseSeed(*s.Seed))
	}
	return nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func (c *Config) Validate() error {
	e := c.Explorer
	if e.CellWidth <= 0 || e.CellHeight <= 0 {
		return fmt.Errorf("explorer cell size %dx%d must be positive", e.CellWidth, e.CellHeight)
	}
	if e.PanSpeed <= 0 {
		return fmt.Errorf("explorer pan_speed %v must be positive", e.PanSpeed)
	}
	if e.FPS < 1 || e.FPS > 240 {
		return fmt.Errorf("explorer fps %d out of range [1, 240]", e.FPS)
	}
	if e.KeyHold <= 0 {
		return fmt.Errorf("explorer key_hold %v must be positive", e.KeyHold)
	}
	if c.Server.Addr == "" {
		return errors.New("server addr is empty")
	}
	if rl := c.Server.RateLimit; rl.Enabled && (rl.RPS <= 0 || rl.Burst <= 0) {
		return fmt.Errorf("rate limit rps %v and burst %d must be positive", rl.RPS, rl.Burst)
	}
	return nil
}

// FrameInterval returns the time between explorer redraws.
func (e ExplorerConfig) FrameInterval() time.Duration {
	if e.FPS <= 0 {
		return time.Second / DefaultFPS
	}
	return time.Second / time.Duration(e.FPS)
}

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Seed != 0 {
		t.Errorf("expected seed 0, got %d", cfg.Seed)
	}
	if cfg.Explorer.PanSpeed != 0.05 {
		t.Errorf("expected pan speed 0.05, got %v", cfg.Explorer.PanSpeed)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
	if got := cfg.Explorer.FrameInterval(); got != time.Second/30 {
		t.Errorf("expected frame interval %v, got %v", time.Second/30, got)
	}
}

func TestLoadSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "starfield.yaml")

	cfg := DefaultConfig()
	cfg.Seed = -7
	cfg.Explorer.KeyHold = 350 * time.Millisecond
	cfg.Server.AllowedOrigins = []string{"https://a.example", "https://b.example"}

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got.Seed != -7 {
		t.Errorf("expected seed -7, got %d", got.Seed)
	}
	if got.Explorer.KeyHold != 350*time.Millisecond {
		t.Errorf("expected key hold 350ms, got %v", got.Explorer.KeyHold)
	}
	if len(got.Server.AllowedOrigins) != 2 {
		t.Errorf("expected 2 origins, got %v", got.Server.AllowedOrigins)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	data := "seed: 42\nexplorer:\n  fps: 60\n  key_hold: 120ms\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Seed != 42 || cfg.Explorer.FPS != 60 {
		t.Errorf("expected seed 42 fps 60, got %d %d", cfg.Seed, cfg.Explorer.FPS)
	}
	if cfg.Explorer.KeyHold != 120*time.Millisecond {
		t.Errorf("expected key hold 120ms, got %v", cfg.Explorer.KeyHold)
	}
	if cfg.Explorer.CellWidth != DefaultCellWidth {
		t.Errorf("expected default cell width, got %d", cfg.Explorer.CellWidth)
	}
	if cfg.Server.Addr != DefaultAddr {
		t.Errorf("expected default addr, got %q", cfg.Server.Addr)
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("seed: [1, 2"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoad_LenientSeed(t *testing.T) {
	tests := []struct {
		yaml string
		want Seed
	}{
		{"seed: abc\n", 0},
		{"seed: 12abc\n", 12},
		{"seed: \"-9\"\n", -9},
		{"seed: 0x1F\n", 31},
		{"seed:\n", 0},
		{"seed: 99999999999999999999\n", 0},
	}

	for _, tt := range tests {
		path := filepath.Join(t.TempDir(), "seed.yaml")
		if err := os.WriteFile(path, []byte(tt.yaml), 0644); err != nil {
			t.Fatal(err)
		}
		cfg, err := Load(path)
		if err != nil {
			t.Errorf("Load(%q): %v", tt.yaml, err)
			continue
		}
		if cfg.Seed != tt.want {
			t.Errorf("Load(%q) seed = %d, want %d", tt.yaml, cfg.Seed, tt.want)
		}
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("STARFIELD_SEED", "12abc")
	t.Setenv("STARFIELD_LOG_LEVEL", "debug")
	t.Setenv("STARFIELD_ADDR", "127.0.0.1:9000")
	t.Setenv("STARFIELD_ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("STARFIELD_RATE_LIMIT_RPS", "2.5")
	t.Setenv("STARFIELD_RATE_LIMIT_ENABLED", "false")

	cfg := DefaultConfig()
	if err := ApplyEnv(cfg); err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}

	if cfg.Seed != 12 {
		t.Errorf("expected seed 12, got %d", cfg.Seed)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected log level debug, got %q", cfg.LogLevel)
	}
	if cfg.Server.Addr != "127.0.0.1:9000" {
		t.Errorf("expected addr override, got %q", cfg.Server.Addr)
	}
	if len(cfg.Server.AllowedOrigins) != 2 || cfg.Server.AllowedOrigins[1] != "https://b.example" {
		t.Errorf("unexpected origins %v", cfg.Server.AllowedOrigins)
	}
	if cfg.Server.RateLimit.RPS != 2.5 || cfg.Server.RateLimit.Enabled {
		t.Errorf("unexpected rate limit %+v", cfg.Server.RateLimit)
	}
	if cfg.Server.RateLimit.Burst != DefaultBurst {
		t.Errorf("unset burst should keep default, got %d", cfg.Server.RateLimit.Burst)
	}
}

func TestApplyEnv_BadSeedFallsBack(t *testing.T) {
	t.Setenv("STARFIELD_SEED", "stars")

	cfg := DefaultConfig()
	cfg.Seed = 5
	if err := ApplyEnv(cfg); err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
	if cfg.Seed != 0 {
		t.Errorf("expected seed 0, got %d", cfg.Seed)
	}
}

func TestApplyEnv_BadNumber(t *testing.T) {
	t.Setenv("STARFIELD_RATE_LIMIT_BURST", "lots")

	err := ApplyEnv(DefaultConfig())
	if err == nil {
		t.Fatal("expected error for non-numeric burst")
	}
}

func TestResolve_Precedence(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	path := filepath.Join(dir, "starfield.yaml")
	if err := os.WriteFile(path, []byte("seed: 3\nlog_level: warn\nserver:\n  addr: \":7000\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("STARFIELD_ADDR", ":7100")

	cfg, err := Resolve(path)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg.Seed != 3 {
		t.Errorf("file seed should apply, got %d", cfg.Seed)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("file log level should apply, got %q", cfg.LogLevel)
	}
	if cfg.Server.Addr != ":7100" {
		t.Errorf("env should override file, got %q", cfg.Server.Addr)
	}
}

func TestResolve_Invalid(t *testing.T) {
	t.Chdir(t.TempDir())

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("explorer:\n  fps: 0\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Resolve(path); err == nil {
		t.Error("expected validation error for fps 0")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero cell width", func(c *Config) { c.Explorer.CellWidth = 0 }},
		{"negative pan speed", func(c *Config) { c.Explorer.PanSpeed = -1 }},
		{"fps too high", func(c *Config) { c.Explorer.FPS = 1000 }},
		{"zero key hold", func(c *Config) { c.Explorer.KeyHold = 0 }},
		{"empty addr", func(c *Config) { c.Server.Addr = "" }},
		{"zero burst", func(c *Config) { c.Server.RateLimit.Burst = 0 }},
	}

	for _, tt := range tests {
		cfg := DefaultConfig()
		tt.mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}

	cfg := DefaultConfig()
	cfg.Server.RateLimit = RateLimitConfig{Enabled: false}
	if err := cfg.Validate(); err != nil {
		t.Errorf("disabled rate limit needs no rps: %v", err)
	}
}

func TestGetPreset(t *testing.T) {
	p, err := GetPreset("far-side")
	if err != nil {
		t.Fatalf("expected preset, got %v", err)
	}
	if p.X != -32768 {
		t.Errorf("expected x -32768, got %d", p.X)
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	_, err := GetPreset("nonexistent")
	if !errors.Is(err, ErrUnknownPreset) {
		t.Errorf("expected ErrUnknownPreset, got %v", err)
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) != len(Presets) {
		t.Errorf("expected %d presets, got %d", len(Presets), len(presets))
	}
	for i := 1; i < len(presets); i++ {
		if presets[i-1] > presets[i] {
			t.Errorf("presets not sorted: %v", presets)
		}
	}
}

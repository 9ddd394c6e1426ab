package cli

import (
	"os"
	"path/filepath"
	"testing"

	lxerrors "github.com/matzehuels/lexgraph/pkg/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), configFileName)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.toml")

	cfg, err := LoadConfig(path, false)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.Database.Driver != DriverFile {
		t.Errorf("Driver = %q, want %q", cfg.Database.Driver, DriverFile)
	}
	if cfg.Layout.BaseRadius != 70 {
		t.Errorf("BaseRadius = %v, want 70", cfg.Layout.BaseRadius)
	}
	if *cfg.Layout.OriginX != 300 || *cfg.Layout.OriginY != 300 {
		t.Errorf("Origin = %v,%v, want 300,300", *cfg.Layout.OriginX, *cfg.Layout.OriginY)
	}
	if !*cfg.Layout.ExpandSeed {
		t.Error("ExpandSeed should default to true")
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Addr = %q, want :8080", cfg.Server.Addr)
	}

	if _, err := LoadConfig(path, true); !lxerrors.Is(err, lxerrors.ErrCodeInvalidConfig) {
		t.Errorf("LoadConfig(required) error = %v, want INVALID_CONFIG", err)
	}
}

func TestLoadConfigValues(t *testing.T) {
	path := writeConfig(t, `
[database]
driver = "redis"
redis_addr = "cache:6379"
redis_prefix = "wn:"

[layout]
base_radius = 120
origin_x = 0
expand_seed = false

[server]
addr = "127.0.0.1:9000"
`)

	cfg, err := LoadConfig(path, true)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.Database.Driver != DriverRedis || cfg.Database.RedisAddr != "cache:6379" || cfg.Database.RedisPrefix != "wn:" {
		t.Errorf("Database = %+v", cfg.Database)
	}
	if cfg.Layout.BaseRadius != 120 {
		t.Errorf("BaseRadius = %v, want 120", cfg.Layout.BaseRadius)
	}
	if *cfg.Layout.OriginX != 0 {
		t.Errorf("OriginX = %v, want explicit 0", *cfg.Layout.OriginX)
	}
	if *cfg.Layout.OriginY != 300 {
		t.Errorf("OriginY = %v, want default 300", *cfg.Layout.OriginY)
	}
	if *cfg.Layout.ExpandSeed {
		t.Error("ExpandSeed = true, want false")
	}
	if cfg.Server.Addr != "127.0.0.1:9000" {
		t.Errorf("Addr = %q", cfg.Server.Addr)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown key", "[layout]\nradius = 3\n"},
		{"unknown driver", "[database]\ndriver = \"sqlite\"\n"},
		{"negative radius", "[layout]\nbase_radius = -1\n"},
		{"bad syntax", "[layout\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.body), true)
			if !lxerrors.Is(err, lxerrors.ErrCodeInvalidConfig) {
				t.Errorf("LoadConfig() error = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func TestExploreOptionsFromConfig(t *testing.T) {
	c := New(os.Stderr, LogInfo)
	cfg := Config{}.WithDefaults()
	opts := c.exploreOptions(cfg.Layout)

	if opts.BaseRadius != 70 || !opts.ExpandSeed || opts.Logger != c.Logger {
		t.Errorf("exploreOptions() = %+v", opts)
	}
	if opts.Origin == nil || opts.Origin.X != 300 || opts.Origin.Y != 300 {
		t.Errorf("Origin = %v, want (300,300)", opts.Origin)
	}
}

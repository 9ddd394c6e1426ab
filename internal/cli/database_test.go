package cli

import (
	"context"
	"testing"

	lxerrors "github.com/matzehuels/lexgraph/pkg/errors"
	"github.com/matzehuels/lexgraph/pkg/lexicon"
)

func TestOpenDatabaseFile(t *testing.T) {
	be, err := openDatabase(context.Background(), DatabaseConfig{Driver: DriverFile, Path: hireDB})
	if err != nil {
		t.Fatalf("openDatabase() error: %v", err)
	}
	defer be.Close()

	if _, ok := be.DB.(lexicon.WordIndex); !ok {
		t.Error("file backend should expose its word index")
	}
	if err := be.Close(); err != nil {
		t.Errorf("Close() error: %v", err)
	}
}

func TestOpenDatabaseErrors(t *testing.T) {
	tests := []struct {
		name string
		cfg  DatabaseConfig
		code lxerrors.Code
	}{
		{"file without path", DatabaseConfig{Driver: DriverFile}, lxerrors.ErrCodeInvalidConfig},
		{"unknown driver", DatabaseConfig{Driver: "sqlite"}, lxerrors.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := openDatabase(context.Background(), tt.cfg)
			if !lxerrors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}

	if _, err := openDatabase(context.Background(), DatabaseConfig{Driver: DriverFile, Path: "missing.toml"}); err == nil {
		t.Error("expected error for missing lexicon file")
	}
}

func TestDatabaseFlagsOverrideConfig(t *testing.T) {
	cfg := DatabaseConfig{Driver: DriverRedis, Path: "a.toml"}
	f := databaseFlags{path: "b.toml"}
	f.apply(&cfg)
	if cfg.Driver != DriverRedis || cfg.Path != "b.toml" {
		t.Errorf("apply() = %+v", cfg)
	}

	f = databaseFlags{driver: DriverFile}
	f.apply(&cfg)
	if cfg.Driver != DriverFile || cfg.Path != "b.toml" {
		t.Errorf("apply() = %+v", cfg)
	}
}

package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")

	dir, err := configDir()
	if err != nil {
		t.Fatalf("configDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".config", appName)
	if dir != expected {
		t.Errorf("configDir() = %q, want %q", dir, expected)
	}
}

func TestConfigDirXDG(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)

	dir, err := configDir()
	if err != nil {
		t.Fatalf("configDir() error: %v", err)
	}
	if dir != filepath.Join(xdg, appName) {
		t.Errorf("configDir() = %q, want under %q", dir, xdg)
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, seed, want string
	}{
		{"", "hire", "hire"},
		{"", "hot dog", "hot_dog"},
		{"", "01213223-n", "01213223-n"},
		{"out/graph.json", "hire", "out/graph"},
		{"out/graph.svg", "hire", "out/graph"},
		{"out/graph.png", "hire", "out/graph.png"},
		{"out/graph", "hire", "out/graph"},
	}
	for _, tt := range tests {
		if got := basePath(tt.output, tt.seed); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.seed, got, tt.want)
		}
	}
}

func TestParseFormats(t *testing.T) {
	if got := parseFormats(""); len(got) != 1 || got[0] != formatJSON {
		t.Errorf("parseFormats(\"\") = %v, want [json]", got)
	}
	got := parseFormats("json,svg")
	if strings.Join(got, "|") != "json|svg" {
		t.Errorf("parseFormats(json,svg) = %v", got)
	}
	if err := validateFormats([]string{"json", "dot", "svg"}); err != nil {
		t.Errorf("validateFormats() error: %v", err)
	}
	if err := validateFormats([]string{"pdf"}); err == nil {
		t.Error("validateFormats(pdf) should fail")
	}
}

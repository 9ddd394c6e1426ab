// Package cli implements the lexgraph command-line interface.
package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/lexgraph/pkg/buildinfo"
	"github.com/matzehuels/lexgraph/pkg/explore"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "lexgraph"

	// configFileName is the config file looked up in the config directory.
	configFileName = "config.toml"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// configPath is set by the --config flag. Empty means the default
	// location, where a missing file is not an error.
	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Lexgraph explores lexical semantic networks as growing graphs",
		Long:         `Lexgraph starts from one word sense of a WordNet-style lexicon and grows a graph of related senses on demand, one expansion at a time.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/lexgraph/config.toml)")

	// Register all subcommands
	root.AddCommand(c.lookupCommand())
	root.AddCommand(c.exploreCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.dbCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Config Loading
// =============================================================================

// loadConfig reads the config file selected by --config, falling back to
// the default location.
func (c *CLI) loadConfig() (Config, error) {
	if c.configPath != "" {
		return LoadConfig(c.configPath, true)
	}
	dir, err := configDir()
	if err != nil {
		return Config{}.WithDefaults(), nil
	}
	return LoadConfig(filepath.Join(dir, configFileName), false)
}

// exploreOptions builds explorer options from the layout config.
func (c *CLI) exploreOptions(cfg LayoutConfig) explore.Options {
	origin := explore.Point{X: *cfg.OriginX, Y: *cfg.OriginY}
	return explore.Options{
		BaseRadius: cfg.BaseRadius,
		Origin:     &origin,
		ExpandSeed: *cfg.ExpandSeed,
		Logger:     c.Logger,
	}
}

// =============================================================================
// Paths
// =============================================================================

// configDir returns the config directory using XDG standard (~/.config/lexgraph/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{formatJSON}
	}
	return strings.Split(s, ",")
}

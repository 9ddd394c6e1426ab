package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	lxerrors "github.com/matzehuels/lexgraph/pkg/errors"
	"github.com/matzehuels/lexgraph/pkg/lexicon"
)

// senseWriter is implemented by the backends that can be loaded with
// senses (Redis and MongoDB).
type senseWriter interface {
	Put(ctx context.Context, s *lexicon.Sense) error
}

// dbCommand creates the db command group for managing remote backends.
func (c *CLI) dbCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Manage lexicon backends",
	}
	cmd.AddCommand(c.dbImportCommand())
	return cmd
}

// dbImportCommand creates the import command copying a TOML lexicon file
// into a Redis or MongoDB backend.
func (c *CLI) dbImportCommand() *cobra.Command {
	var driver string

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Load a TOML lexicon file into a Redis or MongoDB backend",
		Long: `Load a TOML lexicon file into a Redis or MongoDB backend.

Connection settings come from the [database] section of the config file;
--driver overrides the configured driver. Existing senses with the same id
are replaced.`,
		Example: `  lexgraph db import wordnet.toml --driver redis
  lexgraph db import wordnet.toml --driver mongo`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runImport(cmd.Context(), args[0], driver)
		},
	}

	cmd.Flags().StringVar(&driver, "driver", "", "target backend: redis, mongo (default from config)")

	return cmd
}

func (c *CLI) runImport(ctx context.Context, path, driver string) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	src, err := lexicon.LoadFile(path)
	if err != nil {
		return err
	}
	logger.Infof("Loaded %d senses from %s", src.Len(), path)

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if driver != "" {
		cfg.Database.Driver = driver
	}
	if cfg.Database.Driver == DriverFile {
		return lxerrors.New(lxerrors.ErrCodeUnsupported, "import needs a redis or mongo backend, not %q", DriverFile)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	be, err := openDatabase(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("open %s database: %w", cfg.Database.Driver, err)
	}
	defer be.Close()

	w, ok := be.DB.(senseWriter)
	if !ok {
		return lxerrors.New(lxerrors.ErrCodeUnsupported, "the %s backend cannot be written to", cfg.Database.Driver)
	}

	senses := src.Senses()
	sp := newSpinnerWithContext(ctx, fmt.Sprintf("Importing %d senses...", len(senses)))
	sp.Start()
	for i, s := range senses {
		if err := w.Put(ctx, s); err != nil {
			sp.StopWithError(fmt.Sprintf("Import failed at %s", s.ID))
			return fmt.Errorf("put %s: %w", s.ID, err)
		}
		if (i+1)%500 == 0 {
			sp.SetMessage(fmt.Sprintf("Importing senses (%d/%d)...", i+1, len(senses)))
		}
	}
	sp.StopWithSuccess(fmt.Sprintf("Imported %d senses", len(senses)))

	prog.done(fmt.Sprintf("Imported %d senses into %s", len(senses), cfg.Database.Driver))
	return nil
}

package cli

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/lexgraph/pkg/explore"
)

// seedFlags holds the flags that pick and place the seed sense.
type seedFlags struct {
	pos      string
	noExpand bool
}

func (f *seedFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.pos, "pos", "n", "part of speech used when the seed is a word")
	cmd.Flags().BoolVar(&f.noExpand, "no-expand-seed", false, "do not expand the seed at start")
}

// exploreCommand creates the interactive explore command.
func (c *CLI) exploreCommand() *cobra.Command {
	var (
		dbf   databaseFlags
		seedf seedFlags
	)

	cmd := &cobra.Command{
		Use:   "explore SEED",
		Short: "Explore the graph around a sense interactively",
		Long: `Explore the graph around a sense interactively.

SEED is either a sense id such as 01213223-n or a word, in which case its
first sense with the part of speech given by --pos is used. Select a node
and press enter to expand it: its related senses are added to the graph,
each sense appearing only once however many paths lead to it.`,
		Example: `  lexgraph explore hire --db wordnet.toml
  lexgraph explore 02409412-v --driver redis`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExplore(cmd.Context(), &dbf, &seedf, args[0])
		},
	}

	dbf.register(cmd)
	seedf.register(cmd)

	return cmd
}

func (c *CLI) runExplore(ctx context.Context, dbf *databaseFlags, seedf *seedFlags, arg string) error {
	x, closeDB, err := c.openExplorer(ctx, dbf, seedf, arg)
	if err != nil {
		return err
	}
	defer closeDB()

	p := tea.NewProgram(NewExploreModel(ctx, x), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return err
	}

	g := x.Graph()
	printStats(g.NodeCount(), g.EdgeCount(), 0)
	return nil
}

// openExplorer opens the backend, resolves the seed argument and starts an
// explorer on it. The returned func closes the backend.
func (c *CLI) openExplorer(ctx context.Context, dbf *databaseFlags, seedf *seedFlags, arg string) (*explore.Explorer, func(), error) {
	logger := loggerFromContext(ctx)

	cfg, be, err := c.openFromFlags(ctx, dbf)
	if err != nil {
		return nil, nil, err
	}
	closeDB := func() {
		if err := be.Close(); err != nil {
			logger.Warn("close database", "err", err)
		}
	}

	seed, err := resolveSeed(ctx, be.DB, arg, seedf.pos)
	if err != nil {
		closeDB()
		return nil, nil, err
	}

	opts := c.exploreOptions(cfg.Layout)
	if seedf.noExpand {
		opts.ExpandSeed = false
	}
	logger.Debug("starting exploration", "seed", seed, "expand_seed", opts.ExpandSeed, "base_radius", opts.BaseRadius)

	x, err := explore.New(ctx, be.DB, seed, opts)
	if err != nil {
		closeDB()
		return nil, nil, err
	}
	return x, closeDB, nil
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	lxerrors "github.com/matzehuels/lexgraph/pkg/errors"
	"github.com/matzehuels/lexgraph/pkg/explore"
	"github.com/matzehuels/lexgraph/pkg/graph"
	"github.com/matzehuels/lexgraph/pkg/lexicon"
	"github.com/matzehuels/lexgraph/pkg/render/nodelink"
)

const (
	formatJSON = "json" // graph snapshot in the wire format
	formatDOT  = "dot"  // Graphviz source
	formatSVG  = "svg"  // Graphviz rendering
)

// validFormats is the set of supported output formats.
var validFormats = map[string]bool{formatJSON: true, formatDOT: true, formatSVG: true}

// validateFormats checks that all requested formats are valid.
func validateFormats(formats []string) error {
	for _, f := range formats {
		if !validFormats[f] {
			return lxerrors.New(lxerrors.ErrCodeInvalidInput, "invalid format: %s (must be 'json', 'dot' or 'svg')", f)
		}
	}
	return nil
}

// exportOpts holds the command-line flags for the export command.
type exportOpts struct {
	output   string   // output file (single format) or base path
	formats  []string // output formats: json, dot, svg
	expand   []string // sense ids expanded in order after the seed
	depth    int      // breadth-first rounds over the frontier
	detailed bool     // sense id and gloss in diagram labels
	pinned   bool     // keep explorer positions in diagrams
	from     string   // snapshot file to re-render instead of exploring
}

// validate checks flag combinations that cobra cannot express.
func (o *exportOpts) validate(args []string) error {
	switch {
	case o.depth < 0:
		return lxerrors.New(lxerrors.ErrCodeInvalidInput, "--depth must not be negative")
	case o.output == "-" && len(o.formats) > 1:
		return lxerrors.New(lxerrors.ErrCodeInvalidInput, "-o - writes a single format, got %s", strings.Join(o.formats, ","))
	case o.from == "" && len(args) == 0:
		return lxerrors.New(lxerrors.ErrCodeInvalidInput, "export needs a SEED or --from")
	case o.from != "" && len(args) > 0:
		return lxerrors.New(lxerrors.ErrCodeInvalidInput, "SEED and --from cannot be combined")
	case o.from != "" && (len(o.expand) > 0 || o.depth > 0):
		return lxerrors.New(lxerrors.ErrCodeInvalidInput, "--expand and --depth need a SEED, not --from")
	}
	return nil
}

// exportCommand creates the export command: a scripted exploration
// followed by a snapshot of the graph.
func (c *CLI) exportCommand() *cobra.Command {
	var (
		dbf        databaseFlags
		seedf      seedFlags
		formatsStr string
		opts       exportOpts
	)

	cmd := &cobra.Command{
		Use:   "export [SEED]",
		Short: "Expand a graph non-interactively and write a snapshot",
		Long: `Expand a graph non-interactively and write a snapshot.

The seed is expanded first (unless --no-expand-seed), then every sense given
with --expand in order, then --depth rounds over every node that is not yet
expanded. The result is written as JSON, Graphviz DOT or SVG.

With --from, a JSON snapshot written earlier is re-rendered instead and no
lexicon is opened ("-" reads stdin).

With a single format, -o names the output file ("-" writes to stdout).
With several formats, -o is a base path and the extension is appended.`,
		Example: `  lexgraph export hire --db wordnet.toml -o hire.json
  lexgraph export hire --depth 2 --format json,svg -o out/hire
  lexgraph export 01213223-n --expand 01212519-n --format svg --pinned
  lexgraph export --from hire.json --format svg --pinned`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := validateFormats(opts.formats); err != nil {
				return err
			}
			if err := opts.validate(args); err != nil {
				return err
			}
			if opts.from != "" {
				return runRerender(cmd.Context(), &opts)
			}
			return c.runExport(cmd.Context(), &dbf, &seedf, args[0], &opts)
		},
	}

	dbf.register(cmd)
	seedf.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): json (default), dot, svg (comma-separated)")
	cmd.Flags().StringSliceVar(&opts.expand, "expand", nil, "sense ids to expand after the seed (comma-separated)")
	cmd.Flags().IntVar(&opts.depth, "depth", 0, "expand the whole frontier this many times")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show sense ids and glosses in diagrams")
	cmd.Flags().BoolVar(&opts.pinned, "pinned", false, "keep explorer positions in diagrams")
	cmd.Flags().StringVar(&opts.from, "from", "", "re-render a JSON snapshot instead of exploring")

	return cmd
}

func (c *CLI) runExport(ctx context.Context, dbf *databaseFlags, seedf *seedFlags, arg string, opts *exportOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	x, closeDB, err := c.openExplorer(ctx, dbf, seedf, arg)
	if err != nil {
		return err
	}
	defer closeDB()

	skipped, err := expandScripted(ctx, x, opts.expand, opts.depth)
	if err != nil {
		return err
	}

	snap := graph.FromExplorer(x)
	prog.done(fmt.Sprintf("Explored %d nodes, %d edges", len(snap.Nodes), len(snap.Edges)))

	if err := writeSnapshot(ctx, snap, basePath(opts.output, arg), opts); err != nil {
		return err
	}
	printStats(len(snap.Nodes), len(snap.Edges), skipped)
	return nil
}

// runRerender renders a snapshot read from opts.from. Output names default
// to the snapshot's seed.
func runRerender(ctx context.Context, opts *exportOpts) error {
	var (
		snap graph.Graph
		err  error
	)
	if opts.from == "-" {
		snap, err = graph.ReadGraph(stdin)
	} else {
		snap, err = graph.ReadGraphFile(opts.from)
	}
	switch {
	case errors.Is(err, os.ErrNotExist):
		return lxerrors.Wrap(lxerrors.ErrCodeNotFound, err, "snapshot %s", opts.from)
	case err != nil && lxerrors.GetCode(err) == "":
		return lxerrors.Wrap(lxerrors.ErrCodeInvalidFormat, err, "read snapshot %s", opts.from)
	case err != nil:
		return err
	}
	loggerFromContext(ctx).Infof("Loaded %d nodes, %d edges from %s", len(snap.Nodes), len(snap.Edges), opts.from)

	name := snap.Seed
	if name == "" {
		name = "snapshot"
	}
	if err := writeSnapshot(ctx, snap, basePath(opts.output, name), opts); err != nil {
		return err
	}
	printStats(len(snap.Nodes), len(snap.Edges), 0)
	return nil
}

// writeSnapshot renders snap in every requested format under base.
func writeSnapshot(ctx context.Context, snap graph.Graph, base string, opts *exportOpts) error {
	for _, format := range opts.formats {
		data, err := renderSnapshot(ctx, snap, format, opts)
		if err != nil {
			return fmt.Errorf("%s: %w", format, err)
		}

		path := base + "." + format
		if len(opts.formats) == 1 && opts.output != "" {
			path = opts.output
		}
		if err := writeOutput(path, data); err != nil {
			return err
		}
		if path != "-" {
			printFile(path)
		}
	}
	return nil
}

// expandScripted expands the given ids in order, then runs depth
// breadth-first rounds over the unexpanded nodes. It returns the number of
// skipped pointers.
func expandScripted(ctx context.Context, x *explore.Explorer, ids []string, depth int) (int, error) {
	logger := loggerFromContext(ctx)
	skipped := 0

	for _, raw := range ids {
		id, err := lexicon.ParseSenseID(raw)
		if err != nil {
			return skipped, err
		}
		res, err := x.ExpandID(ctx, id)
		if err != nil {
			return skipped, err
		}
		skipped += len(res.Skipped)
		logger.Debug("expanded", "sense", id, "new_nodes", len(res.NewNodes), "new_edges", len(res.NewEdges))
	}

	for round := 1; round <= depth; round++ {
		var frontier []*explore.Node
		for _, n := range x.Graph().Nodes() {
			if !n.Expanded() {
				frontier = append(frontier, n)
			}
		}
		if len(frontier) == 0 {
			logger.Debugf("Frontier empty after %d rounds", round-1)
			break
		}
		if err := ctx.Err(); err != nil {
			return skipped, err
		}

		sp := newSpinnerWithContext(ctx, fmt.Sprintf("Expanding round %d/%d (%d nodes)...", round, depth, len(frontier)))
		sp.Start()
		for _, n := range frontier {
			res, err := x.Expand(ctx, n)
			if err != nil {
				sp.Stop()
				return skipped, err
			}
			skipped += len(res.Skipped)
		}
		sp.Stop()
		logger.Infof("Round %d: %d nodes, %d edges", round, x.Graph().NodeCount(), x.Graph().EdgeCount())
	}
	return skipped, nil
}

// renderSnapshot encodes the snapshot in one output format.
func renderSnapshot(ctx context.Context, snap graph.Graph, format string, opts *exportOpts) ([]byte, error) {
	nlOpts := nodelink.Options{Detailed: opts.detailed, Pinned: opts.pinned}
	switch format {
	case formatJSON:
		return graph.MarshalGraph(snap)
	case formatDOT:
		return []byte(nodelink.ToDOT(snap, nlOpts)), nil
	case formatSVG:
		sp := newSpinnerWithContext(ctx, "Rendering SVG...")
		sp.Start()
		defer sp.Stop()
		return nodelink.RenderSVG(ctx, nodelink.ToDOT(snap, nlOpts), nlOpts)
	}
	return nil, fmt.Errorf("unknown format: %s", format)
}

// basePath derives the base output path from the output flag and the seed
// argument. If output is empty, the seed (with spaces replaced) is used.
// A known format extension on output is stripped.
func basePath(output, seed string) string {
	if output == "" {
		return strings.ReplaceAll(strings.TrimSpace(seed), " ", "_")
	}
	ext := filepath.Ext(output)
	if validFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// nopCloser wraps an io.Writer with a no-op Close method.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// stdout and stdin back the "-" output and snapshot paths. Tests replace them.
var (
	stdout io.Writer = os.Stdout
	stdin  io.Reader = os.Stdin
)

// openOutput returns a WriteCloser for the given path. "-" is stdout;
// anything else is created, overwriting an existing file.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "-" {
		return nopCloser{stdout}, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return os.Create(path)
}

func writeOutput(path string, data []byte) error {
	w, err := openOutput(path)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	lxerrors "github.com/matzehuels/lexgraph/pkg/errors"
	"github.com/matzehuels/lexgraph/pkg/lexicon"
)

// allPOS is the order senses are listed in when no --pos is given.
var allPOS = []lexicon.PartOfSpeech{
	lexicon.Noun, lexicon.Verb, lexicon.Adjective, lexicon.AdjectiveSatellite, lexicon.Adverb,
}

// lookupCommand creates the lookup command listing the senses of a word.
func (c *CLI) lookupCommand() *cobra.Command {
	var (
		dbf       databaseFlags
		pos       string
		relations bool
	)

	cmd := &cobra.Command{
		Use:   "lookup WORD",
		Short: "List the senses of a word",
		Long: `List the senses of a word, grouped by part of speech.

Each sense shows its id (usable as a seed for 'explore' and 'export'), its
words and its gloss. With --relations, the outgoing relations are listed too.`,
		Example: `  lexgraph lookup hire --db wordnet.toml
  lexgraph lookup "hot dog" --pos n --relations`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLookup(cmd.Context(), &dbf, args[0], pos, relations)
		},
	}

	dbf.register(cmd)
	cmd.Flags().StringVar(&pos, "pos", "", "part of speech: n, v, a, s, r (default all)")
	cmd.Flags().BoolVar(&relations, "relations", false, "list the relations of every sense")

	return cmd
}

func (c *CLI) runLookup(ctx context.Context, dbf *databaseFlags, word, pos string, relations bool) error {
	if err := lxerrors.ValidateLemma(word); err != nil {
		return err
	}
	poses := allPOS
	if pos != "" {
		p, err := lexicon.ParsePartOfSpeech(pos)
		if err != nil {
			return err
		}
		poses = []lexicon.PartOfSpeech{p}
	}

	_, be, err := c.openFromFlags(ctx, dbf)
	if err != nil {
		return err
	}
	defer be.Close()

	idx, ok := be.DB.(lexicon.WordIndex)
	if !ok {
		return lxerrors.New(lxerrors.ErrCodeUnsupported, "the database cannot search by word")
	}

	lemma := lxerrors.NormalizeLemma(word)
	found := 0
	for _, p := range poses {
		ids, err := idx.LookupWord(ctx, lemma, p)
		if err != nil {
			return fmt.Errorf("lookup %q: %w", word, err)
		}
		if len(ids) == 0 {
			continue
		}
		fmt.Fprintln(out, StyleTitle.Render(p.Name()))
		for _, id := range ids {
			s, err := be.DB.Lookup(ctx, id)
			if errors.Is(err, lexicon.ErrNotFound) {
				printWarning("%s is indexed but missing", id)
				continue
			}
			if err != nil {
				return err
			}
			found++
			printSense(s)
			if relations {
				c.printRelations(ctx, be.DB, s)
			}
		}
	}
	if found == 0 {
		return lxerrors.New(lxerrors.ErrCodeNotFound, "no senses for %q", word)
	}
	printNextStep("Explore the first one", fmt.Sprintf("%s explore %s", appName, word))
	return nil
}

func printSense(s *lexicon.Sense) {
	line := StyleHighlight.Render(s.ID.String()) + "  " + StyleValue.Render(strings.Join(s.Words, ", "))
	fmt.Fprintln(out, "  "+line)
	if s.Gloss != "" {
		printDetail("  %s", s.Gloss)
	}
}

func (c *CLI) printRelations(ctx context.Context, db lexicon.Database, s *lexicon.Sense) {
	ptrs, err := db.RelationsOf(ctx, s)
	if err != nil {
		c.Logger.Warn("relations unavailable", "sense", s.ID, "err", err)
		return
	}
	for _, p := range ptrs {
		target := p.Target.String()
		if t, err := db.Resolve(ctx, p); err == nil {
			target = t.String()
		} else {
			target += " " + StyleWarning.Render("(dangling)")
		}
		printRelation(p.Label(), target)
	}
}

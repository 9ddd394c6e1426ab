package cli

import (
	"context"
	"errors"

	lxerrors "github.com/matzehuels/lexgraph/pkg/errors"
	"github.com/matzehuels/lexgraph/pkg/lexicon"
)

// resolveSeed turns a command argument into a sense id. An argument that
// parses as a sense id ("01213223-n") is used as is; anything else is a word
// whose first sense with part of speech pos is taken.
func resolveSeed(ctx context.Context, db lexicon.Database, arg, pos string) (lexicon.SenseID, error) {
	if id, err := lexicon.ParseSenseID(arg); err == nil {
		return id, nil
	}
	if err := lxerrors.ValidateLemma(arg); err != nil {
		return lexicon.SenseID{}, err
	}
	p, err := lexicon.ParsePartOfSpeech(pos)
	if err != nil {
		return lexicon.SenseID{}, err
	}
	id, err := lexicon.FirstSense(ctx, db, lxerrors.NormalizeLemma(arg), p)
	switch {
	case errors.Is(err, lexicon.ErrNoWordIndex):
		return lexicon.SenseID{}, lxerrors.Wrap(lxerrors.ErrCodeUnsupported, err, "%q is not a sense id and the database cannot search by word", arg)
	case errors.Is(err, lexicon.ErrNotFound):
		return lexicon.SenseID{}, lxerrors.Wrap(lxerrors.ErrCodeNotFound, err, "no %s sense for %q", p.Name(), arg)
	}
	return id, err
}

package lexicon

import (
	"context"
	"errors"
	"fmt"
	"slices"
)

// Sentinel errors returned by every [Database] implementation.
var (
	// ErrNotFound is returned by Lookup when no sense has the requested id.
	ErrNotFound = errors.New("sense not found")

	// ErrDanglingPointer is returned by Resolve when the pointer's target is
	// missing from the underlying data.
	ErrDanglingPointer = errors.New("dangling pointer")
)

// Database is the lexical data layer consumed by the explorer.
//
// Implementations must be safe for concurrent use by multiple goroutines.
// Lookups are expected to be deterministic: the same id always yields the
// same sense and the same ordered pointers.
type Database interface {
	// Lookup returns the sense with the given id, or an error wrapping
	// ErrNotFound.
	Lookup(ctx context.Context, id SenseID) (*Sense, error)

	// RelationsOf returns the outgoing pointers of s in database order.
	// The order is significant: the explorer places new nodes by it.
	// A sense without relations yields an empty slice and no error.
	RelationsOf(ctx context.Context, s *Sense) ([]Pointer, error)

	// Resolve returns the sense a pointer refers to, or an error wrapping
	// ErrDanglingPointer when the target cannot be found.
	Resolve(ctx context.Context, p Pointer) (*Sense, error)
}

// WordIndex is implemented by databases that can find senses by word.
type WordIndex interface {
	// LookupWord returns the ids of all senses containing lemma with the
	// given part of speech, in the order the senses were added or imported,
	// so the first id is the primary sense. The lemma is expected in
	// normalized form (see errors.NormalizeLemma). No match is not an error.
	LookupWord(ctx context.Context, lemma string, pos PartOfSpeech) ([]SenseID, error)
}

// Dangling builds the error a Resolve implementation returns for p.
func Dangling(p Pointer, cause error) error {
	if cause != nil && !errors.Is(cause, ErrNotFound) {
		return fmt.Errorf("%w: %s -> %s: %v", ErrDanglingPointer, p.Label(), p.Target, cause)
	}
	return fmt.Errorf("%w: %s -> %s", ErrDanglingPointer, p.Label(), p.Target)
}

// NotFound builds the error a Lookup implementation returns for id.
func NotFound(id SenseID) error {
	return fmt.Errorf("%w: %s", ErrNotFound, id)
}

// PointersOf returns a copy of the pointers carried by s. Backends that load
// pointers together with the sense use it to implement RelationsOf.
func PointersOf(s *Sense) []Pointer {
	if s == nil || len(s.Pointers) == 0 {
		return []Pointer{}
	}
	return slices.Clone(s.Pointers)
}

// ErrNoWordIndex is returned by FirstSense when the database cannot search
// by word.
var ErrNoWordIndex = errors.New("database does not support word lookup")

// FirstSense returns the first sense id listed for lemma and pos. It fails
// with ErrNoWordIndex when db does not implement [WordIndex] and with an error
// wrapping ErrNotFound when the word has no sense of that part of speech.
func FirstSense(ctx context.Context, db Database, lemma string, pos PartOfSpeech) (SenseID, error) {
	idx, ok := db.(WordIndex)
	if !ok {
		return SenseID{}, ErrNoWordIndex
	}
	ids, err := idx.LookupWord(ctx, lemma, pos)
	if err != nil {
		return SenseID{}, fmt.Errorf("lookup word %q: %w", lemma, err)
	}
	if len(ids) == 0 {
		return SenseID{}, fmt.Errorf("%w: no %s sense for %q", ErrNotFound, pos.Name(), lemma)
	}
	return ids[0], nil
}

package lexicon

import (
	"fmt"
	"strconv"
	"strings"

	lxerrors "github.com/matzehuels/lexgraph/pkg/errors"
)

// PartOfSpeech is the WordNet syntactic category of a sense.
type PartOfSpeech byte

// Parts of speech, using the WordNet data file characters.
const (
	Noun               PartOfSpeech = 'n'
	Verb               PartOfSpeech = 'v'
	Adjective          PartOfSpeech = 'a'
	AdjectiveSatellite PartOfSpeech = 's'
	Adverb             PartOfSpeech = 'r'
)

// ParsePartOfSpeech accepts either the single WordNet character or the
// full English name ("noun", "verb", "adjective", "satellite", "adverb").
func ParsePartOfSpeech(s string) (PartOfSpeech, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "n", "noun":
		return Noun, nil
	case "v", "verb":
		return Verb, nil
	case "a", "adj", "adjective":
		return Adjective, nil
	case "s", "satellite":
		return AdjectiveSatellite, nil
	case "r", "adv", "adverb":
		return Adverb, nil
	}
	return 0, lxerrors.New(lxerrors.ErrCodeInvalidInput, "unknown part of speech %q", s)
}

// Valid reports whether p is one of the known parts of speech.
func (p PartOfSpeech) Valid() bool {
	switch p {
	case Noun, Verb, Adjective, AdjectiveSatellite, Adverb:
		return true
	}
	return false
}

// String returns the WordNet character for p.
func (p PartOfSpeech) String() string { return string(rune(p)) }

// Name returns the English name of p.
func (p PartOfSpeech) Name() string {
	switch p {
	case Noun:
		return "noun"
	case Verb:
		return "verb"
	case Adjective:
		return "adjective"
	case AdjectiveSatellite:
		return "satellite"
	case Adverb:
		return "adverb"
	}
	return "unknown"
}

// SenseID identifies a sense. Offsets are only unique within a part of
// speech, so both halves make up the identity. SenseID is comparable and is
// used directly as a map key.
type SenseID struct {
	Offset uint32
	POS    PartOfSpeech
}

// String formats the id as "%08d-%c", e.g. "02045123-n".
func (id SenseID) String() string {
	return fmt.Sprintf("%08d-%c", id.Offset, id.POS)
}

// IsZero reports whether id is the zero value.
func (id SenseID) IsZero() bool { return id == SenseID{} }

// ParseSenseID parses the "offset-pos" form produced by [SenseID.String].
// Leading zeros in the offset are optional.
func ParseSenseID(s string) (SenseID, error) {
	off, pos, ok := strings.Cut(strings.TrimSpace(s), "-")
	if !ok || off == "" || len(pos) != 1 {
		return SenseID{}, lxerrors.New(lxerrors.ErrCodeInvalidSenseID, "malformed sense id %q (want offset-pos)", s)
	}
	n, err := strconv.ParseUint(off, 10, 32)
	if err != nil {
		return SenseID{}, lxerrors.Wrap(lxerrors.ErrCodeInvalidSenseID, err, "malformed sense offset in %q", s)
	}
	p := PartOfSpeech(pos[0])
	if !p.Valid() {
		return SenseID{}, lxerrors.New(lxerrors.ErrCodeInvalidSenseID, "unknown part of speech in %q", s)
	}
	return SenseID{Offset: uint32(n), POS: p}, nil
}

// MarshalText implements encoding.TextMarshaler so ids serialize as strings.
func (id SenseID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *SenseID) UnmarshalText(b []byte) error {
	parsed, err := ParseSenseID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// Pointer is a directed, typed reference from one sense to another.
type Pointer struct {
	Symbol Symbol
	Target SenseID
}

// Label returns the relation description used as the edge label.
func (p Pointer) Label() string { return p.Symbol.Describe() }

// Sense is a single lexical concept. Senses are owned by the database and
// must be treated as immutable by callers.
type Sense struct {
	ID       SenseID
	Words    []string
	Gloss    string
	Pointers []Pointer
}

// Head returns the first word of the sense, or the id when it has none.
func (s *Sense) Head() string {
	if len(s.Words) == 0 {
		return s.ID.String()
	}
	return s.Words[0]
}

// String renders "head (id)", matching what the explorer shows as a label.
func (s *Sense) String() string {
	return fmt.Sprintf("%s (%s)", s.Head(), s.ID)
}

package lexicon

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/BurntSushi/toml"

	lxerrors "github.com/matzehuels/lexgraph/pkg/errors"
)

// Memory is an in-memory [Database] and [WordIndex].
//
// A Memory is populated with Add (or Load/LoadFile) and is read-only
// afterwards; once populated it is safe for concurrent use.
type Memory struct {
	senses map[SenseID]*Sense
	order  []SenseID
	words  map[wordKey][]SenseID
}

type wordKey struct {
	lemma string
	pos   PartOfSpeech
}

// file is the top-level shape of a TOML lexicon file.
type file struct {
	Senses []Record `toml:"sense"`
}

var (
	_ Database  = (*Memory)(nil)
	_ WordIndex = (*Memory)(nil)
)

// NewMemory creates an empty in-memory database.
func NewMemory() *Memory {
	return &Memory{
		senses: make(map[SenseID]*Sense),
		words:  make(map[wordKey][]SenseID),
	}
}

// Add registers a sense and indexes its words. Adding the same id twice is
// an error. Pointers may refer to senses that are added later (or never, in
// which case they resolve as dangling).
func (m *Memory) Add(s *Sense) error {
	if s == nil || s.ID.IsZero() {
		return lxerrors.New(lxerrors.ErrCodeInvalidSenseID, "sense id must not be empty")
	}
	if _, exists := m.senses[s.ID]; exists {
		return lxerrors.New(lxerrors.ErrCodeInvalidFormat, "duplicate sense %s", s.ID)
	}
	m.senses[s.ID] = s
	m.order = append(m.order, s.ID)
	for _, w := range s.Words {
		k := wordKey{lemma: lxerrors.NormalizeLemma(w), pos: s.ID.POS}
		if !slices.Contains(m.words[k], s.ID) {
			m.words[k] = append(m.words[k], s.ID)
		}
	}
	return nil
}

// Len returns the number of senses.
func (m *Memory) Len() int { return len(m.senses) }

// Senses returns every sense in insertion order.
func (m *Memory) Senses() []*Sense {
	out := make([]*Sense, len(m.order))
	for i, id := range m.order {
		out[i] = m.senses[id]
	}
	return out
}

// Lookup implements [Database].
func (m *Memory) Lookup(_ context.Context, id SenseID) (*Sense, error) {
	if s, ok := m.senses[id]; ok {
		return s, nil
	}
	return nil, NotFound(id)
}

// RelationsOf implements [Database].
func (m *Memory) RelationsOf(_ context.Context, s *Sense) ([]Pointer, error) {
	return PointersOf(s), nil
}

// Resolve implements [Database].
func (m *Memory) Resolve(ctx context.Context, p Pointer) (*Sense, error) {
	s, err := m.Lookup(ctx, p.Target)
	if err != nil {
		return nil, Dangling(p, err)
	}
	return s, nil
}

// LookupWord implements [WordIndex].
func (m *Memory) LookupWord(_ context.Context, lemma string, pos PartOfSpeech) ([]SenseID, error) {
	return slices.Clone(m.words[wordKey{lemma: lxerrors.NormalizeLemma(lemma), pos: pos}]), nil
}

// Load decodes a TOML lexicon from r.
func Load(r io.Reader) (*Memory, error) {
	var f file
	if _, err := toml.NewDecoder(r).Decode(&f); err != nil {
		return nil, lxerrors.Wrap(lxerrors.ErrCodeInvalidFormat, err, "decode lexicon")
	}
	m := NewMemory()
	for i, rec := range f.Senses {
		s, err := rec.Sense()
		if err != nil {
			return nil, fmt.Errorf("sense #%d: %w", i, err)
		}
		if err := m.Add(s); err != nil {
			return nil, fmt.Errorf("sense #%d: %w", i, err)
		}
	}
	return m, nil
}

// LoadFile reads a TOML lexicon file.
func LoadFile(path string) (*Memory, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Load(f)
}

package lexicon

import (
	"context"
	"errors"
	"strings"
	"testing"

	lxerrors "github.com/matzehuels/lexgraph/pkg/errors"
)

func mustID(t *testing.T, s string) SenseID {
	t.Helper()
	id, err := ParseSenseID(s)
	if err != nil {
		t.Fatalf("ParseSenseID(%q): %v", s, err)
	}
	return id
}

func TestLoadFile(t *testing.T) {
	m, err := LoadFile("testdata/hire.toml")
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if m.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", m.Len())
	}

	ctx := context.Background()
	hire, err := m.Lookup(ctx, mustID(t, "01213223-n"))
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if hire.Head() != "hire" {
		t.Errorf("Head() = %q, want hire", hire.Head())
	}

	ptrs, err := m.RelationsOf(ctx, hire)
	if err != nil {
		t.Fatalf("RelationsOf: %v", err)
	}
	if len(ptrs) != 3 {
		t.Fatalf("pointers = %d, want 3", len(ptrs))
	}
	if ptrs[0].Label() != "hypernym" || ptrs[1].Label() != "derivationally related form" {
		t.Errorf("labels = %q, %q", ptrs[0].Label(), ptrs[1].Label())
	}
}

func TestLoadFileNotFound(t *testing.T) {
	if _, err := LoadFile("testdata/missing.toml"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"syntax", `[[sense]`},
		{"bad id", "[[sense]]\nid = \"nope\"\n"},
		{"bad target", "[[sense]]\nid = \"1-n\"\n[[sense.pointer]]\nsymbol = \"@\"\ntarget = \"x\"\n"},
		{"duplicate", "[[sense]]\nid = \"1-n\"\n[[sense]]\nid = \"00000001-n\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(strings.NewReader(tt.input)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestMemoryLookupNotFound(t *testing.T) {
	m := NewMemory()
	_, err := m.Lookup(context.Background(), SenseID{Offset: 9, POS: Noun})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Lookup error = %v, want ErrNotFound", err)
	}
}

func TestMemoryResolveDangling(t *testing.T) {
	m, err := LoadFile("testdata/hire.toml")
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	ctx := context.Background()
	hire, _ := m.Lookup(ctx, mustID(t, "01213223-n"))
	ptrs, _ := m.RelationsOf(ctx, hire)

	if _, err := m.Resolve(ctx, ptrs[0]); err != nil {
		t.Errorf("Resolve(hypernym) error: %v", err)
	}

	_, err = m.Resolve(ctx, ptrs[2])
	if !errors.Is(err, ErrDanglingPointer) {
		t.Fatalf("Resolve(dangling) error = %v, want ErrDanglingPointer", err)
	}
	if errors.Is(err, ErrNotFound) {
		t.Error("dangling error should not match ErrNotFound")
	}
}

func TestMemoryRelationsOfIsCopy(t *testing.T) {
	s := &Sense{
		ID:       SenseID{Offset: 1, POS: Noun},
		Pointers: []Pointer{{Symbol: Hypernym, Target: SenseID{Offset: 2, POS: Noun}}},
	}
	m := NewMemory()
	if err := m.Add(s); err != nil {
		t.Fatalf("Add: %v", err)
	}

	ptrs, _ := m.RelationsOf(context.Background(), s)
	ptrs[0].Symbol = Antonym
	if s.Pointers[0].Symbol != Hypernym {
		t.Error("RelationsOf should not expose the sense's backing slice")
	}

	leaf := &Sense{ID: SenseID{Offset: 3, POS: Noun}}
	ptrs, err := m.RelationsOf(context.Background(), leaf)
	if err != nil || ptrs == nil || len(ptrs) != 0 {
		t.Errorf("leaf RelationsOf = %v, %v; want empty, nil", ptrs, err)
	}
}

func TestMemoryLookupWord(t *testing.T) {
	m, err := LoadFile("testdata/hire.toml")
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	ctx := context.Background()

	nouns, _ := m.LookupWord(ctx, "Hire", Noun)
	if len(nouns) != 2 {
		t.Fatalf("noun senses = %v, want 2", nouns)
	}
	if nouns[0] != mustID(t, "01213223-n") {
		t.Errorf("first noun sense = %s, want file order", nouns[0])
	}

	verbs, _ := m.LookupWord(ctx, "hire", Verb)
	if len(verbs) != 1 {
		t.Errorf("verb senses = %v, want 1", verbs)
	}

	none, err := m.LookupWord(ctx, "nonexistent", Noun)
	if err != nil || len(none) != 0 {
		t.Errorf("LookupWord(nonexistent) = %v, %v", none, err)
	}
}

func TestMemoryAddRejectsZeroID(t *testing.T) {
	err := NewMemory().Add(&Sense{})
	if !lxerrors.Is(err, lxerrors.ErrCodeInvalidSenseID) {
		t.Errorf("Add(zero) error = %v", err)
	}
}

func TestRecordRoundTrip(t *testing.T) {
	s := &Sense{
		ID:    SenseID{Offset: 10, POS: Verb},
		Words: []string{"engage"},
		Gloss: "hire for work",
		Pointers: []Pointer{
			{Symbol: Hypernym, Target: SenseID{Offset: 11, POS: Verb}},
		},
	}
	back, err := RecordOf(s).Sense()
	if err != nil {
		t.Fatalf("Sense(): %v", err)
	}
	if back.ID != s.ID || back.Gloss != s.Gloss || len(back.Pointers) != 1 || back.Pointers[0] != s.Pointers[0] {
		t.Errorf("round trip = %+v, want %+v", back, s)
	}
}

type plainDB struct{ Database }

func TestFirstSense(t *testing.T) {
	m, err := LoadFile("testdata/hire.toml")
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	ctx := context.Background()

	id, err := FirstSense(ctx, m, "hire", Noun)
	if err != nil {
		t.Fatalf("FirstSense: %v", err)
	}
	if id != mustID(t, "01213223-n") {
		t.Errorf("FirstSense = %s, want 01213223-n", id)
	}

	if _, err := FirstSense(ctx, m, "hire", Adverb); !errors.Is(err, ErrNotFound) {
		t.Errorf("FirstSense(adverb) error = %v, want ErrNotFound", err)
	}
	if _, err := FirstSense(ctx, plainDB{m}, "hire", Noun); !errors.Is(err, ErrNoWordIndex) {
		t.Errorf("FirstSense(no index) error = %v, want ErrNoWordIndex", err)
	}
}

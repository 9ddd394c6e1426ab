package explore

import (
	"testing"

	lxerrors "github.com/matzehuels/lexgraph/pkg/errors"
	"github.com/matzehuels/lexgraph/pkg/lexicon"
)

func testSense(offset uint32, word string) *lexicon.Sense {
	return &lexicon.Sense{
		ID:    lexicon.SenseID{Offset: offset, POS: lexicon.Noun},
		Words: []string{word},
	}
}

func TestGraphAddNodeIdempotent(t *testing.T) {
	g := NewGraph()
	r := NewRegistry(g)
	n, _ := r.GetOrCreate(testSense(1, "a"))

	if !g.AddNode(n) {
		t.Fatal("first AddNode should insert")
	}
	if g.AddNode(n) {
		t.Error("second AddNode should be a no-op")
	}
	if g.NodeCount() != 1 {
		t.Errorf("NodeCount() = %d, want 1", g.NodeCount())
	}
	if !g.HasNode(n) {
		t.Error("HasNode() = false")
	}
}

func TestGraphRejectsForeignNode(t *testing.T) {
	g1, g2 := NewGraph(), NewGraph()
	n, _ := NewRegistry(g1).GetOrCreate(testSense(1, "a"))

	if g2.AddNode(n) {
		t.Error("AddNode should reject a node from another graph")
	}
	if g2.AddNode(nil) {
		t.Error("AddNode(nil) should be rejected")
	}
}

func TestGraphAddEdgeInvalidReference(t *testing.T) {
	g := NewGraph()
	r := NewRegistry(g)
	a, _ := r.GetOrCreate(testSense(1, "a"))
	b, _ := r.GetOrCreate(testSense(2, "b"))
	g.AddNode(a)

	tests := []struct {
		name     string
		from, to *Node
	}{
		{"missing target", a, b},
		{"missing source", b, a},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := g.AddEdge("hypernym", tt.from, tt.to)
			if !lxerrors.Is(err, lxerrors.ErrCodeInvalidReference) {
				t.Errorf("AddEdge error = %v, want INVALID_REFERENCE", err)
			}
			if e != nil {
				t.Error("AddEdge should not return an edge on failure")
			}
		})
	}
	if g.EdgeCount() != 0 {
		t.Errorf("EdgeCount() = %d, want 0", g.EdgeCount())
	}
}

func TestGraphAddEdgeMultiplicity(t *testing.T) {
	g := NewGraph()
	r := NewRegistry(g)
	a, _ := r.GetOrCreate(testSense(1, "a"))
	b, _ := r.GetOrCreate(testSense(2, "b"))
	g.AddNode(a)
	g.AddNode(b)

	for _, label := range []string{"hypernym", "hypernym", "antonym"} {
		if _, err := g.AddEdge(label, a, b); err != nil {
			t.Fatalf("AddEdge(%s): %v", label, err)
		}
	}

	edges := g.Edges()
	if len(edges) != 3 {
		t.Fatalf("Edges() = %d, want 3", len(edges))
	}
	if edges[0] == edges[1] {
		t.Error("identical edges should be distinct values")
	}
	if got := len(g.EdgesFrom(a)); got != 3 {
		t.Errorf("EdgesFrom(a) = %d, want 3", got)
	}
	if got := len(g.EdgesFrom(b)); got != 0 {
		t.Errorf("EdgesFrom(b) = %d, want 0", got)
	}
}

func TestGraphSnapshotsAreCopies(t *testing.T) {
	g := NewGraph()
	r := NewRegistry(g)
	a, _ := r.GetOrCreate(testSense(1, "a"))
	g.AddNode(a)

	nodes := g.Nodes()
	nodes[0] = nil
	if g.Nodes()[0] != a {
		t.Error("Nodes() should return a copy")
	}
}

func TestRegistryDedupBySenseID(t *testing.T) {
	r := NewRegistry(NewGraph())

	first, created := r.GetOrCreate(testSense(7, "a"))
	if !created {
		t.Fatal("first GetOrCreate should create")
	}
	// A distinct *Sense value with the same id maps to the same node.
	second, created := r.GetOrCreate(testSense(7, "a"))
	if created {
		t.Error("second GetOrCreate should not create")
	}
	if first != second {
		t.Error("GetOrCreate should return the same node for the same id")
	}
	if first.Expanded() {
		t.Error("new node should be unexpanded")
	}
	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1", r.Len())
	}

	other, _ := r.GetOrCreate(&lexicon.Sense{ID: lexicon.SenseID{Offset: 7, POS: lexicon.Verb}})
	if other == first {
		t.Error("same offset with a different part of speech is a different sense")
	}
}

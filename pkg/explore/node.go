package explore

import (
	"github.com/matzehuels/lexgraph/pkg/lexicon"
)

// Point is a 2-D display position.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Node wraps exactly one sense. Its identity is the pointer: the [Registry]
// guarantees one Node per sense id within a graph.
//
// The expanded flag and the position are guarded by the owning graph's lock;
// the accessors are safe to call while an expansion is running.
type Node struct {
	g     *Graph
	sense *lexicon.Sense

	expanded bool
	pos      Point
}

// Sense returns the wrapped sense.
func (n *Node) Sense() *lexicon.Sense { return n.sense }

// ID returns the sense id.
func (n *Node) ID() lexicon.SenseID { return n.sense.ID }

// Expanded reports whether the node's relations have been materialized.
func (n *Node) Expanded() bool {
	n.g.mu.RLock()
	defer n.g.mu.RUnlock()
	return n.expanded
}

// Position returns the node's current position.
func (n *Node) Position() Point {
	n.g.mu.RLock()
	defer n.g.mu.RUnlock()
	return n.pos
}

// SetPosition overwrites the position. Layout engines that run after the
// seeder use it to write back their results.
func (n *Node) SetPosition(p Point) {
	n.g.mu.Lock()
	defer n.g.mu.Unlock()
	n.pos = p
}

func (n *Node) String() string { return n.sense.String() }

// Edge is one labeled relation between two nodes. Edges are immutable.
type Edge struct {
	label string
	from  *Node
	to    *Node
}

// Label returns the relation description, e.g. "hypernym".
func (e *Edge) Label() string { return e.label }

// From returns the source node (the node that was expanded).
func (e *Edge) From() *Node { return e.from }

// To returns the target node.
func (e *Edge) To() *Node { return e.to }

func (e *Edge) String() string {
	return e.from.ID().String() + " -[" + e.label + "]-> " + e.to.ID().String()
}

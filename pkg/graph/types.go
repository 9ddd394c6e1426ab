package graph

import (
	lxerrors "github.com/matzehuels/lexgraph/pkg/errors"
	"github.com/matzehuels/lexgraph/pkg/explore"
)

// =============================================================================
// Graph - Explored Graph Snapshot
// =============================================================================

// Graph is the canonical serialization format for explored graphs.
// Used for API responses, websocket snapshots and file export.
type Graph struct {
	Seed  string `json:"seed,omitempty"`
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// =============================================================================
// Node
// =============================================================================

// Node is one sense in a snapshot.
type Node struct {
	ID       string   `json:"id"`
	Label    string   `json:"label,omitempty"` // Head word
	Words    []string `json:"words,omitempty"`
	Gloss    string   `json:"gloss,omitempty"`
	Expanded bool     `json:"expanded,omitempty"`
	X        float64  `json:"x"`
	Y        float64  `json:"y"`
}

// DisplayLabel returns the label if set, otherwise the ID.
func (n *Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// =============================================================================
// Edge
// =============================================================================

// Edge is one relation in a snapshot. Label is the relation description.
type Edge struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Label string `json:"label"`
}

// =============================================================================
// Explorer → Graph Conversion
// =============================================================================

// FromExplorer snapshots the explorer's graph. Nodes and edges keep
// insertion order.
func FromExplorer(x *explore.Explorer) Graph {
	g := FromGraph(x.Graph())
	g.Seed = x.Seed().ID().String()
	return g
}

// FromGraph snapshots g without a seed. The edge list is taken after the
// node list, so every edge endpoint is present in the result.
func FromGraph(g *explore.Graph) Graph {
	nodes := g.Nodes()
	present := make(map[*explore.Node]bool, len(nodes))
	out := Graph{
		Nodes: make([]Node, 0, len(nodes)),
		Edges: []Edge{},
	}
	for _, n := range nodes {
		present[n] = true
		out.Nodes = append(out.Nodes, NodeOf(n))
	}
	for _, e := range g.Edges() {
		// Edges added between the two snapshots may point at nodes the
		// node list does not have yet.
		if !present[e.From()] || !present[e.To()] {
			continue
		}
		out.Edges = append(out.Edges, EdgeOf(e))
	}
	return out
}

// NodeOf converts a single node.
func NodeOf(n *explore.Node) Node {
	s := n.Sense()
	p := n.Position()
	return Node{
		ID:       s.ID.String(),
		Label:    s.Head(),
		Words:    s.Words,
		Gloss:    s.Gloss,
		Expanded: n.Expanded(),
		X:        p.X,
		Y:        p.Y,
	}
}

// EdgeOf converts a single edge.
func EdgeOf(e *explore.Edge) Edge {
	return Edge{
		From:  e.From().ID().String(),
		To:    e.To().ID().String(),
		Label: e.Label(),
	}
}

// Validate checks that node ids are unique and that every edge endpoint and
// the seed refer to a node in the snapshot.
func (g Graph) Validate() error {
	ids := make(map[string]bool, len(g.Nodes))
	for _, n := range g.Nodes {
		if n.ID == "" {
			return lxerrors.New(lxerrors.ErrCodeInvalidFormat, "node with empty id")
		}
		if ids[n.ID] {
			return lxerrors.New(lxerrors.ErrCodeInvalidFormat, "duplicate node %s", n.ID)
		}
		ids[n.ID] = true
	}
	if g.Seed != "" && !ids[g.Seed] {
		return lxerrors.New(lxerrors.ErrCodeInvalidReference, "seed %s is not a node", g.Seed)
	}
	for _, e := range g.Edges {
		if !ids[e.From] || !ids[e.To] {
			return lxerrors.New(lxerrors.ErrCodeInvalidReference, "edge %s -[%s]-> %s has a missing endpoint", e.From, e.Label, e.To)
		}
	}
	return nil
}

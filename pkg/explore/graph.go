package explore

import (
	"slices"
	"sync"

	lxerrors "github.com/matzehuels/lexgraph/pkg/errors"
)

// Graph is an append-only directed multigraph of explored senses.
//
// Nodes keep insertion order. Multiple edges between the same pair of nodes
// are allowed, with the same or different labels. There is no removal.
// All methods are safe for concurrent use.
type Graph struct {
	mu       sync.RWMutex
	nodes    []*Node
	present  map[*Node]struct{}
	edges    []*Edge
	outgoing map[*Node][]*Edge
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		present:  make(map[*Node]struct{}),
		outgoing: make(map[*Node][]*Edge),
	}
}

// AddNode inserts n if it is not already present and reports whether it was
// inserted. Nodes created by another graph's registry are rejected.
func (g *Graph) AddNode(n *Node) bool {
	if n == nil || n.g != g {
		return false
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.present[n]; ok {
		return false
	}
	g.present[n] = struct{}{}
	g.nodes = append(g.nodes, n)
	return true
}

// AddEdge appends a new edge unconditionally. Both endpoints must already be
// in the graph; otherwise an INVALID_REFERENCE error is returned and the
// graph is unchanged.
func (g *Graph) AddEdge(label string, from, to *Node) (*Edge, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.present[from]; !ok {
		return nil, lxerrors.New(lxerrors.ErrCodeInvalidReference, "edge %q: source %v is not in the graph", label, from)
	}
	if _, ok := g.present[to]; !ok {
		return nil, lxerrors.New(lxerrors.ErrCodeInvalidReference, "edge %q: target %v is not in the graph", label, to)
	}
	e := &Edge{label: label, from: from, to: to}
	g.edges = append(g.edges, e)
	g.outgoing[from] = append(g.outgoing[from], e)
	return e, nil
}

// HasNode reports whether n is in the graph.
func (g *Graph) HasNode(n *Node) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.present[n]
	return ok
}

// Nodes returns a snapshot of all nodes in insertion order.
func (g *Graph) Nodes() []*Node {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return slices.Clone(g.nodes)
}

// Edges returns a snapshot of all edges in insertion order.
func (g *Graph) Edges() []*Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return slices.Clone(g.edges)
}

// EdgesFrom returns a snapshot of the edges leaving n, in insertion order.
func (g *Graph) EdgesFrom(n *Node) []*Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return slices.Clone(g.outgoing[n])
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.nodes)
}

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.edges)
}

// markExpanded sets n's expanded flag and reports whether it was previously
// unset. The check and the set happen under one lock.
func (g *Graph) markExpanded(n *Node) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if n.expanded {
		return false
	}
	n.expanded = true
	return true
}

// unmarkExpanded rolls back markExpanded when the relations could not be
// fetched at all.
func (g *Graph) unmarkExpanded(n *Node) {
	g.mu.Lock()
	defer g.mu.Unlock()
	n.expanded = false
}

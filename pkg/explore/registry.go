package explore

import (
	"sync"

	"github.com/matzehuels/lexgraph/pkg/lexicon"
)

// Registry maps sense ids to the unique node wrapping them. Entries are never
// removed. Registry is safe for concurrent use.
type Registry struct {
	g     *Graph
	mu    sync.RWMutex
	nodes map[lexicon.SenseID]*Node
}

// NewRegistry creates a registry whose nodes belong to g.
func NewRegistry(g *Graph) *Registry {
	return &Registry{g: g, nodes: make(map[lexicon.SenseID]*Node)}
}

// GetOrCreate returns the node for s, creating an unexpanded one if this is
// the first time the sense id is seen. created reports which case applied.
// Identity is the sense id, never the *Sense pointer: two lookups of the
// same sense from the database map to the same node.
func (r *Registry) GetOrCreate(s *lexicon.Sense) (n *Node, created bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n, ok := r.nodes[s.ID]; ok {
		return n, false
	}
	n = &Node{g: r.g, sense: s}
	r.nodes[s.ID] = n
	return n, true
}

// Get returns the node registered for id.
func (r *Registry) Get(id lexicon.SenseID) (*Node, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n, ok := r.nodes[id]
	return n, ok
}

// Len returns the number of registered nodes.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.nodes)
}

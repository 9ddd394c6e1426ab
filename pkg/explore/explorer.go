package explore

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	lxerrors "github.com/matzehuels/lexgraph/pkg/errors"
	"github.com/matzehuels/lexgraph/pkg/lexicon"
	"github.com/matzehuels/lexgraph/pkg/observability"
)

// Explorer owns one exploration session: the database it reads from, the
// registry and the graph. Expansions are serialized; Explorer is safe for
// concurrent use.
type Explorer struct {
	mu    sync.Mutex // held for the whole of one expansion
	db    lexicon.Database
	opts  Options
	graph *Graph
	reg   *Registry
	seed  *Node
}

// Result reports what one call to [Explorer.Expand] changed.
type Result struct {
	// Node is the node that was expanded.
	Node *Node

	// AlreadyExpanded is set when the call was a no-op.
	AlreadyExpanded bool

	// NewNodes are the nodes first seen during this call, in pointer order.
	NewNodes []*Node

	// NewEdges are all edges added during this call, in pointer order.
	NewEdges []*Edge

	// Skipped lists the pointers that could not be resolved.
	Skipped []Skipped
}

// Skipped is a relation pointer that was left out of an expansion.
type Skipped struct {
	Pointer lexicon.Pointer
	Err     error
}

// New looks up the seed sense, places its node at the configured origin and,
// when opts.ExpandSeed is set, expands it. A seed missing from db fails with
// a NOT_FOUND error and no explorer is created.
func New(ctx context.Context, db lexicon.Database, seed lexicon.SenseID, opts Options) (*Explorer, error) {
	opts = opts.WithDefaults()

	s, err := db.Lookup(ctx, seed)
	if err != nil {
		if errors.Is(err, lexicon.ErrNotFound) {
			err = lxerrors.Wrap(lxerrors.ErrCodeNotFound, err, "seed sense %s", seed)
		} else {
			err = fmt.Errorf("lookup seed %s: %w", seed, err)
		}
		observability.Explore().OnSessionStart(ctx, seed.String(), err)
		return nil, err
	}

	g := NewGraph()
	x := &Explorer{
		db:    db,
		opts:  opts,
		graph: g,
		reg:   NewRegistry(g),
	}
	x.seed, _ = x.reg.GetOrCreate(s)
	x.seed.pos = *opts.Origin
	g.AddNode(x.seed)
	observability.Explore().OnSessionStart(ctx, seed.String(), nil)
	opts.Logger.Debug("session started", "seed", x.seed)

	if opts.ExpandSeed {
		if _, err := x.Expand(ctx, x.seed); err != nil {
			return nil, err
		}
	}
	return x, nil
}

// Seed returns the seed node.
func (x *Explorer) Seed() *Node { return x.seed }

// Graph returns the explored graph. Callers only read from it.
func (x *Explorer) Graph() *Graph { return x.graph }

// Node returns the node for id if the sense has been reached.
func (x *Explorer) Node(id lexicon.SenseID) (*Node, bool) { return x.reg.Get(id) }

// BaseRadius returns the base edge length used to seed new nodes.
func (x *Explorer) BaseRadius() float64 { return x.opts.BaseRadius }

// ExpandID expands the node for id. An id that has not been reached yet
// fails with NOT_FOUND.
func (x *Explorer) ExpandID(ctx context.Context, id lexicon.SenseID) (*Result, error) {
	n, ok := x.reg.Get(id)
	if !ok {
		return nil, lxerrors.New(lxerrors.ErrCodeNotFound, "sense %s is not in the graph", id)
	}
	return x.Expand(ctx, n)
}

// Expand materializes the relations of n one level deep.
//
// The first call marks n expanded, resolves every pointer of its sense in
// database order, reuses or creates the target node, and adds one edge per
// pointer. Nodes created by this call are seeded on a ring around n; nodes
// that already existed keep their position. Later calls return a result
// with AlreadyExpanded set and change nothing.
//
// A pointer that cannot be resolved is skipped and reported in
// Result.Skipped. Expand only fails when the relations of n cannot be read
// at all, in which case n is left unexpanded.
func (x *Explorer) Expand(ctx context.Context, n *Node) (*Result, error) {
	if n == nil || n.g != x.graph {
		return nil, lxerrors.New(lxerrors.ErrCodeInvalidReference, "node does not belong to this explorer")
	}

	x.mu.Lock()
	defer x.mu.Unlock()

	if !x.graph.markExpanded(n) {
		return &Result{Node: n, AlreadyExpanded: true}, nil
	}

	start := time.Now()
	ptrs, err := x.db.RelationsOf(ctx, n.sense)
	if err != nil {
		x.graph.unmarkExpanded(n)
		err = fmt.Errorf("relations of %s: %w", n.ID(), err)
		observability.Explore().OnExpand(ctx, n.ID().String(), 0, 0, 0, time.Since(start), err)
		return nil, err
	}

	res := &Result{Node: n}
	type resolved struct {
		label   string
		target  *Node
		created bool
	}
	targets := make([]resolved, 0, len(ptrs))
	for _, p := range ptrs {
		s, err := x.db.Resolve(ctx, p)
		if err != nil {
			res.Skipped = append(res.Skipped, Skipped{Pointer: p, Err: err})
			x.opts.Logger.Warn("skipping pointer", "source", n, "relation", p.Label(), "target", p.Target, "err", err)
			observability.Explore().OnSkippedPointer(ctx, p.Label(), err)
			continue
		}
		t, created := x.reg.GetOrCreate(s)
		if created {
			res.NewNodes = append(res.NewNodes, t)
		}
		targets = append(targets, resolved{label: p.Label(), target: t, created: created})
	}

	// New nodes are positioned before they become visible in the graph.
	origin := n.Position()
	for i, t := range res.NewNodes {
		t.SetPosition(Seed(origin, i, len(res.NewNodes), x.opts.BaseRadius))
	}

	for _, r := range targets {
		if r.created {
			x.graph.AddNode(r.target)
		}
		e, err := x.graph.AddEdge(r.label, n, r.target)
		if err != nil {
			panic("explore: " + err.Error())
		}
		res.NewEdges = append(res.NewEdges, e)
	}

	d := time.Since(start)
	x.opts.Logger.Debug("expanded",
		"node", n,
		"nodes", len(res.NewNodes),
		"edges", len(res.NewEdges),
		"skipped", len(res.Skipped),
		"took", d)
	observability.Explore().OnExpand(ctx, n.ID().String(), len(res.NewNodes), len(res.NewEdges), len(res.Skipped), d, nil)
	return res, nil
}

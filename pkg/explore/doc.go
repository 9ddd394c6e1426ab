// Package explore grows a graph of lexical senses on demand.
//
// An [Explorer] starts from a single seed sense and expands nodes one level at
// a time: expanding a node resolves every relation pointer of its sense into
// a target node and a labeled edge. The graph only ever grows.
//
// # Components
//
//   - [Registry]: one [Node] per distinct sense for the lifetime of a graph
//   - [Graph]: directed multigraph store (idempotent AddNode, append-only AddEdge)
//   - [Seed]: ring placement of freshly created nodes around their parent
//   - [Explorer]: the expansion engine tying them to a [lexicon.Database]
//
// # Invariants
//
//   - Dedup: a sense maps to exactly one node, however many parents point at it.
//   - Idempotent expansion: the first Expand of a node materializes its
//     relations; every later Expand of the same node is a no-op.
//   - Edge multiplicity: edges are never deduplicated. Two pointers with the
//     same relation between the same senses produce two edges.
//   - Partial failure: a pointer that cannot be resolved is skipped; the rest
//     of the expansion proceeds.
//   - Existing nodes are never repositioned by an expansion.
//
// # Usage
//
//	x, err := explore.New(ctx, db, seedID, explore.Options{})
//	if err != nil {
//	    return err // NOT_FOUND when the seed is not in the database
//	}
//	res, err := x.Expand(ctx, x.Seed())
//	for _, n := range res.NewNodes {
//	    fmt.Println(n, n.Position())
//	}
//
// # Concurrency
//
// Expand calls are serialized by the Explorer: the check-and-set of the
// expanded flag and all inserts of one expansion form a single critical
// section. Readers may call [Graph.Nodes], [Graph.Edges], [Node.Position] and
// [Node.Expanded] concurrently with an expansion; they observe the graph
// before or after each insert, never a half-written node.
package explore

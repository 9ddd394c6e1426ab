// Package pkg provides the core libraries for lexgraph.
//
// # Overview
//
// Lexgraph explores a WordNet-style lexical network as a graph that grows on
// demand. Exploration starts at one seed sense; activating a node resolves
// its relation pointers into further senses and adds them, one level at a
// time. The pkg directory is organized into these areas:
//
//  1. [lexicon] - Senses, relation pointers and the database interface, with
//     a TOML-backed in-memory database and Redis and MongoDB backends
//  2. [explore] - The exploration engine (registry, graph store, expansion,
//     ring layout seeding)
//  3. [graph] - JSON snapshots of an explored graph
//  4. [render] - Graphviz rendering of snapshots
//  5. [observability] - Hooks and Prometheus metrics
//  6. [errors] - Coded errors shared by every layer
//
// # Architecture
//
//	lexicon.Database (file, Redis, MongoDB)
//	         ↓
//	    [explore] Explorer.Expand (one level per activation)
//	         ↓
//	    [graph] snapshot ──→ [render/nodelink] DOT / SVG
//	         ↓
//	    CLI, TUI, HTTP API and websocket streams
//
// # Quick Start
//
//	db, _ := lexicon.LoadFile("wordnet.toml")
//	seed, _ := lexicon.FirstSense(ctx, db, "hire", lexicon.Noun)
//
//	x, _ := explore.New(ctx, db, seed, explore.Options{ExpandSeed: true})
//	for _, n := range x.Graph().Nodes() {
//	    fmt.Println(n, n.Position())
//	}
//
//	snap := graph.FromExplorer(x)
//	_ = graph.WriteGraphFile(snap, "hire.json")
//
// # Testing
//
//	go test ./pkg/...                    # All tests
//	go test -run Example ./pkg/...       # Examples only
//	go test -tags integration ./pkg/...  # Include Redis and MongoDB tests
//
// [lexicon]: https://pkg.go.dev/github.com/matzehuels/lexgraph/pkg/lexicon
// [explore]: https://pkg.go.dev/github.com/matzehuels/lexgraph/pkg/explore
// [graph]: https://pkg.go.dev/github.com/matzehuels/lexgraph/pkg/graph
// [render]: https://pkg.go.dev/github.com/matzehuels/lexgraph/pkg/render
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/lexgraph/pkg/render/nodelink
// [observability]: https://pkg.go.dev/github.com/matzehuels/lexgraph/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/lexgraph/pkg/errors
package pkg

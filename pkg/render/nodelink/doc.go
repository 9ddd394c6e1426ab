// Package nodelink renders explored graphs as node-link diagrams.
//
// # Usage
//
// Convert a snapshot to DOT format, then render to SVG:
//
//	snap := graph.FromExplorer(x)
//	dot := nodelink.ToDOT(snap, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot, nodelink.Options{})
//
// # Options
//
//   - Detailed: node labels include the sense id and gloss
//   - Pinned: nodes keep the positions assigned by the explorer and the
//     neato engine is used instead of dot
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering; no Graphviz installation is required.
package nodelink

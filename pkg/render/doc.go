// Package render groups the renderers for explored graphs.
//
// The [nodelink] subpackage turns a [graph.Graph] snapshot into Graphviz DOT
// and renders it to SVG. Expanded senses are filled, unexpanded frontier
// senses are dashed, and the seed is highlighted. With pinned layout the
// positions chosen by the explorer are kept and Graphviz only draws.
//
//	snap := graph.FromExplorer(x)
//	dot := nodelink.ToDOT(snap, nodelink.Options{Pinned: true})
//	svg, err := nodelink.RenderSVG(ctx, dot, nodelink.Options{Pinned: true})
//
// [nodelink]: github.com/matzehuels/lexgraph/pkg/render/nodelink
// [graph.Graph]: github.com/matzehuels/lexgraph/pkg/graph
package render

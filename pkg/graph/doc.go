// Package graph provides the serialization format for explored graphs.
//
// This package defines the canonical wire format for lexgraph snapshots,
// used by the export command, the HTTP API and the websocket event stream.
//
// # Architecture
//
// The package sits at the serialization boundary between the live,
// concurrently growing [explore.Graph] and external formats. Use [FromExplorer]
// to take a consistent snapshot; the result is a plain value that can be
// encoded, diffed or rendered (see pkg/render/nodelink) without holding any
// lock.
//
// # Graph Serialization
//
// Graphs use a simple node-link JSON format. Edges are not deduplicated:
// two pointers with the same relation between the same senses appear twice.
//
//	{
//	  "seed": "01213223-n",
//	  "nodes": [
//	    {"id": "01213223-n", "label": "hire", "expanded": true, "x": 300, "y": 300},
//	    {"id": "01212519-n", "label": "employment", "x": 335, "y": 300}
//	  ],
//	  "edges": [{"from": "01213223-n", "to": "01212519-n", "label": "hypernym"}]
//	}
//
// # Usage
//
//	snap := graph.FromExplorer(x)
//	if err := graph.WriteGraphFile(snap, "hire.json"); err != nil {
//	    return err
//	}
//
//	back, err := graph.ReadGraphFile("hire.json")
package graph

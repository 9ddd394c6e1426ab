package server

import (
	"github.com/matzehuels/lexgraph/pkg/explore"
	"github.com/matzehuels/lexgraph/pkg/graph"
)

// Event types sent to websocket subscribers.
const (
	EventSnapshot = "snapshot" // full graph, first message of every stream
	EventExpanded = "expanded" // a node was expanded, with the nodes and edges it added
	EventError    = "error"    // an inbound message failed
)

// MessageActivate is the inbound message type that expands a node.
const MessageActivate = "activate"

// Event is one outbound websocket message.
type Event struct {
	Type    string       `json:"type"`
	Graph   *graph.Graph `json:"graph,omitempty"`
	ID      string       `json:"id,omitempty"`
	Nodes   []graph.Node `json:"nodes,omitempty"`
	Edges   []graph.Edge `json:"edges,omitempty"`
	Skipped int          `json:"skipped,omitempty"`
	Code    string       `json:"code,omitempty"`
	Message string       `json:"message,omitempty"`
}

// Message is one inbound websocket message:
//
//	{"type": "activate", "id": "01213223-n"}
type Message struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// expansionEvent batches one expansion into a single event: new nodes in
// creation order, then new edges in insertion order.
func expansionEvent(res *explore.Result) Event {
	ev := Event{
		Type:    EventExpanded,
		ID:      res.Node.ID().String(),
		Nodes:   make([]graph.Node, 0, len(res.NewNodes)),
		Edges:   make([]graph.Edge, 0, len(res.NewEdges)),
		Skipped: len(res.Skipped),
	}
	for _, n := range res.NewNodes {
		ev.Nodes = append(ev.Nodes, graph.NodeOf(n))
	}
	for _, e := range res.NewEdges {
		ev.Edges = append(ev.Edges, graph.EdgeOf(e))
	}
	return ev
}

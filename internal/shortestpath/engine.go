// Package shortestpath is a reference implementation of
// assignment.ShortestPathEngine: a directed adjacency built once from a
// network's link endpoints, searched with Dijkstra's algorithm and falling
// back to Bellman-Ford the moment a negative weight appears. It is a demo
// collaborator for cmd/assignd — any engine satisfying the interface works
// in its place.
package shortestpath

// edge is one outgoing arc in the dense adjacency list: the link id (so
// the core can re-key it against its own link table) and the node it
// leads to.
type edge struct {
	linkID int32
	to     int32
}

// Engine is a fixed directed graph over numNodes nodes, built once from
// parallel from/to/linkID arrays and then reused for every
// ComputeShortestPaths call against new edge weights.
type Engine struct {
	numNodes int32
	adj      [][]edge
}

// New builds an Engine from numNodes nodes and one edge per (linkID,
// from, to) triple. Multiple links between the same ordered pair of nodes
// are kept as distinct parallel edges.
func New(numNodes int, linkIDs []int32, from, to []int32) *Engine {
	e := &Engine{
		numNodes: int32(numNodes),
		adj:      make([][]edge, numNodes),
	}
	for i, id := range linkIDs {
		e.adj[from[i]] = append(e.adj[from[i]], edge{linkID: id, to: to[i]})
	}
	return e
}

// ComputeShortestPaths satisfies assignment.ShortestPathEngine: it returns
// a predecessor-node array and a cost array, both indexed by node id, for
// shortest paths from source under weights (indexed by link id).
// Negative weights trigger an automatic Bellman-Ford fallback.
func (e *Engine) ComputeShortestPaths(weights []float64, source int32) (pred []int32, cost []float64) {
	if e.hasNegativeWeight(weights) {
		return e.bellmanFord(weights, source)
	}
	return e.dijkstra(weights, source)
}

func (e *Engine) hasNegativeWeight(weights []float64) bool {
	for _, w := range weights {
		if w < 0 {
			return true
		}
	}
	return false
}

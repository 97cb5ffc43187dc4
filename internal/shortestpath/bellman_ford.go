package shortestpath

import "math"

// bellmanFord runs single-source shortest paths from source under weights,
// tolerating negative edges. It relaxes every edge up to numNodes-1 times
// in a fixed node order, stopping early once a round changes nothing, so
// results are reproducible regardless of Go's map iteration (there are
// none here — adjacency is a slice) or goroutine scheduling. A negative
// cycle reachable from source does not loop forever: one final pass in
// node order sets to -Inf each node an edge can still relax, and nodes
// further downstream that this single pass does not reach keep a finite
// cost.
func (e *Engine) bellmanFord(weights []float64, source int32) (pred []int32, cost []float64) {
	n := int(e.numNodes)
	dist := make([]float64, n)
	pr := make([]int32, n)
	for i := range dist {
		dist[i] = math.Inf(1)
		pr[i] = -1
	}
	dist[source] = 0

	for iter := 0; iter < n-1; iter++ {
		changed := false
		for u := int32(0); u < e.numNodes; u++ {
			if math.IsInf(dist[u], 1) {
				continue
			}
			for _, ed := range e.adj[u] {
				nd := dist[u] + weights[ed.linkID]
				if nd < dist[ed.to] {
					dist[ed.to] = nd
					pr[ed.to] = u
					changed = true
				}
			}
		}
		if !changed {
			break
		}
	}

	for u := int32(0); u < e.numNodes; u++ {
		if math.IsInf(dist[u], 1) {
			continue
		}
		for _, ed := range e.adj[u] {
			if dist[u]+weights[ed.linkID] < dist[ed.to] {
				dist[ed.to] = math.Inf(-1)
			}
		}
	}

	return pr, dist
}

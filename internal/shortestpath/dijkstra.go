package shortestpath

import (
	"container/heap"
	"math"
)

// pqItem is one entry in Dijkstra's priority queue.
type pqItem struct {
	node     int32
	distance float64
}

// priorityQueue is a min-heap on distance, tie-broken by node id so that
// repeated runs over unchanged weights always settle nodes in the same
// order.
type priorityQueue []pqItem

func (pq priorityQueue) Len() int { return len(pq) }
func (pq priorityQueue) Less(i, j int) bool {
	if pq[i].distance != pq[j].distance {
		return pq[i].distance < pq[j].distance
	}
	return pq[i].node < pq[j].node
}
func (pq priorityQueue) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }
func (pq *priorityQueue) Push(x any)   { *pq = append(*pq, x.(pqItem)) }
func (pq *priorityQueue) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}

// dijkstra runs single-source shortest paths from source under weights.
// Unreached nodes get pred == -1 and cost == +Inf.
func (e *Engine) dijkstra(weights []float64, source int32) (pred []int32, cost []float64) {
	n := int(e.numNodes)
	dist := make([]float64, n)
	pr := make([]int32, n)
	for i := range dist {
		dist[i] = math.Inf(1)
		pr[i] = -1
	}
	dist[source] = 0

	pq := make(priorityQueue, 0, n)
	heap.Push(&pq, pqItem{node: source, distance: 0})

	for pq.Len() > 0 {
		cur := heap.Pop(&pq).(pqItem)
		u := cur.node
		if cur.distance > dist[u] {
			continue
		}
		for _, ed := range e.adj[u] {
			w := weights[ed.linkID]
			nd := dist[u] + w
			if nd < dist[ed.to] {
				dist[ed.to] = nd
				pr[ed.to] = u
				heap.Push(&pq, pqItem{node: ed.to, distance: nd})
			}
		}
	}

	return pr, dist
}

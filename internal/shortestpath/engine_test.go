package shortestpath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// diamond builds a 4-node diamond: 0->1->3 and 0->2->3, links indexed
// 0,1,2,3 matching from/to pairs (0,1) (1,3) (0,2) (2,3).
func diamond() *Engine {
	return New(4,
		[]int32{0, 1, 2, 3},
		[]int32{0, 1, 0, 2},
		[]int32{1, 3, 2, 3},
	)
}

func TestDijkstra_PicksCheaperPath(t *testing.T) {
	e := diamond()
	weights := []float64{1, 1, 5, 5}
	pred, cost := e.ComputeShortestPaths(weights, 0)

	assert.Equal(t, float64(2), cost[3])
	assert.Equal(t, int32(1), pred[3])
	assert.Equal(t, int32(0), pred[1])
}

func TestDijkstra_UnreachableNodeHasInfCostAndNoPred(t *testing.T) {
	e := New(3, []int32{0}, []int32{0}, []int32{1})
	_, cost := e.ComputeShortestPaths([]float64{1}, 0)
	assert.True(t, math.IsInf(cost[2], 1))
}

func TestDijkstra_TieBreaksDeterministically(t *testing.T) {
	e := diamond()
	weights := []float64{1, 1, 1, 1}
	_, cost1 := e.ComputeShortestPaths(weights, 0)
	_, cost2 := e.ComputeShortestPaths(weights, 0)
	assert.Equal(t, cost1[3], cost2[3], "repeated runs should not diverge")
}

func TestComputeShortestPaths_FallsBackToBellmanFordOnNegativeWeight(t *testing.T) {
	e := diamond()
	weights := []float64{1, -3, 5, 5}
	pred, cost := e.ComputeShortestPaths(weights, 0)

	assert.Equal(t, float64(-2), cost[3], "cost via the negative-weight path")
	assert.Equal(t, int32(1), pred[3])
}

func TestBellmanFord_MatchesDijkstraOnNonNegativeGraph(t *testing.T) {
	e := diamond()
	weights := []float64{1, 1, 5, 5}

	_, dijkstraCost := e.dijkstra(weights, 0)
	_, bfCost := e.bellmanFord(weights, 0)

	assert.Equal(t, dijkstraCost, bfCost)
}

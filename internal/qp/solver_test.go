package qp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trafficassign/internal/assignment"
)

// singlePathSubproblem builds a trivial one-destination, one-path
// subproblem: the only feasible point is flow == demand.
func singlePathSubproblem(demand float64) *assignment.Subproblem {
	return &assignment.Subproblem{
		Q:               []float64{2},
		C:               []float64{-2 * demand},
		A:               []float64{1},
		B:               []float64{demand},
		G:               []float64{-1},
		H:               []float64{0},
		NumPaths:        1,
		NumDestinations: 1,
	}
}

func TestSolve_SinglePathMatchesDemand(t *testing.T) {
	sp := singlePathSubproblem(15)
	x, err := Solve(sp)
	require.NoError(t, err)
	require.Len(t, x, 1)
	assert.InDelta(t, 15, x[0], 1e-6)
}

func TestSolve_TwoPathSplitSatisfiesDemandBalance(t *testing.T) {
	// Two parallel paths serving one destination with demand 20; Q
	// penalizes imbalance so the unconstrained minimum would split evenly,
	// which is also what the demand-balance constraint permits.
	sp := &assignment.Subproblem{
		Q:               []float64{4, 0, 0, 4},
		C:               []float64{-2, -2},
		A:               []float64{1, 1},
		B:               []float64{20},
		G:               []float64{-1, 0, 0, -1},
		H:               []float64{0, 0},
		NumPaths:        2,
		NumDestinations: 1,
	}

	x, err := Solve(sp)
	require.NoError(t, err)

	assert.InDelta(t, 20, x[0]+x[1], 1e-6, "demand balance")
	assert.GreaterOrEqual(t, x[0], float64(0))
	assert.GreaterOrEqual(t, x[1], float64(0))
}

func TestSolve_EmptySubproblemReturnsNil(t *testing.T) {
	sp := &assignment.Subproblem{NumPaths: 0, NumDestinations: 0}
	x, err := Solve(sp)
	require.NoError(t, err)
	assert.Nil(t, x)
}

func TestProjectToSimplex_ProjectsOntoDemand(t *testing.T) {
	x := []float64{10, -5, 3}
	projectToSimplex(x, []int{0, 1, 2}, 9)

	var sum float64
	for _, v := range x {
		assert.GreaterOrEqual(t, v, float64(0))
		sum += v
	}
	assert.InDelta(t, 9, sum, 1e-9)
}

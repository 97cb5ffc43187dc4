package assignment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trafficassign/pkg/apperror"
)

func TestComputeShortestPaths_RequiresEngine(t *testing.T) {
	a := twoLinkOrigin(t)
	assert.Error(t, a.ComputeShortestPaths(0), "expected error when no ShortestPathEngine is installed")
}

func TestComputeShortestPaths_PathPoolFullPropagates(t *testing.T) {
	a2, err := NewAssignment(4, 4, 1, WithPathsPerOD(1))
	require.NoError(t, err)

	links := [][2]int32{{0, 1}, {1, 3}, {0, 2}, {2, 3}}
	for i, l := range links {
		require.NoError(t, a2.AddLink(i, 5, 0.15, 4, 10, l[0], l[1]))
	}
	require.NoError(t, a2.InsertOD(0, 3, 20))
	a2.SetEdges(stubEngine{numNodes: 4})

	require.NoError(t, a2.PerformInitialSolution())

	// Congest the first path so the engine now prefers the untaken one;
	// the pool (capacity 1) is already full, so discovering it must fail.
	err = a2.ComputeShortestPaths(0)
	assert.True(t, apperror.Is(err, apperror.CodePathPoolFull))
}

func TestReconstructPath_ReturnsLinksInForwardOrder(t *testing.T) {
	a, err := NewAssignment(2, 3, 1)
	require.NoError(t, err)
	require.NoError(t, a.AddLink(0, 5, 0.15, 4, 10, 0, 1))
	require.NoError(t, a.AddLink(1, 5, 0.15, 4, 10, 1, 2))

	o := a.origins[0]
	pred := []int32{-1, 0, 1}
	seq, err := a.reconstructPath(o, pred, 2)
	require.NoError(t, err)
	assert.Equal(t, []int32{0, 1}, seq)
}

func TestReconstructPath_UnreachableReturnsNil(t *testing.T) {
	a, err := NewAssignment(2, 3, 1)
	require.NoError(t, err)

	o := a.origins[0]
	pred := []int32{-1, -1, -1}
	seq, err := a.reconstructPath(o, pred, 2)
	require.NoError(t, err)
	assert.Nil(t, seq)
}

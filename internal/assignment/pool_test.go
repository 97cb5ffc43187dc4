package assignment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trafficassign/pkg/apperror"
)

func TestOrigin_InsertOD_KeepsDestOrderSorted(t *testing.T) {
	o := newOrigin(0, 8, 10)
	o.insertOD(5, 1)
	o.insertOD(2, 1)
	o.insertOD(8, 1)
	o.insertOD(2, 2) // re-insert, must not duplicate

	assert.Equal(t, []int32{2, 5, 8}, o.destOrder)
	assert.Equal(t, float64(2), o.destinations[2].demand, "re-insert should overwrite demand")
}

func TestOrigin_AddPath_DedupsByFingerprint(t *testing.T) {
	o := newOrigin(0, 8, 10)
	o.insertOD(5, 10)

	added, err := o.addPath(5, []int32{0, 1, 2})
	require.NoError(t, err)
	assert.True(t, added)

	added, err = o.addPath(5, []int32{0, 1, 2})
	require.NoError(t, err)
	assert.False(t, added, "rediscovered path should not be added again")
	assert.Equal(t, 1, o.numPaths())
}

func TestOrigin_AddPath_PoolFull(t *testing.T) {
	o := newOrigin(0, 1, 10)
	o.insertOD(5, 10)

	_, err := o.addPath(5, []int32{0})
	require.NoError(t, err)

	_, err = o.addPath(5, []int32{1})
	assert.True(t, apperror.Is(err, apperror.CodePathPoolFull))
}

func TestOrigin_AddPath_UnknownDestination(t *testing.T) {
	o := newOrigin(0, 8, 10)
	_, err := o.addPath(99, []int32{0})
	assert.True(t, apperror.Is(err, apperror.CodeUnknownDestination))
}

func TestAssignment_GetTotalPaths(t *testing.T) {
	a, err := NewAssignment(2, 3, 1, WithPathsPerOD(4))
	require.NoError(t, err)
	require.NoError(t, a.AddLink(0, 1, 0.15, 4, 10, 0, 1))
	require.NoError(t, a.AddLink(1, 1, 0.15, 4, 10, 1, 2))
	require.NoError(t, a.InsertOD(0, 2, 5))

	o := a.origins[0]
	_, err = o.addPath(2, []int32{0, 1})
	require.NoError(t, err)

	n, err := a.GetTotalPaths(0)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	nd, err := a.GetTotalPathsForDestination(0, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, nd)

	_, err = a.GetTotalPathsForDestination(0, 99)
	assert.Error(t, err)
}

func TestAssignment_GetODPathTimes(t *testing.T) {
	a, err := NewAssignment(2, 3, 1, WithPathsPerOD(4))
	require.NoError(t, err)
	require.NoError(t, a.AddLink(0, 4, 0.15, 4, 10, 0, 1))
	require.NoError(t, a.AddLink(1, 6, 0.15, 4, 10, 1, 2))
	require.NoError(t, a.InsertOD(0, 2, 5))

	o := a.origins[0]
	_, err = o.addPath(2, []int32{0, 1})
	require.NoError(t, err)
	o.pathFlows[0] = 3

	times, flows, err := a.GetODPathTimes(0, 2)
	require.NoError(t, err)
	require.Len(t, times, 1)
	require.Len(t, flows, 1)

	assert.Equal(t, a.weights[0]+a.weights[1], times[0])
	assert.Equal(t, float64(3), flows[0])
}

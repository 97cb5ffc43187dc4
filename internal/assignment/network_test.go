package assignment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trafficassign/pkg/apperror"
)

func TestNewAssignment_RejectsNonPositiveDimensions(t *testing.T) {
	cases := []struct {
		name                             string
		numLinks, numNodes, numCentroids int
	}{
		{"zero links", 0, 5, 1},
		{"zero nodes", 5, 0, 1},
		{"zero centroids", 5, 5, 0},
		{"negative links", -1, 5, 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := NewAssignment(c.numLinks, c.numNodes, c.numCentroids)
			assert.Error(t, err)
		})
	}
}

func TestNewAssignment_RejectsTooManyCentroids(t *testing.T) {
	_, err := NewAssignment(5, 3, 4)
	assert.Error(t, err, "expected error when numCentroids > numNodes")
}

func TestNewAssignment_Options(t *testing.T) {
	a, err := NewAssignment(2, 3, 1, WithPathsPerOD(16))
	require.NoError(t, err)
	assert.Equal(t, 16, a.pathsPerOD)
	require.Len(t, a.origins, 1)
	assert.Equal(t, 16, a.origins[0].pathsPerOD)
}

func TestAddLink_ValidatesBounds(t *testing.T) {
	a, err := NewAssignment(2, 3, 1)
	require.NoError(t, err)

	assert.True(t, apperror.Is(a.AddLink(5, 1, 0.15, 4, 10, 0, 1), apperror.CodeInvalidArgument), "out-of-range link id")
	assert.True(t, apperror.Is(a.AddLink(0, 1, 0.15, 4, 10, 0, 99), apperror.CodeInvalidArgument), "out-of-range endpoint")
	assert.True(t, apperror.Is(a.AddLink(0, 1, 0.15, 4, 0, 0, 1), apperror.CodeInvalidLinkParameter), "zero capacity")
	assert.NoError(t, a.AddLink(0, 1, 0.15, 4, 10, 0, 1), "valid link rejected")
}

func TestInsertOD_ValidatesBounds(t *testing.T) {
	a, err := NewAssignment(2, 3, 1)
	require.NoError(t, err)

	assert.True(t, apperror.Is(a.InsertOD(9, 1, 10), apperror.CodeInvalidOrigin), "out-of-range origin")
	assert.True(t, apperror.Is(a.InsertOD(0, 99, 10), apperror.CodeUnknownDestination), "out-of-range destination")
	assert.True(t, apperror.Is(a.InsertOD(0, 1, -5), apperror.CodeInvalidArgument), "negative demand")
	assert.NoError(t, a.InsertOD(0, 1, 10), "valid OD rejected")
}

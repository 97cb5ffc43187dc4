package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMsaStepsize_DecreasesAndClamps(t *testing.T) {
	assert.Equal(t, 0.5, msaStepsize(0, 0, 1))
	assert.Less(t, msaStepsize(8, 0, 1), msaStepsize(0, 0, 1), "stepsize should decrease as iterations progress")
	assert.Equal(t, 0.3, msaStepsize(0, 0, 0.3), "should clamp to max")
}

func TestRelativeGap_ZeroPrevUsesAbsolute(t *testing.T) {
	assert.Equal(t, float64(5), relativeGap(0, 5))
}

func TestRelativeGap_RatioOfChange(t *testing.T) {
	assert.Equal(t, 0.1, relativeGap(100, 110))
}

func TestBuildDemoNetwork_HasConsistentArrayLengths(t *testing.T) {
	net := buildDemoNetwork()
	n := len(net.linkIDs)
	assert.Len(t, net.from, n)
	assert.Len(t, net.to, n)
	assert.Len(t, net.t0, n)
	assert.Len(t, net.alfa, n)
	assert.Len(t, net.beta, n)
	assert.Len(t, net.capacity, n)

	for _, d := range net.demands {
		assert.GreaterOrEqual(t, d.fromCentroid, 0)
		assert.Less(t, d.fromCentroid, net.numCentroids)
		assert.Less(t, int(d.toNode), net.numNodes)
	}
}

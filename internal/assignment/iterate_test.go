package assignment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdatePathFlowsWithoutLinkFlows_RejectsWrongLength(t *testing.T) {
	a := twoLinkOrigin(t)
	assert.Error(t, a.UpdatePathFlowsWithoutLinkFlows(0, []float64{1, 2}))
}

func TestUpdatePathFlowsWithoutLinkFlows_RejectsNegativeFlow(t *testing.T) {
	a := twoLinkOrigin(t)
	assert.Error(t, a.UpdatePathFlowsWithoutLinkFlows(0, []float64{-1}))
}

func TestUpdatePathFlowsWithoutLinkFlows_StagesAndDiffs(t *testing.T) {
	a := twoLinkOrigin(t)
	require.NoError(t, a.UpdatePathFlowsWithoutLinkFlows(0, []float64{8}))

	assert.Equal(t, float64(8), a.origins[0].pathFlowsCurrent[0])
	assert.Equal(t, float64(8), a.linkFlowsOriginDiff[0])
	assert.Equal(t, float64(0), a.linkFlows[0], "linkFlows should be untouched until UpdateLinkFlowsStepsize")
}

func TestUpdatePathFlowsStepsize_MixesTowardCurrent(t *testing.T) {
	a := twoLinkOrigin(t)
	o := a.origins[0]
	o.pathFlows[0] = 10
	o.pathFlowsCurrent[0] = 20

	require.NoError(t, a.UpdatePathFlowsStepsize(0, 0.25))

	assert.Equal(t, 0.75*10+0.25*20, o.pathFlows[0])
	assert.Equal(t, float64(0), o.pathFlowsCurrent[0], "pathFlowsCurrent should be cleared after mixing")
}

package assignment

import (
	"time"

	"trafficassign/pkg/apperror"
)

// updateLinkFlows recomputes origin's contribution to every link it
// touches and folds the change immediately into the shared linkFlows
// ledger, refreshing that link's weight/derivative along the way. This
// immediate mode is correct to call alone, but its direct write to
// linkFlows makes it unsafe to run concurrently across origins (see
// UpdateLinkFlowsByOrigin for the parallel-safe split).
func (a *Assignment) updateLinkFlows(origin int) error {
	start := time.Now()
	o, err := a.origin(origin)
	if err != nil {
		return err
	}

	base := origin * a.numLinks
	for linkID, pathIDs := range o.pathLinkIncidence {
		var sum float64
		for _, p := range pathIDs {
			sum += o.pathFlows[p]
		}
		old := a.linkFlowsOrigin[base+linkID]
		diff := sum - old
		if diff != 0 {
			a.linkFlows[linkID] += diff
			a.updateLinkDerivatives(linkID)
		}
		a.linkFlowsOrigin[base+linkID] = sum
	}

	a.recordLinkFlowUpdate("immediate", time.Since(start))
	return nil
}

// UpdateLinkFlowsByOrigin computes origin's contribution to every link it
// touches from pathFlowsCurrent (the iterate staged by
// UpdatePathFlowsWithoutLinkFlows) and stashes the delta in
// linkFlowsOriginDiff, without touching the shared linkFlows ledger. Many
// origins may run this concurrently — each one only reads its own
// pathFlowsCurrent and writes its own slice of linkFlowsOriginDiff — as
// long as nothing also calls UpdateLinkFlowsStepsize until every origin in
// the batch has finished.
func (a *Assignment) UpdateLinkFlowsByOrigin(origin int) error {
	start := time.Now()
	o, err := a.origin(origin)
	if err != nil {
		return err
	}

	base := origin * a.numLinks
	for linkID, pathIDs := range o.pathLinkIncidence {
		var sum float64
		for _, p := range pathIDs {
			sum += o.pathFlowsCurrent[p]
		}
		a.linkFlowsOriginDiff[base+linkID] = sum - a.linkFlowsOrigin[base+linkID]
	}

	a.recordLinkFlowUpdate("deferred", time.Since(start))
	return nil
}

// UpdateLinkFlowsStepsize applies the diff UpdateLinkFlowsByOrigin staged
// for origin, scaled by alpha, into the shared linkFlows ledger and
// refreshes affected link weights/derivatives. This is phase two of the
// two-phase protocol and must run single-threaded across origins, since it
// is the only phase that writes the shared ledger.
func (a *Assignment) UpdateLinkFlowsStepsize(origin int, alpha float64) error {
	start := time.Now()
	o, err := a.origin(origin)
	if err != nil {
		return err
	}
	if !validParam(alpha) {
		return apperror.NewWithField(apperror.CodeInvalidArgument, "alpha must be finite", "alpha")
	}

	base := origin * a.numLinks
	for linkID := range o.pathLinkIncidence {
		diff := a.linkFlowsOriginDiff[base+linkID]
		if diff == 0 {
			continue
		}
		delta := alpha * diff
		a.linkFlows[linkID] += delta
		a.linkFlowsOrigin[base+linkID] += delta
		a.updateLinkDerivatives(linkID)
	}

	a.recordLinkFlowUpdate("stepsize", time.Since(start))
	return nil
}

// GetLinkFlows copies the current aggregate link flows into out, which
// must already be sized numLinks.
func (a *Assignment) GetLinkFlows(out []float64) error {
	if len(out) != a.numLinks {
		return apperror.NewWithField(apperror.CodeInvalidArgument, "out must have length numLinks", "out")
	}
	copy(out, a.linkFlows)
	return nil
}

func (a *Assignment) recordLinkFlowUpdate(mode string, d time.Duration) {
	if a.recorder != nil {
		a.recorder.RecordLinkFlowUpdate(mode, d)
	}
}

package assignment

import "trafficassign/pkg/apperror"

// UpdatePathFlowsWithoutLinkFlows stages flows as origin's candidate next
// iterate (pathFlowsCurrent) without touching the shared link-flow ledger,
// then immediately computes origin's link-flow diff against that iterate
// (UpdateLinkFlowsByOrigin) so the diff is ready for whatever stepsize the
// driver eventually picks. flows must be exactly origin's current path
// count and in path-index order — the same order GetSubproblemData used
// to build the subproblem flows was solved against.
func (a *Assignment) UpdatePathFlowsWithoutLinkFlows(origin int, flows []float64) error {
	o, err := a.origin(origin)
	if err != nil {
		return err
	}
	if len(flows) != o.numPaths() {
		return apperror.NewWithField(apperror.CodeInvalidArgument, "flows length must equal the origin's current path count", "flows")
	}
	for _, f := range flows {
		if !validParam(f) || f < 0 {
			return apperror.NewWithField(apperror.CodeInvalidArgument, "flows must be finite and non-negative", "flows")
		}
	}

	copy(o.pathFlowsCurrent, flows)
	return a.UpdateLinkFlowsByOrigin(origin)
}

// UpdatePathFlowsStepsize mixes origin's committed path flows toward the
// staged iterate by alpha (pathFlows = (1-alpha)*pathFlows +
// alpha*pathFlowsCurrent), then clears the staging buffer. Call this only
// after UpdateLinkFlowsStepsize has applied the matching link-flow delta
// with the same alpha, so the path-flow and link-flow ledgers never
// diverge.
func (a *Assignment) UpdatePathFlowsStepsize(origin int, alpha float64) error {
	o, err := a.origin(origin)
	if err != nil {
		return err
	}
	if !validParam(alpha) {
		return apperror.NewWithField(apperror.CodeInvalidArgument, "alpha must be finite", "alpha")
	}

	for p := range o.pathFlows {
		o.pathFlows[p] = (1-alpha)*o.pathFlows[p] + alpha*o.pathFlowsCurrent[p]
		o.pathFlowsCurrent[p] = 0
	}
	return nil
}

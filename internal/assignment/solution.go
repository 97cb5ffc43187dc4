package assignment

import "trafficassign/pkg/apperror"

// PerformInitialSolution builds the all-or-nothing starting flow pattern
// the outer loop then refines. It runs in two passes: first every origin
// computes its shortest path tree and loads each destination's whole
// demand onto that single path, then every origin folds its load into the
// shared link-flow ledger. The split matters — linkFlows are still zero
// throughout pass one, so every origin's initial tree is found under
// free-flow weights rather than under flow already loaded by earlier
// origins. It must run before the driver's first GetSubproblemData call.
func (a *Assignment) PerformInitialSolution() error {
	for i, o := range a.origins {
		if err := a.ComputeShortestPaths(i); err != nil {
			return err
		}

		for _, dest := range o.destOrder {
			d := o.destinations[dest]
			if len(d.pathIndices) == 0 {
				return apperror.NewWithField(apperror.CodeUnknownDestination, "destination is unreachable from its origin", "destination").
					WithDetails("origin", o.id).WithDetails("destination", dest)
			}
			p := d.pathIndices[0]
			o.pathFlows[p] = d.demand
		}
	}

	for i := range a.origins {
		if err := a.updateLinkFlows(i); err != nil {
			return err
		}
	}

	a.UpdateAllLinkDerivatives()
	return nil
}

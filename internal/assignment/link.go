package assignment

import "math"

// Link is a directed edge with immutable BPR parameters. Its mutable
// aggregate flow lives on Assignment instead (linkFlows), since it is
// shared ledger state, not per-link state.
type Link struct {
	ID       int
	T0       float64
	Alfa     float64
	Beta     int
	Capacity float64
	From     int32
	To       int32
}

// bprWeight evaluates the BPR volume-delay function at flow x.
func (l Link) bprWeight(x float64) float64 {
	return l.T0 * (1 + l.Alfa*math.Pow(x/l.Capacity, float64(l.Beta)))
}

// derivative evaluates dt/dx at flow x. By convention the derivative is 0
// at x == 0 when beta > 1 (the true limit), rather than whatever math.Pow
// returns for a zero base with a positive exponent.
func (l Link) derivative(x float64) float64 {
	if x == 0 && l.Beta > 1 {
		return 0
	}
	num := math.Pow(x, float64(l.Beta-1))
	den := math.Pow(l.Capacity, float64(l.Beta))
	return l.Alfa * l.T0 * float64(l.Beta) * num / den
}

// updateLinkDerivatives refreshes weights[l], alphas_1[l] and alphas_2[l]
// from the link's current aggregate flow, the local quadratic model the
// subproblem assembler builds around.
func (a *Assignment) updateLinkDerivatives(linkID int) {
	l := a.links[linkID]
	flow := a.linkFlows[linkID]

	weight := l.bprWeight(flow)
	dtdx := l.derivative(flow)

	a.weights[linkID] = weight
	a.alphas1[linkID] = dtdx / 2
	a.alphas2[linkID] = weight - flow*dtdx
}

// UpdateAllLinkDerivatives refreshes every link's weight and linearization
// coefficients. The driver calls this once per outer iteration, after every
// origin has applied its step size, never mid-iteration while origins still
// hold pending diffs.
func (a *Assignment) UpdateAllLinkDerivatives() {
	for i := range a.links {
		a.updateLinkDerivatives(i)
	}
}

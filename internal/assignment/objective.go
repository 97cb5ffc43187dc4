package assignment

import "math"

// GetObjectiveFunction evaluates the Beckmann objective at the current
// aggregate link flows: the integral of the BPR cost function from 0 to
// each link's flow, summed over all links. This is a read-only probe used
// to track convergence; it does not affect the ledger.
func (a *Assignment) GetObjectiveFunction() float64 {
	var total float64
	for i, l := range a.links {
		x := a.linkFlows[i]
		beta := float64(l.Beta)
		total += l.T0*x + l.T0*l.Alfa*math.Pow(x/l.Capacity, beta)*x/(beta+1)
	}
	return total
}

// Package qp is a reference solver for the convex subproblem
// assignment.GetSubproblemData assembles: minimize (1/2)x'Qx + c'x subject
// to per-destination demand-balance equalities and path-flow
// non-negativity. It is a small hand-written projected gradient descent,
// a demo collaborator for cmd/assignd — any solver that accepts the same
// flat matrices can replace it.
package qp

import (
	"math"

	"trafficassign/internal/assignment"
)

const (
	defaultIterations = 200
	defaultTolerance  = 1e-10
)

// Solve finds an approximate minimizer of sp by projected gradient
// descent: each step takes a gradient step on the unconstrained objective,
// then projects back onto the feasible set by normalizing every
// destination's path flows onto its demand simplex. Q's positive
// semidefiniteness (guaranteed by how the assembler builds it, as a sum of
// nonnegative rank-one terms) keeps this well-posed even though it is not
// re-validated here.
func Solve(sp *assignment.Subproblem) ([]float64, error) {
	n := sp.NumPaths
	if n == 0 {
		return nil, nil
	}

	groups, err := destinationGroups(sp)
	if err != nil {
		return nil, err
	}

	x := initialFeasiblePoint(sp, groups)
	step := adaptiveStep(sp.Q, n)

	grad := make([]float64, n)
	for iter := 0; iter < defaultIterations; iter++ {
		computeGradient(sp, x, grad)

		var maxMove float64
		next := make([]float64, n)
		copy(next, x)
		for i := range next {
			next[i] -= step * grad[i]
		}
		projectGroups(next, groups)

		for i := range x {
			d := math.Abs(next[i] - x[i])
			if d > maxMove {
				maxMove = d
			}
		}
		x = next
		if maxMove < defaultTolerance {
			break
		}
	}

	return x, nil
}

// computeGradient evaluates Qx + c into grad.
func computeGradient(sp *assignment.Subproblem, x, grad []float64) {
	n := sp.NumPaths
	for i := 0; i < n; i++ {
		var s float64
		row := sp.Q[i*n : i*n+n]
		for j, q := range row {
			s += q * x[j]
		}
		grad[i] = s + sp.C[i]
	}
}

// destinationGroups reads sp.A (one demand-balance row per destination)
// back into the set of path indices and the demand each group must sum to.
func destinationGroups(sp *assignment.Subproblem) ([]group, error) {
	n := sp.NumPaths
	groups := make([]group, sp.NumDestinations)
	for k := 0; k < sp.NumDestinations; k++ {
		row := sp.A[k*n : k*n+n]
		g := group{demand: sp.B[k]}
		for p, v := range row {
			if v != 0 {
				g.paths = append(g.paths, p)
			}
		}
		groups[k] = g
	}
	return groups, nil
}

type group struct {
	paths  []int
	demand float64
}

// initialFeasiblePoint spreads each group's demand evenly across its
// paths, satisfying every equality constraint before the first gradient
// step.
func initialFeasiblePoint(sp *assignment.Subproblem, groups []group) []float64 {
	x := make([]float64, sp.NumPaths)
	for _, g := range groups {
		if len(g.paths) == 0 {
			continue
		}
		share := g.demand / float64(len(g.paths))
		for _, p := range g.paths {
			x[p] = share
		}
	}
	return x
}

// projectGroups projects x onto the feasible set by re-normalizing each
// destination group onto its demand simplex (Duchi et al., 2008),
// independently of every other group.
func projectGroups(x []float64, groups []group) {
	for _, g := range groups {
		projectToSimplex(x, g.paths, g.demand)
	}
}

// projectToSimplex projects x restricted to indices onto
// {v >= 0, sum(v) == total}.
func projectToSimplex(x []float64, indices []int, total float64) {
	k := len(indices)
	if k == 0 {
		return
	}
	v := make([]float64, k)
	for i, idx := range indices {
		v[i] = x[idx]
	}

	u := append([]float64(nil), v...)
	sortDesc(u)

	var cumsum float64
	rho := -1
	for i, ui := range u {
		cumsum += ui
		t := (cumsum - total) / float64(i+1)
		if ui-t > 0 {
			rho = i
		}
	}
	if rho < 0 {
		for _, idx := range indices {
			x[idx] = total / float64(k)
		}
		return
	}

	cumsum = 0
	for i := 0; i <= rho; i++ {
		cumsum += u[i]
	}
	theta := (cumsum - total) / float64(rho+1)

	for i, idx := range indices {
		x[idx] = math.Max(v[i]-theta, 0)
	}
}

func sortDesc(v []float64) {
	for i := 1; i < len(v); i++ {
		for j := i; j > 0 && v[j] > v[j-1]; j-- {
			v[j], v[j-1] = v[j-1], v[j]
		}
	}
}

// adaptiveStep picks a gradient-step size from Q's largest diagonal entry,
// a cheap Lipschitz-constant proxy for a PSD matrix built from nonnegative
// per-link coefficients.
func adaptiveStep(q []float64, n int) float64 {
	var maxDiag float64
	for i := 0; i < n; i++ {
		if d := q[i*n+i]; d > maxDiag {
			maxDiag = d
		}
	}
	if maxDiag <= 0 {
		return 1
	}
	return 1 / maxDiag
}

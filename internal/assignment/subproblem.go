package assignment

import (
	"sort"
	"time"
)

// Subproblem is the flattened convex QP an external solver consumes to
// pick one origin's next path-flow iterate. All matrices are row-major
// and sized by NumPaths (n) and NumDestinations (m):
//
//	Q: n*n   minimize  (1/2) x'Qx + c'x
//	C: n
//	A: m*n   subject to  Ax = B   (one row per destination: demand balance)
//	B: m
//	G: n*n   subject to  Gx <= H  (one row per path: non-negativity)
//	H: n
type Subproblem struct {
	Q, C            []float64
	A, B            []float64
	G, H            []float64
	NumPaths        int
	NumDestinations int
}

// GetSubproblemData assembles the local quadratic model around origin's
// current link flows into a flat QP an external solver can consume
// directly. Assembly always iterates link ids and destinations in sorted
// order, so repeated calls with unchanged state produce byte-identical
// matrices regardless of Go's randomized map iteration.
func (a *Assignment) GetSubproblemData(origin int) (*Subproblem, error) {
	start := time.Now()
	o, err := a.origin(origin)
	if err != nil {
		return nil, err
	}

	n := o.numPaths()
	m := len(o.destOrder)
	sp := &Subproblem{
		Q:               make([]float64, n*n),
		C:               make([]float64, n),
		A:               make([]float64, m*n),
		B:               make([]float64, m),
		G:               make([]float64, n*n),
		H:               make([]float64, n),
		NumPaths:        n,
		NumDestinations: m,
	}

	a.assembleObjective(o, sp)
	a.assembleEquality(o, sp)
	assembleInequality(sp)

	if a.recorder != nil {
		a.recorder.RecordSubproblemAssemble(origin, time.Since(start))
	}
	return sp, nil
}

// assembleObjective builds Q and C from the per-link local quadratic
// model: every link contributes a rank-one term to Q over the paths that
// traverse it, so Q is symmetric positive semidefinite by construction
// (sum of outer products of nonnegative coefficients).
func (a *Assignment) assembleObjective(o *Origin, sp *Subproblem) {
	base := int(o.id) * a.numLinks
	n := sp.NumPaths

	linkIDs := make([]int, 0, len(o.pathLinkIncidence))
	for l := range o.pathLinkIncidence {
		linkIDs = append(linkIDs, l)
	}
	sort.Ints(linkIDs)

	for _, l := range linkIDs {
		pathIDs := o.pathLinkIncidence[l]
		alpha1 := a.alphas1[l]
		alpha2 := a.alphas2[l]
		residual := a.linkFlows[l] - a.linkFlowsOrigin[base+l]

		for _, pa := range pathIDs {
			sp.C[pa] += 2*alpha1*residual + alpha2
			for _, pb := range pathIDs {
				sp.Q[n*pa+pb] += 2 * alpha1
			}
		}
	}
}

// assembleEquality builds one demand-balance row per destination: the
// flows on its paths must sum to its demand.
func (a *Assignment) assembleEquality(o *Origin, sp *Subproblem) {
	n := sp.NumPaths
	for k, dest := range o.destOrder {
		d := o.destinations[dest]
		sp.B[k] = d.demand
		for _, p := range d.pathIndices {
			sp.A[n*k+p] = 1
		}
	}
}

// assembleInequality builds the non-negativity constraints -x <= 0, one
// row per path.
func assembleInequality(sp *Subproblem) {
	n := sp.NumPaths
	for i := 0; i < n; i++ {
		sp.G[n*i+i] = -1
	}
}

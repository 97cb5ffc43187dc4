package main

// demoNetwork is a small hand-built network for the CLI demo: 6 nodes, the
// first 2 of which are centroids (origin ids 0 and 1, per the core's
// origin-id-equals-node-id invariant), connected by 8 directed links with
// enough redundancy that the outer loop has more than one path to spread
// flow across.
type demoNetwork struct {
	numNodes     int
	numCentroids int

	linkIDs  []int
	from, to []int32
	t0, alfa []float64
	beta     []int
	capacity []float64

	demands []demoDemand
}

type demoDemand struct {
	fromCentroid int
	toNode       int32
	demand       float64
}

func buildDemoNetwork() demoNetwork {
	return demoNetwork{
		numNodes:     6,
		numCentroids: 2,
		linkIDs:      []int{0, 1, 2, 3, 4, 5, 6, 7},
		from:         []int32{0, 0, 1, 2, 2, 3, 4, 1},
		to:           []int32{2, 3, 3, 4, 5, 5, 5, 4},
		t0:           []float64{6, 4, 5, 3, 6, 4, 2, 7},
		alfa:         []float64{0.15, 0.15, 0.15, 0.15, 0.15, 0.15, 0.15, 0.15},
		beta:         []int{4, 4, 4, 4, 4, 4, 4, 4},
		capacity:     []float64{20, 15, 15, 10, 10, 15, 20, 10},
		demands: []demoDemand{
			{fromCentroid: 0, toNode: 5, demand: 25},
			{fromCentroid: 1, toNode: 5, demand: 15},
		},
	}
}

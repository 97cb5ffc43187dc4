package assignment

import (
	"sort"

	"trafficassign/pkg/apperror"
)

// destination is the per-(origin, destination) record: demand plus the
// ordered list of local path ids currently serving it.
type destination struct {
	demand      float64
	pathIndices []int
}

// Origin is one centroid's path pool: the arena of discovered path link
// sequences, the destination demand map, the link→path incidence index,
// and the two path-flow vectors (current and staged-for-mixing).
//
// An Origin is exclusively owned by one goroutine at a time;
// it carries its own scratch buffer so ComputeShortestPaths never touches
// shared Assignment-level state while origins run in parallel.
type Origin struct {
	id         int32
	pathsPerOD int

	paths             [][]int32
	pathFlows         []float64
	pathFlowsCurrent  []float64
	crcs              map[uint32]struct{}
	pathLinkIncidence map[int][]int

	destinations map[int32]*destination
	destOrder    []int32 // sorted ascending by destination node id

	pathBuffer []int32 // scratch for path reconstruction, cap == numNodes
}

func newOrigin(id int32, pathsPerOD, numNodes int) *Origin {
	return &Origin{
		id:                id,
		pathsPerOD:        pathsPerOD,
		crcs:              make(map[uint32]struct{}),
		pathLinkIncidence: make(map[int][]int),
		destinations:      make(map[int32]*destination),
		pathBuffer:        make([]int32, 0, numNodes),
	}
}

// insertOD registers (or overwrites) a destination's demand and keeps
// destOrder sorted so subproblem assembly iterates destinations in a
// stable, reproducible order.
func (o *Origin) insertOD(dest int32, demand float64) {
	if _, exists := o.destinations[dest]; !exists {
		idx := sort.Search(len(o.destOrder), func(i int) bool { return o.destOrder[i] >= dest })
		o.destOrder = append(o.destOrder, 0)
		copy(o.destOrder[idx+1:], o.destOrder[idx:])
		o.destOrder[idx] = dest
	}
	o.destinations[dest] = &destination{demand: demand}
}

// numPaths returns the number of paths currently stored for this origin.
func (o *Origin) numPaths() int {
	return len(o.paths)
}

// addPath deduplicates linkSeq by fingerprint and, if new, appends it to
// the pool under destNode. It reports whether a path was actually added;
// added == false with err == nil means a CRC collision silently dropped it,
// which is not an error.
func (o *Origin) addPath(destNode int32, linkSeq []int32) (added bool, err error) {
	fp := fingerprint(linkSeq)
	if _, exists := o.crcs[fp]; exists {
		return false, nil
	}
	if o.numPaths() >= o.pathsPerOD {
		return false, apperror.NewWithField(apperror.CodePathPoolFull, "origin's path pool is exhausted", "origin").
			WithDetails("origin", o.id).WithDetails("paths_per_od", o.pathsPerOD)
	}
	dest, ok := o.destinations[destNode]
	if !ok {
		return false, apperror.NewWithField(apperror.CodeUnknownDestination, "destination was never registered via InsertOD", "destination").
			WithDetails("destination", destNode)
	}

	id := o.numPaths()
	seq := append([]int32(nil), linkSeq...)
	o.paths = append(o.paths, seq)
	for _, l := range seq {
		o.pathLinkIncidence[int(l)] = append(o.pathLinkIncidence[int(l)], id)
	}
	dest.pathIndices = append(dest.pathIndices, id)
	o.pathFlows = append(o.pathFlows, 0)
	o.pathFlowsCurrent = append(o.pathFlowsCurrent, 0)
	o.crcs[fp] = struct{}{}

	return true, nil
}

// GetTotalPaths returns the number of distinct paths stored for origin.
func (a *Assignment) GetTotalPaths(origin int) (int, error) {
	o, err := a.origin(origin)
	if err != nil {
		return 0, err
	}
	return o.numPaths(), nil
}

// GetTotalPathsForDestination returns the number of paths currently
// serving one destination of origin.
func (a *Assignment) GetTotalPathsForDestination(origin int, destination int32) (int, error) {
	o, err := a.origin(origin)
	if err != nil {
		return 0, err
	}
	d, ok := o.destinations[destination]
	if !ok {
		return 0, apperror.NewWithField(apperror.CodeUnknownDestination, "destination was never registered via InsertOD", "destination")
	}
	return len(d.pathIndices), nil
}

// GetODPathTimes returns, in path-index order, the current travel time and
// flow of every path serving (origin, destination). Travel time sums the
// current link weights along the path; it is not cached, so it always
// reflects the link weights as they stand at the call.
func (a *Assignment) GetODPathTimes(origin int, destination int32) (times, flows []float64, err error) {
	o, err := a.origin(origin)
	if err != nil {
		return nil, nil, err
	}
	d, ok := o.destinations[destination]
	if !ok {
		return nil, nil, apperror.NewWithField(apperror.CodeUnknownDestination, "destination was never registered via InsertOD", "destination")
	}

	times = make([]float64, len(d.pathIndices))
	flows = make([]float64, len(d.pathIndices))
	for i, pid := range d.pathIndices {
		var t float64
		for _, l := range o.paths[pid] {
			t += a.weights[l]
		}
		times[i] = t
		flows[i] = o.pathFlows[pid]
	}
	return times, flows, nil
}

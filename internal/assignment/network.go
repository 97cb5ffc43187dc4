// Package assignment implements the path-based traffic assignment core: a
// per-origin path pool, link-flow ledger, and QP-subproblem assembler that
// an outer convergence driver uses to distribute OD demand across a
// directed network toward a user-equilibrium flow pattern.
//
// The package deliberately knows nothing about shortest-path computation,
// QP solving, or convergence — those are external collaborators, consumed
// through the ShortestPathEngine interface and the flat matrices
// GetSubproblemData returns. internal/shortestpath and internal/qp ship
// reference implementations of the first two; cmd/assignd is the driver.
package assignment

import (
	"math"
	"time"

	"trafficassign/pkg/apperror"
)

// linkKey indexes links by endpoint pair for path reconstruction. A struct
// key rather than (from<<16)|to bit packing: packing would silently cap the
// network at 2^16 nodes.
type linkKey struct {
	from, to int32
}

// ShortestPathEngine is the sole external collaborator the core consumes to
// discover new paths. Implementations must return a predecessor array
// (pred[v] == -1 for the source and for unreached nodes) and a cost array,
// both indexed by node id, computed under weights from source.
type ShortestPathEngine interface {
	ComputeShortestPaths(weights []float64, source int32) (pred []int32, cost []float64)
}

// Recorder is the narrow metrics seam the core accepts. A nil Recorder is
// valid and silently skipped; pkg/metrics.Metrics satisfies this interface
// structurally, so the core never imports prometheus directly.
type Recorder interface {
	RecordPathGenerated(origin int)
	RecordFingerprintCollision()
	RecordSubproblemAssemble(origin int, d time.Duration)
	RecordLinkFlowUpdate(mode string, d time.Duration)
}

// defaultPathsPerOD bounds per-origin path storage; override it with
// WithPathsPerOD.
const defaultPathsPerOD = 8

// Option configures an Assignment at construction time.
type Option func(*Assignment)

// WithPathsPerOD bounds how many distinct paths each origin's pool may hold
// before adding another path starts returning PathPoolFull.
func WithPathsPerOD(n int) Option {
	return func(a *Assignment) {
		if n > 0 {
			a.pathsPerOD = n
		}
	}
}

// WithRecorder wires an optional metrics sink into the core.
func WithRecorder(r Recorder) Option {
	return func(a *Assignment) {
		a.recorder = r
	}
}

// Assignment is the path-based traffic assignment core for one network.
// All storage is allocated once at construction; per-origin path pools
// grow only by appending, bounded by pathsPerOD.
type Assignment struct {
	numLinks     int
	numNodes     int
	numCentroids int
	pathsPerOD   int

	links      []Link
	nodeToLink map[linkKey]int

	origins []*Origin

	linkFlows           []float64 // [l]
	linkFlowsOrigin     []float64 // [o*numLinks+l]
	linkFlowsOriginDiff []float64 // [o*numLinks+l]
	weights             []float64 // [l]
	alphas1             []float64 // [l]
	alphas2             []float64 // [l]

	engine   ShortestPathEngine
	recorder Recorder
}

// NewAssignment allocates all fixed-size storage for a network of the given
// dimensions. numCentroids must not exceed numNodes: origin ids are centroid
// sequence numbers 0..numCentroids-1 and are required to equal their node
// ids.
func NewAssignment(numLinks, numNodes, numCentroids int, opts ...Option) (*Assignment, error) {
	if numLinks <= 0 || numNodes <= 0 || numCentroids <= 0 {
		return nil, apperror.New(apperror.CodeInvalidArgument, "numLinks, numNodes and numCentroids must all be positive")
	}
	if numCentroids > numNodes {
		return nil, apperror.New(apperror.CodeInvalidArgument, "numCentroids cannot exceed numNodes: origin ids must address valid nodes")
	}

	a := &Assignment{
		numLinks:            numLinks,
		numNodes:            numNodes,
		numCentroids:        numCentroids,
		pathsPerOD:          defaultPathsPerOD,
		links:               make([]Link, numLinks),
		nodeToLink:          make(map[linkKey]int, numLinks),
		origins:             make([]*Origin, numCentroids),
		linkFlows:           make([]float64, numLinks),
		linkFlowsOrigin:     make([]float64, numLinks*numCentroids),
		linkFlowsOriginDiff: make([]float64, numLinks*numCentroids),
		weights:             make([]float64, numLinks),
		alphas1:             make([]float64, numLinks),
		alphas2:             make([]float64, numLinks),
	}

	for _, opt := range opts {
		opt(a)
	}

	for i := 0; i < numCentroids; i++ {
		a.origins[i] = newOrigin(int32(i), a.pathsPerOD, numNodes)
	}

	return a, nil
}

// origin bounds-checks o and returns its Origin record.
func (a *Assignment) origin(o int) (*Origin, error) {
	if o < 0 || o >= len(a.origins) {
		return nil, apperror.NewWithField(apperror.CodeInvalidOrigin, "origin id out of range", "origin")
	}
	return a.origins[o], nil
}

func validParam(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// AddLink registers link_id's immutable parameters and indexes it by
// endpoint for path reconstruction. Must be called before SetEdges.
func (a *Assignment) AddLink(id int, t0, alfa float64, beta int, capacity float64, from, to int32) error {
	if id < 0 || id >= a.numLinks {
		return apperror.NewWithField(apperror.CodeInvalidArgument, "link id out of range", "link_id")
	}
	if from < 0 || int(from) >= a.numNodes || to < 0 || int(to) >= a.numNodes {
		return apperror.NewWithField(apperror.CodeInvalidArgument, "link endpoint out of range", "from/to")
	}
	if !validParam(t0) || !validParam(alfa) || !validParam(capacity) || capacity <= 0 {
		return apperror.NewWithField(apperror.CodeInvalidLinkParameter, "t0/alfa/capacity must be finite and capacity must be positive", "capacity")
	}

	a.links[id] = Link{ID: id, T0: t0, Alfa: alfa, Beta: beta, Capacity: capacity, From: from, To: to}
	a.weights[id] = t0
	a.nodeToLink[linkKey{from, to}] = id
	return nil
}

// InsertOD records demand from a centroid to a destination node, creating
// an empty path-index list for it. Overwriting an existing (origin, to)
// pair is unspecified: reinsertion is treated as a setup-time mutator, not
// a runtime one.
func (a *Assignment) InsertOD(fromCentroid int, toNode int32, demand float64) error {
	o, err := a.origin(fromCentroid)
	if err != nil {
		return err
	}
	if toNode < 0 || int(toNode) >= a.numNodes {
		return apperror.NewWithField(apperror.CodeUnknownDestination, "destination node out of range", "to_node")
	}
	if !validParam(demand) || demand < 0 {
		return apperror.NewWithField(apperror.CodeInvalidArgument, "demand must be a non-negative finite value", "demand")
	}

	o.insertOD(toNode, demand)
	return nil
}

// SetEdges finalizes the link set by installing the shortest-path engine
// ComputeShortestPaths will delegate to. The driver builds the engine's
// adjacency itself (see internal/shortestpath) and hands the finished
// engine in, keeping this package free of any shortest-path algorithm.
func (a *Assignment) SetEdges(engine ShortestPathEngine) {
	a.engine = engine
}

package telemetry

import (
	"go.opentelemetry.io/otel/attribute"
)

// Standard attribute keys reported on assignment spans.
const (
	AttrOriginID     = "assignment.origin_id"
	AttrNumLinks     = "assignment.num_links"
	AttrNumNodes     = "assignment.num_nodes"
	AttrNumCentroids = "assignment.num_centroids"
	AttrIteration    = "assignment.iteration"
	AttrObjective    = "assignment.objective_value"
	AttrPathsFound   = "assignment.paths_found"
	AttrRelativeGap  = "assignment.relative_gap"
	AttrStepsize     = "assignment.stepsize"
)

// NetworkAttributes describes the static size of the network being assigned.
func NetworkAttributes(numLinks, numNodes, numCentroids int) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Int(AttrNumLinks, numLinks),
		attribute.Int(AttrNumNodes, numNodes),
		attribute.Int(AttrNumCentroids, numCentroids),
	}
}

// OriginAttributes identifies which origin a span's work belongs to.
func OriginAttributes(origin int, pathsFound int) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Int(AttrOriginID, origin),
		attribute.Int(AttrPathsFound, pathsFound),
	}
}

// IterationAttributes describes one outer convergence iteration.
func IterationAttributes(iteration int, objective, relativeGap, stepsize float64) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Int(AttrIteration, iteration),
		attribute.Float64(AttrObjective, objective),
		attribute.Float64(AttrRelativeGap, relativeGap),
		attribute.Float64(AttrStepsize, stepsize),
	}
}

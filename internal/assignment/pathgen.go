package assignment

import "trafficassign/pkg/apperror"

// ComputeShortestPaths runs the engine once from origin's node and tries to
// add the resulting tree's path to every one of origin's registered
// destinations. A rediscovered path (one whose fingerprint already exists
// in the pool) is silently dropped; a genuinely new one is appended. The
// engine must have been installed with SetEdges first.
func (a *Assignment) ComputeShortestPaths(origin int) error {
	o, err := a.origin(origin)
	if err != nil {
		return err
	}
	if a.engine == nil {
		return apperror.New(apperror.CodeInternal, "no ShortestPathEngine installed: call SetEdges first")
	}

	pred, _ := a.engine.ComputeShortestPaths(a.weights, o.id)

	for _, dest := range o.destOrder {
		linkSeq, err := a.reconstructPath(o, pred, dest)
		if err != nil {
			return err
		}
		if linkSeq == nil {
			// destination unreachable under the current weights; nothing to add.
			continue
		}
		added, err := o.addPath(dest, linkSeq)
		if err != nil {
			return err
		}
		if added {
			a.recordPathGenerated(origin)
		} else {
			a.recordFingerprintCollision()
		}
	}

	return nil
}

// reconstructPath walks pred backward from destination to o.id, translating
// each consecutive node pair into the link that connects them, and returns
// the sequence in forward (origin-to-destination) order. It returns a nil
// slice, nil error if destination is unreached (the pred chain hits a node
// with no predecessor before o.id), and an error if the chain runs more
// than numNodes steps without reaching o.id (a predecessor cycle).
func (a *Assignment) reconstructPath(o *Origin, pred []int32, destination int32) ([]int32, error) {
	if destination == o.id {
		return []int32{}, nil
	}

	o.pathBuffer = o.pathBuffer[:0]
	cur := destination
	steps := 0
	for cur != o.id {
		if steps > a.numNodes {
			return nil, apperror.New(apperror.CodeInternal, "path reconstruction exceeded numNodes steps: predecessor cycle")
		}
		prev := pred[cur]
		if prev < 0 {
			return nil, nil
		}
		l, ok := a.nodeToLink[linkKey{prev, cur}]
		if !ok {
			return nil, apperror.New(apperror.CodeInternal, "predecessor edge has no registered link")
		}
		o.pathBuffer = append(o.pathBuffer, int32(l))
		cur = prev
		steps++
	}

	linkSeq := make([]int32, len(o.pathBuffer))
	for i, l := range o.pathBuffer {
		linkSeq[len(o.pathBuffer)-1-i] = l
	}
	return linkSeq, nil
}

func (a *Assignment) recordPathGenerated(origin int) {
	if a.recorder != nil {
		a.recorder.RecordPathGenerated(origin)
	}
}

func (a *Assignment) recordFingerprintCollision() {
	if a.recorder != nil {
		a.recorder.RecordFingerprintCollision()
	}
}

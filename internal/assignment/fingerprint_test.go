package assignment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFingerprint_Deterministic(t *testing.T) {
	seq := []int32{1, 2, 3}
	a := fingerprint(seq)
	b := fingerprint(append([]int32(nil), seq...))
	assert.Equal(t, a, b, "fingerprint should be deterministic")
}

func TestFingerprint_OrderSensitive(t *testing.T) {
	a := fingerprint([]int32{1, 2, 3})
	b := fingerprint([]int32{3, 2, 1})
	assert.NotEqual(t, a, b, "fingerprint should distinguish path direction")
}

func TestFingerprint_EmptyPath(t *testing.T) {
	assert.Equal(t, uint32(0), fingerprint([]int32{}))
}

func TestFingerprint_DifferentLengths(t *testing.T) {
	a := fingerprint([]int32{1, 2})
	b := fingerprint([]int32{1, 2, 3})
	assert.NotEqual(t, a, b, "fingerprint should not collide across different-length paths")
}

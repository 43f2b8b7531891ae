package checker

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lguibr/vssref/types"
	"github.com/lguibr/vssref/vision"
)

// TestConfigure_IsIdempotent covers the "calling configure() twice in
// succession yields the same state as once" invariant across every
// concrete checker.
func TestConfigure_IsIdempotent(t *testing.T) {
	snap := vision.NewSnapshot()
	alwaysTrue := func() bool { return true }

	atk := NewTwoAttackers(snap, alwaysTrue)
	def := NewTwoDefenders(snap, alwaysTrue)

	checkers := []Checker{
		NewStuckedBall(snap, alwaysTrue, 0.05, 4, 0.08),
		NewBallPlay(snap, alwaysTrue, atk, def, nil),
	}

	for _, c := range checkers {
		c.Configure()
		once := snapshotTriple(c)

		c.Configure()
		twice := snapshotTriple(c)

		assert.Equal(t, once, twice, "%s: double Configure must match single Configure", c.Name())
	}
}

type triple struct {
	penalty  types.Foul
	team     types.Color
	quadrant types.Quadrant
}

func snapshotTriple(c Checker) triple {
	return triple{penalty: c.Penalty(), team: c.TeamColor(), quadrant: c.Quadrant()}
}

func TestHalfTime_ConfigureIsIdempotent(t *testing.T) {
	fired := 0
	h := NewHalfTime(10, func() { fired++ })
	h.Configure()
	h.Configure()
	assert.InDelta(t, 0.0, h.ElapsedSeconds(), 1e-3)
	assert.Equal(t, 0, fired)
}

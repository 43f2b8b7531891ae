package referee

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/lguibr/vssref/checker"
	"github.com/lguibr/vssref/types"
	"github.com/lguibr/vssref/vision"
	"github.com/lguibr/vssref/wire"
)

func newTestEngine(t *testing.T, checkers []checker.Checker) *Engine {
	t.Helper()
	cfg := Config{
		ThreadFrequency: 60,
		TransitionTime:  20 * time.Millisecond,
		Codec:           wire.NewGobCodec(),
		BlueIsLeftSide:  true,
	}
	producer := NewEngine(cfg, checkers, nil, 10.0, nil)
	actor := producer()
	return actor.(*Engine)
}

func TestBucketize_OrdersByPriorityDescending(t *testing.T) {
	snap := vision.NewSnapshot()
	stuck := checker.NewStuckedBall(snap, func() bool { return true }, 0.05, 1, 0.08)
	atk := checker.NewTwoAttackers(snap, func() bool { return true })
	def := checker.NewTwoDefenders(snap, func() bool { return true })
	play := checker.NewBallPlay(snap, func() bool { return true }, atk, def, nil)

	e := newTestEngine(t, []checker.Checker{stuck, play})
	assert.Len(t, e.buckets, 2)
	assert.Equal(t, checker.PriorityBallPlay, e.buckets[0].priority)
	assert.Equal(t, checker.PriorityStuckedBall, e.buckets[1].priority)
}

func TestEngine_StartsInGameOnState(t *testing.T) {
	e := newTestEngine(t, nil)
	info, half := e.Snapshot()
	assert.Equal(t, types.FoulGameOn, info.Foul)
	// half only advances out of NO_HALF once Started runs start(), which
	// this white-box test bypasses by calling the producer directly.
	assert.Equal(t, types.HalfNone, half)
}

func TestEngine_TransitionFSM_WalksFoulToStopToGameOn(t *testing.T) {
	e := newTestEngine(t, nil)
	e.raiseFoul(types.FoulFreeBall, types.ColorBlue, types.QuadrantYellowTop)

	info, _ := e.Snapshot()
	assert.Equal(t, types.FoulFreeBall, info.Foul)

	time.Sleep(25 * time.Millisecond)
	e.advanceTransition()
	info, _ = e.Snapshot()
	assert.Equal(t, types.FoulStop, info.Foul, "times out of FoulEmitted into STOP")

	time.Sleep(25 * time.Millisecond)
	e.advanceTransition()
	info, _ = e.Snapshot()
	assert.Equal(t, types.FoulGameOn, info.Foul, "times out of STOP back into GAME_ON")
}

func TestEngine_TeamsPlacedSkipsRemainingFoulEmittedWait(t *testing.T) {
	e := newTestEngine(t, nil)
	e.raiseFoul(types.FoulGoalKick, types.ColorYellow, types.QuadrantNone)
	e.teamsPlaced = true

	e.advanceTransition()
	info, _ := e.Snapshot()
	assert.Equal(t, types.FoulStop, info.Foul, "teamsPlaced short-circuits the transition timer")
}

func TestEngine_HalfTimeCallbackSwapsSidesAndStartsKickoff(t *testing.T) {
	e := newTestEngine(t, nil)
	e.half = types.HalfFirst // simulate start() having already advanced past NO_HALF
	before := e.blueIsLeftSide
	e.onHalfTimePassed()

	assert.NotEqual(t, before, e.blueIsLeftSide)
	info, half := e.Snapshot()
	assert.Equal(t, types.FoulKickoff, info.Foul)
	assert.Equal(t, types.HalfSecond, half)
}

func TestEngine_HalfTimeCallbackHaltsInsteadOfRegressingPastSecond(t *testing.T) {
	e := newTestEngine(t, nil)
	e.half = types.HalfSecond
	before := e.blueIsLeftSide
	e.onHalfTimePassed()

	assert.Equal(t, before, e.blueIsLeftSide, "match already halted, sides never swap again")
	info, half := e.Snapshot()
	assert.Equal(t, types.FoulHalt, info.Foul)
	assert.Equal(t, types.HalfSecond, half, "half never regresses past SECOND")
}

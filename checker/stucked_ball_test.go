package checker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/lguibr/vssref/types"
	"github.com/lguibr/vssref/vision"
)

func blueOnLeft() bool { return true }

func TestStuckedBall_FiresFreeBallOutsideGoalArea(t *testing.T) {
	snap := vision.NewSnapshot()
	snap.Update(types.Frame{BallPosition: types.Position{X: 0.1, Y: 0.0}, BallVelocity: types.Velocity{X: 0.01, Y: 0}})

	c := NewStuckedBall(snap, blueOnLeft, 0.05, 0.02, 0.08)

	assert.False(t, c.Run(), "should not fire before stuckedBallTime elapses")
	time.Sleep(30 * time.Millisecond)
	assert.True(t, c.Run(), "should fire once stuckedBallTime elapses")
	assert.Equal(t, types.FoulFreeBall, c.Penalty())
	assert.Equal(t, types.ColorNone, c.TeamColor())
}

func TestStuckedBall_ResetsOnMovement(t *testing.T) {
	snap := vision.NewSnapshot()
	snap.Update(types.Frame{BallPosition: types.Position{X: 0.1, Y: 0.0}, BallVelocity: types.Velocity{X: 0.01, Y: 0}})

	c := NewStuckedBall(snap, blueOnLeft, 0.05, 0.02, 0.08)
	time.Sleep(10 * time.Millisecond)
	assert.False(t, c.Run())

	snap.Update(types.Frame{BallPosition: types.Position{X: 0.1, Y: 0.0}, BallVelocity: types.Velocity{X: 1.0, Y: 0}})
	assert.False(t, c.Run(), "fast ball should never fire")

	snap.Update(types.Frame{BallPosition: types.Position{X: 0.1, Y: 0.0}, BallVelocity: types.Velocity{X: 0.01, Y: 0}})
	assert.False(t, c.Run(), "timer should have restarted on the movement tick")
}

func TestStuckedBall_DegradesToFreeBallWhenBothTeamsContestGoalArea(t *testing.T) {
	snap := vision.NewSnapshot()
	ballPos := types.Position{X: -0.7, Y: 0}
	snap.Update(types.Frame{
		BallPosition: ballPos,
		BallVelocity: types.Velocity{X: 0, Y: 0},
		Robots: []types.Robot{
			{ID: 0, Color: types.ColorBlue, Position: types.Position{X: -0.7, Y: 0.02}},
			{ID: 1, Color: types.ColorBlue, Position: types.Position{X: -0.69, Y: -0.02}},
			{ID: 2, Color: types.ColorBlue, Position: types.Position{X: -0.68, Y: 0.01}},
			{ID: 0, Color: types.ColorYellow, Position: types.Position{X: -0.71, Y: 0.03}},
		},
	})

	c := NewStuckedBall(snap, blueOnLeft, 0.05, 0.02, 0.08)
	assert.False(t, c.Run())
	time.Sleep(30 * time.Millisecond)

	assert.True(t, c.Run(), "should fire once stuckedBallTime elapses inside the goal area")
	assert.Equal(t, types.FoulFreeBall, c.Penalty(), "both teams near the ball degrades a goal-area stick to FREE_BALL, not PENALTY_KICK")
	assert.Equal(t, types.ColorNone, c.TeamColor())
}

func TestStuckedBall_PenaltyWhenOnlyDefendingTeamNearBallInGoalArea(t *testing.T) {
	snap := vision.NewSnapshot()
	ballPos := types.Position{X: -0.7, Y: 0}
	snap.Update(types.Frame{
		BallPosition: ballPos,
		BallVelocity: types.Velocity{X: 0, Y: 0},
		Robots: []types.Robot{
			{ID: 0, Color: types.ColorBlue, Position: types.Position{X: -0.7, Y: 0.02}},
		},
	})

	c := NewStuckedBall(snap, blueOnLeft, 0.05, 0.02, 0.08)
	assert.False(t, c.Run())
	time.Sleep(30 * time.Millisecond)

	assert.True(t, c.Run())
	assert.Equal(t, types.FoulPenaltyKick, c.Penalty())
	assert.Equal(t, types.ColorYellow, c.TeamColor(), "penalty favors the attacking team, blue's opponent")
}

func TestStuckedBall_ConfigureResetsState(t *testing.T) {
	snap := vision.NewSnapshot()
	c := NewStuckedBall(snap, blueOnLeft, 0.05, 4, 0.08)
	c.isLastStuckAtGoalArea = true
	c.Configure()
	assert.False(t, c.isLastStuckAtGoalArea)
}

package checker

import (
	"github.com/lguibr/vssref/timer"
	"github.com/lguibr/vssref/types"
	"github.com/lguibr/vssref/utils"
	"github.com/lguibr/vssref/vision"
)

// StuckedBall signals FREE_BALL when the ball is motionless outside both
// goal areas for at least stuckedBallTime, or PENALTY_KICK against the
// defending team when it is motionless inside its goal area for the same
// duration — unless both teams have a robot near the ball, in which case
// it degrades to FREE_BALL. Grounded on
// checker_stuckedball.cpp.
type StuckedBall struct {
	Base

	blueIsLeftSide       func() bool
	ballMinSpeedForStuck float64
	stuckedBallTime      float64
	robotLength          float64

	timer               *timer.Timer
	isLastStuckAtGoalArea bool
}

// NewStuckedBall constructs the checker. blueIsLeftSide is a callback
// rather than a stored bool so a side swap between halves is always
// observed live.
func NewStuckedBall(snapshot *vision.Snapshot, blueIsLeftSide func() bool, ballMinSpeedForStuck, stuckedBallTime, robotLength float64) *StuckedBall {
	c := &StuckedBall{
		Base:                  NewBase(PriorityStuckedBall, snapshot),
		blueIsLeftSide:        blueIsLeftSide,
		ballMinSpeedForStuck:  ballMinSpeedForStuck,
		stuckedBallTime:       stuckedBallTime,
		robotLength:           robotLength,
	}
	c.Configure()
	return c
}

func (c *StuckedBall) Name() string { return "StuckedBall" }

func (c *StuckedBall) Configure() {
	c.timer = timer.New()
	c.isLastStuckAtGoalArea = false
}

func (c *StuckedBall) Run() bool {
	ballPos, ok := c.vision.GetBallPosition()
	ballVel := c.vision.GetBallVelocity()
	if !ok || utils.Speed(ballVel) > c.ballMinSpeedForStuck {
		c.timer.Start()
		return false
	}

	blueIsLeft := c.blueIsLeftSide()

	for _, color := range [2]types.Color{types.ColorBlue, types.ColorYellow} {
		if !utils.IsInsideGoalArea(ballPos, color, blueIsLeft) {
			continue
		}

		if !c.isLastStuckAtGoalArea {
			c.isLastStuckAtGoalArea = true
			c.timer.Start()
		}
		c.timer.Stop()

		if c.timer.ElapsedSeconds() >= c.stuckedBallTime {
			if c.havePlayersNearBall(types.ColorBlue, ballPos) && c.havePlayersNearBall(types.ColorYellow, ballPos) {
				c.setPenalty(types.FoulFreeBall, types.ColorNone, utils.GetQuadrant(ballPos))
			} else {
				c.setPenalty(types.FoulPenaltyKick, color.Opponent(), types.QuadrantNone)
			}
			c.timer.Start()
			return true
		}
		return false
	}

	// Ball is stuck but outside both goal areas.
	if c.isLastStuckAtGoalArea {
		c.isLastStuckAtGoalArea = false
		c.timer.Start()
	}
	c.timer.Stop()

	if c.timer.ElapsedSeconds() >= c.stuckedBallTime {
		c.setPenalty(types.FoulFreeBall, types.ColorNone, utils.GetQuadrant(ballPos))
		c.timer.Start()
		return true
	}
	return false
}

func (c *StuckedBall) havePlayersNearBall(color types.Color, ballPos types.Position) bool {
	for _, id := range c.vision.GetAvailablePlayers(color) {
		pos, ok := c.vision.GetPlayerPosition(color, id)
		if !ok {
			continue
		}
		if utils.Distance(pos, ballPos) <= 1.5*c.robotLength {
			return true
		}
	}
	return false
}

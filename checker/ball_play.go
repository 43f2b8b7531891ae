package checker

import (
	"github.com/lguibr/vssref/types"
	"github.com/lguibr/vssref/utils"
	"github.com/lguibr/vssref/vision"
)

// Suggestion is raised when BallPlay ends a play that touched a goal
// area but cannot automatically resolve, because a two-attackers or
// two-defenders condition was latched during the play. An external
// arbiter (not modeled here — spec.md §1 keeps scoring arbitration for
// disputed cases out of this core) consumes it via SuggestionSink.
type Suggestion struct {
	PossibleGoal     bool
	PossibleGoalKick bool
	PossiblePenalty  bool
}

// SuggestionSink receives suggestions and confirmed goals that BallPlay
// cannot fold into a foul triple by itself.
type SuggestionSink interface {
	EmitSuggestion(Suggestion)
	EmitGoal(forTeam types.Color)
}

// BallPlay tracks whether the ball is inside a goal area but not yet in
// the goal mouth, latching TwoAttackers/TwoDefenders along the way so
// that a goal scored during a disputed play becomes a suggestion instead
// of an automatic KICKOFF. Grounded on checker_ballplay.cpp.
type BallPlay struct {
	Base

	blueIsLeftSide func() bool
	twoAttackers   *TwoAttackers
	twoDefenders   *TwoDefenders
	sink           SuggestionSink

	isPlayRunning    bool
	possiblePenalty  bool
	possibleGoalKick bool
	possibleGoal     bool
}

// NewBallPlay constructs the checker. sink may be nil if suggestions and
// out-of-band goal notifications are not needed by the caller (tests
// commonly pass nil and instead assert on the returned Penalty triple).
func NewBallPlay(snapshot *vision.Snapshot, blueIsLeftSide func() bool, twoAttackers *TwoAttackers, twoDefenders *TwoDefenders, sink SuggestionSink) *BallPlay {
	c := &BallPlay{
		Base:           NewBase(PriorityBallPlay, snapshot),
		blueIsLeftSide: blueIsLeftSide,
		twoAttackers:   twoAttackers,
		twoDefenders:   twoDefenders,
		sink:           sink,
	}
	c.Configure()
	return c
}

func (c *BallPlay) Name() string { return "BallPlay" }

func (c *BallPlay) Configure() {
	c.isPlayRunning = false
	c.possiblePenalty = false
	c.possibleGoalKick = false
	c.possibleGoal = false
}

func (c *BallPlay) Run() bool {
	ballPos, ok := c.vision.GetBallPosition()
	if !ok {
		return false
	}
	blueIsLeft := c.blueIsLeftSide()

	inPlay := (utils.IsInsideGoalArea(ballPos, types.ColorBlue, blueIsLeft) && !utils.IsBallInsideGoal(ballPos, types.ColorBlue, blueIsLeft)) ||
		(utils.IsInsideGoalArea(ballPos, types.ColorYellow, blueIsLeft) && !utils.IsBallInsideGoal(ballPos, types.ColorYellow, blueIsLeft))

	if inPlay {
		c.isPlayRunning = true
		if !c.possiblePenalty {
			c.possiblePenalty = c.twoDefenders.IsTwoPlayersDefending()
		}
		if !c.possibleGoalKick {
			c.possibleGoalKick = c.twoAttackers.IsTwoPlayersAttacking()
		}
		return false
	}

	if !c.isPlayRunning {
		c.possiblePenalty = false
		c.possibleGoalKick = false
		c.possibleGoal = false
		return false
	}

	// Play just ended: classify.
	fired := false
	for _, color := range [2]types.Color{types.ColorBlue, types.ColorYellow} {
		if !utils.IsBallInsideGoal(ballPos, color, blueIsLeft) {
			continue
		}
		c.possibleGoal = true

		if !c.possiblePenalty && !c.possibleGoalKick {
			scorer := color.Opponent()
			if c.sink != nil {
				c.sink.EmitGoal(scorer)
			}
			c.setPenalty(types.FoulKickoff, color, types.QuadrantNone)
			fired = true
		}
	}

	if c.possibleGoalKick || c.possiblePenalty {
		if c.sink != nil {
			c.sink.EmitSuggestion(Suggestion{
				PossibleGoal:     c.possibleGoal,
				PossibleGoalKick: c.possibleGoalKick,
				PossiblePenalty:  c.possiblePenalty,
			})
		}
	}

	c.isPlayRunning = false
	return fired
}

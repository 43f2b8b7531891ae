package checker

import (
	"github.com/lguibr/vssref/types"
	"github.com/lguibr/vssref/utils"
	"github.com/lguibr/vssref/vision"
)

// TwoAttackers latches true while some team has at least two robots
// simultaneously inside the opponent's goal area. BallPlay queries this
// with no color argument, the same way the source's isTwoPlayersAttacking
// does, since whichever goal area the ball currently sits in determines
// which color is "opponent" for that tick.
type TwoAttackers struct {
	vision         *vision.Snapshot
	blueIsLeftSide func() bool
}

// NewTwoAttackers builds the attacker-count latch.
func NewTwoAttackers(snapshot *vision.Snapshot, blueIsLeftSide func() bool) *TwoAttackers {
	return &TwoAttackers{vision: snapshot, blueIsLeftSide: blueIsLeftSide}
}

// IsTwoPlayersAttacking reports whether any color currently has two or
// more robots inside its opponent's goal area.
func (t *TwoAttackers) IsTwoPlayersAttacking() bool {
	blueIsLeft := t.blueIsLeftSide()
	return countInArea(t.vision, types.ColorBlue, types.ColorYellow, blueIsLeft) >= 2 ||
		countInArea(t.vision, types.ColorYellow, types.ColorBlue, blueIsLeft) >= 2
}

// TwoDefenders latches true while some team has at least two robots
// simultaneously inside its own goal area.
type TwoDefenders struct {
	vision         *vision.Snapshot
	blueIsLeftSide func() bool
}

// NewTwoDefenders builds the defender-count latch.
func NewTwoDefenders(snapshot *vision.Snapshot, blueIsLeftSide func() bool) *TwoDefenders {
	return &TwoDefenders{vision: snapshot, blueIsLeftSide: blueIsLeftSide}
}

// IsTwoPlayersDefending reports whether any color currently has two or
// more robots inside its own goal area.
func (t *TwoDefenders) IsTwoPlayersDefending() bool {
	blueIsLeft := t.blueIsLeftSide()
	return countInArea(t.vision, types.ColorBlue, types.ColorBlue, blueIsLeft) >= 2 ||
		countInArea(t.vision, types.ColorYellow, types.ColorYellow, blueIsLeft) >= 2
}

// countInArea counts observedColor's robots inside areaOwner's goal
// area.
func countInArea(snapshot *vision.Snapshot, observedColor, areaOwner types.Color, blueIsLeft bool) int {
	count := 0
	for _, id := range snapshot.GetAvailablePlayers(observedColor) {
		pos, ok := snapshot.GetPlayerPosition(observedColor, id)
		if !ok {
			continue
		}
		if utils.IsInsideGoalArea(pos, areaOwner, blueIsLeft) {
			count++
		}
	}
	return count
}

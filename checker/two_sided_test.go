package checker

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lguibr/vssref/types"
	"github.com/lguibr/vssref/vision"
)

func TestTwoDefenders_LatchesAtTwoRobotsInOwnArea(t *testing.T) {
	snap := vision.NewSnapshot()
	def := NewTwoDefenders(snap, blueOnLeft)

	snap.Update(types.Frame{Robots: []types.Robot{
		{ID: 1, Color: types.ColorBlue, Position: types.Position{X: -0.70, Y: 0.1}},
	}})
	assert.False(t, def.IsTwoPlayersDefending())

	snap.Update(types.Frame{Robots: []types.Robot{
		{ID: 1, Color: types.ColorBlue, Position: types.Position{X: -0.70, Y: 0.1}},
		{ID: 2, Color: types.ColorBlue, Position: types.Position{X: -0.70, Y: -0.1}},
	}})
	assert.True(t, def.IsTwoPlayersDefending())
}

func TestTwoAttackers_LatchesAtTwoRobotsInOpponentArea(t *testing.T) {
	snap := vision.NewSnapshot()
	atk := NewTwoAttackers(snap, blueOnLeft)

	snap.Update(types.Frame{Robots: []types.Robot{
		{ID: 1, Color: types.ColorBlue, Position: types.Position{X: 0.70, Y: 0.1}},
		{ID: 2, Color: types.ColorBlue, Position: types.Position{X: 0.70, Y: -0.1}},
	}})
	assert.True(t, atk.IsTwoPlayersAttacking(), "blue robots inside yellow's goal area count as attackers")
}

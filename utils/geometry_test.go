package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lguibr/vssref/types"
)

func TestIsInsideGoalArea_MirrorsAcrossSideSwap(t *testing.T) {
	pos := types.Position{X: -0.70, Y: 0.0}
	assert.True(t, IsInsideGoalArea(pos, types.ColorBlue, true))
	assert.False(t, IsInsideGoalArea(pos, types.ColorBlue, false))
	assert.True(t, IsInsideGoalArea(pos, types.ColorYellow, false))
}

func TestIsBallInsideGoal_RequiresPastTheLine(t *testing.T) {
	inArea := types.Position{X: 0.70, Y: 0.0}
	inMouth := types.Position{X: 0.80, Y: 0.0}
	assert.False(t, IsBallInsideGoal(inArea, types.ColorYellow, true))
	assert.True(t, IsBallInsideGoal(inMouth, types.ColorYellow, true))
}

func TestGetQuadrant_ClassifiesAllFourRegions(t *testing.T) {
	assert.Equal(t, types.QuadrantYellowTop, GetQuadrant(types.Position{X: 0.1, Y: 0.1}))
	assert.Equal(t, types.QuadrantYellowBottom, GetQuadrant(types.Position{X: 0.1, Y: -0.1}))
	assert.Equal(t, types.QuadrantBlueTop, GetQuadrant(types.Position{X: -0.1, Y: 0.1}))
	assert.Equal(t, types.QuadrantBlueBottom, GetQuadrant(types.Position{X: -0.1, Y: -0.1}))
}

func TestQuadrantMark_SignsMatchQuadrant(t *testing.T) {
	mark := QuadrantMark(types.QuadrantYellowTop)
	assert.Equal(t, MarkX(), mark.X)
	assert.Equal(t, MarkY(), mark.Y)

	mirrored := QuadrantMark(types.QuadrantBlueBottom)
	assert.Equal(t, -MarkX(), mirrored.X)
	assert.Equal(t, -MarkY(), mirrored.Y)
}

func TestSideFactor_FlipsWithBlueIsLeftSide(t *testing.T) {
	assert.Equal(t, -1.0, SideFactor(types.ColorBlue, true))
	assert.Equal(t, 1.0, SideFactor(types.ColorBlue, false))
	assert.Equal(t, 1.0, SideFactor(types.ColorYellow, true))
}

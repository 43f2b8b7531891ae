// File: utils/geometry.go
package utils

import (
	"math"

	"github.com/lguibr/vssref/types"
)

// Field dimensions for the 3v3 small field, in meters. These are the
// geometry tables the purpose-and-scope section treats as an external
// collaborator; grounded on the magic numbers replacer.cpp computes goal
// and mark positions from (0.15, 0.375, 0.25, 0.20, 0.40).
const (
	FieldLength = 1.50
	FieldWidth  = 1.30

	GoalWidth = 0.40 // mouth span, centered on y=0
	GoalDepth = 0.10

	GoalAreaWidth = 0.70 // y from -0.35 to 0.35
	GoalAreaDepth = 0.15

	CenterRadius = 0.20
)

// GoalKickX is L in the placement formulas: fieldLength/2 - 0.15.
func GoalKickX() float64 { return FieldLength/2 - 0.15 }

// MarkX is Mx: fieldLength/2 - 0.375.
func MarkX() float64 { return FieldLength/2 - 0.375 }

// MarkY is My: fieldWidth/2 - 0.25.
func MarkY() float64 { return FieldWidth/2 - 0.25 }

// SideFactor returns the f used throughout the placement tables: -1 when
// color's own goal is on the left, else +1.
func SideFactor(color types.Color, blueIsLeftSide bool) float64 {
	colorIsLeft := (color == types.ColorBlue) == blueIsLeftSide
	if colorIsLeft {
		return -1
	}
	return 1
}

// goalAreaXBound is the unsigned x coordinate of the goal line at the
// field edge a team defends; goal areas span from the field edge inward
// by GoalAreaDepth.
func goalAreaXBound() float64 { return FieldLength / 2 }

// IsInsideGoalArea reports whether pos lies within the goal area in front
// of the goal defended by color.
func IsInsideGoalArea(pos types.Position, color types.Color, blueIsLeftSide bool) bool {
	f := SideFactor(color, blueIsLeftSide)
	xBound := goalAreaXBound()
	var inX bool
	if f < 0 {
		inX = pos.X <= -(xBound-GoalAreaDepth) && pos.X >= -xBound
	} else {
		inX = pos.X >= xBound-GoalAreaDepth && pos.X <= xBound
	}
	inY := pos.Y >= -GoalAreaWidth/2 && pos.Y <= GoalAreaWidth/2
	return inX && inY
}

// IsInsideEitherGoalArea reports whether pos is inside blue's or yellow's
// goal area.
func IsInsideEitherGoalArea(pos types.Position, blueIsLeftSide bool) bool {
	return IsInsideGoalArea(pos, types.ColorBlue, blueIsLeftSide) || IsInsideGoalArea(pos, types.ColorYellow, blueIsLeftSide)
}

// IsBallInsideGoal reports whether pos is within the goal mouth defended
// by color: past the field edge, inside the mouth's y-span.
func IsBallInsideGoal(pos types.Position, color types.Color, blueIsLeftSide bool) bool {
	f := SideFactor(color, blueIsLeftSide)
	xBound := goalAreaXBound()
	var pastLine bool
	if f < 0 {
		pastLine = pos.X < -xBound && pos.X >= -(xBound+GoalDepth)
	} else {
		pastLine = pos.X > xBound && pos.X <= xBound+GoalDepth
	}
	inY := pos.Y >= -GoalWidth/2 && pos.Y <= GoalWidth/2
	return pastLine && inY
}

// GetQuadrant classifies pos into one of the four field quadrants.
func GetQuadrant(pos types.Position) types.Quadrant {
	switch {
	case pos.X >= 0 && pos.Y >= 0:
		return types.QuadrantYellowTop
	case pos.X >= 0 && pos.Y < 0:
		return types.QuadrantYellowBottom
	case pos.X < 0 && pos.Y >= 0:
		return types.QuadrantBlueTop
	default:
		return types.QuadrantBlueBottom
	}
}

// QuadrantMark returns (Mx, My) signed for quadrant q: the FREE_BALL mark
// location table in §4.8 ("(±Mx, ±My) per quadrant").
func QuadrantMark(q types.Quadrant) types.Position {
	mx, my := MarkX(), MarkY()
	switch q {
	case types.QuadrantYellowTop:
		return types.Position{X: mx, Y: my}
	case types.QuadrantYellowBottom:
		return types.Position{X: mx, Y: -my}
	case types.QuadrantBlueTop:
		return types.Position{X: -mx, Y: my}
	default:
		return types.Position{X: -mx, Y: -my}
	}
}

// Distance returns the Euclidean distance between two positions.
func Distance(a, b types.Position) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Speed returns the magnitude of a velocity vector.
func Speed(v types.Velocity) float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

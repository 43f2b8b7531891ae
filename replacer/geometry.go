package replacer

import (
	"math/rand"

	"github.com/lguibr/vssref/types"
	"github.com/lguibr/vssref/utils"
)

// goalKickYOffset is the fixed lateral offset (meters) of the ball from
// the field's long axis during a goal kick, before ballRadius is
// subtracted, independent of the goal-area width; grounded on
// replacer.cpp's literal 0.375 in getBallPlaceByFoul.
const goalKickYOffset = 0.375

// BallPositionByFoul computes the ball's placement for foul, mirroring
// the table in §4.8. isGoaliePlacedAtTop only matters for GOAL_KICK.
func BallPositionByFoul(foul types.Foul, color types.Color, quadrant types.Quadrant, blueIsLeftSide bool, ballRadius float64, isGoaliePlacedAtTop bool) types.Position {
	switch foul {
	case types.FoulKickoff:
		return types.Position{X: 0, Y: 0}

	case types.FoulFreeBall:
		return utils.QuadrantMark(quadrant)

	case types.FoulGoalKick:
		f := utils.SideFactor(color, blueIsLeftSide)
		y := goalKickYOffset - ballRadius
		if !isGoaliePlacedAtTop {
			y = -y
		}
		return types.Position{X: f * utils.GoalKickX(), Y: y}

	case types.FoulPenaltyKick, types.FoulFreeKick:
		// Open question (spec.md §9): the source shares this table
		// between PENALTY_KICK and FREE_KICK; preserved as identical.
		f := utils.SideFactor(color, blueIsLeftSide)
		return types.Position{X: -f * utils.MarkX(), Y: 0}

	default:
		return types.Position{X: 0, Y: 0}
	}
}

// playersExcludingGoalie returns color's available ids, in the order
// given, with the goalie id removed.
func playersExcludingGoalie(ids []int, goalieID int) []int {
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if id != goalieID {
			out = append(out, id)
		}
	}
	return out
}

func take(players *[]int) (int, bool) {
	if len(*players) == 0 {
		return 0, false
	}
	id := (*players)[0]
	*players = (*players)[1:]
	return id, true
}

// KickoffPlacement is the default frame for a kickoff: GK on the goal
// line, striker at center radius, support at twice that.
func KickoffPlacement(color types.Color, goalieID int, players []int, blueIsLeftSide bool, robotLength float64) types.Frame {
	f := utils.SideFactor(color, blueIsLeftSide)
	avail := playersExcludingGoalie(players, goalieID)
	var robots []types.Robot

	robots = appendGK(robots, color, goalieID, avail, f*(utils.GoalKickX()+0.15-robotLength), 0, 0)
	if len(avail) == 0 {
		return types.Frame{Robots: robots}
	}
	if id, ok := take(&avail); ok {
		robots = append(robots, types.Robot{ID: id, Color: color, Position: types.Position{X: f * utils.CenterRadius, Y: 0}})
	}
	if id, ok := take(&avail); ok {
		robots = append(robots, types.Robot{ID: id, Color: color, Position: types.Position{X: f * utils.CenterRadius * 2, Y: 0}})
	}
	return types.Frame{Robots: robots}
}

// appendGK appends the goalie robot at (x,y) with the given orientation,
// as long as avail still has players left to draw from (mirroring the
// source's early-return-if-no-players-left guard before every insert).
func appendGK(robots []types.Robot, color types.Color, goalieID int, avail []int, x, y float64, orientation types.Angle) []types.Robot {
	if len(avail) == 0 {
		return robots
	}
	return append(robots, types.Robot{ID: goalieID, Color: color, Position: types.Position{X: x, Y: y}, Angle: orientation})
}

// PenaltyPlacement is the default frame for a penalty kick: a different
// formation for the kicking team than for the defending team.
func PenaltyPlacement(color, foulColor types.Color, goalieID int, players []int, blueIsLeftSide bool, robotLength float64) types.Frame {
	f := utils.SideFactor(color, blueIsLeftSide)
	mx, my := utils.MarkX(), utils.MarkY()
	avail := playersExcludingGoalie(players, goalieID)
	var robots []types.Robot

	if color == foulColor {
		robots = appendGK(robots, color, goalieID, avail, f*(utils.GoalKickX()+0.15-robotLength), 0, 0)
		if len(avail) == 0 {
			return types.Frame{Robots: robots}
		}
		if id, ok := take(&avail); ok {
			robots = append(robots, types.Robot{ID: id, Color: color, Position: types.Position{X: -f * (mx - 2*robotLength), Y: 0}})
		}
		if id, ok := take(&avail); ok {
			robots = append(robots, types.Robot{ID: id, Color: color, Position: types.Position{X: f * 1.5 * robotLength, Y: my}})
		}
	} else {
		robots = appendGK(robots, color, goalieID, avail, f*(utils.GoalKickX()+0.15-robotLength/2), 0, 0)
		if len(avail) == 0 {
			return types.Frame{Robots: robots}
		}
		if id, ok := take(&avail); ok {
			robots = append(robots, types.Robot{ID: id, Color: color, Position: types.Position{X: -f * 1.5 * robotLength, Y: -my}})
		}
		if id, ok := take(&avail); ok {
			robots = append(robots, types.Robot{ID: id, Color: color, Position: types.Position{X: -f * 1.5 * robotLength, Y: my - 2*robotLength}})
		}
	}
	return types.Frame{Robots: robots}
}

// GoalKickPlacement is the default frame for a goal kick. For the
// kicking team it also (re)rolls isGoaliePlacedAtTop using rng.
func GoalKickPlacement(color, foulColor types.Color, goalieID int, players []int, blueIsLeftSide bool, robotLength float64, rng *rand.Rand) (types.Frame, bool) {
	f := utils.SideFactor(color, blueIsLeftSide)
	mx, my := utils.MarkX(), utils.MarkY()
	avail := playersExcludingGoalie(players, goalieID)
	var robots []types.Robot
	isGoaliePlacedAtTop := false

	if color == foulColor {
		isGoaliePlacedAtTop = rng.Intn(2) == 1

		if len(avail) == 0 {
			return types.Frame{Robots: robots}, isGoaliePlacedAtTop
		}
		orientation := types.Angle(f * 45)
		y := -0.270
		if isGoaliePlacedAtTop {
			orientation = types.Angle(f * -45)
			y = 0.270
		}
		robots = append(robots, types.Robot{ID: goalieID, Color: color, Position: types.Position{X: f * 0.675, Y: y}, Angle: orientation})

		if id, ok := take(&avail); ok {
			robots = append(robots, types.Robot{ID: id, Color: color, Position: types.Position{X: f * (mx + robotLength), Y: my - robotLength}})
		}
		if id, ok := take(&avail); ok {
			robots = append(robots, types.Robot{ID: id, Color: color, Position: types.Position{X: f * (mx - robotLength), Y: -my - robotLength}})
		}
	} else {
		robots = appendGK(robots, color, goalieID, avail, f*(utils.GoalKickX()+0.15-robotLength), 0, 0)
		if len(avail) == 0 {
			return types.Frame{Robots: robots}, isGoaliePlacedAtTop
		}
		if id, ok := take(&avail); ok {
			robots = append(robots, types.Robot{ID: id, Color: color, Position: types.Position{X: -f * (mx - 2*robotLength), Y: my - 4*robotLength}})
		}
		if id, ok := take(&avail); ok {
			robots = append(robots, types.Robot{ID: id, Color: color, Position: types.Position{X: -f * (mx - 3*robotLength), Y: -my + robotLength}})
		}
	}
	return types.Frame{Robots: robots}, isGoaliePlacedAtTop
}

// FreeBallPlacement is the default frame for a free ball, which depends
// on which quadrant the foul occurred in as well as which side color
// defends.
func FreeBallPlacement(color types.Color, goalieID int, players []int, quadrant types.Quadrant, blueIsLeftSide bool, robotLength float64) types.Frame {
	f := utils.SideFactor(color, blueIsLeftSide)
	mark := utils.QuadrantMark(quadrant)
	mx, my := mark.X, mark.Y
	teamIsAtLeft := f < 0
	avail := playersExcludingGoalie(players, goalieID)
	var robots []types.Robot

	gkY := 0.0
	if teamIsAtLeft {
		switch quadrant {
		case types.QuadrantBlueTop:
			gkY = robotLength
		case types.QuadrantBlueBottom:
			gkY = -robotLength
		}
	} else {
		switch quadrant {
		case types.QuadrantYellowTop:
			gkY = robotLength
		case types.QuadrantYellowBottom:
			gkY = -robotLength
		}
	}
	robots = appendGK(robots, color, goalieID, avail, f*(utils.GoalKickX()+0.15-robotLength), gkY, 0)
	if len(avail) == 0 {
		return types.Frame{Robots: robots}
	}

	if teamIsAtLeft {
		if id, ok := take(&avail); ok {
			robots = append(robots, types.Robot{ID: id, Color: color, Position: types.Position{X: mx - 0.2, Y: my}})
		}
		if id, ok := take(&avail); ok {
			x, y := freeBallSupportAtLeft(quadrant)
			robots = append(robots, types.Robot{ID: id, Color: color, Position: types.Position{X: x, Y: y}})
		}
	} else {
		if id, ok := take(&avail); ok {
			robots = append(robots, types.Robot{ID: id, Color: color, Position: types.Position{X: mx + 0.2, Y: my}})
		}
		if id, ok := take(&avail); ok {
			x, y := freeBallSupportAtRight(quadrant)
			robots = append(robots, types.Robot{ID: id, Color: color, Position: types.Position{X: x, Y: y}})
		}
	}
	return types.Frame{Robots: robots}
}

func freeBallSupportAtLeft(quadrant types.Quadrant) (float64, float64) {
	switch quadrant {
	case types.QuadrantYellowTop:
		return 0.1, -0.2
	case types.QuadrantBlueTop:
		return -0.3, -0.1
	case types.QuadrantBlueBottom:
		return -0.3, 0.1
	case types.QuadrantYellowBottom:
		return 0.1, 0.2
	default:
		return 0, 0
	}
}

func freeBallSupportAtRight(quadrant types.Quadrant) (float64, float64) {
	switch quadrant {
	case types.QuadrantYellowTop:
		return 0.3, -0.1
	case types.QuadrantBlueTop:
		return -0.1, -0.2
	case types.QuadrantBlueBottom:
		return -0.1, 0.2
	case types.QuadrantYellowBottom:
		return 0.3, 0.1
	default:
		return 0, 0
	}
}

// OutsideFieldPlacement parks all of a team's non-kicking robots off the
// field, at y=-0.8, for kickoff non-actors.
func OutsideFieldPlacement(color types.Color, goalieID int, players []int, blueIsLeftSide bool, robotLength float64) types.Frame {
	f := utils.SideFactor(color, blueIsLeftSide)
	avail := playersExcludingGoalie(players, goalieID)
	var robots []types.Robot

	robots = appendGK(robots, color, goalieID, avail, f*(utils.GoalKickX()+0.15-robotLength), -0.8, 0)
	if len(avail) == 0 {
		return types.Frame{Robots: robots}
	}
	if id, ok := take(&avail); ok {
		robots = append(robots, types.Robot{ID: id, Color: color, Position: types.Position{X: f * utils.CenterRadius, Y: -0.8}})
	}
	if id, ok := take(&avail); ok {
		robots = append(robots, types.Robot{ID: id, Color: color, Position: types.Position{X: f * utils.CenterRadius * 2, Y: -0.8}})
	}
	return types.Frame{Robots: robots}
}

// PenaltyShootoutNonActors parks the two robots on color that are
// neither the keeper nor the selected kicker, at y=-0.8.
func PenaltyShootoutNonActors(color types.Color, lastFrame types.Frame, availablePlayers []int, blueIsLeftSide bool) types.Frame {
	f := utils.SideFactor(color, blueIsLeftSide)

	futureBall := BallPositionByFoul(types.FoulPenaltyKick, color, types.QuadrantNone, blueIsLeftSide, 0, false)

	attackerID := closestToPosition(lastFrame, futureBall)
	keeperID := firstInsideOwnGoalArea(lastFrame, color, blueIsLeftSide)

	avail := make([]int, 0, len(availablePlayers))
	for _, id := range availablePlayers {
		if id == attackerID || id == keeperID {
			continue
		}
		avail = append(avail, id)
	}

	var robots []types.Robot
	if id, ok := take(&avail); ok {
		robots = append(robots, types.Robot{ID: id, Color: color, Position: types.Position{X: f * 0.1, Y: -0.8}})
	}
	if id, ok := take(&avail); ok {
		robots = append(robots, types.Robot{ID: id, Color: color, Position: types.Position{X: f * 0.2, Y: -0.8}})
	}
	return types.Frame{Robots: robots}
}

func closestToPosition(frame types.Frame, target types.Position) int {
	best := -1
	bestDist := 999.0
	for _, r := range frame.Robots {
		d := utils.Distance(r.Position, target)
		if d < bestDist {
			bestDist = d
			best = r.ID
		}
	}
	return best
}

func firstInsideOwnGoalArea(frame types.Frame, color types.Color, blueIsLeftSide bool) int {
	for _, r := range frame.Robots {
		if utils.IsInsideGoalArea(r.Position, color, blueIsLeftSide) {
			return r.ID
		}
	}
	return -1
}

// Package checker implements the stateful predicates the Referee Engine
// runs every tick: each observes the current vision snapshot and, at
// most once per tick, raises a foul by returning true from Run.
package checker

import (
	"github.com/lguibr/vssref/types"
	"github.com/lguibr/vssref/vision"
)

// Checker is the contract every detector implements. Run must never
// panic on bad input: an invalid vision sample degrades to a no-op
// return of false, never an error.
//
// Run returning true means this checker fired this tick; the engine
// then reads Penalty/TeamColor/Quadrant for the triple to broadcast.
// This replaces the source's signal-slot "foul_occurred" emission with
// a direct boolean return, removing the event-queue race between
// checkers that fire in the same tick.
type Checker interface {
	Name() string
	Priority() int
	Configure()
	Run() bool
	Penalty() types.Foul
	TeamColor() types.Color
	Quadrant() types.Quadrant
}

// Base is embedded by every concrete checker: it stores the triple a
// Run implementation sets on firing and exposes the read side of the
// Checker interface, so concrete types only need to implement Name,
// Configure, and Run.
type Base struct {
	vision *vision.Snapshot

	priority int
	penalty  types.Foul
	team     types.Color
	quadrant types.Quadrant
}

// NewBase constructs the shared state every checker embeds.
func NewBase(priority int, snapshot *vision.Snapshot) Base {
	return Base{priority: priority, vision: snapshot}
}

func (b *Base) Priority() int { return b.priority }

func (b *Base) Penalty() types.Foul      { return b.penalty }
func (b *Base) TeamColor() types.Color   { return b.team }
func (b *Base) Quadrant() types.Quadrant { return b.quadrant }

// setPenalty records the triple a firing Run call reports to the engine.
func (b *Base) setPenalty(foul types.Foul, team types.Color, quadrant types.Quadrant) {
	b.penalty = foul
	b.team = team
	b.quadrant = quadrant
}

// Priority buckets, highest first: BallPlay must see the ball before
// StuckedBall has a chance to call a stall on a ball that is actually
// mid-play near a goal area boundary.
const (
	PriorityBallPlay   = 100
	PriorityStuckedBall = 10
)

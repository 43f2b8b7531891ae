// Package display fans referee events out to human-facing viewers. It is
// optional: the referee and replacer packages only ever depend on the Sink
// interface, never on a concrete implementation, so a match can run
// headless by simply passing a nil Sink.
package display

import "github.com/lguibr/vssref/types"

// Sink receives the events a viewer needs to render the match state,
// mirroring the original soccerview widget's three update slots
// (takeFoul, takeTimeStamp, addGoal).
type Sink interface {
	// TakeFoul reports the current foul triple every time the Referee
	// Engine raises or resolves one.
	TakeFoul(foul types.Foul, forTeam types.Color, quadrant types.Quadrant)
	// TakeTimeStamp reports the half's elapsed seconds and which half is
	// in progress, once per tick.
	TakeTimeStamp(elapsedSeconds float64, half types.Half)
	// AddGoal reports a confirmed goal for color.
	AddGoal(color types.Color)
}

// Package wire defines the datagram payloads exchanged with teams and
// the simulator, and the codec used to (de)serialize them. The real
// deployment's wire schema (VSSRef's protobuf messages) is external and
// out of scope; Codec keeps that substitution point open while GobCodec
// gives every component something concrete to run against today.
package wire

import "github.com/lguibr/vssref/types"

// Command is the outbound referee decision, broadcast once per foul
// transition to the referee UDP endpoint.
type Command struct {
	Foul      types.Foul
	Quadrant  types.Quadrant
	Color     types.Color
	TimestampSeconds float64
	Half      types.Half
}

// Placement is what a team proposes for its own robots, received on the
// replacer's multicast endpoint.
type Placement struct {
	Color types.Color
	Frame types.Frame
}

// RobotReplacement is one robot's teleport instruction to the simulator.
type RobotReplacement struct {
	ID          int
	Yellow      bool
	Position    types.Position
	Orientation types.Angle
	Velocity    types.Velocity
	TurnOn      bool
}

// BallReplacement is the ball's teleport instruction to the simulator.
type BallReplacement struct {
	Position types.Position
	Velocity types.Velocity
}

// Replacement is the outbound packet sent to the simulator: some number
// of robots and, optionally, the ball.
type Replacement struct {
	Robots []RobotReplacement
	Ball   *BallReplacement
}

// VisionFrame is the inbound datagram from the vision feed: the ball
// plus every tracked robot, already resolved to field-frame meters.
type VisionFrame struct {
	BallPosition types.Position
	BallVelocity types.Velocity
	Robots       []types.Robot
}

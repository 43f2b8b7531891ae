package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lguibr/vssref/types"
)

func TestGobCodec_CommandRoundTrip(t *testing.T) {
	codec := NewGobCodec()
	want := Command{
		Foul:             types.FoulFreeBall,
		Quadrant:         types.QuadrantYellowTop,
		Color:            types.ColorBlue,
		TimestampSeconds: 12.5,
		Half:             types.HalfSecond,
	}

	data, err := codec.Encode(want)
	assert.NoError(t, err)

	var got Command
	assert.NoError(t, codec.Decode(data, &got))
	assert.Equal(t, want, got)
}

func TestGobCodec_PlacementFrameRoundTrip(t *testing.T) {
	codec := NewGobCodec()
	want := Placement{
		Color: types.ColorYellow,
		Frame: types.Frame{
			BallPosition: types.Position{X: 0.05, Y: -0.2},
			Robots: []types.Robot{
				{ID: 0, Color: types.ColorYellow, Position: types.Position{X: -0.7, Y: 0}, Angle: 1.57},
				{ID: 1, Color: types.ColorYellow, Position: types.Position{X: 0.3, Y: 0.2}, Angle: -0.4},
			},
		},
	}

	data, err := codec.Encode(want)
	assert.NoError(t, err)

	var got Placement
	assert.NoError(t, codec.Decode(data, &got))

	assert.Equal(t, want.Color, got.Color)
	assert.Len(t, got.Frame.Robots, len(want.Frame.Robots))
	for i, robot := range want.Frame.Robots {
		assert.Equal(t, robot.ID, got.Frame.Robots[i].ID)
		assert.Equal(t, robot.Position, got.Frame.Robots[i].Position)
		assert.Equal(t, robot.Angle, got.Frame.Robots[i].Angle)
	}
}

func TestGobCodec_ReplacementRoundTrip(t *testing.T) {
	codec := NewGobCodec()
	want := Replacement{
		Robots: []RobotReplacement{
			{ID: 2, Yellow: true, Position: types.Position{X: 0.1, Y: 0.1}, Orientation: 0.5, TurnOn: true},
		},
		Ball: &BallReplacement{Position: types.Position{X: 0, Y: 0}},
	}

	data, err := codec.Encode(want)
	assert.NoError(t, err)

	var got Replacement
	assert.NoError(t, codec.Decode(data, &got))
	assert.Equal(t, want, got)
}

func TestGobCodec_DecodeRejectsGarbage(t *testing.T) {
	codec := NewGobCodec()
	var got Command
	err := codec.Decode([]byte{0xff, 0x00, 0x01}, &got)
	assert.Error(t, err)
}

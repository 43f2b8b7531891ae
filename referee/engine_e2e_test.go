package referee

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/lguibr/vssref/internal/actorkit"
	"github.com/lguibr/vssref/types"
	"github.com/lguibr/vssref/wire"
)

func listenForCommands(t *testing.T) (*net.UDPAddr, *net.UDPConn) {
	t.Helper()
	conn, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.ParseIP("127.0.0.1"), Port: 0})
	assert.NoError(t, err)
	return conn.LocalAddr().(*net.UDPAddr), conn
}

func readCommand(t *testing.T, conn *net.UDPConn, codec wire.Codec) wire.Command {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	buf := make([]byte, 4096)
	n, err := conn.Read(buf)
	assert.NoError(t, err)
	var cmd wire.Command
	assert.NoError(t, codec.Decode(buf[:n], &cmd))
	return cmd
}

// TestEngine_KickoffAtStartupWalksToGameOn is the "Kickoff at startup"
// scenario: transitionTime and threadFrequency are scaled down from the
// spec's 4s/60Hz so the test does not block on real wall-clock minutes,
// the same way utils.FastMatchConfig scales DefaultConfig down.
func TestEngine_KickoffAtStartupWalksToGameOn(t *testing.T) {
	addr, conn := listenForCommands(t)
	defer conn.Close()

	codec := wire.NewGobCodec()
	cfg := Config{
		ThreadFrequency: 200,
		TransitionTime:  30 * time.Millisecond,
		RefereeAddress:  addr.IP.String(),
		RefereePort:     addr.Port,
		Codec:           codec,
		BlueIsLeftSide:  true,
	}

	engine := actorkit.NewEngine()
	defer engine.Shutdown(2 * time.Second)

	pid := engine.Spawn(actorkit.NewProps(NewEngine(cfg, nil, nil, 300, nil)))
	assert.NotNil(t, pid)

	first := readCommand(t, conn, codec)
	assert.Equal(t, types.FoulKickoff, first.Foul, "boots straight into KICKOFF")

	second := readCommand(t, conn, codec)
	assert.Equal(t, types.FoulStop, second.Foul)
	assert.GreaterOrEqual(t, second.TimestampSeconds, first.TimestampSeconds)

	third := readCommand(t, conn, codec)
	assert.Equal(t, types.FoulGameOn, third.Foul)
	assert.GreaterOrEqual(t, third.TimestampSeconds, second.TimestampSeconds)
}

// TestEngine_HalfTimeSwapsSidesAndRestartsWithKickoff is the "Half-time
// transition" scenario: halfTimeSeconds is scaled down to a few
// milliseconds so the transition is observed without a real five-minute
// wait.
func TestEngine_HalfTimeSwapsSidesAndRestartsWithKickoff(t *testing.T) {
	addr, conn := listenForCommands(t)
	defer conn.Close()

	codec := wire.NewGobCodec()
	swapped := 0
	cfg := Config{
		ThreadFrequency: 200,
		TransitionTime:  500 * time.Millisecond,
		RefereeAddress:  addr.IP.String(),
		RefereePort:     addr.Port,
		Codec:           codec,
		BlueIsLeftSide:  true,
		SwapSides:       func() { swapped++ },
	}

	engine := actorkit.NewEngine()
	defer engine.Shutdown(2 * time.Second)

	pid := engine.Spawn(actorkit.NewProps(NewEngine(cfg, nil, nil, 0.05, nil)))
	assert.NotNil(t, pid)

	first := readCommand(t, conn, codec)
	assert.Equal(t, types.FoulKickoff, first.Foul)
	assert.Equal(t, types.HalfFirst, first.Half)

	// The boot KICKOFF's FoulEmitted->STOP transition never gets to fire
	// before the half timer elapses: transitionTime is deliberately much
	// larger than halfTimeSeconds here, so the next command observed is
	// the half-time KICKOFF, not the boot cycle's STOP.
	second := readCommand(t, conn, codec)
	assert.Equal(t, types.FoulKickoff, second.Foul, "half-time forces an immediate KICKOFF")
	assert.Equal(t, types.HalfSecond, second.Half, "half advanced to SECOND")
	assert.Equal(t, 1, swapped, "SwapSides is invoked exactly once per half-time")
}

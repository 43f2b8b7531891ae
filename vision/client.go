package vision

import (
	"net"

	"github.com/rs/zerolog/log"

	"github.com/lguibr/vssref/internal/actorkit"
	"github.com/lguibr/vssref/types"
	"github.com/lguibr/vssref/wire"
)

// frameReceived is the message a Client's reader goroutine posts to its
// own mailbox for each decoded datagram, keeping the Snapshot's only
// writer on the actor's own goroutine.
type frameReceived struct {
	frame wire.VisionFrame
}

// Client joins the vision multicast feed and keeps a Snapshot current.
// It runs as an actor so its lifecycle (start listening, stop cleanly)
// is driven the same way as every other engine in this process.
type Client struct {
	address  string
	port     int
	codec    wire.Codec
	snapshot *Snapshot
	conn     *net.UDPConn
}

// NewClient constructs a vision Client producer for actorkit.NewProps.
func NewClient(address string, port int, codec wire.Codec, snapshot *Snapshot) actorkit.Producer {
	return func() actorkit.Actor {
		return &Client{address: address, port: port, codec: codec, snapshot: snapshot}
	}
}

func (c *Client) Receive(ctx actorkit.Context) {
	switch msg := ctx.Message().(type) {
	case actorkit.Started:
		c.listen(ctx)
	case frameReceived:
		c.snapshot.Update(toTypesFrame(msg.frame))
	case actorkit.Stopping:
		if c.conn != nil {
			_ = c.conn.Close()
		}
	}
}

func (c *Client) listen(ctx actorkit.Context) {
	addr := &net.UDPAddr{IP: net.ParseIP(c.address), Port: c.port}
	conn, err := net.ListenMulticastUDP("udp", nil, addr)
	if err != nil {
		log.Fatal().Err(err).Str("address", c.address).Int("port", c.port).Msg("vision: multicast join failed")
		return
	}
	_ = conn.SetReadBuffer(1 << 20)
	c.conn = conn

	self := ctx.Self()
	engine := ctx.Engine()

	go func() {
		buf := make([]byte, 4096)
		for {
			n, _, err := conn.ReadFromUDP(buf)
			if err != nil {
				// Closed deliberately on Stopping, or any other read
				// error: either way the reader goroutine exits here and
				// no further datagrams are read from this socket.
				return
			}

			var frame wire.VisionFrame
			if err := c.codec.Decode(buf[:n], &frame); err != nil {
				log.Warn().Err(err).Msg("vision: dropping unparseable datagram")
				continue
			}
			engine.Send(self, frameReceived{frame: frame}, nil)
		}
	}()
}

func toTypesFrame(f wire.VisionFrame) types.Frame {
	return types.Frame{
		BallPosition: f.BallPosition,
		BallVelocity: f.BallVelocity,
		Robots:       f.Robots,
	}
}

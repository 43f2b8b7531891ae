// Package replacer assembles the robot and ball teleport commands sent to
// the simulator after every foul: it either honors a team's own proposed
// formation, received over multicast, or falls back to the placement
// geometry in geometry.go when a team never proposed one.
package replacer

import (
	"math/rand"
	"net"

	"github.com/rs/zerolog/log"

	"github.com/lguibr/vssref/internal/actorkit"
	"github.com/lguibr/vssref/types"
	"github.com/lguibr/vssref/utils"
	"github.com/lguibr/vssref/vision"
	"github.com/lguibr/vssref/wire"
)

// TeamProposal is delivered once a team's own placement datagram has been
// decoded; it is forwarded to the Inbox gated on the current foul cycle.
type TeamProposal struct {
	Color types.Color
	Frame types.Frame
}

// SetFoul starts a new placement cycle: the Referee sends this the
// instant a foul is raised, before any team has had a chance to propose
// a formation for it.
type SetFoul struct {
	Foul     types.Foul
	ForTeam  types.Color
	Quadrant types.Quadrant
}

// Finalize tells the Replacer to stop waiting on proposals and send
// whatever it has, synthesizing a default formation for any color that
// never proposed one. The Referee sends this once its transition timer
// elapses or teamsPlaced has already fired, whichever comes first; it is
// a no-op if this cycle's placement already went out.
type Finalize struct{}

// SetGoalie records which robot defends color's goal. The Referee Engine
// never sends it; until one arrives, each color's goalie id is 0.
type SetGoalie struct {
	Color types.Color
	ID    int
}

type proposalReceived struct {
	placement wire.Placement
}

// Replacer is the actor owning goalie assignments, the current foul's
// placement cycle, and the UDP sockets used to receive team proposals
// and send teleport commands to the simulator.
type Replacer struct {
	multicastAddress string
	multicastPort    int
	simulatorAddress string
	simulatorPort    int
	codec            wire.Codec
	vision           *vision.Snapshot
	blueIsLeftSide   func() bool
	robotLength      float64
	ballRadius       float64
	onTeamsPlaced    func()
	onReplacement    func(wire.Replacement)

	rng       *rand.Rand
	conn      *net.UDPConn
	simConn   *net.UDPConn
	proposals *actorkit.Inbox[types.Color, types.Frame]

	goalies map[types.Color]int

	foul                types.Foul
	forTeam             types.Color
	quadrant            types.Quadrant
	isGoaliePlacedAtTop bool

	lastFrame      types.Frame
	lastFrameValid bool
	placedThisCycle bool
}

// NewReplacer constructs a Replacer producer for actorkit.NewProps.
// onTeamsPlaced is called once both colors have proposed a formation
// within the current cycle, ahead of the Referee's own transition
// timeout; it may be nil.
func NewReplacer(multicastAddress string, multicastPort int, simulatorAddress string, simulatorPort int, codec wire.Codec, snapshot *vision.Snapshot, blueIsLeftSide func() bool, robotLength, ballRadius float64, randomSeed int64, onTeamsPlaced func()) actorkit.Producer {
	return func() actorkit.Actor {
		return &Replacer{
			multicastAddress: multicastAddress,
			multicastPort:    multicastPort,
			simulatorAddress: simulatorAddress,
			simulatorPort:    simulatorPort,
			codec:            codec,
			vision:           snapshot,
			blueIsLeftSide:   blueIsLeftSide,
			robotLength:      robotLength,
			ballRadius:       ballRadius,
			onTeamsPlaced:    onTeamsPlaced,
			rng:              utils.NewPlacementRand(randomSeed),
			proposals:        actorkit.NewInbox[types.Color, types.Frame]([]types.Color{types.ColorBlue, types.ColorYellow}),
			goalies:          map[types.Color]int{types.ColorBlue: 0, types.ColorYellow: 0},
		}
	}
}

func (r *Replacer) Receive(ctx actorkit.Context) {
	switch msg := ctx.Message().(type) {
	case actorkit.Started:
		r.start(ctx)
	case proposalReceived:
		r.handleProposal(msg.placement)
	case TeamProposal:
		r.handleProposal(wire.Placement{Color: msg.Color, Frame: msg.Frame})
	case SetFoul:
		r.handleSetFoul(msg)
	case SetGoalie:
		r.TakeGoalie(msg.Color, msg.ID)
	case Finalize:
		if !r.placedThisCycle {
			r.placeAndSend()
		}
	case actorkit.Stopping:
		if r.conn != nil {
			_ = r.conn.Close()
		}
		if r.simConn != nil {
			_ = r.simConn.Close()
		}
	}
}

func (r *Replacer) start(ctx actorkit.Context) {
	addr := &net.UDPAddr{IP: net.ParseIP(r.multicastAddress), Port: r.multicastPort}
	conn, err := net.ListenMulticastUDP("udp", nil, addr)
	if err != nil {
		log.Fatal().Err(err).Str("address", r.multicastAddress).Int("port", r.multicastPort).Msg("replacer: multicast join failed")
	} else {
		_ = conn.SetReadBuffer(1 << 20)
		r.conn = conn

		self, engine := ctx.Self(), ctx.Engine()
		go func() {
			buf := make([]byte, 4096)
			for {
				n, _, err := conn.ReadFromUDP(buf)
				if err != nil {
					return
				}
				var placement wire.Placement
				if err := r.codec.Decode(buf[:n], &placement); err != nil {
					log.Warn().Err(err).Msg("replacer: dropping unparseable placement")
					continue
				}
				engine.Send(self, proposalReceived{placement: placement}, nil)
			}
		}()
	}

	simAddr := &net.UDPAddr{IP: net.ParseIP(r.simulatorAddress), Port: r.simulatorPort}
	simConn, err := net.DialUDP("udp", nil, simAddr)
	if err != nil {
		log.Error().Err(err).Str("address", r.simulatorAddress).Int("port", r.simulatorPort).Msg("replacer: dialing simulator failed")
		return
	}
	r.simConn = simConn
}

// TakeGoalie records color's goalkeeper id, matching the original
// Replacer's takeGoalie. It runs for every SetGoalie message; the Referee
// Engine sends none.
func (r *Replacer) TakeGoalie(color types.Color, playerID int) {
	r.goalies[color] = playerID
}

// Goalie returns color's current goalkeeper id.
func (r *Replacer) Goalie(color types.Color) int {
	return r.goalies[color]
}

func (r *Replacer) handleSetFoul(msg SetFoul) {
	r.foul = msg.Foul
	r.forTeam = msg.ForTeam
	r.quadrant = msg.Quadrant

	r.Snapshot()

	r.proposals.Reset()
	r.proposals.OpenAll()
	r.placedThisCycle = false

	switch r.foul {
	case types.FoulKickoff, types.FoulPenaltyKick:
		r.placeOutside(r.forTeam.Opponent())
	}
}

func (r *Replacer) handleProposal(placement wire.Placement) {
	if !r.proposals.Put(placement.Color, placement.Frame) {
		return
	}
	if r.proposals.AllSet() {
		if !r.placedThisCycle {
			r.placeAndSend()
		}
		if r.onTeamsPlaced != nil {
			r.onTeamsPlaced()
		}
	}
}

// placeAndSend is placeTeams(): for each color, honor its proposal if
// one arrived this cycle, otherwise synthesize the default formation for
// the current foul, then place the ball and close the cycle out.
func (r *Replacer) placeAndSend() {
	for _, color := range []types.Color{types.ColorBlue, types.ColorYellow} {
		if proposed, ok := r.proposals.Take(color); ok {
			r.sendFrame(color, proposed)
			continue
		}
		if r.foul == types.FoulKickoff && color == r.forTeam.Opponent() {
			// placeOutside already parked this team off the field for
			// the kick; it never proposed a frame of its own, so leave
			// it benched instead of sending a fresh on-field default.
			continue
		}
		r.sendFrame(color, r.defaultPlacement(color))
	}
	r.sendBall()
	r.proposals.CloseAll()
	r.placedThisCycle = true
}

func (r *Replacer) defaultPlacement(color types.Color) types.Frame {
	goalie := r.goalies[color]
	players := r.availablePlayers(color)
	blueLeft := r.blueIsLeftSide()

	switch r.foul {
	case types.FoulKickoff:
		return KickoffPlacement(color, goalie, players, blueLeft, r.robotLength)
	case types.FoulPenaltyKick, types.FoulFreeKick:
		return PenaltyPlacement(color, r.forTeam, goalie, players, blueLeft, r.robotLength)
	case types.FoulGoalKick:
		frame, _ := GoalKickPlacement(color, r.forTeam, goalie, players, blueLeft, r.robotLength, r.rng)
		return frame
	case types.FoulFreeBall:
		return FreeBallPlacement(color, goalie, players, r.quadrant, blueLeft, r.robotLength)
	default:
		return types.Frame{}
	}
}

// placeOutside benches the robots that sit out the current restart:
// every robot of a kickoff's non-kicking team, goalie included, or every
// robot but the shooter and keeper for a penalty shootout.
func (r *Replacer) placeOutside(oppositeTeam types.Color) {
	goalie := r.goalies[oppositeTeam]
	players := r.availablePlayers(oppositeTeam)
	blueLeft := r.blueIsLeftSide()

	switch r.foul {
	case types.FoulKickoff:
		frame := OutsideFieldPlacement(oppositeTeam, goalie, players, blueLeft, r.robotLength)
		r.sendFrame(oppositeTeam, frame)
	case types.FoulPenaltyKick:
		frame := PenaltyShootoutNonActors(oppositeTeam, r.referenceFrame(), players, blueLeft)
		r.sendFrame(oppositeTeam, frame)
	}
}

func (r *Replacer) sendBall() {
	pos := BallPositionByFoul(r.foul, r.forTeam, r.quadrant, r.blueIsLeftSide(), r.ballRadius, r.isGoaliePlacedAtTop)
	r.send(wire.Replacement{Ball: &wire.BallReplacement{Position: pos}})
}

func (r *Replacer) sendFrame(color types.Color, frame types.Frame) {
	if len(frame.Robots) == 0 {
		return
	}
	robots := make([]wire.RobotReplacement, 0, len(frame.Robots))
	for _, robot := range frame.Robots {
		if color == r.forTeam && utils.IsInsideGoalArea(robot.Position, color, r.blueIsLeftSide()) {
			r.isGoaliePlacedAtTop = robot.Position.Y >= 0
		}
		robots = append(robots, wire.RobotReplacement{
			ID:          robot.ID,
			Yellow:      color == types.ColorYellow,
			Position:    robot.Position,
			Orientation: robot.Angle,
			TurnOn:      true,
		})
	}
	r.send(wire.Replacement{Robots: robots})
}

func (r *Replacer) send(replacement wire.Replacement) {
	if r.onReplacement != nil {
		r.onReplacement(replacement)
	}
	if r.simConn == nil {
		return
	}
	data, err := r.codec.Encode(replacement)
	if err != nil {
		log.Error().Err(err).Msg("replacer: encoding replacement failed")
		return
	}
	if _, err := r.simConn.Write(data); err != nil {
		log.Warn().Err(err).Msg("replacer: sending replacement failed")
	}
}

// Snapshot captures the vision feed's current frame so a later blackout
// (the simulator briefly stops reporting robots) still has something to
// place, mirroring saveFrameAndBall/clearLastData's save-before-foul
// discipline.
func (r *Replacer) Snapshot() {
	frame, ok := r.vision.Frame()
	if !ok {
		return
	}
	r.lastFrame = frame
	r.lastFrameValid = true
}

// RestoreLastSnapshot returns the frame captured by the most recent
// Snapshot call, and whether one has ever been taken.
func (r *Replacer) RestoreLastSnapshot() (types.Frame, bool) {
	return r.lastFrame, r.lastFrameValid
}

func (r *Replacer) referenceFrame() types.Frame {
	if frame, ok := r.vision.Frame(); ok && len(frame.Robots) > 0 {
		return frame
	}
	frame, _ := r.RestoreLastSnapshot()
	return frame
}

// availablePlayers falls back to the last known snapshot when the vision
// feed is mid-blackout and currently reports no robots for color.
func (r *Replacer) availablePlayers(color types.Color) []int {
	if ids := r.vision.GetAvailablePlayers(color); len(ids) > 0 {
		return ids
	}
	frame, ok := r.RestoreLastSnapshot()
	if !ok {
		return nil
	}
	robots := frame.RobotsOf(color)
	ids := make([]int, 0, len(robots))
	for _, r := range robots {
		ids = append(ids, r.ID)
	}
	return ids
}

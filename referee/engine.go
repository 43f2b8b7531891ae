// Package referee runs the fixed-frequency tick loop that drives every
// checker, owns the current foul's PenaltyInfo, and walks the
// FoulEmitted -> STOP -> GAME_ON transition FSM between checker firings.
package referee

import (
	"net"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/lguibr/vssref/checker"
	"github.com/lguibr/vssref/display"
	"github.com/lguibr/vssref/internal/actorkit"
	"github.com/lguibr/vssref/replacer"
	"github.com/lguibr/vssref/timer"
	"github.com/lguibr/vssref/types"
	"github.com/lguibr/vssref/wire"
)

type transitionState int

const (
	stateGameOn transitionState = iota
	stateFoulEmitted
	stateStop
)

// TeamsPlaced is sent by the Replacer once both colors have proposed a
// formation for the current foul cycle, letting the engine skip the
// rest of its transition wait.
type TeamsPlaced struct{}

type tick struct{}

// priorityBucket groups every checker registered at a given priority;
// buckets are kept sorted highest-first so Run never needs to re-sort a
// map on the hot path, per the registration-order tie-break rule.
type priorityBucket struct {
	priority int
	checkers []checker.Checker
}

// Engine is the actor that ticks at ThreadFrequency Hz, runs checkers
// while the match is live, and drives the foul transition FSM
// otherwise.
type Engine struct {
	buckets  []priorityBucket
	halfTime *checker.HalfTime

	threadFrequency int
	transitionTime  time.Duration

	refereeAddress string
	refereePort    int
	codec          wire.Codec
	conn           *net.UDPConn

	replacerPID *actorkit.PID

	blueIsLeftSide bool
	swapSides      func()

	displaySink display.Sink

	mu    sync.RWMutex
	state transitionState
	info  types.PenaltyInfo
	half  types.Half

	transitionTimer *timer.Timer
	teamsPlaced     bool

	stopCh chan struct{}
	engine *actorkit.Engine
	self   *actorkit.PID

	nextKickoffTeam types.Color
}

// Config bundles the parameters NewEngine needs beyond the checkers
// themselves, mirroring utils.Config's relevant fields.
type Config struct {
	ThreadFrequency int
	TransitionTime  time.Duration
	RefereeAddress  string
	RefereePort     int
	Codec           wire.Codec
	BlueIsLeftSide  bool
	// SwapSides is called once per half-time transition to flip which
	// side blue defends; typically utils.Config.SwapSides bound to the
	// shared config instance.
	SwapSides func()
	// DisplaySink receives foul/timestamp/goal events for human viewers.
	// May be nil to run headless.
	DisplaySink display.Sink
}

// NewEngine registers checkers into priority buckets (sorted descending,
// built once) and constructs the Engine producer for actorkit.NewProps.
// halfTimeSeconds builds the HalfTime checker internally, since its
// onHalfPassed callback needs to close over the Engine instance the
// producer is about to create. replacerPID is the Replacer actor this
// engine pushes SetFoul/Finalize messages to. buildBallPlay
// follows the same callback-after-allocation pattern as HalfTime: the
// Engine itself implements checker.SuggestionSink (EmitSuggestion/
// EmitGoal), so BallPlay cannot be constructed by the caller ahead of
// time; buildBallPlay receives the not-yet-started Engine as the sink and
// returns the checker to register alongside the rest. May be nil if no
// BallPlay checker is wanted.
func NewEngine(cfg Config, checkers []checker.Checker, buildBallPlay func(sink checker.SuggestionSink) *checker.BallPlay, halfTimeSeconds float64, replacerPID *actorkit.PID) actorkit.Producer {
	return func() actorkit.Actor {
		e := &Engine{
			threadFrequency: cfg.ThreadFrequency,
			transitionTime:  cfg.TransitionTime,
			refereeAddress:  cfg.RefereeAddress,
			refereePort:     cfg.RefereePort,
			codec:           cfg.Codec,
			replacerPID:     replacerPID,
			blueIsLeftSide:  cfg.BlueIsLeftSide,
			swapSides:       cfg.SwapSides,
			displaySink:     cfg.DisplaySink,
			state:           stateGameOn,
			info:            types.PenaltyInfo{Foul: types.FoulGameOn},
			half:            types.HalfNone,
			nextKickoffTeam: types.ColorBlue,
		}

		all := checkers
		if buildBallPlay != nil {
			all = append(append([]checker.Checker{}, checkers...), buildBallPlay(e))
		}
		e.buckets = bucketize(all)
		e.halfTime = checker.NewHalfTime(halfTimeSeconds, e.onHalfTimePassed)
		return e
	}
}

// EmitSuggestion implements checker.SuggestionSink: disputed plays are not
// arbitrated here (spec keeps that external), so the suggestion is only
// logged for an operator to act on.
func (e *Engine) EmitSuggestion(s checker.Suggestion) {
	log.Info().
		Bool("possibleGoal", s.PossibleGoal).
		Bool("possibleGoalKick", s.PossibleGoalKick).
		Bool("possiblePenalty", s.PossiblePenalty).
		Msg("referee: disputed play needs arbitration")
}

// EmitGoal implements checker.SuggestionSink: an automatic (undisputed)
// goal is forwarded to the display sink so viewers see the score change
// independently of the KICKOFF foul that follows it.
func (e *Engine) EmitGoal(forTeam types.Color) {
	if e.displaySink != nil {
		e.displaySink.AddGoal(forTeam)
	}
}

func bucketize(checkers []checker.Checker) []priorityBucket {
	byPriority := make(map[int][]checker.Checker)
	for _, c := range checkers {
		byPriority[c.Priority()] = append(byPriority[c.Priority()], c)
	}
	priorities := make([]int, 0, len(byPriority))
	for p := range byPriority {
		priorities = append(priorities, p)
	}
	for i := 0; i < len(priorities); i++ {
		for j := i + 1; j < len(priorities); j++ {
			if priorities[j] > priorities[i] {
				priorities[i], priorities[j] = priorities[j], priorities[i]
			}
		}
	}
	buckets := make([]priorityBucket, 0, len(priorities))
	for _, p := range priorities {
		buckets = append(buckets, priorityBucket{priority: p, checkers: byPriority[p]})
	}
	return buckets
}

func (e *Engine) Receive(ctx actorkit.Context) {
	switch ctx.Message().(type) {
	case actorkit.Started:
		e.start(ctx)
	case tick:
		e.onTick()
	case TeamsPlaced:
		e.teamsPlaced = true
	case actorkit.Stopping:
		if e.stopCh != nil {
			close(e.stopCh)
		}
		if e.conn != nil {
			_ = e.conn.Close()
		}
	}
}

func (e *Engine) start(ctx actorkit.Context) {
	addr := &net.UDPAddr{IP: net.ParseIP(e.refereeAddress), Port: e.refereePort}
	conn, err := net.DialUDP("udp", nil, addr)
	if err != nil {
		log.Error().Err(err).Str("address", e.refereeAddress).Int("port", e.refereePort).Msg("referee: dialing command endpoint failed")
	} else {
		e.conn = conn
	}

	e.self = ctx.Self()
	e.engine = ctx.Engine()

	e.stopCh = make(chan struct{})
	self, engine := e.self, e.engine
	period := time.Second / time.Duration(e.threadFrequency)

	// Matches the original's initialization() calling halfPassed() once
	// to start the match: advance out of NO_HALF and kick the very first
	// half off immediately, rather than sitting in GAME_ON with no play
	// ever having started.
	e.mu.Lock()
	e.half = e.half.Next()
	e.mu.Unlock()
	e.raiseFoul(types.FoulKickoff, e.nextKickoffTeam, types.QuadrantNone)

	go func() {
		ticker := time.NewTicker(period)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				engine.Send(self, tick{}, nil)
			case <-e.stopCh:
				return
			}
		}
	}()
}

func (e *Engine) onTick() {
	e.halfTime.Run()
	// HalfTime's onHalfPassed callback (wired at construction) calls back
	// into onHalfTimePassed below on this same goroutine.

	e.mu.RLock()
	state := e.state
	half := e.half
	e.mu.RUnlock()

	if e.displaySink != nil {
		e.displaySink.TakeTimeStamp(e.halfTime.ElapsedSeconds(), half)
	}

	if state == stateGameOn {
		e.runCheckers()
		return
	}
	e.advanceTransition()
}

// onHalfTimePassed is the callback bound to the HalfTime checker at
// construction time: advance the half counter and either swap sides and
// force an immediate KICKOFF, or, if the second half has already been
// played out, halt the match rather than regress back to the first half.
func (e *Engine) onHalfTimePassed() {
	e.mu.Lock()
	previous := e.half
	e.half = e.half.Next()
	e.mu.Unlock()

	if previous == types.HalfSecond {
		e.raiseFoul(types.FoulHalt, types.ColorNone, types.QuadrantNone)
		return
	}

	if e.swapSides != nil {
		e.swapSides()
	}
	e.blueIsLeftSide = !e.blueIsLeftSide

	e.raiseFoul(types.FoulKickoff, e.nextKickoffTeam, types.QuadrantNone)
}

func (e *Engine) runCheckers() {
	for _, bucket := range e.buckets {
		for _, c := range bucket.checkers {
			if c.Run() {
				e.raiseFoul(c.Penalty(), c.TeamColor(), c.Quadrant())
				return
			}
		}
	}
}

// raiseFoul is step 2 of §4.6: the winning checker's triple becomes the
// current PenaltyInfo, the command is broadcast, and the transition FSM
// starts.
func (e *Engine) raiseFoul(foul types.Foul, forTeam types.Color, quadrant types.Quadrant) {
	e.mu.Lock()
	e.info = types.PenaltyInfo{Foul: foul, ForTeam: forTeam, Quadrant: quadrant}
	e.state = stateFoulEmitted
	e.mu.Unlock()

	e.teamsPlaced = false
	e.transitionTimer = timer.New()

	e.broadcastCommand()

	if e.replacerPID != nil && e.engine != nil {
		e.engine.Send(e.replacerPID, replacer.SetFoul{Foul: foul, ForTeam: forTeam, Quadrant: quadrant}, e.self)
	}
}

func (e *Engine) advanceTransition() {
	e.mu.RLock()
	state := e.state
	e.mu.RUnlock()

	elapsed := e.transitionTimer.ElapsedSeconds()

	switch state {
	case stateFoulEmitted:
		if elapsed >= e.transitionTime.Seconds() || e.teamsPlaced {
			if e.replacerPID != nil && e.engine != nil {
				e.engine.Send(e.replacerPID, replacer.Finalize{}, e.self)
			}
			e.mu.Lock()
			e.info.Foul = types.FoulStop
			e.state = stateStop
			e.mu.Unlock()
			e.transitionTimer = timer.New()
			e.broadcastCommand()
		}
	case stateStop:
		if elapsed >= e.transitionTime.Seconds() {
			e.mu.Lock()
			e.info.Foul = types.FoulGameOn
			e.state = stateGameOn
			e.mu.Unlock()
			e.broadcastCommand()
			e.resetCheckers()
		}
	}
}

func (e *Engine) resetCheckers() {
	for _, bucket := range e.buckets {
		for _, c := range bucket.checkers {
			c.Configure()
		}
	}
}

func (e *Engine) broadcastCommand() {
	e.mu.RLock()
	info := e.info
	half := e.half
	e.mu.RUnlock()

	if e.displaySink != nil {
		e.displaySink.TakeFoul(info.Foul, info.ForTeam, info.Quadrant)
	}

	cmd := wire.Command{
		Foul:             info.Foul,
		Quadrant:         info.Quadrant,
		Color:            info.ForTeam,
		TimestampSeconds: e.halfTime.ElapsedSeconds(),
		Half:             half,
	}

	if e.conn == nil || e.codec == nil {
		return
	}
	data, err := e.codec.Encode(cmd)
	if err != nil {
		log.Error().Err(err).Msg("referee: encoding command failed")
		return
	}
	if _, err := e.conn.Write(data); err != nil {
		log.Warn().Err(err).Msg("referee: broadcasting command failed")
	}
}

// Snapshot returns a copy of the current PenaltyInfo plus match half,
// mirroring the original's getLastPenaltyInfo(); safe to call from any
// goroutine (the display sink, tests).
func (e *Engine) Snapshot() (types.PenaltyInfo, types.Half) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.info, e.half
}

package actorkit

import (
	"runtime/debug"
	"sync/atomic"

	"github.com/rs/zerolog/log"
)

const defaultMailboxSize = 1024

// process is the running instance of an actor: its state, its mailbox, and
// the goroutine that drains it.
type process struct {
	engine  *Engine
	pid     *PID
	actor   Actor
	mailbox chan *messageEnvelope
	props   *Props
	stopCh  chan struct{}
	stopped atomic.Bool
}

func newProcess(engine *Engine, pid *PID, props *Props) *process {
	return &process{
		engine:  engine,
		pid:     pid,
		props:   props,
		mailbox: make(chan *messageEnvelope, defaultMailboxSize),
		stopCh:  make(chan struct{}),
	}
}

func (p *process) sendMessage(message any, sender *PID) {
	_, isStopping := message.(Stopping)
	_, isStopped := message.(Stopped)
	if p.stopped.Load() && !isStopping && !isStopped {
		return
	}

	envelope := &messageEnvelope{Sender: sender, Message: message}
	select {
	case p.mailbox <- envelope:
	default:
		log.Warn().Str("pid", p.pid.ID).Msg("actor mailbox full, dropping message")
	}
}

func (p *process) run() {
	var stoppingInvoked bool

	defer func() {
		p.stopped.Store(true)
		defer func() {
			if r := recover(); r != nil {
				log.Error().Str("pid", p.pid.ID).Interface("panic", r).Msg("panic during actor shutdown")
			}
			p.engine.remove(p.pid)
		}()
		if p.actor != nil {
			p.invokeReceive(Stopped{}, nil)
		}
	}()

	defer func() {
		if r := recover(); r != nil {
			log.Error().Str("pid", p.pid.ID).Bytes("stack", debug.Stack()).Interface("panic", r).Msg("actor panicked")
			if p.stopped.CompareAndSwap(false, true) {
				closeQuietly(p.stopCh)
				if p.actor != nil && !stoppingInvoked {
					p.invokeReceive(Stopping{}, nil)
					stoppingInvoked = true
				}
			}
		}
	}()

	p.actor = p.props.produce()
	if p.actor == nil {
		panic("actorkit: producer returned a nil actor")
	}
	p.invokeReceive(Started{}, nil)

	for {
		select {
		case <-p.stopCh:
			if p.stopped.CompareAndSwap(false, true) {
				if !stoppingInvoked {
					p.invokeReceive(Stopping{}, nil)
					stoppingInvoked = true
				}
			}
			return

		case envelope, ok := <-p.mailbox:
			if !ok {
				return
			}

			_, isStopping := envelope.Message.(Stopping)
			_, isStoppedMsg := envelope.Message.(Stopped)
			if p.stopped.Load() && !isStopping && !isStoppedMsg {
				continue
			}

			switch msg := envelope.Message.(type) {
			case Stopping:
				if p.stopped.CompareAndSwap(false, true) {
					if !stoppingInvoked {
						p.invokeReceive(msg, envelope.Sender)
						stoppingInvoked = true
					}
					closeQuietly(p.stopCh)
				}
			case Stopped:
				// Stopped is only ever synthesized by this run loop's own
				// shutdown defer; arriving here via the mailbox means a
				// caller sent it directly, which is a programming error we
				// simply ignore rather than double-deliver.
			default:
				p.invokeReceive(envelope.Message, envelope.Sender)
			}
		}
	}
}

func (p *process) invokeReceive(msg any, sender *PID) {
	ctx := &context{engine: p.engine, self: p.pid, sender: sender, message: msg}
	defer func() {
		if r := recover(); r != nil {
			log.Error().Str("pid", p.pid.ID).Interface("panic", r).Msgf("actor panicked in Receive(%T)", msg)
			if p.stopped.CompareAndSwap(false, true) {
				closeQuietly(p.stopCh)
			}
		}
	}()
	p.actor.Receive(ctx)
}

func closeQuietly(ch chan struct{}) {
	select {
	case <-ch:
	default:
		close(ch)
	}
}

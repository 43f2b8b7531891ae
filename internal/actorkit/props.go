package actorkit

// Producer builds a fresh Actor instance; the engine calls it once, inside
// the new actor's own goroutine, right before delivering Started.
type Producer func() Actor

// Props bundles everything the engine needs to spawn an actor.
type Props struct {
	producer Producer
}

// NewProps wraps a Producer for Engine.Spawn.
func NewProps(producer Producer) *Props {
	if producer == nil {
		panic("actorkit: producer cannot be nil")
	}
	return &Props{producer: producer}
}

func (p *Props) produce() Actor { return p.producer() }

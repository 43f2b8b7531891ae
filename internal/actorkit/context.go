package actorkit

// Context gives an actor access to the engine and to the envelope of the
// message currently being processed.
type Context interface {
	Engine() *Engine
	Self() *PID
	Sender() *PID
	Message() any
}

type context struct {
	engine  *Engine
	self    *PID
	sender  *PID
	message any
}

func (c *context) Engine() *Engine { return c.engine }
func (c *context) Self() *PID      { return c.self }
func (c *context) Sender() *PID    { return c.sender }
func (c *context) Message() any    { return c.message }

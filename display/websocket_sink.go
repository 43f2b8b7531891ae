package display

import (
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/net/websocket"

	"github.com/lguibr/vssref/types"
)

// foulEvent, timeEvent and goalEvent are the three JSON payloads pushed to
// viewers, each carrying a MessageType discriminator so a single websocket
// stream can multiplex all three.
type foulEvent struct {
	MessageType string `json:"messageType"`
	Foul        string `json:"foul"`
	ForTeam     string `json:"forTeam"`
	Quadrant    string `json:"quadrant"`
}

type timeEvent struct {
	MessageType    string  `json:"messageType"`
	ElapsedSeconds float64 `json:"elapsedSeconds"`
	Half           string  `json:"half"`
}

type goalEvent struct {
	MessageType string `json:"messageType"`
	Color       string `json:"color"`
	LeftGoals   int    `json:"leftGoals"`
	RightGoals  int    `json:"rightGoals"`
}

// WebSocketSink fans referee events out to every connected viewer over a
// websocket, mirroring BroadcasterActor's client-set-plus-JSON-send shape
// with Server's connection bookkeeping folded in. It is safe for
// concurrent use; Handler is meant to be registered directly on an
// *http.ServeMux.
type WebSocketSink struct {
	mu      sync.RWMutex
	clients map[*websocket.Conn]bool

	blueIsLeftSide func() bool
	leftGoals      int
	rightGoals     int
}

// NewWebSocketSink constructs an empty sink. blueIsLeftSide resolves which
// physical side a goal should be tallied against, matching addGoal's
// left/right bookkeeping.
func NewWebSocketSink(blueIsLeftSide func() bool) *WebSocketSink {
	return &WebSocketSink{
		clients:        make(map[*websocket.Conn]bool),
		blueIsLeftSide: blueIsLeftSide,
	}
}

// Handler returns the websocket.Handler to mount on an HTTP server; every
// accepted connection is tracked until a read on it fails or a send finds
// it closed.
func (s *WebSocketSink) Handler() websocket.Handler {
	return func(ws *websocket.Conn) {
		s.addClient(ws)
		defer s.removeClient(ws)

		// Viewers are receive-only; block on reads purely to detect the
		// connection closing so the handler goroutine can exit.
		buf := make([]byte, 1)
		for {
			if _, err := ws.Read(buf); err != nil {
				return
			}
		}
	}
}

func (s *WebSocketSink) addClient(ws *websocket.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients[ws] = true
	log.Info().Str("remote", ws.RemoteAddr().String()).Int("viewers", len(s.clients)).Msg("display: viewer connected")
}

func (s *WebSocketSink) removeClient(ws *websocket.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clients[ws]; ok {
		delete(s.clients, ws)
		_ = ws.Close()
		log.Info().Str("remote", ws.RemoteAddr().String()).Int("viewers", len(s.clients)).Msg("display: viewer disconnected")
	}
}

// TakeFoul implements Sink.
func (s *WebSocketSink) TakeFoul(foul types.Foul, forTeam types.Color, quadrant types.Quadrant) {
	s.broadcast(foulEvent{
		MessageType: "foul",
		Foul:        foul.String(),
		ForTeam:     forTeam.String(),
		Quadrant:    quadrant.String(),
	})
}

// TakeTimeStamp implements Sink.
func (s *WebSocketSink) TakeTimeStamp(elapsedSeconds float64, half types.Half) {
	s.broadcast(timeEvent{
		MessageType:    "timestamp",
		ElapsedSeconds: elapsedSeconds,
		Half:           half.String(),
	})
}

// AddGoal implements Sink. Goals are tallied by physical side, not team
// color, the way the original's _leftTeamGoals/_rightTeamGoals counters
// worked: a side swap at half-time does not retroactively move a goal
// that already happened on the other side.
func (s *WebSocketSink) AddGoal(color types.Color) {
	blueLeft := true
	if s.blueIsLeftSide != nil {
		blueLeft = s.blueIsLeftSide()
	}

	s.mu.Lock()
	scoredLeft := (color == types.ColorBlue) == blueLeft
	if scoredLeft {
		s.leftGoals++
	} else {
		s.rightGoals++
	}
	left, right := s.leftGoals, s.rightGoals
	s.mu.Unlock()

	s.broadcast(goalEvent{
		MessageType: "goal",
		Color:       color.String(),
		LeftGoals:   left,
		RightGoals:  right,
	})
}

func (s *WebSocketSink) broadcast(payload interface{}) {
	s.mu.RLock()
	clients := make([]*websocket.Conn, 0, len(s.clients))
	for ws := range s.clients {
		clients = append(clients, ws)
	}
	s.mu.RUnlock()

	if len(clients) == 0 {
		return
	}

	var dead []*websocket.Conn
	for _, ws := range clients {
		if err := websocket.JSON.Send(ws, payload); err != nil {
			if isClosedConnErr(err) {
				dead = append(dead, ws)
				continue
			}
			log.Warn().Err(err).Str("remote", ws.RemoteAddr().String()).Msg("display: send failed")
		}
	}
	for _, ws := range dead {
		s.removeClient(ws)
	}
}

func isClosedConnErr(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "use of closed network connection") ||
		strings.Contains(msg, "broken pipe") ||
		strings.Contains(msg, "connection reset by peer") ||
		strings.Contains(msg, "EOF")
}

package display

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/net/websocket"

	"github.com/lguibr/vssref/types"
)

func dialSink(t *testing.T, sink *WebSocketSink) (*websocket.Conn, func()) {
	t.Helper()
	s := httptest.NewServer(sink.Handler())
	wsURL := "ws" + strings.TrimPrefix(s.URL, "http")
	ws, err := websocket.Dial(wsURL, "", s.URL)
	assert.NoError(t, err)
	return ws, func() {
		ws.Close()
		s.Close()
	}
}

func TestWebSocketSink_TakeFoulReachesConnectedViewer(t *testing.T) {
	sink := NewWebSocketSink(func() bool { return true })
	ws, closeAll := dialSink(t, sink)
	defer closeAll()
	waitForViewer(t, sink)

	sink.TakeFoul(types.FoulFreeBall, types.ColorYellow, types.QuadrantBlueTop)

	var got struct {
		MessageType string `json:"messageType"`
		Foul        string `json:"foul"`
		ForTeam     string `json:"forTeam"`
		Quadrant    string `json:"quadrant"`
	}
	ws.SetReadDeadline(time.Now().Add(2 * time.Second))
	assert.NoError(t, websocket.JSON.Receive(ws, &got))
	assert.Equal(t, "foul", got.MessageType)
	assert.Equal(t, "FREE_BALL", got.Foul)
	assert.Equal(t, "yellow", got.ForTeam)
	assert.Equal(t, "blue-top", got.Quadrant)
}

func TestWebSocketSink_AddGoalTalliesBySide(t *testing.T) {
	blueLeft := true
	sink := NewWebSocketSink(func() bool { return blueLeft })

	sink.AddGoal(types.ColorBlue)
	assert.Equal(t, 1, sink.leftGoals)
	assert.Equal(t, 0, sink.rightGoals)

	sink.AddGoal(types.ColorYellow)
	assert.Equal(t, 1, sink.leftGoals)
	assert.Equal(t, 1, sink.rightGoals)

	// A half-time side swap must not move goals already tallied.
	blueLeft = false
	sink.AddGoal(types.ColorBlue)
	assert.Equal(t, 1, sink.leftGoals)
	assert.Equal(t, 2, sink.rightGoals)
}

func TestWebSocketSink_BroadcastWithNoViewersIsNoop(t *testing.T) {
	sink := NewWebSocketSink(nil)
	assert.NotPanics(t, func() {
		sink.TakeTimeStamp(12.5, types.HalfFirst)
	})
}

func waitForViewer(t *testing.T, sink *WebSocketSink) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		sink.mu.RLock()
		n := len(sink.clients)
		sink.mu.RUnlock()
		if n > 0 {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("viewer never registered")
}

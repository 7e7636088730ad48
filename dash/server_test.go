package dash

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"evotune"
)

func TestBroadcastDropsWhenQueueFull(t *testing.T) {
	h := &Hub{broadcast: make(chan Message, 1)} // no run loop draining

	done := make(chan struct{})
	go func() {
		h.Broadcast(MsgTypeStatus, "a")
		h.Broadcast(MsgTypeStatus, "b")
		h.Broadcast(MsgTypeStatus, "c")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Broadcast blocked on a full queue")
	}
	assert.Len(t, h.broadcast, 1)
}

func TestNilHubIsSafe(t *testing.T) {
	var h *Hub
	assert.NotPanics(t, func() {
		h.Broadcast(MsgTypeStatus, "x")
		h.SendGeneration(evotune.GenerationSummary{})
		h.SendBest(evotune.Genome{}, nil)
		h.SendReport(evotune.FinalReport{})
	})
}

func TestSendBestNamesParams(t *testing.T) {
	h := &Hub{broadcast: make(chan Message, 4)}
	bounds := evotune.Bounds{
		{Name: "risk_tolerance", Min: 0, Max: 1},
		{Name: "momentum_weight", Min: 0, Max: 1},
	}
	h.SendBest(evotune.Genome{
		ID:         "gen4_member02",
		Generation: 4,
		Fitness:    87.5,
		Params:     []float64{0.6, 0.3},
	}, bounds)

	msg := <-h.broadcast
	require.Equal(t, MsgTypeBest, msg.Type)
	data, ok := msg.Data.(BestData)
	require.True(t, ok)
	assert.Equal(t, "gen4_member02", data.ID)
	assert.InDelta(t, 0.6, data.Params["risk_tolerance"], 1e-9)
	assert.InDelta(t, 0.3, data.Params["momentum_weight"], 1e-9)
}

func TestWebSocketDeliversBroadcasts(t *testing.T) {
	h := NewHub()
	srv := httptest.NewServer(http.HandlerFunc(h.handleWebSocket))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	// First frame is the connection greeting.
	var greeting Message
	require.NoError(t, conn.ReadJSON(&greeting))
	assert.Equal(t, MsgTypeStatus, greeting.Type)

	h.SendGeneration(evotune.GenerationSummary{Generation: 7, Best: 42.0, BestID: "gen7_member01"})

	var msg Message
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, MsgTypeGeneration, msg.Type)

	payload, ok := msg.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(7), payload["generation"])
	assert.Equal(t, "gen7_member01", payload["best_id"])
}

func TestFindAvailablePort(t *testing.T) {
	port := FindAvailablePort(38000)
	assert.GreaterOrEqual(t, port, 38000)
	assert.Less(t, port, 39000)
}

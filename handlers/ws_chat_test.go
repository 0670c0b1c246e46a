package handlers

import (
	"context"
	"fmt"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moody/moodyserver/analytics"
	"github.com/moody/moodyserver/safety"
)

// wsGenerator is safe to observe from the test goroutine while the
// handler runs in the server goroutine.
type wsGenerator struct {
	reply string
	calls atomic.Int64

	mu      sync.Mutex
	prompts []string
}

func (g *wsGenerator) GenerateContent(_ context.Context, prompt string) (string, error) {
	g.calls.Add(1)
	g.mu.Lock()
	g.prompts = append(g.prompts, prompt)
	g.mu.Unlock()
	return g.reply, nil
}

func (g *wsGenerator) lastPrompt() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.prompts) == 0 {
		return ""
	}
	return g.prompts[len(g.prompts)-1]
}

func wsDial(t *testing.T, generator Generator) (*websocket.Conn, *analytics.Tracker) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	tracker := analytics.NewTracker()
	classifier := safety.NewClassifier(&stubSentiment{score: -0.3}, nil)
	h := NewWSChatHandler(generator, classifier, tracker, nil)

	r := gin.New()
	r.GET("/ws/chat", h.Serve)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/chat"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	var hello wsReply
	require.NoError(t, conn.ReadJSON(&hello))
	require.Equal(t, "connected", hello.Type)
	require.NotEmpty(t, hello.SessionID)
	return conn, tracker
}

func TestWSChatCrisisAnsweredInBand(t *testing.T) {
	gen := &wsGenerator{reply: "should never be used"}
	conn, tracker := wsDial(t, gen)

	require.NoError(t, conn.WriteJSON(wsInbound{Message: "I want to end my life"}))

	var payload safety.CrisisPayload
	require.NoError(t, conn.ReadJSON(&payload))
	assert.True(t, payload.Crisis)
	assert.NotEmpty(t, payload.EmergencyResources.Helplines)
	assert.NotEmpty(t, payload.Message)

	// the session survives a crisis frame
	require.NoError(t, conn.WriteJSON(wsInbound{Message: "thank you, I will call them"}))
	var reply wsReply
	require.NoError(t, conn.ReadJSON(&reply))
	assert.Equal(t, "reply", reply.Type)

	assert.Equal(t, int64(1), gen.calls.Load(), "crisis frame must never reach generation")
	assert.Equal(t, int64(1), tracker.SafetySnapshot().CrisisDetections)
}

func TestWSChatRejectsUnsafeFrame(t *testing.T) {
	gen := &wsGenerator{reply: "unused"}
	conn, tracker := wsDial(t, gen)

	require.NoError(t, conn.WriteJSON(wsInbound{Message: "sending you nsfw links"}))

	var reply wsReply
	require.NoError(t, conn.ReadJSON(&reply))
	assert.Equal(t, "rejected", reply.Type)
	assert.Equal(t, string(safety.RiskHigh), reply.RiskLevel)
	assert.NotEmpty(t, reply.Message)
	assert.Equal(t, int64(1), tracker.SafetySnapshot().SafetyFlags)
}

func TestWSChatGeneratedReply(t *testing.T) {
	gen := &wsGenerator{reply: "That sounds stressful. Want to talk it through?"}
	conn, _ := wsDial(t, gen)

	require.NoError(t, conn.WriteJSON(wsInbound{Message: "exams are around the corner"}))

	var reply wsReply
	require.NoError(t, conn.ReadJSON(&reply))
	assert.Equal(t, "reply", reply.Type)
	assert.Equal(t, gen.reply, reply.Reply)
	assert.False(t, reply.Fallback)
}

func TestWSChatOutputRecheck(t *testing.T) {
	gen := &wsGenerator{reply: "some nsfw nonsense"}
	conn, _ := wsDial(t, gen)

	require.NoError(t, conn.WriteJSON(wsInbound{Message: "tell me something nice"}))

	var reply wsReply
	require.NoError(t, conn.ReadJSON(&reply))
	assert.Equal(t, "reply", reply.Type)
	assert.Equal(t, chatSafeReply, reply.Reply)
}

func TestWSChatFallbackWithoutGenerator(t *testing.T) {
	conn, _ := wsDial(t, nil)

	require.NoError(t, conn.WriteJSON(wsInbound{Message: "feeling sad tonight"}))

	var reply wsReply
	require.NoError(t, conn.ReadJSON(&reply))
	assert.Equal(t, "reply", reply.Type)
	assert.True(t, reply.Fallback)
	assert.Contains(t, reply.Reply, "difficult time")
	assert.NotEmpty(t, reply.Disclaimer)
}

func TestWSChatHistoryBounded(t *testing.T) {
	gen := &wsGenerator{reply: "noted"}
	conn, _ := wsDial(t, gen)

	turns := maxWSHistory/2 + 5
	for i := 0; i < turns; i++ {
		require.NoError(t, conn.WriteJSON(wsInbound{Message: fmt.Sprintf("still thinking about topic %d", i)}))
		var reply wsReply
		require.NoError(t, conn.ReadJSON(&reply))
		require.Equal(t, "reply", reply.Type)
	}

	// the prompt folds at most maxWSHistory history turns, half of them
	// user lines
	userLines := strings.Count(gen.lastPrompt(), "user: ")
	assert.LessOrEqual(t, userLines, maxWSHistory/2)
	assert.Positive(t, userLines)
}

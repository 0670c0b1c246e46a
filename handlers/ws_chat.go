package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/moody/moodyserver/analytics"
	"github.com/moody/moodyserver/llm"
	"github.com/moody/moodyserver/safety"
)

// WSChatHandler serves anonymous chat over a websocket. Each connection
// is one isolated session: every inbound frame goes through the same
// classify → generate → re-check pipeline as the HTTP endpoint, with
// crisis payloads delivered in-band.
type WSChatHandler struct {
	generator      Generator
	classifier     *safety.Classifier
	tracker        *analytics.Tracker
	allowedOrigins map[string]bool
}

func NewWSChatHandler(generator Generator, classifier *safety.Classifier, tracker *analytics.Tracker, allowedOrigins []string) *WSChatHandler {
	origins := make(map[string]bool)
	for _, o := range allowedOrigins {
		origins[o] = true
	}
	return &WSChatHandler{
		generator:      generator,
		classifier:     classifier,
		tracker:        tracker,
		allowedOrigins: origins,
	}
}

func (h *WSChatHandler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true // allow non-browser clients
	}
	return h.allowedOrigins[origin]
}

type wsInbound struct {
	Message string `json:"message"`
}

// maxWSHistory bounds the transcript kept per connection; older turns
// fall off so long sessions neither grow memory nor bloat every prompt.
const maxWSHistory = 20

type wsReply struct {
	Type       string `json:"type"` // "connected", "reply", "rejected"
	SessionID  string `json:"sessionId,omitempty"`
	Reply      string `json:"reply,omitempty"`
	Fallback   bool   `json:"fallback,omitempty"`
	Disclaimer string `json:"disclaimer,omitempty"`
	Message    string `json:"message,omitempty"`
	RiskLevel  string `json:"riskLevel,omitempty"`
}

// Serve upgrades the connection and runs the session loop until the
// client disconnects.
func (h *WSChatHandler) Serve(c *gin.Context) {
	upgrader := websocket.Upgrader{CheckOrigin: h.checkOrigin}
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	sessionID := uuid.New().String()
	if err := conn.WriteJSON(wsReply{Type: "connected", SessionID: sessionID}); err != nil {
		return
	}

	ctx := c.Request.Context()
	var history []llm.Message

	for {
		var in wsInbound
		if err := conn.ReadJSON(&in); err != nil {
			return
		}
		if in.Message == "" {
			continue
		}

		h.tracker.Message()
		verdict := h.classifier.Analyze(ctx, in.Message)

		if verdict.Crisis {
			h.tracker.CrisisDetected()
			if err := conn.WriteJSON(safety.NewCrisisPayload()); err != nil {
				return
			}
			continue
		}
		if verdict.Unsafe {
			h.tracker.SafetyFlag()
			if err := conn.WriteJSON(wsReply{
				Type:      "rejected",
				Message:   "Content appears unsafe or inappropriate.",
				RiskLevel: string(verdict.RiskLevel),
			}); err != nil {
				return
			}
			continue
		}

		reply, fallback := h.respond(c, in.Message, history)
		history = append(history,
			llm.Message{Role: "user", Text: in.Message},
			llm.Message{Role: "assistant", Text: reply},
		)
		if len(history) > maxWSHistory {
			history = history[len(history)-maxWSHistory:]
		}

		out := wsReply{Type: "reply", Reply: reply, Fallback: fallback}
		if fallback {
			out.Disclaimer = safety.FallbackDisclaimer
		}
		if err := conn.WriteJSON(out); err != nil {
			return
		}
	}
}

func (h *WSChatHandler) respond(c *gin.Context, message string, history []llm.Message) (string, bool) {
	if h.generator == nil {
		h.tracker.Fallback()
		return safety.GenerateFallbackResponse(message).Reply, true
	}

	ctx := c.Request.Context()
	reply, err := h.generator.GenerateContent(ctx, llm.BuildEmpathyPrompt(message, history))
	if err != nil {
		log.Printf("ws chat generation failed (input %q): %v", truncate(message, 100), err)
		h.tracker.AIFailure()
		h.tracker.Fallback()
		return safety.GenerateFallbackResponse(message).Reply, true
	}

	if out := h.classifier.Analyze(ctx, reply); out.Unsafe {
		reply = chatSafeReply
	}
	return reply, false
}

package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/moody/moodyserver/analytics"
	"github.com/moody/moodyserver/llm"
	"github.com/moody/moodyserver/safety"
)

// chatSafeReply replaces a generated reply that failed the output
// re-check. Hand-authored, never generated.
const chatSafeReply = "I hear you, and I want to keep this space safe. I can't share my last response, but I'm still here to listen. If you're in danger or thinking of harming yourself, please reach out to a helpline or someone you trust right away."

// ChatHandler serves the anonymous chat endpoint. The crisis gate runs
// before it, so by the time AnonymousChat executes the message is known
// to be neither crisis nor policy-violating.
type ChatHandler struct {
	generator  Generator
	classifier *safety.Classifier
	tracker    *analytics.Tracker
}

func NewChatHandler(generator Generator, classifier *safety.Classifier, tracker *analytics.Tracker) *ChatHandler {
	return &ChatHandler{generator: generator, classifier: classifier, tracker: tracker}
}

type chatRequest struct {
	Message             string        `json:"message" binding:"required"`
	ConversationHistory []llm.Message `json:"conversationHistory"`
}

// AnonymousChat generates an empathetic reply, falling back to canned
// responses when generation is unavailable, and re-checks the output
// before returning it.
func (h *ChatHandler) AnonymousChat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "message is required"})
		return
	}

	if h.generator == nil {
		h.tracker.Fallback()
		c.JSON(http.StatusOK, safety.GenerateFallbackResponse(req.Message))
		return
	}

	prompt := llm.BuildEmpathyPrompt(req.Message, req.ConversationHistory)
	reply, err := h.generator.GenerateContent(c.Request.Context(), prompt)
	if err != nil {
		log.Printf("anonymousChat generation failed (input %q): %v", truncate(req.Message, 100), err)
		h.tracker.AIFailure()
		h.tracker.Fallback()
		c.JSON(http.StatusOK, safety.GenerateFallbackResponse(req.Message))
		return
	}

	// never forward a flagged model output
	if out := h.classifier.Analyze(c.Request.Context(), reply); out.Unsafe {
		reply = chatSafeReply
	}

	c.JSON(http.StatusOK, gin.H{"reply": reply})
}

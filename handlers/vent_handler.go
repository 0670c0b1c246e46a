package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/moody/moodyserver/analytics"
	"github.com/moody/moodyserver/database"
	"github.com/moody/moodyserver/llm"
	"github.com/moody/moodyserver/middleware"
	"github.com/moody/moodyserver/safety"
)

// ventSafeReply replaces a generated vent reply that failed the output
// re-check.
const ventSafeReply = "I hear you. I want to keep things safe, so I will avoid repeating sensitive content. It might help to take a short break, breathe slowly, and hydrate. If you are in danger or thinking of harming yourself, please reach out to local helplines or someone you trust immediately."

// VentHandler serves the private vent space. The crisis gate runs first,
// so only text that passed classification is ever persisted: crisis and
// unsafe vents are halted before storage.
type VentHandler struct {
	generator  Generator
	classifier *safety.Classifier
	tracker    *analytics.Tracker
}

func NewVentHandler(generator Generator, classifier *safety.Classifier, tracker *analytics.Tracker) *VentHandler {
	return &VentHandler{generator: generator, classifier: classifier, tracker: tracker}
}

type ventRequest struct {
	Text string `json:"text" binding:"required"`
}

// CreateVent persists the vent and answers with a supportive reply.
func (h *VentHandler) CreateVent(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized access"})
		return
	}

	var req ventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "text is required"})
		return
	}

	entry, err := database.CreateVent(c.Request.Context(), userID, req.Text)
	if err != nil {
		log.Printf("createVent persist failed for user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create vent entry"})
		return
	}

	// the gate left its verdict behind; use the sentiment for tone
	sentiment := 0.0
	if verdict, ok := middleware.Verdict(c); ok {
		sentiment = verdict.SentimentScore
	}

	if h.generator == nil {
		h.tracker.Fallback()
		fb := safety.GenerateFallbackResponse(req.Text)
		c.JSON(http.StatusCreated, gin.H{"id": entry.ID, "reply": fb.Reply, "fallback": true, "disclaimer": fb.Disclaimer})
		return
	}

	prompt := llm.BuildVentPrompt(req.Text, sentiment)
	reply, err := h.generator.GenerateContent(c.Request.Context(), prompt)
	if err != nil {
		log.Printf("createVent generation failed (input %q): %v", truncate(req.Text, 100), err)
		h.tracker.AIFailure()
		h.tracker.Fallback()
		fb := safety.GenerateFallbackResponse(req.Text)
		c.JSON(http.StatusCreated, gin.H{"id": entry.ID, "reply": fb.Reply, "fallback": true, "disclaimer": fb.Disclaimer})
		return
	}

	if out := h.classifier.Analyze(c.Request.Context(), reply); out.Unsafe {
		reply = ventSafeReply
	}

	c.JSON(http.StatusCreated, gin.H{"id": entry.ID, "reply": reply})
}

// ListVents returns the user's vent entries, newest first.
func (h *VentHandler) ListVents(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized access"})
		return
	}

	entries, err := database.GetVents(c.Request.Context(), userID)
	if err != nil {
		log.Printf("listVents failed for user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch vents"})
		return
	}
	c.JSON(http.StatusOK, entries)
}

package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/moody/moodyserver/analytics"
	"github.com/moody/moodyserver/gcp"
	"github.com/moody/moodyserver/llm"
	"github.com/moody/moodyserver/safety"
)

// LanguageDetector identifies the language of a text. nil disables the
// detection enrichment.
type LanguageDetector interface {
	Detect(ctx context.Context, text string) (gcp.Detection, error)
}

// translatorSafeParentVersion replaces a parent version that failed the
// output re-check.
const translatorSafeParentVersion = "I want to communicate my feelings respectfully, but I need help finding the right words. Can we talk about this?"

// TranslatorHandler serves the Indian parent-child communication bridge.
type TranslatorHandler struct {
	generator  Generator
	classifier *safety.Classifier
	detector   LanguageDetector
	tracker    *analytics.Tracker
}

func NewTranslatorHandler(generator Generator, classifier *safety.Classifier, detector LanguageDetector, tracker *analytics.Tracker) *TranslatorHandler {
	return &TranslatorHandler{generator: generator, classifier: classifier, detector: detector, tracker: tracker}
}

type translateRequest struct {
	Text string `json:"text" binding:"required"`
}

// TranslateToIndianParent rewrites the child's message into three
// versions: authentic child phrasing, parent-appropriate phrasing, and a
// neutral summary.
func (h *TranslatorHandler) TranslateToIndianParent(c *gin.Context) {
	var req translateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "text is required"})
		return
	}

	h.tracker.ParentTranslator()

	emotion, intent := classifyEmotionAndIntent(req.Text)
	culturalContext := getCulturalContext(emotion, intent)

	detectedLanguage, confidence := "en", 0.0
	if h.detector != nil {
		if d, err := h.detector.Detect(c.Request.Context(), req.Text); err == nil {
			detectedLanguage, confidence = d.Language, d.Confidence
		}
	}

	if h.generator == nil {
		h.tracker.Fallback()
		c.JSON(http.StatusOK, h.fallbackPayload(req.Text, emotion, intent, culturalContext, detectedLanguage))
		return
	}

	prompt := llm.BuildTranslatorPrompt(req.Text, emotion, intent, culturalContext)
	response, err := h.generator.GenerateContent(c.Request.Context(), prompt)
	if err != nil {
		log.Printf("translateToIndianParent generation failed (input %q): %v", truncate(req.Text, 100), err)
		h.tracker.AIFailure()
		h.tracker.Fallback()
		c.JSON(http.StatusOK, h.fallbackPayload(req.Text, emotion, intent, culturalContext, detectedLanguage))
		return
	}

	parsed := llm.ParseTranslatorResponse(response)
	if parsed.ChildVersion == "" {
		parsed.ChildVersion = req.Text
	}
	if parsed.ParentVersion == "" {
		parsed.ParentVersion = "I want to share my feelings with you in a respectful way."
	}
	if parsed.NeutralSummary == "" {
		parsed.NeutralSummary = "The child is expressing their feelings and seeking understanding."
	}

	// the parent version is what gets read aloud; never forward it flagged
	if out := h.classifier.Analyze(c.Request.Context(), parsed.ParentVersion); out.Unsafe {
		parsed.ParentVersion = translatorSafeParentVersion
		parsed.NeutralSummary = "The child is seeking help to communicate difficult feelings to their parents."
	}

	c.JSON(http.StatusOK, gin.H{
		"childVersion":     parsed.ChildVersion,
		"parentVersion":    parsed.ParentVersion,
		"neutralSummary":   parsed.NeutralSummary,
		"emotion":          emotion,
		"intent":           intent,
		"culturalContext":  culturalContext,
		"detectedLanguage": detectedLanguage,
		"confidence":       confidence,
		"originalText":     req.Text,
		"disclaimer":       safety.FallbackDisclaimer,
	})
}

func (h *TranslatorHandler) fallbackPayload(text, emotion, intent, culturalContext, detectedLanguage string) gin.H {
	return gin.H{
		"childVersion":     text,
		"parentVersion":    "I want to share my feelings with you in a respectful way, but I need help communicating clearly.",
		"neutralSummary":   "The child is expressing their feelings and seeking understanding.",
		"emotion":          emotion,
		"intent":           intent,
		"culturalContext":  culturalContext,
		"detectedLanguage": detectedLanguage,
		"confidence":       0.3,
		"originalText":     text,
		"fallback":         true,
		"disclaimer":       safety.FallbackDisclaimer,
	}
}

// classifyEmotionAndIntent is a keyword classifier; good enough as the
// prompt-shaping signal and replaceable by a model later.
func classifyEmotionAndIntent(text string) (emotion, intent string) {
	lower := strings.ToLower(text)
	emotion, intent = "neutral", "informational"

	switch {
	case containsAny(lower, "angry", "frustrated", "hate"):
		emotion = "frustration/anger"
	case containsAny(lower, "sad", "depressed", "hopeless"):
		emotion = "sadness/depression"
	case containsAny(lower, "anxious", "worried", "stress"):
		emotion = "anxiety/worry"
	case containsAny(lower, "tired", "exhausted", "burnout"):
		emotion = "exhaustion/burnout"
	case containsAny(lower, "happy", "excited", "great"):
		emotion = "happiness/excitement"
	}

	switch {
	case containsAny(lower, "understand", "help", "support"):
		intent = "seeking_support"
	case containsAny(lower, "pressure", "expectations", "demands"):
		intent = "expressing_pressure"
	case containsAny(lower, "school", "study", "academic"):
		intent = "academic_concern"
	case containsAny(lower, "friend", "social", "relationship"):
		intent = "social_concern"
	}
	return emotion, intent
}

func containsAny(text string, keywords ...string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// culturalContextMap translates the emotion/intent pair into framing for
// Indian parent-teen communication.
var culturalContextMap = map[string]map[string]string{
	"frustration/anger": {
		"academic_concern":    "Academic pressure and parental expectations",
		"seeking_support":     "Need for understanding without judgment",
		"expressing_pressure": "High expectations vs. personal limits",
	},
	"sadness/depression": {
		"academic_concern": "Academic performance affecting self-worth",
		"social_concern":   "Social isolation and peer pressure",
		"seeking_support":  "Need for emotional validation",
	},
	"anxiety/worry": {
		"academic_concern":    "Fear of disappointing parents",
		"expressing_pressure": "Overwhelming academic demands",
		"seeking_support":     "Need for reassurance and guidance",
	},
	"exhaustion/burnout": {
		"academic_concern":    "Academic workload and stress",
		"expressing_pressure": "Multiple responsibilities",
		"seeking_support":     "Need for rest and understanding",
	},
}

func getCulturalContext(emotion, intent string) string {
	if byIntent, ok := culturalContextMap[emotion]; ok {
		if ctx, ok := byIntent[intent]; ok {
			return ctx
		}
	}
	return "General communication challenge"
}

package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/moody/moodyserver/analytics"
	"github.com/moody/moodyserver/gcp"
)

// Translator plugs in the translation provider; nil disables the
// language endpoints at runtime.
type Translator interface {
	Detect(ctx context.Context, text string) (gcp.Detection, error)
	Translate(ctx context.Context, text, source, target string) (string, error)
}

// LanguageHandler serves language detection and hi/en translation.
type LanguageHandler struct {
	translator Translator
	tracker    *analytics.Tracker
}

func NewLanguageHandler(translator Translator, tracker *analytics.Tracker) *LanguageHandler {
	return &LanguageHandler{translator: translator, tracker: tracker}
}

type textRequest struct {
	Text string `json:"text" binding:"required"`
}

// DetectLanguage identifies the language of the text.
func (h *LanguageHandler) DetectLanguage(c *gin.Context) {
	var req textRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "text is required"})
		return
	}
	if h.translator == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "Translation service is not configured"})
		return
	}

	detection, err := h.translator.Detect(c.Request.Context(), req.Text)
	if err != nil {
		log.Printf("language detection failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to detect language"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"language":   detection.Language,
		"confidence": detection.Confidence,
		"isHindi":    detection.Language == "hi",
		"isEnglish":  detection.Language == "en",
		"supported":  detection.Language == "hi" || detection.Language == "en",
	})
}

// TranslateToHindi translates English text to Hindi.
func (h *LanguageHandler) TranslateToHindi(c *gin.Context) {
	h.translate(c, "en", "hi")
}

// TranslateToEnglish translates Hindi text to English.
func (h *LanguageHandler) TranslateToEnglish(c *gin.Context) {
	h.translate(c, "hi", "en")
}

func (h *LanguageHandler) translate(c *gin.Context, source, target string) {
	var req textRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "text is required"})
		return
	}
	if h.translator == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "Translation service is not configured"})
		return
	}

	translated, err := h.translator.Translate(c.Request.Context(), req.Text, source, target)
	if err != nil {
		log.Printf("translation %s->%s failed: %v", source, target, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to translate text"})
		return
	}

	h.tracker.Translation(target)
	c.JSON(http.StatusOK, gin.H{
		"originalText":   req.Text,
		"translatedText": translated,
		"sourceLanguage": source,
		"targetLanguage": target,
	})
}

// GetBilingualPrompts returns the static English/Hindi prompt catalog
// used by the UI for quick starts.
func (h *LanguageHandler) GetBilingualPrompts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"emotions": gin.H{
			"sadness/depression": gin.H{
				"en": "I'm feeling really down and need support",
				"hi": "मैं बहुत उदास हूँ और मुझे सहारे की जरूरत है",
			},
			"anxiety/worry": gin.H{
				"en": "I'm worried about my future and need guidance",
				"hi": "मैं अपने भविष्य को लेकर चिंतित हूँ और मार्गदर्शन चाहता हूँ",
			},
			"academic_pressure": gin.H{
				"en": "The academic pressure is overwhelming me",
				"hi": "शैक्षणिक दबाव मुझे अभिभूत कर रहा है",
			},
			"family_expectations": gin.H{
				"en": "My family's expectations are too much for me to handle",
				"hi": "मेरे परिवार की अपेक्षाएं मेरे लिए बहुत ज्यादा हैं",
			},
		},
		"contexts": gin.H{
			"academic": gin.H{
				"en": "Academic performance and career concerns",
				"hi": "शैक्षणिक प्रदर्शन और करियर की चिंताएं",
			},
			"family": gin.H{
				"en": "Family relationships and expectations",
				"hi": "पारिवारिक रिश्ते और अपेक्षाएं",
			},
			"social": gin.H{
				"en": "Social relationships and peer pressure",
				"hi": "सामाजिक रिश्ते और साथियों का दबाव",
			},
		},
	})
}

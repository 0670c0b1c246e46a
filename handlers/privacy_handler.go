package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/moody/moodyserver/database"
	"github.com/moody/moodyserver/middleware"
)

// PrivacyHandler serves the privacy-compliance surface: policy text,
// data export and erasure, and consent management.
type PrivacyHandler struct{}

func NewPrivacyHandler() *PrivacyHandler { return &PrivacyHandler{} }

// GetPolicy returns the current privacy policy.
func (h *PrivacyHandler) GetPolicy(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"version":     "1.0",
		"lastUpdated": time.Now().UTC().Format(time.RFC3339),
		"dataCollection": gin.H{
			"whatWeCollect": []string{
				"Chat messages (anonymized)",
				"Mood entries (anonymized)",
				"Usage analytics (anonymized)",
				"Technical logs (anonymized)",
			},
			"whatWeDontCollect": []string{
				"Personal identification information",
				"Location data",
				"Contact information",
				"Financial information",
			},
		},
		"dataUsage": gin.H{
			"purposes": []string{
				"Provide AI-powered emotional support",
				"Improve service quality",
				"Ensure user safety",
				"Generate anonymous analytics",
			},
			"aiProcessing": gin.H{
				"description":        "Your messages are processed by Google Cloud AI services for emotional analysis and response generation",
				"dataRetention":      "Messages are anonymized and stored for 30 days maximum",
				"thirdPartyServices": "Google Cloud Natural Language API, Gemini AI",
			},
		},
		"userRights": gin.H{
			"access":      "You can request a copy of your data",
			"deletion":    "You can request deletion of your data",
			"correction":  "You can request correction of your data",
			"portability": "You can export your data in a portable format",
		},
		"crisisData": gin.H{
			"specialHandling": "Crisis-related data is handled with extra care",
			"retention":       "Crisis logs are retained for 7 years for legal compliance",
			"access":          "Crisis data may be shared with emergency services if required by law",
		},
		"contact": gin.H{
			"email":        "privacy@moody.app",
			"responseTime": "We respond to privacy requests within 30 days",
		},
	})
}

// GetProcessingInfo returns the transparency summary of what processing
// happens where.
func (h *PrivacyHandler) GetProcessingInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"safetyClassification": "Every free-text message is checked locally for crisis and policy patterns before any external call",
		"sentimentAnalysis":    "Google Cloud Natural Language, text only, no identifiers attached",
		"generation":           "Google Gemini, prompt built server-side, responses re-checked before delivery",
		"piiScreening":         "Indian PAN, Aadhaar, phone and email patterns are detected and masked before logging",
		"retention": gin.H{
			"chatMessages": "30 days",
			"moodEntries":  "365 days",
			"crisisLogs":   "7 years (legal compliance)",
		},
	})
}

// GetUserData exports everything stored for the authenticated user.
func (h *PrivacyHandler) GetUserData(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized access"})
		return
	}
	ctx := c.Request.Context()

	user, err := database.GetUserByID(ctx, userID)
	if err != nil {
		log.Printf("data export failed for user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to export user data"})
		return
	}
	moods, err := database.GetMoods(ctx, userID)
	if err != nil {
		log.Printf("data export failed for user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to export user data"})
		return
	}
	vents, err := database.GetVents(ctx, userID)
	if err != nil {
		log.Printf("data export failed for user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to export user data"})
		return
	}
	consents, err := database.GetConsents(ctx, userID)
	if err != nil {
		log.Printf("data export failed for user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to export user data"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"profile":     user,
		"moodEntries": moods,
		"ventEntries": vents,
		"consents":    consents,
		"exportDate":  time.Now().UTC().Format(time.RFC3339),
	})
}

// DeleteUserData erases the user and everything keyed by them.
func (h *PrivacyHandler) DeleteUserData(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized access"})
		return
	}

	if err := database.DeleteUserData(c.Request.Context(), userID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		log.Printf("data deletion failed for user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete user data"})
		return
	}

	log.Printf("deleted all data for user %s", userID)
	c.JSON(http.StatusOK, gin.H{"success": true, "deletedAt": time.Now().UTC().Format(time.RFC3339)})
}

type consentRequest struct {
	ConsentType string `json:"consentType" binding:"required"`
}

// GiveConsent records a granted consent.
func (h *PrivacyHandler) GiveConsent(c *gin.Context) {
	h.recordConsent(c, true)
}

// WithdrawConsent records a withdrawn consent.
func (h *PrivacyHandler) WithdrawConsent(c *gin.Context) {
	h.recordConsent(c, false)
}

func (h *PrivacyHandler) recordConsent(c *gin.Context, granted bool) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized access"})
		return
	}

	var req consentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "consentType is required"})
		return
	}

	consent, err := database.RecordConsent(c.Request.Context(), userID, req.ConsentType, granted)
	if err != nil {
		log.Printf("consent recording failed for user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to record consent"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Consent recorded successfully", "consent": consent})
}

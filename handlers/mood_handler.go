package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/moody/moodyserver/database"
	"github.com/moody/moodyserver/middleware"
	"github.com/moody/moodyserver/models"
)

// MoodHandler serves the mood journal CRUD endpoints.
type MoodHandler struct{}

func NewMoodHandler() *MoodHandler { return &MoodHandler{} }

type moodRequest struct {
	Mood string `json:"mood" binding:"required"`
	Note string `json:"note"`
}

// CreateMood records one journal entry.
func (h *MoodHandler) CreateMood(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized access"})
		return
	}

	var req moodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "mood is required"})
		return
	}
	if !models.ValidMoods[req.Mood] {
		c.JSON(http.StatusBadRequest, gin.H{"message": "unknown mood"})
		return
	}

	entry, err := database.CreateMood(c.Request.Context(), userID, req.Mood, req.Note)
	if err != nil {
		log.Printf("createMood failed for user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create mood entry"})
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// GetMoods returns the user's entries, newest first.
func (h *MoodHandler) GetMoods(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized access"})
		return
	}

	moods, err := database.GetMoods(c.Request.Context(), userID)
	if err != nil {
		log.Printf("getMoods failed for user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch moods"})
		return
	}
	c.JSON(http.StatusOK, moods)
}

// DeleteMood removes one entry owned by the user.
func (h *MoodHandler) DeleteMood(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized access"})
		return
	}

	entryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid entry id"})
		return
	}

	if err := database.DeleteMood(c.Request.Context(), userID, entryID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Mood entry not found"})
			return
		}
		log.Printf("deleteMood failed for user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete mood entry"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Mood deleted"})
}

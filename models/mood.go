package models

import (
	"time"

	"github.com/google/uuid"
)

// Moods accepted by the journal.
var ValidMoods = map[string]bool{
	"happy": true, "sad": true, "angry": true, "anxious": true,
	"tired": true, "calm": true, "excited": true, "neutral": true,
}

// MoodEntry is one mood journal record.
type MoodEntry struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	Mood      string    `json:"mood"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// VentEntry is one private vent-space record. Only text that passed the
// safety gate is ever persisted here.
type VentEntry struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered app user.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Consent is one recorded data-processing consent decision.
type Consent struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"userId"`
	ConsentType string    `json:"consentType"`
	Granted     bool      `json:"granted"`
	CreatedAt   time.Time `json:"createdAt"`
}

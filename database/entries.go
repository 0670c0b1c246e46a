package database

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/moody/moodyserver/models"
)

// CreateMood inserts a mood journal entry.
func CreateMood(ctx context.Context, userID uuid.UUID, mood, note string) (*models.MoodEntry, error) {
	entry := &models.MoodEntry{
		ID:        uuid.New(),
		UserID:    userID,
		Mood:      mood,
		Note:      note,
		CreatedAt: time.Now(),
	}
	_, err := DB.ExecContext(ctx,
		"INSERT INTO mood_entries(id,user_id,mood,note,created_at) VALUES($1,$2,$3,$4,$5)",
		entry.ID, entry.UserID, entry.Mood, entry.Note, entry.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// GetMoods returns the user's mood entries, newest first.
func GetMoods(ctx context.Context, userID uuid.UUID) ([]models.MoodEntry, error) {
	rows, err := DB.QueryContext(ctx,
		"SELECT id,user_id,mood,note,created_at FROM mood_entries WHERE user_id=$1 ORDER BY created_at DESC",
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []models.MoodEntry{}
	for rows.Next() {
		var e models.MoodEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Mood, &e.Note, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// DeleteMood removes a mood entry owned by the user.
func DeleteMood(ctx context.Context, userID, entryID uuid.UUID) error {
	res, err := DB.ExecContext(ctx,
		"DELETE FROM mood_entries WHERE id=$1 AND user_id=$2",
		entryID, userID,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateVent inserts a vent entry. Callers run the safety gate first;
// crisis or unsafe text never reaches this function.
func CreateVent(ctx context.Context, userID uuid.UUID, text string) (*models.VentEntry, error) {
	entry := &models.VentEntry{
		ID:        uuid.New(),
		UserID:    userID,
		Text:      text,
		CreatedAt: time.Now(),
	}
	_, err := DB.ExecContext(ctx,
		"INSERT INTO vent_entries(id,user_id,text,created_at) VALUES($1,$2,$3,$4)",
		entry.ID, entry.UserID, entry.Text, entry.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// GetVents returns the user's vent entries, newest first.
func GetVents(ctx context.Context, userID uuid.UUID) ([]models.VentEntry, error) {
	rows, err := DB.QueryContext(ctx,
		"SELECT id,user_id,text,created_at FROM vent_entries WHERE user_id=$1 ORDER BY created_at DESC",
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []models.VentEntry{}
	for rows.Next() {
		var e models.VentEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Text, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// RecordConsent stores one consent decision.
func RecordConsent(ctx context.Context, userID uuid.UUID, consentType string, granted bool) (*models.Consent, error) {
	consent := &models.Consent{
		ID:          uuid.New(),
		UserID:      userID,
		ConsentType: consentType,
		Granted:     granted,
		CreatedAt:   time.Now(),
	}
	_, err := DB.ExecContext(ctx,
		"INSERT INTO consents(id,user_id,consent_type,granted,created_at) VALUES($1,$2,$3,$4,$5)",
		consent.ID, consent.UserID, consent.ConsentType, consent.Granted, consent.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return consent, nil
}

// GetConsents returns the user's consent history, newest first.
func GetConsents(ctx context.Context, userID uuid.UUID) ([]models.Consent, error) {
	rows, err := DB.QueryContext(ctx,
		"SELECT id,user_id,consent_type,granted,created_at FROM consents WHERE user_id=$1 ORDER BY created_at DESC",
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	consents := []models.Consent{}
	for rows.Next() {
		var c models.Consent
		if err := rows.Scan(&c.ID, &c.UserID, &c.ConsentType, &c.Granted, &c.CreatedAt); err != nil {
			return nil, err
		}
		consents = append(consents, c)
	}
	return consents, rows.Err()
}

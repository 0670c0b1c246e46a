package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moody/moodyserver/analytics"
	"github.com/moody/moodyserver/database"
	"github.com/moody/moodyserver/middleware"
	"github.com/moody/moodyserver/safety"
)

func ventRouter(t *testing.T, generator Generator, userID uuid.UUID) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	database.DB = db
	t.Cleanup(func() { db.Close() })

	gin.SetMode(gin.TestMode)
	classifier := safety.NewClassifier(&stubSentiment{score: -0.4}, nil)
	h := NewVentHandler(generator, classifier, analytics.NewTracker())

	r := gin.New()
	asUser := func(c *gin.Context) { c.Set(middleware.ContextUserID, userID) }
	r.POST("/api/vent", asUser, middleware.CrisisGate(classifier, analytics.NewTracker(), false), h.CreateVent)
	r.GET("/api/vent", asUser, h.ListVents)
	return r, mock
}

func postVent(r *gin.Engine, text string) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(gin.H{"text": text})
	req := httptest.NewRequest(http.MethodPost, "/api/vent", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateVentPersistsAndReplies(t *testing.T) {
	userID := uuid.New()
	gen := &stubGenerator{reply: "That sounds heavy. Thank you for trusting this space with it."}
	r, mock := ventRouter(t, gen, userID)

	mock.ExpectExec("INSERT INTO vent_entries").
		WithArgs(sqlmock.AnyArg(), userID, "today was rough and I feel sad", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	w := postVent(r, "today was rough and I feel sad")

	require.Equal(t, http.StatusCreated, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, gen.reply, body["reply"])
	assert.NotEmpty(t, body["id"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateVentCrisisNeverPersisted(t *testing.T) {
	// no ExpectExec: a crisis vent must be halted before any INSERT
	gen := &stubGenerator{}
	r, mock := ventRouter(t, gen, uuid.New())

	w := postVent(r, "I just want to end my life")

	require.Equal(t, http.StatusOK, w.Code)
	var payload safety.CrisisPayload
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.True(t, payload.Crisis)
	assert.Zero(t, gen.calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateVentGenerationFailureStillPersists(t *testing.T) {
	userID := uuid.New()
	r, mock := ventRouter(t, &stubGenerator{err: errors.New("timeout")}, userID)

	mock.ExpectExec("INSERT INTO vent_entries").
		WithArgs(sqlmock.AnyArg(), userID, "feeling really down tonight", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	w := postVent(r, "feeling really down tonight")

	require.Equal(t, http.StatusCreated, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["fallback"])
	assert.Contains(t, body["reply"], "difficult time")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateVentOutputRecheck(t *testing.T) {
	userID := uuid.New()
	gen := &stubGenerator{reply: "some nsfw nonsense"}
	r, mock := ventRouter(t, gen, userID)

	mock.ExpectExec("INSERT INTO vent_entries").
		WithArgs(sqlmock.AnyArg(), userID, "rough day", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	w := postVent(r, "rough day")

	require.Equal(t, http.StatusCreated, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, ventSafeReply, body["reply"])
}

func TestListVents(t *testing.T) {
	userID := uuid.New()
	r, mock := ventRouter(t, &stubGenerator{}, userID)

	mock.ExpectQuery("SELECT id,user_id,text,created_at FROM vent_entries").
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "text", "created_at"}).
			AddRow(uuid.New(), userID, "yesterday", time.Now()))

	req := httptest.NewRequest(http.MethodGet, "/api/vent", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var entries []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "yesterday", entries[0]["text"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

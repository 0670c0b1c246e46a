package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moody/moodyserver/analytics"
	"github.com/moody/moodyserver/gcp"
	"github.com/moody/moodyserver/safety"
)

type stubDetector struct {
	detection gcp.Detection
	err       error
}

func (d *stubDetector) Detect(_ context.Context, _ string) (gcp.Detection, error) {
	return d.detection, d.err
}

func translatorRouter(generator Generator, detector LanguageDetector, tracker *analytics.Tracker) *gin.Engine {
	gin.SetMode(gin.TestMode)
	classifier := safety.NewClassifier(&stubSentiment{score: -0.2}, nil)
	h := NewTranslatorHandler(generator, classifier, detector, tracker)

	r := gin.New()
	r.POST("/api/translator/indian-parent", h.TranslateToIndianParent)
	return r
}

func postTranslate(r *gin.Engine, text string) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(gin.H{"text": text})
	req := httptest.NewRequest(http.MethodPost, "/api/translator/indian-parent", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestTranslateToIndianParent(t *testing.T) {
	gen := &stubGenerator{reply: "CHILD VERSION: I feel crushed by the workload.\nPARENT VERSION: I am finding my studies very demanding and would value your guidance.\nNEUTRAL SUMMARY: The child feels overloaded by academics and wants support."}
	detector := &stubDetector{detection: gcp.Detection{Language: "hi", Confidence: 0.92}}
	tracker := analytics.NewTracker()
	r := translatorRouter(gen, detector, tracker)

	w := postTranslate(r, "I am so stressed about school, they keep piling on pressure")

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	assert.Equal(t, "I feel crushed by the workload.", body["childVersion"])
	assert.Equal(t, "I am finding my studies very demanding and would value your guidance.", body["parentVersion"])
	assert.Equal(t, "The child feels overloaded by academics and wants support.", body["neutralSummary"])
	assert.Equal(t, "anxiety/worry", body["emotion"])
	assert.Equal(t, "expressing_pressure", body["intent"])
	assert.Equal(t, "Overwhelming academic demands", body["culturalContext"])
	assert.Equal(t, "hi", body["detectedLanguage"])
	assert.InDelta(t, 0.92, body["confidence"].(float64), 1e-9)
	assert.Equal(t, int64(1), tracker.Snapshot().Cultural.ParentTranslatorUsage)
}

func TestTranslateFillsMissingSections(t *testing.T) {
	// model ignored the format; every section falls back to a default
	gen := &stubGenerator{reply: "Here is some helpful advice instead."}
	r := translatorRouter(gen, nil, analytics.NewTracker())

	w := postTranslate(r, "I am fine")

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "I am fine", body["childVersion"])
	assert.NotEmpty(t, body["parentVersion"])
	assert.NotEmpty(t, body["neutralSummary"])
}

func TestTranslateGenerationFailureFallsBack(t *testing.T) {
	gen := &stubGenerator{err: errors.New("deadline exceeded")}
	tracker := analytics.NewTracker()
	r := translatorRouter(gen, nil, tracker)

	w := postTranslate(r, "my parents are frustrated with me and I need help")

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["fallback"])
	assert.Equal(t, "frustration/anger", body["emotion"])
	assert.Equal(t, "seeking_support", body["intent"])
	assert.Equal(t, "Need for understanding without judgment", body["culturalContext"])
	assert.InDelta(t, 0.3, body["confidence"].(float64), 1e-9)
	assert.Equal(t, int64(1), tracker.TechnicalSnapshot().AIServiceFailures)
}

func TestTranslateParentVersionRecheck(t *testing.T) {
	gen := &stubGenerator{reply: "CHILD VERSION: fine.\nPARENT VERSION: i hate you and everything you stand for\nNEUTRAL SUMMARY: fine."}
	r := translatorRouter(gen, nil, analytics.NewTracker())

	w := postTranslate(r, "help me talk to my parents")

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, translatorSafeParentVersion, body["parentVersion"])
}

func TestClassifyEmotionAndIntent(t *testing.T) {
	cases := []struct {
		text    string
		emotion string
		intent  string
	}{
		{"I am so angry at everything", "frustration/anger", "informational"},
		{"feeling hopeless about school", "sadness/depression", "academic_concern"},
		{"worried my friends will leave", "anxiety/worry", "social_concern"},
		{"totally exhausted from the pressure", "exhaustion/burnout", "expressing_pressure"},
		{"what time is dinner", "neutral", "informational"},
	}
	for _, tc := range cases {
		emotion, intent := classifyEmotionAndIntent(tc.text)
		assert.Equal(t, tc.emotion, emotion, tc.text)
		assert.Equal(t, tc.intent, intent, tc.text)
	}
}

func TestGetCulturalContextDefault(t *testing.T) {
	assert.Equal(t, "General communication challenge", getCulturalContext("neutral", "informational"))
	assert.Equal(t, "Fear of disappointing parents", getCulturalContext("anxiety/worry", "academic_concern"))
}

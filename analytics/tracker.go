// Package analytics keeps in-process usage counters. No PII is ever
// recorded here; callers pass only event names and coarse categories.
package analytics

import (
	"sync/atomic"
	"time"
)

// Tracker aggregates counters across all requests. All methods are safe
// for concurrent use.
type Tracker struct {
	totalMessages     atomic.Int64
	crisisDetections  atomic.Int64
	safetyFlags       atomic.Int64
	fallbackResponses atomic.Int64
	aiFailures        atomic.Int64

	hindiTranslations     atomic.Int64
	englishTranslations   atomic.Int64
	parentTranslatorUsage atomic.Int64

	eventsTracked atomic.Int64
}

func NewTracker() *Tracker { return &Tracker{} }

func (t *Tracker) Message()          { t.totalMessages.Add(1) }
func (t *Tracker) CrisisDetected()   { t.crisisDetections.Add(1) }
func (t *Tracker) SafetyFlag()       { t.safetyFlags.Add(1) }
func (t *Tracker) Fallback()         { t.fallbackResponses.Add(1) }
func (t *Tracker) AIFailure()        { t.aiFailures.Add(1) }
func (t *Tracker) ParentTranslator() { t.parentTranslatorUsage.Add(1) }
func (t *Tracker) Event()            { t.eventsTracked.Add(1) }

// Translation counts one translation into the given target language.
func (t *Tracker) Translation(language string) {
	switch language {
	case "hi":
		t.hindiTranslations.Add(1)
	case "en":
		t.englishTranslations.Add(1)
	}
}

// Metrics is a point-in-time snapshot of every counter.
type Metrics struct {
	TotalMessages     int64     `json:"totalMessages"`
	CrisisDetections  int64     `json:"crisisDetections"`
	SafetyFlags       int64     `json:"safetyFlags"`
	FallbackResponses int64     `json:"fallbackResponses"`
	AIServiceFailures int64     `json:"aiServiceFailures"`
	Cultural          Cultural  `json:"cultural"`
	EventsTracked     int64     `json:"eventsTracked"`
	Timestamp         time.Time `json:"timestamp"`
}

type Cultural struct {
	HindiTranslations     int64 `json:"hindiTranslations"`
	EnglishTranslations   int64 `json:"englishTranslations"`
	ParentTranslatorUsage int64 `json:"parentTranslatorUsage"`
}

func (t *Tracker) Snapshot() Metrics {
	return Metrics{
		TotalMessages:     t.totalMessages.Load(),
		CrisisDetections:  t.crisisDetections.Load(),
		SafetyFlags:       t.safetyFlags.Load(),
		FallbackResponses: t.fallbackResponses.Load(),
		AIServiceFailures: t.aiFailures.Load(),
		Cultural: Cultural{
			HindiTranslations:     t.hindiTranslations.Load(),
			EnglishTranslations:   t.englishTranslations.Load(),
			ParentTranslatorUsage: t.parentTranslatorUsage.Load(),
		},
		EventsTracked: t.eventsTracked.Load(),
		Timestamp:     time.Now(),
	}
}

// SafetyMetrics is the safety-only view.
type SafetyMetrics struct {
	CrisisDetections  int64 `json:"crisisDetections"`
	SafetyFlags       int64 `json:"safetyFlags"`
	FallbackResponses int64 `json:"fallbackResponses"`
}

func (t *Tracker) SafetySnapshot() SafetyMetrics {
	return SafetyMetrics{
		CrisisDetections:  t.crisisDetections.Load(),
		SafetyFlags:       t.safetyFlags.Load(),
		FallbackResponses: t.fallbackResponses.Load(),
	}
}

// TechnicalMetrics is the reliability view.
type TechnicalMetrics struct {
	AIServiceFailures int64 `json:"aiServiceFailures"`
	FallbackUsage     int64 `json:"fallbackUsage"`
}

func (t *Tracker) TechnicalSnapshot() TechnicalMetrics {
	return TechnicalMetrics{
		AIServiceFailures: t.aiFailures.Load(),
		FallbackUsage:     t.fallbackResponses.Load(),
	}
}

// Package dlp detects and masks personally identifiable information in
// free text, with info types relevant to Indian users.
package dlp

import (
	"regexp"
	"strings"
)

// Finding is one detected piece of sensitive information.
type Finding struct {
	InfoType string `json:"infoType"`
	Quote    string `json:"quote"`
}

type infoType struct {
	name        string
	re          *regexp.Regexp
	weight      float64
	replacement string
}

var infoTypes = []infoType{
	{"EMAIL_ADDRESS", regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`), 0.6, "***EMAIL***"},
	{"INDIAN_PAN_NUMBER", regexp.MustCompile(`\b[A-Z]{5}[0-9]{4}[A-Z]\b`), 1.0, "***PAN***"},
	{"INDIAN_AADHAAR_NUMBER", regexp.MustCompile(`\b\d{4}\s?\d{4}\s?\d{4}\b`), 1.0, "***AADHAAR***"},
	{"INDIAN_PASSPORT_NUMBER", regexp.MustCompile(`\b[A-Z][0-9]{7}\b`), 1.0, "***PASSPORT***"},
	{"PHONE_NUMBER", regexp.MustCompile(`\b(\+91[\s-]?)?[6-9]\d{9}\b`), 0.7, "***PHONE***"},
	{"IP_ADDRESS", regexp.MustCompile(`\b(\d{1,3}\.){3}\d{1,3}\b`), 0.4, "***IP***"},
}

// Inspect returns all PII findings in the text.
func Inspect(text string) []Finding {
	var findings []Finding
	for _, it := range infoTypes {
		for _, quote := range it.re.FindAllString(text, -1) {
			findings = append(findings, Finding{InfoType: it.name, Quote: quote})
		}
	}
	return findings
}

// HasSensitiveInfo reports whether the text contains any PII.
func HasSensitiveInfo(text string) bool {
	for _, it := range infoTypes {
		if it.re.MatchString(text) {
			return true
		}
	}
	return false
}

// SensitivityScore returns a weighted score in [0, 1]; the highest-weight
// info type found dominates, so an Aadhaar number alone scores 1.0.
func SensitivityScore(text string) float64 {
	score := 0.0
	for _, it := range infoTypes {
		if it.re.MatchString(text) && it.weight > score {
			score = it.weight
		}
	}
	return score
}

// Deidentify replaces every PII match with its info-type placeholder.
func Deidentify(text string) string {
	for _, it := range infoTypes {
		text = it.re.ReplaceAllString(text, it.replacement)
	}
	return text
}

// mentalHealthKeywords mark content that deserves extra handling care in
// logs and analytics even when it carries no identifier.
var mentalHealthKeywords = []string{
	"depression", "anxiety", "therapy", "medication", "psychiatrist",
	"psychologist", "mental illness", "bipolar", "ptsd", "trauma",
	"abuse", "addiction", "counseling", "treatment",
}

// SensitivityLevel grades mental-health sensitivity of the text.
type SensitivityLevel string

const (
	LevelLow    SensitivityLevel = "LOW"
	LevelMedium SensitivityLevel = "MEDIUM"
	LevelHigh   SensitivityLevel = "HIGH"
)

// MentalHealthSensitivity reports whether the text touches mental-health
// topics and how heavily.
func MentalHealthSensitivity(text string) (bool, SensitivityLevel) {
	lower := strings.ToLower(text)
	hits := 0
	for _, kw := range mentalHealthKeywords {
		if strings.Contains(lower, kw) {
			hits++
		}
	}
	switch {
	case hits > 3:
		return true, LevelHigh
	case hits > 1:
		return true, LevelMedium
	case hits == 1:
		return true, LevelLow
	}
	return false, LevelLow
}

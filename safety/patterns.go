package safety

import "regexp"

// Two disjoint pattern sets. All patterns are simple case-insensitive
// phrase regexes; Go's RE2 engine keeps matching linear in the input, so
// attacker-controlled text cannot blow up latency.

// crisisPatterns catch acute self-harm/suicide risk: direct phrasing,
// indirect hopelessness, and academic/family-pressure phrasings common
// among Indian students. A hit here bypasses every external provider.
var crisisPatterns = []*regexp.Regexp{
	// direct
	regexp.MustCompile(`(?i)\b(kill(ing)?\s+myself|end(ing)?\s+my\s+life|suicide|suicidal)\b`),
	regexp.MustCompile(`(?i)\b(want(ed)?\s+to\s+die|better\s+off\s+dead|(hurt|harm)(ing)?\s+myself|self[-\s]?harm)\b`),
	// indirect hopelessness
	regexp.MustCompile(`(?i)\b(no\s+reason\s+to\s+live|can'?t\s+go\s+on(\s+any\s*more)?|i\s+hate\s+myself)\b`),
	regexp.MustCompile(`(?i)\b(everyone|they)\s+(would|will)\s+be\s+better\s+(off\s+)?without\s+me\b`),
	// India-specific academic/family pressure
	regexp.MustCompile(`(?i)\bfail(ed|ing)?\s+(the\s+)?(boards?|jee|neet|exams?)\b.{0,40}\b(die|end\s+it(\s+all)?|not\s+worth\s+living)\b`),
	regexp.MustCompile(`(?i)\bcan'?t\s+face\s+my\s+(parents|family)\b.{0,40}\b(any\s*more|results?|marks)\b`),
}

// moderationPatterns catch policy-violating content: slurs, explicit
// sexual content, racism, harassment. Avoid overly broad single words
// ("hate") that appear in harmless contexts.
var moderationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bslurs?\b`),
	regexp.MustCompile(`(?i)\bnsfw\b`),
	regexp.MustCompile(`(?i)\bsex(ual)?\b`),
	regexp.MustCompile(`(?i)\bporn(ography)?\b`),
	regexp.MustCompile(`(?i)\bracis(t|m)\b`),
	regexp.MustCompile(`(?i)\bharass(ing|ment|ed)?\b`),
	// targeted hate is harassment; self-directed hate lives in the
	// crisis set above
	regexp.MustCompile(`(?i)\bi\s+hate\s+you\b`),
	// threats against others; self-directed variants are crisis, above
	regexp.MustCompile(`(?i)\b(kill(ing)?|murder(ing)?|stab(bing)?|beat\s+up)\s+(you|him|her|them|everyone)\b`),
	regexp.MustCompile(`(?i)\bmurder(er|ous)?\b`),
}

// MatchesAny reports whether any pattern in the set matches the text.
func MatchesAny(patterns []*regexp.Regexp, text string) bool {
	for _, re := range patterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// MatchesCrisis and MatchesModeration expose the fixed sets without
// letting callers mutate them.
func MatchesCrisis(text string) bool     { return MatchesAny(crisisPatterns, text) }
func MatchesModeration(text string) bool { return MatchesAny(moderationPatterns, text) }

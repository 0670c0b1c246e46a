package safety

import (
	"context"
	"log"
	"regexp"
	"strings"
)

// RiskLevel is the coarse severity attached to a verdict.
type RiskLevel string

const (
	RiskLow     RiskLevel = "LOW"
	RiskMedium  RiskLevel = "MEDIUM"
	RiskHigh    RiskLevel = "HIGH"
	RiskCrisis  RiskLevel = "CRISIS"
	RiskUnknown RiskLevel = "UNKNOWN"
)

// Verdict is the result of classifying one message. It is built fresh per
// message, consumed synchronously by the caller and never persisted.
type Verdict struct {
	Unsafe         bool      `json:"unsafe"`
	Crisis         bool      `json:"crisis"`
	RiskLevel      RiskLevel `json:"riskLevel"`
	SentimentScore float64   `json:"sentimentScore"`
	ModerationHit  bool      `json:"moderationHit"`
	Sensitive      bool      `json:"sensitive"`
	Err            bool      `json:"error,omitempty"`
}

// SentimentProvider returns a document sentiment score in [-1, 1].
type SentimentProvider interface {
	AnalyzeSentiment(ctx context.Context, text string) (float64, error)
}

// TopicClassifier returns category names for a document. Only called for
// texts long enough to classify reliably.
type TopicClassifier interface {
	ClassifyText(ctx context.Context, text string) ([]string, error)
}

// sensitiveCategory flags adult/sensitive topics among returned category
// names (Google NL category paths like "/Sensitive Subjects/...").
var sensitiveCategory = regexp.MustCompile(`(?i)Sensitive Subjects|Adult`)

// minClassifyTokens is the shortest input the topic classifier is asked
// about; shorter texts produce noisy false positives.
const minClassifyTokens = 20

// Classifier combines pattern matches and provider signals into a Verdict.
// Providers are injected so tests can substitute deterministic stubs; a
// nil provider behaves like a failing one.
type Classifier struct {
	sentiment SentimentProvider
	topics    TopicClassifier
}

func NewClassifier(sentiment SentimentProvider, topics TopicClassifier) *Classifier {
	return &Classifier{sentiment: sentiment, topics: topics}
}

// Analyze classifies one message. Crisis detection runs first and never
// touches the network, so it cannot be defeated by provider failure or
// latency. Everything after that is fail-open: a broken provider degrades
// the signal, it never blocks the message by itself.
func (c *Classifier) Analyze(ctx context.Context, text string) (verdict Verdict) {
	if MatchesCrisis(text) {
		return Verdict{
			Unsafe:         true,
			Crisis:         true,
			RiskLevel:      RiskCrisis,
			SentimentScore: -1,
		}
	}

	defer func() {
		if r := recover(); r != nil {
			log.Printf("safety: classifier panic recovered: %v", r)
			verdict = Verdict{RiskLevel: RiskUnknown, Err: true}
		}
	}()

	score := 0.0
	if c.sentiment != nil {
		s, err := c.sentiment.AnalyzeSentiment(ctx, text)
		if err != nil {
			log.Printf("safety: sentiment analysis failed, continuing with 0: %v", err)
		} else {
			score = s
		}
	}

	moderationHit := MatchesModeration(text)

	sensitive := false
	if c.topics != nil && len(strings.Fields(text)) >= minClassifyTokens {
		categories, err := c.topics.ClassifyText(ctx, text)
		if err == nil {
			for _, name := range categories {
				if sensitiveCategory.MatchString(name) {
					sensitive = true
					break
				}
			}
		}
		// classification errors are swallowed: sensitive stays false
	}

	risk := RiskLow
	if score < -0.7 {
		risk = RiskMedium
	}
	if score < -0.9 {
		risk = RiskHigh
	}
	if moderationHit || sensitive {
		// override, not an upgrade: applies even with positive sentiment
		risk = RiskHigh
	}

	return Verdict{
		// negative sentiment alone never sets unsafe; raw emotional
		// negativity is not censored, only policy-violating content
		Unsafe:         moderationHit || sensitive,
		RiskLevel:      risk,
		SentimentScore: score,
		ModerationHit:  moderationHit,
		Sensitive:      sensitive,
	}
}

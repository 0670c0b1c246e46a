package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/moody/moodyserver/analytics"
	"github.com/moody/moodyserver/safety"
)

// ContextVerdict is the gin context key carrying the input safety verdict
// for downstream tone adaptation.
const ContextVerdict = "safetyVerdict"

// gateBody is the minimal view of a request body the gate cares about.
type gateBody struct {
	Message string `json:"message"`
	Text    string `json:"text"`
}

// maxGateBody bounds how much of an attacker-controlled body the gate
// will buffer.
const maxGateBody = 64 << 10

// CrisisGate wraps free-text endpoints. Per request it moves through
// exactly one of three outcomes: crisis halt (HTTP 200 with emergency
// resources), policy rejection (HTTP 400), or pass-through with the
// verdict attached to the context. The downstream handler never runs on
// the first two.
//
// When the classifier itself fails the gate fails open (log + continue)
// unless failClosed is set, in which case it answers 503.
func CrisisGate(classifier *safety.Classifier, tracker *analytics.Tracker, failClosed bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxGateBody))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Unable to read request body"})
			c.Abort()
			return
		}
		// downstream handlers bind the body again
		c.Request.Body = io.NopCloser(bytes.NewReader(raw))

		var body gateBody
		_ = json.Unmarshal(raw, &body)
		text := body.Message
		if text == "" {
			text = body.Text
		}
		if text == "" {
			c.Next()
			return
		}

		tracker.Message()
		verdict := classifier.Analyze(c.Request.Context(), text)

		if verdict.Err {
			if failClosed {
				c.JSON(http.StatusServiceUnavailable, gin.H{"message": "We couldn't process your message right now. Please try again."})
				c.Abort()
				return
			}
			log.Printf("safety gate: classifier failed, continuing open: path=%s", c.FullPath())
			c.Set(ContextVerdict, verdict)
			c.Next()
			return
		}

		if verdict.Crisis {
			tracker.CrisisDetected()
			// a crisis is a handled case, not a server fault
			c.JSON(http.StatusOK, safety.NewCrisisPayload())
			c.Abort()
			return
		}

		if verdict.Unsafe {
			tracker.SafetyFlag()
			c.JSON(http.StatusBadRequest, gin.H{
				"message":   "Content appears unsafe or inappropriate.",
				"riskLevel": verdict.RiskLevel,
			})
			c.Abort()
			return
		}

		c.Set(ContextVerdict, verdict)
		c.Next()
	}
}

// Verdict extracts the gate's verdict from the gin context, if present.
func Verdict(c *gin.Context) (safety.Verdict, bool) {
	v, ok := c.Get(ContextVerdict)
	if !ok {
		return safety.Verdict{}, false
	}
	verdict, ok := v.(safety.Verdict)
	return verdict, ok
}

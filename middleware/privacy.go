package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/moody/moodyserver/dlp"
)

// PrivacyHeaders sets the security and data-handling headers on every
// response.
func PrivacyHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-XSS-Protection", "1; mode=block")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("X-Data-Processing", "anonymized")
		h.Set("X-Data-Retention", "30-days")
		c.Next()
	}
}

// sensitivityBlockThreshold rejects bodies carrying strong identifiers
// (Aadhaar, PAN) before they reach any provider or store.
const sensitivityBlockThreshold = 0.8

// DetectSensitiveData inspects the free-text fields of the body for PII.
// Highly sensitive content is rejected with guidance; anything below the
// threshold passes with a log line only. Inspection failure never blocks
// the request.
func DetectSensitiveData() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxGateBody))
		if err != nil {
			c.Next()
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(raw))

		var body gateBody
		_ = json.Unmarshal(raw, &body)
		text := body.Text
		if text == "" {
			text = body.Message
		}
		if text == "" {
			c.Next()
			return
		}

		score := dlp.SensitivityScore(text)
		if score > sensitivityBlockThreshold {
			c.JSON(http.StatusBadRequest, gin.H{
				"message":          "Content contains highly sensitive information. Please remove personal identifiers and try again.",
				"sensitivityScore": score,
				"blocked":          true,
			})
			c.Abort()
			return
		}
		if score > 0 {
			// log without the identifiers themselves
			log.Printf("privacy: PII detected on %s (score %.1f): %s", c.FullPath(), score, dlp.Deidentify(text))
		}
		c.Next()
	}
}

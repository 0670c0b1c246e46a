package safety

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateFallbackResponseCategories(t *testing.T) {
	cases := []struct {
		text string
		want string // substring of the selected category reply
	}{
		{"I have been feeling sad all week", "difficult time"},
		{"so worried about everything", "anxious or stressed"},
		{"I'm mad at everyone right now", "angry or frustrated"},
		{"the exam is next week and I can't focus", "Academic pressure"},
		{"my parents don't understand me", "Family relationships"},
		{"hello", "technical difficulties"},
	}
	for _, tc := range cases {
		resp := GenerateFallbackResponse(tc.text)
		assert.Contains(t, resp.Reply, tc.want, "input %q", tc.text)
		assert.True(t, resp.Fallback)
		assert.Equal(t, FallbackDisclaimer, resp.Disclaimer)
	}
}

func TestGenerateFallbackResponsePriorityOrder(t *testing.T) {
	// sad outranks exam when both keyword sets match
	resp := GenerateFallbackResponse("I'm sad about my exam results")
	assert.Contains(t, resp.Reply, "difficult time")
}

func TestGenerateFallbackResponseNeverEmpty(t *testing.T) {
	for _, text := range []string{"", "x", "???", "completely unrelated input"} {
		resp := GenerateFallbackResponse(text)
		assert.NotEmpty(t, resp.Reply)
		assert.True(t, resp.Fallback)
	}
}

package safety

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchesCrisis(t *testing.T) {
	hits := []string{
		"I've been thinking about suicide",
		"I WANT TO DIE",
		"im hurting myself again",
		"self-harm is all I think about",
		"honestly i hate myself",
	}
	for _, text := range hits {
		assert.True(t, MatchesCrisis(text), "expected crisis match for %q", text)
	}

	misses := []string{
		"my phone battery died",
		"I am stressed about exams",
		"this assignment is killing my weekend",
		"I failed the boards last year but I'm retaking them",
	}
	for _, text := range misses {
		assert.False(t, MatchesCrisis(text), "unexpected crisis match for %q", text)
	}
}

func TestMatchesModeration(t *testing.T) {
	assert.True(t, MatchesModeration("that was a racist thing to say"))
	assert.True(t, MatchesModeration("stop harassing me"))
	assert.True(t, MatchesModeration("I HATE YOU"))
	assert.False(t, MatchesModeration("I hate maths homework"))
	assert.False(t, MatchesModeration("feeling very low and alone"))
}

func TestMatchesModerationThreats(t *testing.T) {
	// other-directed violence is moderation, not crisis
	hits := []string{
		"I will murder you",
		"i am going to kill them all",
		"he threatened to beat up everyone",
	}
	for _, text := range hits {
		assert.True(t, MatchesModeration(text), "expected moderation match for %q", text)
		assert.False(t, MatchesCrisis(text), "unexpected crisis match for %q", text)
	}

	// figurative "killing" stays clean
	assert.False(t, MatchesModeration("this assignment is killing my weekend"))
	assert.False(t, MatchesModeration("we killed it at the quiz today"))
}

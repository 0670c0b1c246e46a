package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildEmpathyPromptIncludesHistory(t *testing.T) {
	history := []Message{
		{Role: "user", Text: "I had a rough week"},
		{Role: "assistant", Text: "That sounds tough. What happened?"},
	}
	prompt := BuildEmpathyPrompt("mostly school stuff", history)

	assert.Contains(t, prompt, "Conversation so far:")
	assert.Contains(t, prompt, "user: I had a rough week")
	assert.Contains(t, prompt, `"mostly school stuff"`)

	noHistory := BuildEmpathyPrompt("hello", nil)
	assert.NotContains(t, noHistory, "Conversation so far:")
}

func TestBuildVentPromptToneAdapts(t *testing.T) {
	assert.Contains(t, BuildVentPrompt("today was ok", 0.1), "warm and encouraging")
	assert.Contains(t, BuildVentPrompt("everything is falling apart", -0.6), "very gentle and validating")
}

func TestParseTranslatorResponse(t *testing.T) {
	response := `Some preamble the model added.
CHILD VERSION: I feel unheard at home.
PARENT VERSION: I would like us to talk more openly.
NEUTRAL SUMMARY: The child wants more open conversation.
`
	out := ParseTranslatorResponse(response)
	assert.Equal(t, "I feel unheard at home.", out.ChildVersion)
	assert.Equal(t, "I would like us to talk more openly.", out.ParentVersion)
	assert.Equal(t, "The child wants more open conversation.", out.NeutralSummary)
}

func TestParseTranslatorResponseMissingSections(t *testing.T) {
	out := ParseTranslatorResponse("PARENT VERSION: only this one")
	assert.Empty(t, out.ChildVersion)
	assert.Equal(t, "only this one", out.ParentVersion)
	assert.Empty(t, out.NeutralSummary)
}

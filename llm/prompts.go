package llm

import (
	"fmt"
	"strings"
)

// Message is one turn of conversation history supplied by the client.
type Message struct {
	Role string `json:"role"` // "user" or "assistant"
	Text string `json:"text"`
}

// BuildEmpathyPrompt frames an anonymous chat message for generation.
func BuildEmpathyPrompt(userText string, history []Message) string {
	var b strings.Builder
	b.WriteString(`You are a supportive, non-judgmental friend. Respond briefly (2-5 sentences),
avoiding medical claims. Encourage reflection and coping. No therapy disclaimers unless asked.
`)
	if len(history) > 0 {
		b.WriteString("Conversation so far:\n")
		for _, m := range history {
			b.WriteString(fmt.Sprintf("%s: %s\n", m.Role, m.Text))
		}
	}
	fmt.Fprintf(&b, "User said: %q\nRespond empathetically.", userText)
	return b.String()
}

// BuildVentPrompt frames a private vent entry. The tone adapts to how
// negative the message reads.
func BuildVentPrompt(userText string, sentimentScore float64) string {
	tone := "warm and encouraging"
	if sentimentScore < -0.25 {
		tone = "very gentle and validating"
	}
	return fmt.Sprintf(`You are an empathetic friend in a private vent space.
Respond in 3-6 sentences with %s tone. Avoid clinical advice or diagnoses.
Offer reflection and 1-2 simple coping suggestions.
User vent: %q`, tone, userText)
}

// BuildTranslatorPrompt frames the parent-child communication rewrite.
// The model must answer with three labelled sections that
// ParseTranslatorResponse understands.
func BuildTranslatorPrompt(userText, emotion, intent, culturalContext string) string {
	return fmt.Sprintf(`You are a cultural communication bridge specialist for Indian families. Your role is to help children communicate their feelings to parents in a respectful, clear, and culturally-sensitive way.

Context:
- Child's emotion: %s
- Child's intent: %s
- Cultural context: %s
- Original text: %q

Your task is to create THREE versions:

1. CHILD VERSION: A clear, honest expression of the child's feelings that maintains authenticity
2. PARENT VERSION: A respectful, culturally-appropriate way to communicate this to Indian parents
3. NEUTRAL SUMMARY: An objective summary that both parties can understand

Guidelines:
- Maintain the child's emotional truth
- Use respectful language appropriate for Indian parent-child dynamics
- Consider cultural values (respect for elders, family harmony)
- Avoid clinical/therapy language
- Keep it concise (2-3 sentences each)

Format your response as:
CHILD VERSION: [text]
PARENT VERSION: [text]
NEUTRAL SUMMARY: [text]`, emotion, intent, culturalContext, userText)
}

// TranslatorResult holds the three parsed sections of a translator reply.
type TranslatorResult struct {
	ChildVersion   string
	ParentVersion  string
	NeutralSummary string
}

// ParseTranslatorResponse extracts the labelled sections from the model
// output. Missing sections are left empty; callers substitute defaults.
func ParseTranslatorResponse(response string) TranslatorResult {
	var out TranslatorResult
	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "CHILD VERSION:"):
			out.ChildVersion = strings.TrimSpace(strings.TrimPrefix(line, "CHILD VERSION:"))
		case strings.HasPrefix(line, "PARENT VERSION:"):
			out.ParentVersion = strings.TrimSpace(strings.TrimPrefix(line, "PARENT VERSION:"))
		case strings.HasPrefix(line, "NEUTRAL SUMMARY:"):
			out.NeutralSummary = strings.TrimSpace(strings.TrimPrefix(line, "NEUTRAL SUMMARY:"))
		}
	}
	return out
}

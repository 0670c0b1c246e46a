package safety

import "strings"

// FallbackResponse is the deterministic reply used when the generation
// provider is unavailable or errors. Constructed and returned, never
// stored.
type FallbackResponse struct {
	Reply      string `json:"reply"`
	Fallback   bool   `json:"fallback"`
	Disclaimer string `json:"disclaimer"`
}

// FallbackDisclaimer accompanies every fallback reply.
const FallbackDisclaimer = "This is a basic response. For professional support, please contact a mental health professional."

// fallbackCategories are evaluated in fixed priority order; the first
// category with a keyword hit wins. No scoring across categories.
var fallbackCategories = []struct {
	keywords []string
	reply    string
}{
	{
		keywords: []string{"sad", "depressed", "down"},
		reply:    "I understand you're going through a difficult time. It's okay to feel this way. Consider reaching out to a trusted friend, family member, or counselor. Remember, you're not alone in this.",
	},
	{
		keywords: []string{"anxious", "worried", "stress"},
		reply:    "Feeling anxious or stressed is completely normal. Try taking deep breaths, going for a walk, or talking to someone you trust. If these feelings persist, consider speaking with a counselor.",
	},
	{
		keywords: []string{"angry", "frustrated", "mad"},
		reply:    "It's okay to feel angry or frustrated. These are valid emotions. Try to express your feelings in a healthy way - maybe through writing, talking to someone, or physical activity.",
	},
	{
		keywords: []string{"academic", "study", "exam"},
		reply:    "Academic pressure can be overwhelming. Remember that your worth isn't determined by grades alone. Consider talking to your teachers, parents, or a counselor about your concerns.",
	},
	{
		keywords: []string{"family", "parent"},
		reply:    "Family relationships can be complex. It's important to communicate your feelings respectfully. Consider having an open conversation with your family members about your concerns.",
	},
}

const defaultFallbackReply = "Thank you for sharing your thoughts with me. I'm here to listen, though I'm currently experiencing technical difficulties. Please remember that your feelings are valid, and if you need immediate support, consider reaching out to a trusted adult or counselor."

// GenerateFallbackResponse maps the user text onto a canned empathetic
// reply. Pure function: no I/O, always succeeds, never returns an empty
// reply.
func GenerateFallbackResponse(text string) FallbackResponse {
	lower := strings.ToLower(text)
	for _, cat := range fallbackCategories {
		for _, kw := range cat.keywords {
			if strings.Contains(lower, kw) {
				return FallbackResponse{Reply: cat.reply, Fallback: true, Disclaimer: FallbackDisclaimer}
			}
		}
	}
	return FallbackResponse{Reply: defaultFallbackReply, Fallback: true, Disclaimer: FallbackDisclaimer}
}

package safety

// Emergency resource catalog surfaced on every crisis verdict. Static,
// versioned configuration: loaded once, read-only afterwards.

// Helpline is one crisis helpline entry.
type Helpline struct {
	Name        string `json:"name"`
	Number      string `json:"number"`
	Available   string `json:"available"`
	Description string `json:"description"`
}

// EmergencyResourceSet is the full catalog returned with a crisis payload.
type EmergencyResourceSet struct {
	Version         string     `json:"version"`
	Helplines       []Helpline `json:"helplines"`
	Emergency       string     `json:"emergency"`
	OnlineResources []string   `json:"onlineResources"`
}

// CrisisMessage and CrisisAcknowledgment are the fixed, hand-authored
// strings shown instead of AI-generated content on a crisis verdict.
const (
	CrisisMessage        = "We're concerned about your safety. Please reach out for immediate help."
	CrisisAcknowledgment = "I'm not able to provide a response right now. Your safety is our priority. Please use the resources above."
	CrisisDisclaimer     = "This is not a replacement for professional mental health care. If you're having thoughts of self-harm, please seek immediate professional help."
)

var emergencyResources = EmergencyResourceSet{
	Version: "2024-08",
	Helplines: []Helpline{
		{
			Name:        "KIRAN Mental Health Helpline",
			Number:      "1800-599-0019",
			Available:   "24/7",
			Description: "Government mental health helpline",
		},
		{
			Name:        "AASRA Suicide Prevention",
			Number:      "91-22-27546669",
			Available:   "24/7",
			Description: "Crisis intervention and emotional support",
		},
		{
			Name:        "Vandrevala Foundation",
			Number:      "1860-2662-345",
			Available:   "24/7",
			Description: "Mental health support and counseling",
		},
		{
			Name:        "Snehi",
			Number:      "91-11-65978181",
			Available:   "24/7",
			Description: "Mental health support for youth",
		},
	},
	Emergency: "If you're in immediate danger, call 100 (Police) or 108 (Ambulance)",
	OnlineResources: []string{
		"Visit your nearest government hospital for immediate help",
		"Contact your family doctor or a trusted adult",
		"Reach out to a school counselor if you're a student",
	},
}

// EmergencyResources returns the catalog. The slice headers are shared;
// callers must treat the set as read-only.
func EmergencyResources() EmergencyResourceSet { return emergencyResources }

// CrisisPayload is the response body returned instead of AI content when
// a crisis is detected. Same shape on every endpoint, HTTP and websocket.
type CrisisPayload struct {
	Crisis             bool                 `json:"crisis"`
	Message            string               `json:"message"`
	EmergencyResources EmergencyResourceSet `json:"emergencyResources"`
	AIResponse         string               `json:"aiResponse"`
	Disclaimer         string               `json:"disclaimer"`
}

func NewCrisisPayload() CrisisPayload {
	return CrisisPayload{
		Crisis:             true,
		Message:            CrisisMessage,
		EmergencyResources: emergencyResources,
		AIResponse:         CrisisAcknowledgment,
		Disclaimer:         CrisisDisclaimer,
	}
}

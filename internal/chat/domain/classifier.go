package domain

// TurnKind is the handling path chosen for an incoming user turn.
type TurnKind string

const (
	// TurnNameCapture stores the turn as the user's name.
	TurnNameCapture TurnKind = "name_capture"
	// TurnGreetingReprompt re-asks for a name instead of storing a greeting.
	TurnGreetingReprompt TurnKind = "greeting_reprompt"
	// TurnLeadAnswer routes the turn to the lead collector.
	TurnLeadAnswer TurnKind = "lead_answer"
	// TurnFreeChat forwards the turn to the remote assistant.
	TurnFreeChat TurnKind = "free_chat"
)

// Classify tags an incoming user turn with exactly one handling path.
// The decision depends only on the prior message count, the collectingLead
// flag, and the literal turn text; there is no hidden state.
//
// Name capture applies only while a single prior message exists (the initial
// greeting), and a greeting turn is re-prompted rather than stored as a name.
func Classify(priorMessages int, collectingLead bool, text string, loc Locale) TurnKind {
	if collectingLead {
		return TurnLeadAnswer
	}
	if priorMessages == 1 {
		if loc.IsGreeting(text) {
			return TurnGreetingReprompt
		}
		return TurnNameCapture
	}
	return TurnFreeChat
}

package domain

// CollectOutcome reports what the collector did with a turn.
type CollectOutcome struct {
	// Handled is false when no collection run was active for this turn;
	// the controller then falls through to free chat.
	Handled bool
	// Done is true when the last question was just answered.
	Done bool
	// NextPrompt is the localized prompt for the next question; set only
	// when Handled and not Done. Emission is paced by the caller.
	NextPrompt string
	// Record is the frozen lead record; set only when Done.
	Record LeadRecord
}

// Collector owns progression through the qualification sequence. It is a
// pure state machine over ConversationState: IDLE → ASKING(0) → … →
// ASKING(n-1) → DONE. Pacing delays around prompt emission belong to the
// controller, not here.
type Collector struct{}

// NewCollector creates a collector over the fixed question sequence.
func NewCollector() *Collector {
	return &Collector{}
}

// Start begins a collection run: seeds the record's name from the known
// user name, marks collection active at question 0, and returns the first
// prompt for the caller to emit after its pacing delay.
func (c *Collector) Start(st *ConversationState, loc Locale) string {
	st.CollectingLead = true
	st.CurrentQuestion = 0
	st.Lead.Name = st.UserName
	return loc.QuestionPrompt(Questions[0].Field, st.UserName)
}

// SubmitAnswer records a turn as the answer to the current question.
// Outside an active run it is a no-op reported as not handled.
func (c *Collector) SubmitAnswer(st *ConversationState, loc Locale, answer string) CollectOutcome {
	if !st.CollectingLead || st.CurrentQuestion < 0 || st.CurrentQuestion >= len(Questions) {
		return CollectOutcome{}
	}

	// Unknown fields cannot occur with the fixed sequence; a mismatch here
	// would mean the catalog and the record drifted apart.
	if err := st.Lead.SetField(Questions[st.CurrentQuestion].Field, answer); err != nil {
		return CollectOutcome{}
	}

	if st.CurrentQuestion == len(Questions)-1 {
		st.CollectingLead = false
		st.CurrentQuestion = noQuestion
		return CollectOutcome{Handled: true, Done: true, Record: st.Lead}
	}

	st.CurrentQuestion++
	return CollectOutcome{
		Handled:    true,
		NextPrompt: loc.QuestionPrompt(Questions[st.CurrentQuestion].Field, st.UserName),
	}
}

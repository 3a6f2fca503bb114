// Package transport defines the lead intake module's wire types.
package transport

// ChatTurn is one transcript entry attached to a submission.
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// PropertyContext is the listing digest attached to a submission.
type PropertyContext struct {
	Title    string `json:"title"`
	Location string `json:"location"`
	Price    string `json:"price"`
	Area     string `json:"area"`
}

// LeadSubmission is the envelope posted to the intake service. Field names
// follow the intake contract; family_background keeps its snake_case key.
type LeadSubmission struct {
	Name              string           `json:"name"`
	Phone             string           `json:"phone"`
	Email             string           `json:"email,omitempty"`
	FamilyBackground  string           `json:"family_background"`
	Occupation        string           `json:"occupation"`
	Location          string           `json:"location"`
	IsJain            string           `json:"isJain,omitempty"`
	InterestedIn      string           `json:"interestedIn,omitempty"`
	PreferredFloor    string           `json:"preferredFloor,omitempty"`
	VastuPreference   string           `json:"vastuPreference,omitempty"`
	Budget            string           `json:"budget"`
	Timeline          string           `json:"timeline"`
	ChatHistory       []ChatTurn       `json:"chat_history"`
	PreferredLanguage string           `json:"preferredLanguage"`
	Property          *PropertyContext `json:"property"`
}

// LeadFormRequest is the direct form path. Same fields as the conversational
// flow plus the select-driven preferences the widget form carries.
type LeadFormRequest struct {
	Name             string `json:"name" validate:"required,min=1,max=120"`
	Phone            string `json:"phone" validate:"required,min=10,max=16"`
	Email            string `json:"email" validate:"omitempty,email"`
	FamilyBackground string `json:"family_background" validate:"required,max=500"`
	Occupation       string `json:"occupation" validate:"required,max=200"`
	Location         string `json:"location" validate:"required,max=200"`
	IsJain           string `json:"isJain" validate:"omitempty,oneof=true false"`
	InterestedIn     string `json:"interestedIn" validate:"omitempty,oneof=Both 3BHK 4BHK"`
	PreferredFloor   string `json:"preferredFloor" validate:"omitempty,oneof='Lower (1-5)' 'Middle (6-10)' 'Higher (10+)'"`
	VastuPreference  string `json:"vastuPreference" validate:"omitempty,oneof=true false"`
	Budget           string `json:"budget" validate:"required,max=100"`
	Timeline         string `json:"timeline" validate:"required,max=100"`

	PreferredLanguage string `json:"preferredLanguage" validate:"omitempty,oneof=en hi"`
}

// SubmitLeadResponse acknowledges a submission.
type SubmitLeadResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

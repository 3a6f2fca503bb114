package domain

import "fmt"

// Phase is the controller's top-level mode.
type Phase string

const (
	PhaseInit           Phase = "init"
	PhaseAwaitingName   Phase = "awaiting_name"
	PhaseConversing     Phase = "conversing"
	PhaseCollectingLead Phase = "collecting_lead"
	PhaseCompleted      Phase = "completed"
)

// noQuestion marks the question index while no collection run is active.
const noQuestion = -1

// LeadRecord is the structured qualification data collected about a
// prospective buyer. Field keys mirror the intake contract.
type LeadRecord struct {
	Name             string `json:"name"`
	Phone            string `json:"phone"`
	FamilyBackground string `json:"family_background"`
	Occupation       string `json:"occupation"`
	Location         string `json:"location"`
	Budget           string `json:"budget"`
	Timeline         string `json:"timeline"`
}

// SetField writes an answer into the record by question field key.
func (r *LeadRecord) SetField(field, value string) error {
	switch field {
	case FieldPhone:
		r.Phone = value
	case FieldFamilyBackground:
		r.FamilyBackground = value
	case FieldOccupation:
		r.Occupation = value
	case FieldLocation:
		r.Location = value
	case FieldBudget:
		r.Budget = value
	case FieldTimeline:
		r.Timeline = value
	default:
		return fmt.Errorf("unknown lead field %q", field)
	}
	return nil
}

// ConversationState is the single mutable value owned by the controller.
// All mutation happens through controller operations on turn boundaries.
type ConversationState struct {
	Phase            Phase      `json:"phase"`
	Language         string     `json:"language"`
	UserName         string     `json:"userName"`
	CollectingLead   bool       `json:"collectingLead"`
	CurrentQuestion  int        `json:"currentQuestion"`
	Lead             LeadRecord `json:"lead"`
	LeadSubmitted    bool       `json:"leadSubmitted"`
	ShowPropertyInfo bool       `json:"showPropertyInfo"`
}

// NewConversationState returns the initial state for a session.
func NewConversationState(language string) ConversationState {
	return ConversationState{
		Phase:           PhaseInit,
		Language:        language,
		CurrentQuestion: noQuestion,
	}
}

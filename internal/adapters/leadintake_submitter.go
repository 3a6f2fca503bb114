package adapters

import (
	"context"

	"propertychat_backend/internal/chat/ports"
	leadsvc "propertychat_backend/internal/leadintake/service"
	leadtransport "propertychat_backend/internal/leadintake/transport"
)

// LeadSubmitter adapts the lead intake service to the chat module's
// LeadSubmitter port, flattening the conversation record and attaching
// the transcript and listing digest.
type LeadSubmitter struct {
	leads *leadsvc.Service
}

func NewLeadSubmitter(leads *leadsvc.Service) *LeadSubmitter {
	return &LeadSubmitter{leads: leads}
}

// Submit forwards the captured lead to the intake service.
func (s *LeadSubmitter) Submit(ctx context.Context, input ports.SubmitLeadInput) error {
	return s.leads.Submit(ctx, input.SessionID, buildSubmission(input))
}

func buildSubmission(input ports.SubmitLeadInput) leadtransport.LeadSubmission {
	history := make([]leadtransport.ChatTurn, 0, len(input.Transcript))
	for _, msg := range input.Transcript {
		history = append(history, leadtransport.ChatTurn{
			Role:    string(msg.Role),
			Content: msg.Content,
		})
	}

	submission := leadtransport.LeadSubmission{
		Name:              input.Record.Name,
		Phone:             input.Record.Phone,
		FamilyBackground:  input.Record.FamilyBackground,
		Occupation:        input.Record.Occupation,
		Location:          input.Record.Location,
		Budget:            input.Record.Budget,
		Timeline:          input.Record.Timeline,
		ChatHistory:       history,
		PreferredLanguage: input.Language,
	}
	if input.Property != nil {
		submission.Property = &leadtransport.PropertyContext{
			Title:    input.Property.Title,
			Location: input.Property.Location.City,
			Price:    input.Property.Details.Price,
			Area:     input.Property.Details.Area,
		}
	}
	return submission
}

var _ ports.LeadSubmitter = (*LeadSubmitter)(nil)

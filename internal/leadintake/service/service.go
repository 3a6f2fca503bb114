// Package service forwards qualified leads to the intake service and
// publishes the outcome as domain events.
package service

import (
	"context"

	"github.com/google/uuid"

	"propertychat_backend/internal/events"
	"propertychat_backend/internal/leadintake/transport"
	"propertychat_backend/platform/logger"
	"propertychat_backend/platform/phone"
)

// LeadSender is the external intake dependency.
type LeadSender interface {
	Submit(ctx context.Context, submission transport.LeadSubmission) error
}

type Service struct {
	sender LeadSender
	bus    events.Bus
	log    *logger.Logger
}

func New(sender LeadSender, bus events.Bus, log *logger.Logger) *Service {
	return &Service{
		sender: sender,
		bus:    bus,
		log:    log,
	}
}

// Submit normalizes the contact number, forwards the envelope, and
// publishes LeadSubmitted or LeadSubmissionFailed. sessionID is uuid.Nil
// for the direct form path.
func (s *Service) Submit(ctx context.Context, sessionID uuid.UUID, submission transport.LeadSubmission) error {
	submission.Phone = phone.NormalizeE164(submission.Phone)

	if err := s.sender.Submit(ctx, submission); err != nil {
		s.log.LeadEvent("lead_submission", sessionID.String(), false)
		s.bus.Publish(ctx, events.LeadSubmissionFailed{
			BaseEvent: events.NewBaseEvent(),
			SessionID: sessionID,
			Reason:    err.Error(),
		})
		return err
	}

	s.log.LeadEvent("lead_submission", sessionID.String(), true)

	var propertyTitle string
	if submission.Property != nil {
		propertyTitle = submission.Property.Title
	}
	s.bus.Publish(ctx, events.LeadSubmitted{
		BaseEvent:     events.NewBaseEvent(),
		SessionID:     sessionID,
		Name:          submission.Name,
		Phone:         submission.Phone,
		Language:      submission.PreferredLanguage,
		PropertyTitle: propertyTitle,
	})

	return nil
}

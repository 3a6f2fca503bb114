package ports

import (
	"context"

	"propertychat_backend/internal/chat/domain"

	"github.com/google/uuid"
)

// SubmitLeadInput is everything the submission gateway needs: the frozen
// record, the full rendered transcript, the session language, and the
// property the conversation was about.
type SubmitLeadInput struct {
	SessionID  uuid.UUID
	Record     domain.LeadRecord
	Transcript []domain.Message
	Language   string
	Property   *PropertySnapshot
}

// LeadSubmitter hands a completed lead record to the intake collaborator.
// The outcome is opaque success/failure; the controller only localizes it.
type LeadSubmitter interface {
	Submit(ctx context.Context, input SubmitLeadInput) error
}

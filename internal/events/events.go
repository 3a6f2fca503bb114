// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"propertychat_backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var (
	NewBaseEvent   = events.NewBaseEvent
	NewInMemoryBus = events.NewInMemoryBus
)

// =============================================================================
// Chat Domain Events
// =============================================================================

// SessionStarted is published when a new conversation session is created.
type SessionStarted struct {
	BaseEvent
	SessionID uuid.UUID `json:"sessionId"`
	Language  string    `json:"language"`
}

func (e SessionStarted) EventName() string { return "chat.session.started" }

// LeadCollectionStarted is published when the qualification sequence begins.
type LeadCollectionStarted struct {
	BaseEvent
	SessionID uuid.UUID `json:"sessionId"`
	UserName  string    `json:"userName"`
}

func (e LeadCollectionStarted) EventName() string { return "chat.lead.collection_started" }

// =============================================================================
// Lead Intake Events
// =============================================================================

// LeadSubmitted is published after the intake service accepts a lead.
type LeadSubmitted struct {
	BaseEvent
	SessionID     uuid.UUID `json:"sessionId"`
	Name          string    `json:"name"`
	Phone         string    `json:"phone"`
	Language      string    `json:"language"`
	PropertyTitle string    `json:"propertyTitle,omitempty"`
}

func (e LeadSubmitted) EventName() string { return "leadintake.lead.submitted" }

// LeadSubmissionFailed is published when the intake service rejects a lead or
// is unreachable.
type LeadSubmissionFailed struct {
	BaseEvent
	SessionID uuid.UUID `json:"sessionId"`
	Reason    string    `json:"reason"`
}

func (e LeadSubmissionFailed) EventName() string { return "leadintake.lead.submission_failed" }

// Package store persists active conversation sessions. Sessions are
// short-lived: they expire after a TTL and nothing carries over between
// sessions.
package store

import (
	"context"
	"time"

	"propertychat_backend/internal/chat/domain"
	"propertychat_backend/internal/chat/ports"

	"github.com/google/uuid"
)

// Session is the full serializable state of one conversation.
type Session struct {
	ID uuid.UUID `json:"id"`

	State domain.ConversationState `json:"state"`

	// Messages is the rendered transcript: append-only, strictly ordered.
	Messages []domain.Message `json:"messages"`

	// History is the bookkeeping transcript sent to the assistant. It may
	// be replaced wholesale by a chatHistory in an assistant response;
	// Messages never is.
	History []domain.Message `json:"history"`

	// Loading is raised while a scheduled prompt emission is pending. The
	// rendering layer is expected to disable input while it is set.
	Loading bool `json:"loading"`

	Property *ports.PropertySnapshot `json:"property,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Store is the session persistence boundary.
type Store interface {
	// Put creates or replaces a session and refreshes its TTL.
	Put(ctx context.Context, session *Session) error
	// Get returns a session or apperr.NotFound when absent or expired.
	Get(ctx context.Context, id uuid.UUID) (*Session, error)
	// Delete removes a session; deleting a missing session is not an error.
	Delete(ctx context.Context, id uuid.UUID) error
}

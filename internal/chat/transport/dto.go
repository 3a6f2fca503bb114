package transport

import (
	"propertychat_backend/internal/chat/ports"
	"propertychat_backend/internal/chat/store"
)

// StartSessionRequest opens a new conversation.
type StartSessionRequest struct {
	Language string `json:"language" validate:"omitempty,oneof=en hi"`
}

// SendMessageRequest carries one user turn.
type SendMessageRequest struct {
	Message string `json:"message" validate:"required,min=1,max=2000"`
}

// MessageView is one rendered transcript entry.
type MessageView struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// SessionResponse is the read-only session view consumed by the widget:
// the transcript plus the flags that drive the input surface.
type SessionResponse struct {
	ID               string                  `json:"id"`
	Language         string                  `json:"language"`
	Phase            string                  `json:"phase"`
	UserName         string                  `json:"userName,omitempty"`
	Messages         []MessageView           `json:"messages"`
	Loading          bool                    `json:"loading"`
	CollectingLead   bool                    `json:"collectingLead"`
	ShowPropertyInfo bool                    `json:"showPropertyInfo"`
	LeadSubmitted    bool                    `json:"leadSubmitted"`
	Property         *ports.PropertySnapshot `json:"property,omitempty"`
}

// ToSessionResponse maps a stored session to its widget-facing view.
func ToSessionResponse(session *store.Session) SessionResponse {
	messages := make([]MessageView, len(session.Messages))
	for i, m := range session.Messages {
		messages[i] = MessageView{Role: string(m.Role), Content: m.Content}
	}

	return SessionResponse{
		ID:               session.ID.String(),
		Language:         session.State.Language,
		Phase:            string(session.State.Phase),
		UserName:         session.State.UserName,
		Messages:         messages,
		Loading:          session.Loading,
		CollectingLead:   session.State.CollectingLead,
		ShowPropertyInfo: session.State.ShowPropertyInfo,
		LeadSubmitted:    session.State.LeadSubmitted,
		Property:         session.Property,
	}
}

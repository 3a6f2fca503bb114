package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"propertychat_backend/internal/chat/domain"
	"propertychat_backend/platform/apperr"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	s := NewMemoryStore(time.Hour)
	ctx := context.Background()

	session := &Session{
		ID:    uuid.New(),
		State: domain.NewConversationState("en"),
		Messages: []domain.Message{
			domain.AssistantMessage("welcome"),
		},
		CreatedAt: time.Now(),
	}
	if err := s.Put(ctx, session); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := s.Get(ctx, session.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(got.Messages) != 1 || got.Messages[0].Content != "welcome" {
		t.Fatalf("transcript not preserved: %+v", got.Messages)
	}
	if got.State.Language != "en" {
		t.Fatalf("state not preserved: %+v", got.State)
	}
}

func TestMemoryStoreMissingSessionIsNotFound(t *testing.T) {
	s := NewMemoryStore(time.Hour)

	_, err := s.Get(context.Background(), uuid.New())
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestMemoryStoreExpiresStaleSessions(t *testing.T) {
	s := NewMemoryStore(time.Hour)
	ctx := context.Background()

	now := time.Now()
	s.now = func() time.Time { return now }

	session := &Session{ID: uuid.New(), State: domain.NewConversationState("en")}
	if err := s.Put(ctx, session); err != nil {
		t.Fatalf("Put: %v", err)
	}

	now = now.Add(30 * time.Minute)
	if _, err := s.Get(ctx, session.ID); err != nil {
		t.Fatalf("session expired too early: %v", err)
	}

	now = now.Add(31 * time.Minute)
	if _, err := s.Get(ctx, session.ID); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected expiry, got %v", err)
	}
}

func TestMemoryStorePutRefreshesTheTTL(t *testing.T) {
	s := NewMemoryStore(time.Hour)
	ctx := context.Background()

	now := time.Now()
	s.now = func() time.Time { return now }

	session := &Session{ID: uuid.New(), State: domain.NewConversationState("en")}
	if err := s.Put(ctx, session); err != nil {
		t.Fatalf("Put: %v", err)
	}

	now = now.Add(45 * time.Minute)
	if err := s.Put(ctx, session); err != nil {
		t.Fatalf("Put: %v", err)
	}

	now = now.Add(45 * time.Minute)
	if _, err := s.Get(ctx, session.ID); err != nil {
		t.Fatalf("Put did not refresh the TTL: %v", err)
	}
}

func TestMemoryStoreCopiesInsulateCallers(t *testing.T) {
	s := NewMemoryStore(time.Hour)
	ctx := context.Background()

	session := &Session{
		ID:       uuid.New(),
		State:    domain.NewConversationState("en"),
		Messages: []domain.Message{domain.AssistantMessage("welcome")},
	}
	if err := s.Put(ctx, session); err != nil {
		t.Fatalf("Put: %v", err)
	}

	// Mutating the caller's copy after Put must not leak into the store.
	session.Messages[0].Content = "tampered"

	got, err := s.Get(ctx, session.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Messages[0].Content != "welcome" {
		t.Fatal("store returned caller-mutated transcript")
	}
}

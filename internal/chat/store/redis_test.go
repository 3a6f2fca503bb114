package store

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"propertychat_backend/internal/chat/domain"
	"propertychat_backend/internal/chat/ports"
	"propertychat_backend/platform/apperr"
)

func newRedisTestStore(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStoreWithClient(client, ttl), mr
}

func TestRedisStoreRoundTrip(t *testing.T) {
	s, _ := newRedisTestStore(t, time.Hour)
	ctx := context.Background()

	session := &Session{
		ID:    uuid.New(),
		State: domain.NewConversationState("hi"),
		Messages: []domain.Message{
			domain.AssistantMessage("welcome"),
			domain.UserMessage("Rohan"),
		},
		Property: &ports.PropertySnapshot{Title: "88Royals"},
	}
	session.State.UserName = "Rohan"

	if err := s.Put(ctx, session); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := s.Get(ctx, session.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.State.UserName != "Rohan" || got.State.Language != "hi" {
		t.Fatalf("state not preserved: %+v", got.State)
	}
	if len(got.Messages) != 2 || got.Messages[1].Role != domain.RoleUser {
		t.Fatalf("transcript not preserved: %+v", got.Messages)
	}
	if got.Property == nil || got.Property.Title != "88Royals" {
		t.Fatalf("property snapshot not preserved: %+v", got.Property)
	}
}

func TestRedisStoreMissingSessionIsNotFound(t *testing.T) {
	s, _ := newRedisTestStore(t, time.Hour)

	_, err := s.Get(context.Background(), uuid.New())
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestRedisStoreSessionsExpire(t *testing.T) {
	s, mr := newRedisTestStore(t, time.Minute)
	ctx := context.Background()

	session := &Session{ID: uuid.New(), State: domain.NewConversationState("en")}
	if err := s.Put(ctx, session); err != nil {
		t.Fatalf("Put: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	if _, err := s.Get(ctx, session.ID); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected expiry, got %v", err)
	}
}

func TestRedisStoreDelete(t *testing.T) {
	s, _ := newRedisTestStore(t, time.Hour)
	ctx := context.Background()

	session := &Session{ID: uuid.New(), State: domain.NewConversationState("en")}
	if err := s.Put(ctx, session); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := s.Delete(ctx, session.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, session.ID); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

// Package service implements the conversation controller: it owns session
// state, routes each user turn, talks to the remote assistant, and drives
// lead collection through to submission.
package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"propertychat_backend/internal/chat/domain"
	"propertychat_backend/internal/chat/ports"
	"propertychat_backend/internal/chat/store"
	"propertychat_backend/internal/events"
	"propertychat_backend/platform/ai/assistant"
	"propertychat_backend/platform/apperr"
	"propertychat_backend/platform/config"
	"propertychat_backend/platform/logger"

	"github.com/google/uuid"
)

// interestedTurn is the fixed turn sent by ConfirmInterest.
const interestedTurn = "I am interested in this property"

// emitTimeout bounds the store round-trip of a deferred prompt emission.
const emitTimeout = 5 * time.Second

// Service is the conversation controller.
type Service struct {
	store      store.Store
	assistant  assistant.Client
	properties ports.PropertyProvider
	leads      ports.LeadSubmitter
	bundle     *domain.Bundle
	collector  *domain.Collector
	sched      Scheduler
	bus        events.Bus
	log        *logger.Logger

	defaultLanguage  string
	firstPromptDelay time.Duration
	nextPromptDelay  time.Duration

	// locks serializes all mutation of a session, including deferred
	// prompt emissions, so transcript appends stay strictly ordered.
	locks sync.Map
}

// New creates the controller service.
func New(
	sessions store.Store,
	assistantClient assistant.Client,
	properties ports.PropertyProvider,
	leads ports.LeadSubmitter,
	bundle *domain.Bundle,
	bus events.Bus,
	sched Scheduler,
	cfg config.ChatConfig,
	log *logger.Logger,
) *Service {
	return &Service{
		store:            sessions,
		assistant:        assistantClient,
		properties:       properties,
		leads:            leads,
		bundle:           bundle,
		collector:        domain.NewCollector(),
		sched:            sched,
		bus:              bus,
		log:              log,
		defaultLanguage:  cfg.GetDefaultLanguage(),
		firstPromptDelay: cfg.GetFirstPromptDelay(),
		nextPromptDelay:  cfg.GetNextPromptDelay(),
	}
}

func (s *Service) lockFor(id uuid.UUID) *sync.Mutex {
	mu, _ := s.locks.LoadOrStore(id, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// StartSession creates a session, fetches the property snapshot, and emits
// the localized welcome message. The controller then awaits the visitor's
// name.
func (s *Service) StartSession(ctx context.Context, language string) (*store.Session, error) {
	if language == "" {
		language = s.defaultLanguage
	}
	if !s.bundle.Supported(language) {
		language = domain.DefaultLanguage
	}

	session := &store.Session{
		ID:        uuid.New(),
		State:     domain.NewConversationState(language),
		CreatedAt: time.Now(),
	}

	if property, ok := s.properties.CurrentProperty(ctx); ok {
		session.Property = property
	}

	loc := s.bundle.Locale(language)
	s.appendAssistant(session, loc.Welcome)
	session.State.Phase = domain.PhaseAwaitingName

	if err := s.store.Put(ctx, session); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to create session", err)
	}

	s.bus.Publish(ctx, events.SessionStarted{
		BaseEvent: events.NewBaseEvent(),
		SessionID: session.ID,
		Language:  language,
	})
	s.log.Info("session started", "session_id", session.ID, "language", language)

	return session, nil
}

// GetSession returns the current session view.
func (s *Service) GetSession(ctx context.Context, id uuid.UUID) (*store.Session, error) {
	return s.store.Get(ctx, id)
}

// SendMessage processes one user turn end to end.
func (s *Service) SendMessage(ctx context.Context, id uuid.UUID, text string) (*store.Session, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperr.Validation("message must not be empty")
	}

	mu := s.lockFor(id)
	mu.Lock()
	defer mu.Unlock()

	session, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	return s.handleTurn(ctx, session, text)
}

// ConfirmInterest sends the fixed interest turn on the visitor's behalf.
func (s *Service) ConfirmInterest(ctx context.Context, id uuid.UUID) (*store.Session, error) {
	return s.SendMessage(ctx, id, interestedTurn)
}

// handleTurn routes a user turn. The caller holds the session lock.
func (s *Service) handleTurn(ctx context.Context, session *store.Session, text string) (*store.Session, error) {
	loc := s.bundle.Locale(session.State.Language)

	prior := len(session.Messages)
	s.appendUser(session, text)

	kind := domain.Classify(prior, session.State.CollectingLead, text, loc)
	s.log.ChatTurn(session.ID.String(), string(kind), session.State.CollectingLead)

	switch kind {
	case domain.TurnGreetingReprompt:
		s.appendAssistant(session, loc.NamePrompt)
		return session, s.save(ctx, session)

	case domain.TurnNameCapture:
		session.State.UserName = text
		session.State.Phase = domain.PhaseConversing
		return s.freeChat(ctx, session, text, loc)

	case domain.TurnLeadAnswer:
		outcome := s.collector.SubmitAnswer(&session.State, loc, text)
		if !outcome.Handled {
			// A lead answer outside an active run falls through to free chat.
			return s.freeChat(ctx, session, text, loc)
		}
		if outcome.Done {
			s.submitLead(ctx, session, loc, outcome.Record)
			return session, s.save(ctx, session)
		}
		session.Loading = true
		if err := s.save(ctx, session); err != nil {
			return nil, err
		}
		s.schedulePrompt(session.ID, outcome.NextPrompt, s.nextPromptDelay)
		return session, nil

	default:
		return s.freeChat(ctx, session, text, loc)
	}
}

// freeChat forwards the turn to the remote assistant and interprets the
// reply. Assistant failure is absorbed into a localized fallback message
// with no other side effects.
func (s *Service) freeChat(ctx context.Context, session *store.Session, text string, loc domain.Locale) (*store.Session, error) {
	userName := session.State.UserName
	if userName == "" {
		userName = text
	}

	reply, err := s.callAssistant(ctx, session, text, userName)
	if err != nil {
		s.log.AssistantError(session.ID.String(), err)
		s.appendAssistant(session, loc.Fallback)
		return session, s.save(ctx, session)
	}

	s.appendAssistant(session, reply.message)
	if len(reply.history) > 0 {
		session.History = reply.history
	}

	showProperty, startLead := s.bundle.DetectTriggers(reply.message)
	if showProperty {
		session.State.ShowPropertyInfo = true
	}

	var firstPrompt string
	if startLead && !session.State.CollectingLead && !session.State.LeadSubmitted {
		firstPrompt = s.collector.Start(&session.State, loc)
		session.State.Phase = domain.PhaseCollectingLead
		session.Loading = true
	}

	if err := s.save(ctx, session); err != nil {
		return nil, err
	}

	if firstPrompt != "" {
		s.bus.Publish(ctx, events.LeadCollectionStarted{
			BaseEvent: events.NewBaseEvent(),
			SessionID: session.ID,
			UserName:  session.State.UserName,
		})
		s.log.LeadEvent("collection_started", session.ID.String(), true)
		s.schedulePrompt(session.ID, firstPrompt, s.firstPromptDelay)
	}

	return session, nil
}

type assistantReply struct {
	message string
	history []domain.Message
}

func (s *Service) callAssistant(ctx context.Context, session *store.Session, text, userName string) (assistantReply, error) {
	if s.assistant == nil {
		return assistantReply{}, apperr.Unavailable("no assistant configured")
	}

	// The current turn travels in the message field, not in the history.
	previous := session.Messages[:len(session.Messages)-1]

	req := assistant.Request{
		Message:           text,
		Language:          session.State.Language,
		UserName:          userName,
		PreviousMessages:  toWire(previous),
		OneQuestionAtTime: true,
	}
	if session.Property != nil {
		req.Property = session.Property
	}

	resp, err := s.assistant.Chat(ctx, req)
	if err != nil {
		return assistantReply{}, err
	}

	return assistantReply{
		message: domain.TruncateToFirstQuestion(resp.Message),
		history: fromWire(resp.ChatHistory),
	}, nil
}

// submitLead hands the frozen record to the intake gateway and localizes
// the outcome. Collection has already terminated; failure never re-enters it.
func (s *Service) submitLead(ctx context.Context, session *store.Session, loc domain.Locale, record domain.LeadRecord) {
	input := ports.SubmitLeadInput{
		SessionID:  session.ID,
		Record:     record,
		Transcript: append([]domain.Message(nil), session.Messages...),
		Language:   session.State.Language,
		Property:   session.Property,
	}

	if err := s.leads.Submit(ctx, input); err != nil {
		s.log.LeadEvent("submitted", session.ID.String(), false)
		session.State.Phase = domain.PhaseConversing
		s.appendAssistant(session, loc.Apology)
		return
	}

	session.State.LeadSubmitted = true
	session.State.Phase = domain.PhaseCompleted
	s.appendAssistant(session, loc.ThankYouMessage(record.Name, record.Phone))
	s.log.LeadEvent("submitted", session.ID.String(), true)
}

// schedulePrompt defers a prompt emission by the pacing delay. The delay
// paces the conversation only; once scheduled the emission always runs,
// and turns arriving meanwhile queue behind it on the session lock.
func (s *Service) schedulePrompt(id uuid.UUID, prompt string, delay time.Duration) {
	s.sched.AfterFunc(delay, func() {
		s.emitPrompt(id, prompt)
	})
}

func (s *Service) emitPrompt(id uuid.UUID, prompt string) {
	ctx, cancel := context.WithTimeout(context.Background(), emitTimeout)
	defer cancel()

	mu := s.lockFor(id)
	mu.Lock()
	defer mu.Unlock()

	session, err := s.store.Get(ctx, id)
	if err != nil {
		s.log.Warn("deferred prompt dropped", "session_id", id, "error", err)
		return
	}

	s.appendAssistant(session, prompt)
	session.Loading = false

	if err := s.save(ctx, session); err != nil {
		s.log.Warn("deferred prompt not persisted", "session_id", id, "error", err)
	}
}

func (s *Service) appendUser(session *store.Session, text string) {
	msg := domain.UserMessage(text)
	session.Messages = append(session.Messages, msg)
	session.History = append(session.History, msg)
}

func (s *Service) appendAssistant(session *store.Session, text string) {
	msg := domain.AssistantMessage(text)
	session.Messages = append(session.Messages, msg)
	session.History = append(session.History, msg)
}

func (s *Service) save(ctx context.Context, session *store.Session) error {
	if err := s.store.Put(ctx, session); err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to save session", err)
	}
	return nil
}

func toWire(messages []domain.Message) []assistant.Message {
	out := make([]assistant.Message, len(messages))
	for i, m := range messages {
		out[i] = assistant.Message{Role: string(m.Role), Content: m.Content}
	}
	return out
}

func fromWire(messages []assistant.Message) []domain.Message {
	if len(messages) == 0 {
		return nil
	}
	out := make([]domain.Message, len(messages))
	for i, m := range messages {
		out[i] = domain.Message{Role: domain.Role(m.Role), Content: m.Content}
	}
	return out
}

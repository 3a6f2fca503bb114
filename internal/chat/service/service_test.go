package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"propertychat_backend/internal/chat/domain"
	"propertychat_backend/internal/chat/ports"
	"propertychat_backend/internal/chat/store"
	"propertychat_backend/platform/ai/assistant"
	"propertychat_backend/platform/apperr"
	"propertychat_backend/platform/events"
	"propertychat_backend/platform/logger"
)

// manualScheduler runs callbacks on explicit virtual-time advances.
type manualScheduler struct {
	mu      sync.Mutex
	now     time.Duration
	pending []scheduledCall
}

type scheduledCall struct {
	at time.Duration
	fn func()
}

func (m *manualScheduler) AfterFunc(d time.Duration, fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending = append(m.pending, scheduledCall{at: m.now + d, fn: fn})
}

// Advance moves virtual time forward and runs every callback that came due.
func (m *manualScheduler) Advance(d time.Duration) {
	m.mu.Lock()
	m.now += d
	var due, rest []scheduledCall
	for _, call := range m.pending {
		if call.at <= m.now {
			due = append(due, call)
		} else {
			rest = append(rest, call)
		}
	}
	m.pending = rest
	m.mu.Unlock()

	for _, call := range due {
		call.fn()
	}
}

func (m *manualScheduler) pendingCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}

// fakeAssistant replies from a script, or fails.
type fakeAssistant struct {
	mu       sync.Mutex
	replies  []string
	failWith error
	requests []assistant.Request
}

func (f *fakeAssistant) Chat(_ context.Context, req assistant.Request) (assistant.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if f.failWith != nil {
		return assistant.Response{}, f.failWith
	}
	reply := "Happy to help."
	if len(f.replies) > 0 {
		reply = f.replies[0]
		f.replies = f.replies[1:]
	}
	return assistant.Response{Message: reply}, nil
}

func (f *fakeAssistant) lastRequest(t *testing.T) assistant.Request {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.requests) == 0 {
		t.Fatal("assistant was never called")
	}
	return f.requests[len(f.requests)-1]
}

type fakeProvider struct {
	snapshot *ports.PropertySnapshot
}

func (f *fakeProvider) CurrentProperty(context.Context) (*ports.PropertySnapshot, bool) {
	if f.snapshot == nil {
		return nil, false
	}
	return f.snapshot, true
}

type fakeSubmitter struct {
	mu       sync.Mutex
	failWith error
	inputs   []ports.SubmitLeadInput
}

func (f *fakeSubmitter) Submit(_ context.Context, input ports.SubmitLeadInput) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	f.inputs = append(f.inputs, input)
	return nil
}

type testConfig struct{}

func (testConfig) GetDefaultLanguage() string         { return "en" }
func (testConfig) GetFirstPromptDelay() time.Duration { return time.Second }
func (testConfig) GetNextPromptDelay() time.Duration  { return 1500 * time.Millisecond }

type fixture struct {
	svc       *Service
	sched     *manualScheduler
	assistant *fakeAssistant
	submitter *fakeSubmitter
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	sched := &manualScheduler{}
	fa := &fakeAssistant{}
	fs := &fakeSubmitter{}
	log := logger.New("development")
	bus := events.NewInMemoryBus(log)

	provider := &fakeProvider{snapshot: &ports.PropertySnapshot{
		Title:   "88Royals",
		Details: ports.PropertyDetails{Price: "₹3.5 Crore", Area: "2800 sq ft"},
	}}

	svc := New(
		store.NewMemoryStore(time.Hour),
		fa,
		provider,
		fs,
		domain.MustLoadBundle(),
		bus,
		sched,
		testConfig{},
		log,
	)
	return &fixture{svc: svc, sched: sched, assistant: fa, submitter: fs}
}

func lastMessage(t *testing.T, session *store.Session) domain.Message {
	t.Helper()
	if len(session.Messages) == 0 {
		t.Fatal("transcript is empty")
	}
	return session.Messages[len(session.Messages)-1]
}

func TestStartSessionEmitsTheWelcomeFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	session, err := f.svc.StartSession(ctx, "")
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}

	if len(session.Messages) != 1 {
		t.Fatalf("expected exactly the welcome message, got %d", len(session.Messages))
	}
	if session.Messages[0].Role != domain.RoleAssistant {
		t.Fatal("welcome must come from the assistant role")
	}
	if !strings.Contains(session.Messages[0].Content, "property assistant") {
		t.Fatalf("unexpected welcome: %q", session.Messages[0].Content)
	}
	if session.State.Phase != domain.PhaseAwaitingName {
		t.Fatalf("expected awaiting_name, got %s", session.State.Phase)
	}
	if session.Property == nil || session.Property.Title != "88Royals" {
		t.Fatal("property snapshot not attached")
	}
}

func TestStartSessionHindi(t *testing.T) {
	f := newFixture(t)

	session, err := f.svc.StartSession(context.Background(), "hi")
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if !strings.Contains(session.Messages[0].Content, "नमस्ते") {
		t.Fatalf("expected hindi welcome, got %q", session.Messages[0].Content)
	}
}

func TestStartSessionUnknownLanguageFallsBack(t *testing.T) {
	f := newFixture(t)

	session, err := f.svc.StartSession(context.Background(), "fr")
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if session.State.Language != "en" {
		t.Fatalf("expected fallback to en, got %q", session.State.Language)
	}
}

func TestGreetingIsRepromptedNotStoredAsName(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	session, _ := f.svc.StartSession(ctx, "en")
	session, err := f.svc.SendMessage(ctx, session.ID, "hello")
	if err != nil {
		t.Fatalf("SendMessage: %v", err)
	}

	if session.State.UserName != "" {
		t.Fatalf("greeting stored as name: %q", session.State.UserName)
	}
	if got := lastMessage(t, session).Content; got != "Nice to meet you! What should I call you?" {
		t.Fatalf("expected name reprompt, got %q", got)
	}
	if len(f.assistant.requests) != 0 {
		t.Fatal("greeting reprompt must not reach the assistant")
	}
}

func TestNameCaptureSetsTheNameAndForwardsTheTurn(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	session, _ := f.svc.StartSession(ctx, "en")
	session, err := f.svc.SendMessage(ctx, session.ID, "Rohan")
	if err != nil {
		t.Fatalf("SendMessage: %v", err)
	}

	if session.State.UserName != "Rohan" {
		t.Fatalf("name not captured: %q", session.State.UserName)
	}
	if session.State.Phase != domain.PhaseConversing {
		t.Fatalf("expected conversing, got %s", session.State.Phase)
	}

	req := f.assistant.lastRequest(t)
	if req.Message != "Rohan" || req.UserName != "Rohan" {
		t.Fatalf("unexpected assistant request: %+v", req)
	}
	// The current turn travels in the message field only.
	if len(req.PreviousMessages) != 1 {
		t.Fatalf("expected only the welcome in history, got %d", len(req.PreviousMessages))
	}
}

func TestAssistantRepliesAreTruncatedToOneQuestion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.assistant.replies = []string{"What is your budget? When do you plan to buy?"}

	session, _ := f.svc.StartSession(ctx, "en")
	session, err := f.svc.SendMessage(ctx, session.ID, "Rohan")
	if err != nil {
		t.Fatalf("SendMessage: %v", err)
	}

	if got := lastMessage(t, session).Content; got != "What is your budget?" {
		t.Fatalf("reply not truncated: %q", got)
	}
}

func TestAssistantFailureFallsBackDeterministically(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	session, _ := f.svc.StartSession(ctx, "en")
	f.svc.SendMessage(ctx, session.ID, "Rohan")

	f.assistant.failWith = errors.New("upstream down")
	session, err := f.svc.SendMessage(ctx, session.ID, "tell me about the flat")
	if err != nil {
		t.Fatalf("SendMessage: %v", err)
	}

	if got := lastMessage(t, session).Content; !strings.Contains(got, "trouble connecting") {
		t.Fatalf("expected fallback message, got %q", got)
	}
	if session.State.CollectingLead || session.Loading {
		t.Fatal("assistant failure must not change controller flags")
	}

	// The conversation continues normally once the assistant recovers.
	f.assistant.failWith = nil
	if _, err := f.svc.SendMessage(ctx, session.ID, "still there?"); err != nil {
		t.Fatalf("SendMessage after recovery: %v", err)
	}
}

func TestShowPropertyTriggerRaisesTheFlag(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.assistant.replies = []string{"Sure, let me show property details."}

	session, _ := f.svc.StartSession(ctx, "en")
	session, err := f.svc.SendMessage(ctx, session.ID, "Rohan")
	if err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	if !session.State.ShowPropertyInfo {
		t.Fatal("show property flag not raised")
	}
}

func qualify(t *testing.T, f *fixture) (*store.Session, []string) {
	t.Helper()
	ctx := context.Background()

	session, err := f.svc.StartSession(ctx, "en")
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if _, err := f.svc.SendMessage(ctx, session.ID, "Rohan"); err != nil {
		t.Fatalf("SendMessage: %v", err)
	}

	f.assistant.replies = []string{"Great! I just need your details to proceed."}
	latest, err := f.svc.SendMessage(ctx, session.ID, "I want to buy a flat")
	if err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	if !latest.State.CollectingLead {
		t.Fatal("trigger did not start collection")
	}
	if !latest.Loading {
		t.Fatal("loading flag not raised before the paced prompt")
	}

	// First prompt is paced by one second.
	f.sched.Advance(time.Second)
	latest, err = f.svc.GetSession(ctx, session.ID)
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if got := lastMessage(t, latest).Content; got != "Rohan, your contact number please?" {
		t.Fatalf("expected personalized phone prompt, got %q", got)
	}
	if latest.Loading {
		t.Fatal("loading flag not cleared after emission")
	}

	answers := []string{
		"9876543210",
		"4 members",
		"Textile business",
		"Vesu",
		"₹3 Crore - ₹4 Crore",
		"Within 3 months",
	}
	return latest, answers
}

func TestFullQualificationFlowSubmitsTheLead(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	session, answers := qualify(t, f)

	for i, answer := range answers {
		latest, err := f.svc.SendMessage(ctx, session.ID, answer)
		if err != nil {
			t.Fatalf("answer %d: %v", i, err)
		}
		if i < len(answers)-1 {
			if !latest.Loading {
				t.Fatalf("loading not raised after answer %d", i)
			}
			f.sched.Advance(1500 * time.Millisecond)
		}
	}

	latest, err := f.svc.GetSession(ctx, session.ID)
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}

	if !latest.State.LeadSubmitted {
		t.Fatal("lead not marked submitted")
	}
	if latest.State.Phase != domain.PhaseCompleted {
		t.Fatalf("expected completed, got %s", latest.State.Phase)
	}

	thanks := lastMessage(t, latest).Content
	if !strings.Contains(thanks, "Rohan") || !strings.Contains(thanks, "9876543210") {
		t.Fatalf("thank-you not personalized: %q", thanks)
	}

	if len(f.submitter.inputs) != 1 {
		t.Fatalf("expected one submission, got %d", len(f.submitter.inputs))
	}
	input := f.submitter.inputs[0]
	if input.Record.Name != "Rohan" || input.Record.Phone != "9876543210" {
		t.Fatalf("record mismatch: %+v", input.Record)
	}
	if input.Record.Budget != "₹3 Crore - ₹4 Crore" || input.Record.Timeline != "Within 3 months" {
		t.Fatalf("record mismatch: %+v", input.Record)
	}
	if input.Property == nil || input.Property.Title != "88Royals" {
		t.Fatal("submission missing the property digest")
	}
	if len(input.Transcript) == 0 {
		t.Fatal("submission missing the transcript")
	}
}

func TestSubmissionFailureApologizesAndStops(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	session, answers := qualify(t, f)
	f.submitter.failWith = errors.New("intake down")

	for i, answer := range answers {
		if _, err := f.svc.SendMessage(ctx, session.ID, answer); err != nil {
			t.Fatalf("answer %d: %v", i, err)
		}
		if i < len(answers)-1 {
			f.sched.Advance(1500 * time.Millisecond)
		}
	}

	latest, err := f.svc.GetSession(ctx, session.ID)
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}

	if latest.State.LeadSubmitted {
		t.Fatal("failed submission must not mark the lead submitted")
	}
	if latest.State.CollectingLead {
		t.Fatal("collection must not restart after a failed submission")
	}
	if latest.State.Phase != domain.PhaseConversing {
		t.Fatalf("expected conversing after failed submission, got %s", latest.State.Phase)
	}
	if got := lastMessage(t, latest).Content; !strings.Contains(got, "error submitting") {
		t.Fatalf("expected apology, got %q", got)
	}
}

func TestContactDetailsReplyStartsCollection(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	session, _ := f.svc.StartSession(ctx, "en")
	if _, err := f.svc.SendMessage(ctx, session.ID, "Rohan"); err != nil {
		t.Fatalf("SendMessage: %v", err)
	}

	f.assistant.replies = []string{"We'll need your contact details to proceed"}
	latest, err := f.svc.SendMessage(ctx, session.ID, "I want to buy a flat")
	if err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	if !latest.State.CollectingLead {
		t.Fatal("contact-details reply did not start collection")
	}
}

func TestCollectionNeverRestartsAfterSubmission(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	session, answers := qualify(t, f)
	for i, answer := range answers {
		if _, err := f.svc.SendMessage(ctx, session.ID, answer); err != nil {
			t.Fatalf("answer %d: %v", i, err)
		}
		if i < len(answers)-1 {
			f.sched.Advance(1500 * time.Millisecond)
		}
	}

	// A second trigger reply must not re-enter collection.
	f.assistant.replies = []string{"Of course, I just need your details again."}
	latest, err := f.svc.SendMessage(ctx, session.ID, "one more thing")
	if err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	if latest.State.CollectingLead {
		t.Fatal("collection restarted after submission")
	}
	if f.sched.pendingCount() != 0 {
		t.Fatal("no prompt should be scheduled after submission")
	}
	if len(f.submitter.inputs) != 1 {
		t.Fatalf("lead submitted more than once: %d", len(f.submitter.inputs))
	}
}

func TestConfirmInterestSendsTheFixedTurn(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	session, _ := f.svc.StartSession(ctx, "en")
	f.svc.SendMessage(ctx, session.ID, "Rohan")

	if _, err := f.svc.ConfirmInterest(ctx, session.ID); err != nil {
		t.Fatalf("ConfirmInterest: %v", err)
	}
	if got := f.assistant.lastRequest(t).Message; got != "I am interested in this property" {
		t.Fatalf("unexpected interest turn: %q", got)
	}
}

func TestSendMessageRejectsBlankTurns(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	session, _ := f.svc.StartSession(ctx, "en")
	_, err := f.svc.SendMessage(ctx, session.ID, "   ")
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSendMessageToUnknownSessionIsNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.SendMessage(context.Background(), uuid.New(), "hello")
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

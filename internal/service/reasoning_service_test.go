package service

import (
	"context"
	"testing"

	"scireason-be/internal/constant"
	"scireason-be/internal/dto"
	"scireason-be/internal/repository/memory"
	"scireason-be/pkg/llm"
	"scireason-be/pkg/reasoning/step"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// scriptedProvider replays responses in call order, repeating the last one.
type scriptedProvider struct {
	responses []string
	calls     int
}

func (f *scriptedProvider) Chat(_ context.Context, _ []llm.Message, _ ...llm.Option) (string, error) {
	idx := f.calls
	if idx >= len(f.responses) {
		idx = len(f.responses) - 1
	}
	f.calls++
	return f.responses[idx], nil
}

func (f *scriptedProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return f.Chat(ctx, nil)
}

func newTestService(responses ...string) IReasoningService {
	store := memory.NewLocalSessionStore()
	processor := step.NewProcessor(&scriptedProvider{responses: responses}, nil)
	return NewReasoningService(store, processor, memory.NewLockRegistry(), nil, nil)
}

const acceptedStep0 = `{"valid": true, "summary": "Analyzable research question"}`

func createRequest() *dto.CreateSessionRequest {
	return &dto.CreateSessionRequest{
		ProblemStatement: "Does intermittent fasting affect insulin sensitivity?",
		Mode:             constant.SessionModeEvidence,
	}
}

func TestCreateSessionProcessesStepZero(t *testing.T) {
	svc := newTestService(acceptedStep0)

	session, result, err := svc.CreateSession(context.Background(), uuid.Nil, createRequest())

	assert.NoError(t, err)
	assert.Equal(t, step.StatusSuccess, result.Status)
	assert.Equal(t, constant.SessionStatusInProgress, session.Status)
	assert.Equal(t, 1, session.CurrentStep)
	assert.Equal(t, []int{0}, session.CompletedSteps)
	assert.Contains(t, session.StepData, "step0")
}

func TestCreateSessionRejectedQuestionStops(t *testing.T) {
	svc := newTestService(`{"valid": false, "reason": "medical advice", "suggestion": "Rephrase as a research question"}`)

	session, result, err := svc.CreateSession(context.Background(), uuid.Nil, createRequest())

	assert.NoError(t, err)
	assert.Equal(t, step.StatusStop, result.Status)
	assert.Equal(t, constant.SessionStatusStopped, session.Status)
	assert.Equal(t, 0, session.CurrentStep)
	assert.Empty(t, session.CompletedSteps)
	if assert.NotNil(t, session.StopReason) {
		assert.Equal(t, step.ReasonSafetyConstraint, *session.StopReason)
	}
}

func TestEvidenceSessionCompletesAtBoundary(t *testing.T) {
	svc := newTestService(acceptedStep0, `{"analysis": "fine"}`)
	ctx := context.Background()

	session, _, err := svc.CreateSession(ctx, uuid.Nil, createRequest())
	assert.NoError(t, err)

	// Steps 1 through 6; the seventh success must complete the session.
	for i := 1; i < constant.MaxStepsEvidence; i++ {
		var result *step.Result
		session, result, err = svc.ContinueSession(ctx, uuid.Nil, session.Id)
		assert.NoError(t, err)
		assert.Equal(t, step.StatusSuccess, result.Status)
	}

	assert.Equal(t, constant.SessionStatusCompleted, session.Status)
	assert.Equal(t, constant.MaxStepsEvidence, session.CurrentStep)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6}, session.CompletedSteps)

	// Completed sessions refuse further steps.
	_, _, err = svc.ContinueSession(ctx, uuid.Nil, session.Id)
	assert.ErrorIs(t, err, ErrSessionTerminal)
}

func TestContinuePersistsEvidenceCards(t *testing.T) {
	svc := newTestService(
		acceptedStep0,
		`{"problemDefinition": {"condition": "x", "unmetNeed": "y"}}`,
		`{"evidenceCards": [{"id": "EV001", "source": "a"}, {"id": "EV002", "source": "b"}]}`,
	)
	ctx := context.Background()

	session, _, err := svc.CreateSession(ctx, uuid.Nil, createRequest())
	assert.NoError(t, err)

	session, _, err = svc.ContinueSession(ctx, uuid.Nil, session.Id) // step 1
	assert.NoError(t, err)
	assert.Empty(t, session.EvidenceCardIds)

	session, _, err = svc.ContinueSession(ctx, uuid.Nil, session.Id) // step 2
	assert.NoError(t, err)
	assert.Equal(t, []string{session.Id + "_EV001", session.Id + "_EV002"}, session.EvidenceCardIds)

	card, err := svc.GetEvidenceCard(ctx, session.EvidenceCardIds[0])
	assert.NoError(t, err)
	assert.Equal(t, session.Id, card.SessionId)
	assert.Equal(t, "a", card.Payload["source"])
}

func TestRoadmapSessionMintsRoadmapCard(t *testing.T) {
	svc := newTestService(acceptedStep0, `{"roadmapCard": {"id": "RM001", "objective": "validate mechanism", "phases": [{"phaseId": "P1", "decision": "proceed"}]}, "summary": "plan"}`)
	ctx := context.Background()

	req := createRequest()
	req.Mode = constant.SessionModeRoadmap
	session, _, err := svc.CreateSession(ctx, uuid.Nil, req)
	assert.NoError(t, err)

	for i := 1; i < constant.MaxStepsRoadmap; i++ {
		session, _, err = svc.ContinueSession(ctx, uuid.Nil, session.Id)
		assert.NoError(t, err)
	}

	assert.Equal(t, constant.SessionStatusCompleted, session.Status)
	if assert.NotNil(t, session.RoadmapCardId) {
		assert.Equal(t, session.Id+"_RM001", *session.RoadmapCardId)
		card, err := svc.GetRoadmapCard(ctx, *session.RoadmapCardId)
		assert.NoError(t, err)
		assert.Equal(t, session.Id, card.SessionId)
		assert.Equal(t, session.Id+"_RM001", card.Payload["id"])
		assert.Equal(t, "validate mechanism", card.Payload["objective"])
	}
}

func TestContinueStopFreezesPointer(t *testing.T) {
	svc := newTestService(acceptedStep0, "not json at all")
	ctx := context.Background()

	session, _, err := svc.CreateSession(ctx, uuid.Nil, createRequest())
	assert.NoError(t, err)

	session, result, err := svc.ContinueSession(ctx, uuid.Nil, session.Id)
	assert.NoError(t, err)
	assert.Equal(t, step.StatusStop, result.Status)
	assert.Equal(t, step.ReasonMissingEvidence, result.Reason)

	assert.Equal(t, constant.SessionStatusStopped, session.Status)
	assert.Equal(t, 1, session.CurrentStep)
	assert.Equal(t, []int{0}, session.CompletedSteps)

	// The STOP result itself is recorded under the stalled step.
	stopRecord, ok := session.StepData["step1"].(map[string]any)
	if assert.True(t, ok) {
		assert.Equal(t, step.StatusStop, stopRecord["status"])
	}
}

func TestContinueRejectsConcurrentStep(t *testing.T) {
	store := memory.NewLocalSessionStore()
	locks := memory.NewLockRegistry()
	processor := step.NewProcessor(&scriptedProvider{responses: []string{acceptedStep0}}, nil)
	svc := NewReasoningService(store, processor, locks, nil, nil)

	session, _, err := svc.CreateSession(context.Background(), uuid.Nil, createRequest())
	assert.NoError(t, err)

	// Simulate an in-flight step holding the session lock.
	assert.True(t, locks.TryAcquire(session.Id))
	_, _, err = svc.ContinueSession(context.Background(), uuid.Nil, session.Id)
	assert.ErrorIs(t, err, ErrSessionBusy)

	locks.Release(session.Id)
	_, _, err = svc.ContinueSession(context.Background(), uuid.Nil, session.Id)
	assert.NoError(t, err)
}

func TestSessionOwnership(t *testing.T) {
	svc := newTestService(acceptedStep0)
	ctx := context.Background()

	owner := uuid.New()
	session, _, err := svc.CreateSession(ctx, owner, createRequest())
	assert.NoError(t, err)

	_, err = svc.GetSession(ctx, uuid.New(), session.Id)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	got, err := svc.GetSession(ctx, owner, session.Id)
	assert.NoError(t, err)
	assert.Equal(t, session.Id, got.Id)
}

func TestDeleteSession(t *testing.T) {
	svc := newTestService(acceptedStep0)
	ctx := context.Background()

	session, _, err := svc.CreateSession(ctx, uuid.Nil, createRequest())
	assert.NoError(t, err)

	assert.NoError(t, svc.DeleteSession(ctx, uuid.Nil, session.Id))
	_, err = svc.GetSession(ctx, uuid.Nil, session.Id)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	assert.ErrorIs(t, svc.DeleteSession(ctx, uuid.Nil, session.Id), ErrSessionNotFound)
}

func TestListSessionCards(t *testing.T) {
	svc := newTestService(
		acceptedStep0,
		`{"problemDefinition": {"condition": "x"}}`,
		`{"evidenceCards": [{"id": "EV001", "source": "a"}, {"id": "EV002", "source": "b"}]}`,
	)
	ctx := context.Background()

	session, _, err := svc.CreateSession(ctx, uuid.Nil, createRequest())
	assert.NoError(t, err)
	for i := 0; i < 2; i++ {
		session, _, err = svc.ContinueSession(ctx, uuid.Nil, session.Id)
		assert.NoError(t, err)
	}

	cards, err := svc.ListSessionCards(ctx, uuid.Nil, session.Id)
	assert.NoError(t, err)
	if assert.Len(t, cards.EvidenceCards, 2) {
		assert.Equal(t, session.Id+"_EV001", cards.EvidenceCards[0].Id)
		assert.Equal(t, session.Id, cards.EvidenceCards[0].SessionId)
	}
	assert.Empty(t, cards.HypothesisCards)

	_, err = svc.ListSessionCards(ctx, uuid.New(), session.Id)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestListSessionsScopedToUser(t *testing.T) {
	svc := newTestService(acceptedStep0)
	ctx := context.Background()

	owner := uuid.New()
	_, _, err := svc.CreateSession(ctx, owner, createRequest())
	assert.NoError(t, err)
	_, _, err = svc.CreateSession(ctx, uuid.Nil, createRequest())
	assert.NoError(t, err)

	mine, err := svc.ListSessions(ctx, owner, 0, 0)
	assert.NoError(t, err)
	assert.Len(t, mine, 1)

	local, err := svc.ListSessions(ctx, uuid.Nil, 0, 0)
	assert.NoError(t, err)
	assert.Len(t, local, 1)
}

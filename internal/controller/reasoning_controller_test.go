package controller

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"scireason-be/internal/dto"
	"scireason-be/pkg/reasoning/step"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeReasoningService struct {
	processParams *step.Params
	processResult *step.Result
}

func (f *fakeReasoningService) CreateSession(_ context.Context, _ uuid.UUID, _ *dto.CreateSessionRequest) (*dto.SessionResponse, *step.Result, error) {
	return nil, nil, nil
}

func (f *fakeReasoningService) ContinueSession(_ context.Context, _ uuid.UUID, _ string) (*dto.SessionResponse, *step.Result, error) {
	return nil, nil, nil
}

func (f *fakeReasoningService) GetSession(_ context.Context, _ uuid.UUID, _ string) (*dto.SessionResponse, error) {
	return nil, nil
}

func (f *fakeReasoningService) ListSessions(_ context.Context, _ uuid.UUID, _, _ int) ([]*dto.SessionListItemResponse, error) {
	return nil, nil
}

func (f *fakeReasoningService) ListSessionCards(_ context.Context, _ uuid.UUID, _ string) (*dto.SessionCardsResponse, error) {
	return nil, nil
}

func (f *fakeReasoningService) DeleteSession(_ context.Context, _ uuid.UUID, _ string) error {
	return nil
}

func (f *fakeReasoningService) ProcessStep(_ context.Context, params step.Params) *step.Result {
	f.processParams = &params
	return f.processResult
}

func (f *fakeReasoningService) GetEvidenceCard(_ context.Context, _ string) (*dto.CardResponse, error) {
	return nil, nil
}

func (f *fakeReasoningService) GetHypothesisCard(_ context.Context, _ string) (*dto.CardResponse, error) {
	return nil, nil
}

func (f *fakeReasoningService) GetRoadmapCard(_ context.Context, _ string) (*dto.CardResponse, error) {
	return nil, nil
}

func (f *fakeReasoningService) WorkflowSteps() []dto.WorkflowStepResponse {
	return nil
}

func newProcessStepApp(result *step.Result) (*fiber.App, *fakeReasoningService) {
	fake := &fakeReasoningService{processResult: result}
	app := fiber.New()
	NewReasoningController(fake).RegisterRoutes(app.Group("/api"))
	return app, fake
}

func postProcessStep(t *testing.T, app *fiber.App, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest("POST", "/api/reasoning/process-step", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	assert.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]any
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp.StatusCode, decoded
}

func TestProcessStepBindsRequest(t *testing.T) {
	app, fake := newProcessStepApp(&step.Result{Status: step.StatusSuccess, StepID: "step3"})

	status, body := postProcessStep(t, app, `{
		"sessionId": "session_1",
		"currentStep": 3,
		"problemStatement": "Does X affect Y?",
		"mode": "evidence"
	}`)

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, step.StatusSuccess, body["status"])
	if assert.NotNil(t, fake.processParams) {
		assert.Equal(t, "session_1", fake.processParams.SessionID)
		assert.Equal(t, 3, fake.processParams.CurrentStep)
		assert.NotNil(t, fake.processParams.PreviousStepData)
	}
}

func TestProcessStepValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing session id", `{"currentStep": 1, "problemStatement": "Does X affect Y?", "mode": "evidence"}`},
		{"missing problem statement", `{"sessionId": "session_1", "currentStep": 1, "mode": "evidence"}`},
		{"unknown mode", `{"sessionId": "session_1", "currentStep": 1, "problemStatement": "Does X affect Y?", "mode": "hybrid"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, fake := newProcessStepApp(&step.Result{Status: step.StatusSuccess})

			status, body := postProcessStep(t, app, tt.body)

			assert.Equal(t, fiber.StatusBadRequest, status)
			assert.Equal(t, "Missing required parameters", body["error"])
			assert.Nil(t, fake.processParams)
		})
	}
}

func TestProcessStepMalformedBodyIsStop(t *testing.T) {
	app, fake := newProcessStepApp(&step.Result{Status: step.StatusSuccess})

	status, body := postProcessStep(t, app, `{"sessionId": `)

	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, step.StatusStop, body["status"])
	assert.Equal(t, step.ReasonSafetyConstraint, body["reason"])
	assert.Equal(t, "step0", body["stepId"])
	assert.Nil(t, fake.processParams)
}

func TestProcessStepOutOfRangeStepReachesProcessor(t *testing.T) {
	app, fake := newProcessStepApp(&step.Result{
		Status: step.StatusStop,
		StepID: "step12",
		Reason: step.ReasonInvalidStep,
	})

	status, body := postProcessStep(t, app, `{
		"sessionId": "session_1",
		"currentStep": 12,
		"problemStatement": "Does X affect Y?",
		"mode": "evidence"
	}`)

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, step.ReasonInvalidStep, body["reason"])
	if assert.NotNil(t, fake.processParams) {
		assert.Equal(t, 12, fake.processParams.CurrentStep)
	}
}

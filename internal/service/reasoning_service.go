package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"scireason-be/internal/constant"
	"scireason-be/internal/dto"
	"scireason-be/internal/entity"
	"scireason-be/internal/pkg/logger"
	"scireason-be/internal/repository/contract"
	"scireason-be/internal/repository/memory"
	"scireason-be/pkg/reasoning/step"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionTerminal = errors.New("session is already completed or stopped")
	ErrSessionBusy     = errors.New("a step is already being processed for this session")
	ErrCardNotFound    = errors.New("card not found")
)

type IReasoningService interface {
	// CreateSession creates the session and synchronously processes step 0,
	// so the caller gets the validity gate's verdict in the same call.
	CreateSession(ctx context.Context, userId uuid.UUID, req *dto.CreateSessionRequest) (*dto.SessionResponse, *step.Result, error)
	ContinueSession(ctx context.Context, userId uuid.UUID, sessionId string) (*dto.SessionResponse, *step.Result, error)
	GetSession(ctx context.Context, userId uuid.UUID, sessionId string) (*dto.SessionResponse, error)
	// ListSessions pages with limit/offset; a limit <= 0 returns everything.
	ListSessions(ctx context.Context, userId uuid.UUID, limit, offset int) ([]*dto.SessionListItemResponse, error)
	// ListSessionCards returns every evidence and hypothesis card the
	// session has minted so far.
	ListSessionCards(ctx context.Context, userId uuid.UUID, sessionId string) (*dto.SessionCardsResponse, error)
	DeleteSession(ctx context.Context, userId uuid.UUID, sessionId string) error

	// ProcessStep runs one step statelessly: nothing is persisted, the
	// caller carries the accumulated step data between calls.
	ProcessStep(ctx context.Context, params step.Params) *step.Result

	GetEvidenceCard(ctx context.Context, id string) (*dto.CardResponse, error)
	GetHypothesisCard(ctx context.Context, id string) (*dto.CardResponse, error)
	GetRoadmapCard(ctx context.Context, id string) (*dto.CardResponse, error)
	WorkflowSteps() []dto.WorkflowStepResponse
}

type reasoningService struct {
	store     contract.SessionStore
	processor *step.Processor
	locks     *memory.LockRegistry
	publisher message.Publisher
	log       logger.ILogger
}

func NewReasoningService(
	store contract.SessionStore,
	processor *step.Processor,
	locks *memory.LockRegistry,
	publisher message.Publisher,
	log logger.ILogger,
) IReasoningService {
	return &reasoningService{
		store:     store,
		processor: processor,
		locks:     locks,
		publisher: publisher,
		log:       log,
	}
}

var (
	sessionIdMu   sync.Mutex
	lastSessionId int64
)

// newSessionId keeps the session_<unix-ms> shape but stays strictly
// monotonic, so two sessions created in the same millisecond get distinct
// ids.
func newSessionId() string {
	sessionIdMu.Lock()
	defer sessionIdMu.Unlock()
	ms := time.Now().UnixMilli()
	if ms <= lastSessionId {
		ms = lastSessionId + 1
	}
	lastSessionId = ms
	return fmt.Sprintf("session_%d", ms)
}

func (s *reasoningService) CreateSession(ctx context.Context, userId uuid.UUID, req *dto.CreateSessionRequest) (*dto.SessionResponse, *step.Result, error) {
	session := &entity.ReasoningSession{
		Id:                newSessionId(),
		UserId:            userId,
		ProblemStatement:  req.ProblemStatement,
		Mode:              req.Mode,
		Status:            constant.SessionStatusInProgress,
		CurrentStep:       0,
		CompletedSteps:    []int{},
		StepData:          map[string]any{},
		EvidenceCardIds:   []string{},
		HypothesisCardIds: []string{},
	}

	result := s.processor.Process(ctx, step.Params{
		SessionID:        session.Id,
		CurrentStep:      0,
		ProblemStatement: session.ProblemStatement,
		Mode:             session.Mode,
		PreviousStepData: session.StepData,
	})

	if err := s.applyResult(ctx, session, result); err != nil {
		return nil, nil, err
	}
	if err := s.store.CreateSession(ctx, session); err != nil {
		return nil, nil, err
	}

	s.notifyStepCompleted(session.Id, result)
	return sessionToResponse(session), result, nil
}

func (s *reasoningService) ContinueSession(ctx context.Context, userId uuid.UUID, sessionId string) (*dto.SessionResponse, *step.Result, error) {
	if !s.locks.TryAcquire(sessionId) {
		return nil, nil, ErrSessionBusy
	}
	defer s.locks.Release(sessionId)

	session, err := s.ownedSession(ctx, userId, sessionId)
	if err != nil {
		return nil, nil, err
	}
	if session.Terminal() {
		return nil, nil, ErrSessionTerminal
	}

	result := s.processor.Process(ctx, step.Params{
		SessionID:        session.Id,
		CurrentStep:      session.CurrentStep,
		ProblemStatement: session.ProblemStatement,
		Mode:             session.Mode,
		PreviousStepData: session.StepData,
	})

	if err := s.applyResult(ctx, session, result); err != nil {
		return nil, nil, err
	}
	if err := s.store.UpdateSession(ctx, session); err != nil {
		return nil, nil, err
	}

	s.notifyStepCompleted(session.Id, result)
	return sessionToResponse(session), result, nil
}

// applyResult advances or halts the session according to one step result.
// The step pointer moves only on SUCCESS; a STOP freezes it so the stalled
// step is visible in the record.
func (s *reasoningService) applyResult(ctx context.Context, session *entity.ReasoningSession, result *step.Result) error {
	stepIndex := session.CurrentStep

	if result.Status != step.StatusSuccess {
		session.StepData[result.StepID] = resultAsMap(result)
		reason := result.Reason
		if reason == "" {
			reason = constant.GenericStopReason
		}
		session.StopReason = &reason
		session.Status = constant.SessionStatusStopped
		return nil
	}

	session.StepData[result.StepID] = result.Data

	if err := s.persistCards(ctx, session, result); err != nil {
		return err
	}

	if !session.HasCompleted(stepIndex) {
		session.CompletedSteps = append(session.CompletedSteps, stepIndex)
	}
	session.CurrentStep = stepIndex + 1

	if session.CurrentStep >= constant.MaxSteps(session.Mode) {
		session.Status = constant.SessionStatusCompleted
	}
	return nil
}

func (s *reasoningService) persistCards(ctx context.Context, session *entity.ReasoningSession, result *step.Result) error {
	if len(result.EvidenceCards) > 0 {
		cards := make([]*entity.EvidenceCard, len(result.EvidenceCards))
		for i, payload := range result.EvidenceCards {
			id, _ := payload["id"].(string)
			cards[i] = &entity.EvidenceCard{Id: id, SessionId: session.Id, Payload: payload}
			session.EvidenceCardIds = append(session.EvidenceCardIds, id)
		}
		if err := s.store.SaveEvidenceCards(ctx, cards); err != nil {
			return err
		}
	}

	if len(result.HypothesisCards) > 0 {
		cards := make([]*entity.HypothesisCard, len(result.HypothesisCards))
		for i, payload := range result.HypothesisCards {
			id, _ := payload["id"].(string)
			cards[i] = &entity.HypothesisCard{Id: id, SessionId: session.Id, Payload: payload}
			session.HypothesisCardIds = append(session.HypothesisCardIds, id)
		}
		if err := s.store.SaveHypothesisCards(ctx, cards); err != nil {
			return err
		}
	}

	// The final step's roadmapCard becomes the session's single roadmap
	// card. The typed decode gates on shape; a malformed payload leaves the
	// session without a card rather than minting garbage.
	if result.StepID == "step9" {
		if _, ok := entity.DecodeStepField[entity.RoadmapPayload](session.StepData, "step9", "roadmapCard"); ok {
			payload, _ := result.Data["roadmapCard"].(map[string]any)
			cardId := fmt.Sprintf("%s_RM001", session.Id)
			stored := make(map[string]any, len(payload))
			for k, v := range payload {
				stored[k] = v
			}
			stored["id"] = cardId
			card := &entity.RoadmapCard{Id: cardId, SessionId: session.Id, Payload: stored}
			if err := s.store.SaveRoadmapCard(ctx, card); err != nil {
				return err
			}
			session.RoadmapCardId = &cardId
		}
	}
	return nil
}

func (s *reasoningService) ProcessStep(ctx context.Context, params step.Params) *step.Result {
	return s.processor.Process(ctx, params)
}

func (s *reasoningService) GetSession(ctx context.Context, userId uuid.UUID, sessionId string) (*dto.SessionResponse, error) {
	session, err := s.ownedSession(ctx, userId, sessionId)
	if err != nil {
		return nil, err
	}
	return sessionToResponse(session), nil
}

func (s *reasoningService) ListSessions(ctx context.Context, userId uuid.UUID, limit, offset int) ([]*dto.SessionListItemResponse, error) {
	sessions, err := s.store.ListSessionsByUser(ctx, userId, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.SessionListItemResponse, len(sessions))
	for i, sess := range sessions {
		out[i] = &dto.SessionListItemResponse{
			Id:               sess.Id,
			ProblemStatement: sess.ProblemStatement,
			Mode:             sess.Mode,
			Status:           sess.Status,
			CurrentStep:      sess.CurrentStep,
			UpdatedAt:        sess.UpdatedAt,
		}
	}
	return out, nil
}

func (s *reasoningService) ListSessionCards(ctx context.Context, userId uuid.UUID, sessionId string) (*dto.SessionCardsResponse, error) {
	if _, err := s.ownedSession(ctx, userId, sessionId); err != nil {
		return nil, err
	}
	evidence, err := s.store.ListEvidenceCardsBySession(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	hypotheses, err := s.store.ListHypothesisCardsBySession(ctx, sessionId)
	if err != nil {
		return nil, err
	}

	out := &dto.SessionCardsResponse{
		EvidenceCards:   make([]*dto.CardResponse, len(evidence)),
		HypothesisCards: make([]*dto.CardResponse, len(hypotheses)),
	}
	for i, card := range evidence {
		out.EvidenceCards[i] = &dto.CardResponse{Id: card.Id, SessionId: card.SessionId, Payload: card.Payload, CreatedAt: card.CreatedAt}
	}
	for i, card := range hypotheses {
		out.HypothesisCards[i] = &dto.CardResponse{Id: card.Id, SessionId: card.SessionId, Payload: card.Payload, CreatedAt: card.CreatedAt}
	}
	return out, nil
}

func (s *reasoningService) DeleteSession(ctx context.Context, userId uuid.UUID, sessionId string) error {
	if _, err := s.ownedSession(ctx, userId, sessionId); err != nil {
		return err
	}
	existed, err := s.store.DeleteSession(ctx, sessionId)
	if err != nil {
		return err
	}
	if !existed {
		return ErrSessionNotFound
	}
	return nil
}

func (s *reasoningService) GetEvidenceCard(ctx context.Context, id string) (*dto.CardResponse, error) {
	card, err := s.store.GetEvidenceCard(ctx, id)
	if err != nil {
		return nil, err
	}
	if card == nil {
		return nil, ErrCardNotFound
	}
	return &dto.CardResponse{Id: card.Id, SessionId: card.SessionId, Payload: card.Payload, CreatedAt: card.CreatedAt}, nil
}

func (s *reasoningService) GetHypothesisCard(ctx context.Context, id string) (*dto.CardResponse, error) {
	card, err := s.store.GetHypothesisCard(ctx, id)
	if err != nil {
		return nil, err
	}
	if card == nil {
		return nil, ErrCardNotFound
	}
	return &dto.CardResponse{Id: card.Id, SessionId: card.SessionId, Payload: card.Payload, CreatedAt: card.CreatedAt}, nil
}

func (s *reasoningService) GetRoadmapCard(ctx context.Context, id string) (*dto.CardResponse, error) {
	card, err := s.store.GetRoadmapCard(ctx, id)
	if err != nil {
		return nil, err
	}
	if card == nil {
		return nil, ErrCardNotFound
	}
	return &dto.CardResponse{Id: card.Id, SessionId: card.SessionId, Payload: card.Payload, CreatedAt: card.CreatedAt}, nil
}

func (s *reasoningService) WorkflowSteps() []dto.WorkflowStepResponse {
	out := make([]dto.WorkflowStepResponse, len(constant.WorkflowSteps))
	for i, ws := range constant.WorkflowSteps {
		out[i] = dto.WorkflowStepResponse{Step: i, Name: ws.Name, Description: ws.Description}
	}
	return out
}

func (s *reasoningService) ownedSession(ctx context.Context, userId uuid.UUID, sessionId string) (*entity.ReasoningSession, error) {
	session, err := s.store.GetSession(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	if session == nil || session.UserId != userId {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

func (s *reasoningService) notifyStepCompleted(sessionId string, result *step.Result) {
	if s.publisher == nil {
		return
	}
	event := StepCompletedEvent{SessionId: sessionId, StepId: result.StepID, Status: result.Status}
	if err := publishStepCompleted(s.publisher, event); err != nil && s.log != nil {
		s.log.Warn("ReasoningService", "Failed to publish step-completed event", map[string]interface{}{
			"session_id": sessionId,
			"error":      err.Error(),
		})
	}
}

// resultAsMap flattens a STOP result into the stepData record so the stall is
// replayable from the session alone.
func resultAsMap(result *step.Result) map[string]any {
	raw, err := json.Marshal(result)
	if err != nil {
		return map[string]any{"status": result.Status, "reason": result.Reason}
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return map[string]any{"status": result.Status, "reason": result.Reason}
	}
	return out
}

func sessionToResponse(session *entity.ReasoningSession) *dto.SessionResponse {
	return &dto.SessionResponse{
		Id:                session.Id,
		ProblemStatement:  session.ProblemStatement,
		Mode:              session.Mode,
		Status:            session.Status,
		CurrentStep:       session.CurrentStep,
		CompletedSteps:    session.CompletedSteps,
		StopReason:        session.StopReason,
		StepData:          session.StepData,
		EvidenceCardIds:   session.EvidenceCardIds,
		HypothesisCardIds: session.HypothesisCardIds,
		RoadmapCardId:     session.RoadmapCardId,
		CreatedAt:         session.CreatedAt,
		UpdatedAt:         session.UpdatedAt,
	}
}

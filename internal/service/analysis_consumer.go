package service

import (
	"context"
	"encoding/json"

	"scireason-be/internal/pkg/logger"
	"scireason-be/internal/repository/contract"
	"scireason-be/internal/repository/memory"
	"scireason-be/pkg/reasoning/heuristic"

	"github.com/ThreeDotsLabs/watermill/message"
)

// AnalysisConsumer listens for step-completed events and recomputes the
// derived summaries, so the analysis endpoints usually hit a warm cache
// instead of reparsing step data on the request path.
type AnalysisConsumer struct {
	store contract.SessionStore
	cache *memory.AnalysisCache
	log   logger.ILogger
}

func NewAnalysisConsumer(store contract.SessionStore, cache *memory.AnalysisCache, log logger.ILogger) *AnalysisConsumer {
	return &AnalysisConsumer{store: store, cache: cache, log: log}
}

// Start consumes until the subscriber's channel closes. Run it in its own
// goroutine; event handling failures are logged and skipped, never retried.
func (c *AnalysisConsumer) Start(ctx context.Context, subscriber message.Subscriber) error {
	messages, err := subscriber.Subscribe(ctx, StepCompletedTopic)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			c.handle(ctx, msg)
			msg.Ack()
		}
	}()
	return nil
}

func (c *AnalysisConsumer) handle(ctx context.Context, msg *message.Message) {
	var event StepCompletedEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		c.warn("Dropping malformed step-completed event", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		return
	}

	session, err := c.store.GetSession(ctx, event.SessionId)
	if err != nil || session == nil {
		c.cache.Invalidate(event.SessionId)
		return
	}

	c.cache.Set(session.Id, "summary", heuristic.ParseExecutiveSummary(session.StepData))
	c.cache.Set(session.Id, "decision", heuristic.ParseDecisionSummary(heuristic.SessionSnapshot{
		StepData:       session.StepData,
		CompletedSteps: len(session.CompletedSteps),
	}))
	c.cache.Set(session.Id, "validity", heuristic.ParseValidityScores(session.StepData))

	c.debug("Refreshed analysis cache", map[string]interface{}{
		"session_id": session.Id,
		"step_id":    event.StepId,
	})
}

func (c *AnalysisConsumer) warn(message string, details map[string]interface{}) {
	if c.log != nil {
		c.log.Warn("AnalysisConsumer", message, details)
	}
}

func (c *AnalysisConsumer) debug(message string, details map[string]interface{}) {
	if c.log != nil {
		c.log.Debug("AnalysisConsumer", message, details)
	}
}

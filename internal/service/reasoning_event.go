package service

import (
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

const StepCompletedTopic = "reasoning.step.completed"

// StepCompletedEvent is published after every processed step, terminal or
// not, so downstream consumers can refresh whatever they derive from the
// session.
type StepCompletedEvent struct {
	SessionId string `json:"session_id"`
	StepId    string `json:"step_id"`
	Status    string `json:"status"`
}

func publishStepCompleted(publisher message.Publisher, event StepCompletedEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	return publisher.Publish(StepCompletedTopic, msg)
}

package amqp

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ActivityKind names a workspace change carried on the activity feed.
type ActivityKind string

const (
	TransactionCreated ActivityKind = "transaction.created"
	TransactionUpdated ActivityKind = "transaction.updated"
	TransactionDeleted ActivityKind = "transaction.deleted"
	BudgetCreated      ActivityKind = "budget.created"
	GoalCreated        ActivityKind = "goal.created"
	GoalDeleted        ActivityKind = "goal.deleted"
	SettingsUpdated    ActivityKind = "settings.updated"
	ThemeToggled       ActivityKind = "theme.toggled"
)

// ActivityMessage is a small record of one local mutation. It carries no
// ledger state, only enough to count and trace what happened.
type ActivityMessage struct {
	ID          string       `json:"id"`
	Kind        ActivityKind `json:"kind"`
	WorkspaceID string       `json:"workspace_id,omitempty"`
	EntityID    int64        `json:"entity_id,omitempty"`
	AmountCents int64        `json:"amount_cents,omitempty"`
	Category    string       `json:"category,omitempty"`
	Timestamp   time.Time    `json:"timestamp"`
}

// NewActivityMessage stamps a message with a fresh id and the current time.
func NewActivityMessage(kind ActivityKind, workspaceID string, entityID, amountCents int64, category string) *ActivityMessage {
	return &ActivityMessage{
		ID:          uuid.NewString(),
		Kind:        kind,
		WorkspaceID: workspaceID,
		EntityID:    entityID,
		AmountCents: amountCents,
		Category:    category,
		Timestamp:   time.Now().UTC(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *ActivityMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ActivityMessageFromJSON decodes a message and rejects one without a kind.
func ActivityMessageFromJSON(data []byte) (*ActivityMessage, error) {
	var msg ActivityMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if msg.Kind == "" {
		return nil, fmt.Errorf("activity message %q has no kind", msg.ID)
	}
	return &msg, nil
}

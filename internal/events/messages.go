// Package events publishes ledger changes to a message broker.
package events

import (
	"encoding/json"
	"time"
)

// Routing keys for ledger events.
const (
	KindExpenseRecorded = "expense.recorded"
	KindGroupDeleted    = "group.deleted"
)

// Message is the envelope published for every ledger change.
// Consumers fetch the full records by id; the payload stays small.
type Message struct {
	Kind      string    `json:"kind"`
	GroupID   string    `json:"group_id"`
	ExpenseID string    `json:"expense_id,omitempty"`
	Amount    float64   `json:"amount,omitempty"`
	PayerID   string    `json:"payer_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewExpenseRecorded builds the message sent after an expense is stored.
func NewExpenseRecorded(groupID, expenseID, payerID string, amount float64) *Message {
	return &Message{
		Kind:      KindExpenseRecorded,
		GroupID:   groupID,
		ExpenseID: expenseID,
		Amount:    amount,
		PayerID:   payerID,
		Timestamp: time.Now().UTC(),
	}
}

// NewGroupDeleted builds the message sent after a group is removed.
func NewGroupDeleted(groupID string) *Message {
	return &Message{
		Kind:      KindGroupDeleted,
		GroupID:   groupID,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *Message) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// MessageFromJSON decodes a message published by Publish.
func MessageFromJSON(data []byte) (*Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

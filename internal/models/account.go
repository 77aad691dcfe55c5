package models

import (
	"time"

	"github.com/google/uuid"
)

// Account represents a registered API caller.
//
// Accounts authenticate requests; they are not ledger participants.
// Expenses record the account that created them in Expense.CreatedBy.
type Account struct {
	ID           string
	Email        string
	DisplayName  string
	PasswordHash string
	CreatedAt    int64
	UpdatedAt    int64
}

// NewAccount creates an account with a fresh ID and timestamps.
func NewAccount(email, displayName, passwordHash string) *Account {
	now := time.Now().Unix()
	return &Account{
		ID:           uuid.New().String(),
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

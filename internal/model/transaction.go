package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType distinguishes money leaving the account from money
// arriving in it.
type TransactionType string

// Valid transaction types.
const (
	TypeDebit  TransactionType = "debit"
	TypeCredit TransactionType = "credit"
)

// DefaultCurrency is assumed when a message carries no explicit
// currency marker. All supported banks notify in rupees.
const DefaultCurrency = "INR"

// ParsedTransaction is a normalized financial transaction derived from a
// single RawMessage, either by the automated extraction pipeline or by
// manual user entry.
type ParsedTransaction struct {
	Date            time.Time
	ID              string
	OwnerUserID     string
	SourceMessageID string
	Fingerprint     string
	Currency        string
	Merchant        string
	Type            TransactionType
	Amount          decimal.Decimal
	ManualOrigin    bool
}

// Validate ensures the transaction satisfies its invariants before it is
// handed to storage.
func (t *ParsedTransaction) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("transaction ID is required")
	}
	if t.OwnerUserID == "" {
		return fmt.Errorf("owner user ID is required")
	}
	if t.SourceMessageID == "" {
		return fmt.Errorf("source message ID is required")
	}
	if t.Fingerprint == "" {
		return fmt.Errorf("fingerprint is required")
	}
	if !t.Amount.IsPositive() {
		return fmt.Errorf("amount must be positive, got %s", t.Amount)
	}
	if t.Type != TypeDebit && t.Type != TypeCredit {
		return fmt.Errorf("invalid transaction type %q", t.Type)
	}
	if t.Currency == "" {
		return fmt.Errorf("currency is required")
	}
	if t.Date.IsZero() {
		return fmt.Errorf("transaction date is required")
	}
	return nil
}

// DuplicateGroup is a set of stored transactions for one user sharing a
// fingerprint. It is computed on demand, never persisted.
type DuplicateGroup struct {
	Fingerprint  string
	Transactions []ParsedTransaction
}

// Contains reports whether the group holds a transaction with the given id.
func (g *DuplicateGroup) Contains(id string) bool {
	for _, txn := range g.Transactions {
		if txn.ID == id {
			return true
		}
	}
	return false
}

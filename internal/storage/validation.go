package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nikhilbhatia/smsledger/internal/model"
)

// Validation errors.
var (
	ErrNilContext         = errors.New("context cannot be nil")
	ErrEmptyString        = errors.New("string parameter cannot be empty")
	ErrNilParameter       = errors.New("parameter cannot be nil")
	ErrInvalidTransaction = errors.New("invalid transaction")
	ErrInvalidMessage     = errors.New("invalid unparsed message")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateTransaction validates a transaction before it touches the database.
func validateTransaction(txn *model.ParsedTransaction) error {
	if txn == nil {
		return fmt.Errorf("%w: transaction", ErrNilParameter)
	}
	if err := txn.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTransaction, err)
	}
	return nil
}

// validateUnparsedMessage validates a queue entry before it is saved.
func validateUnparsedMessage(msg *model.UnparsedMessage) error {
	if msg == nil {
		return fmt.Errorf("%w: message", ErrNilParameter)
	}
	if msg.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidMessage)
	}
	if msg.Message.OwnerUserID == "" {
		return fmt.Errorf("%w: missing owner user ID", ErrInvalidMessage)
	}
	if msg.Message.Body == "" {
		return fmt.Errorf("%w: missing body", ErrInvalidMessage)
	}
	if msg.Reason == "" {
		return fmt.Errorf("%w: missing reason", ErrInvalidMessage)
	}
	return nil
}

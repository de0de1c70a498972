// Package service defines the interfaces between the parsing pipeline
// and its collaborators.
package service

import (
	"context"

	"github.com/nikhilbhatia/smsledger/internal/model"
)

// Storage defines the contract for the persistence layer. Every method
// is scoped to a single user; implementations must never return another
// user's rows.
type Storage interface {
	// Transaction operations
	SaveTransaction(ctx context.Context, txn *model.ParsedTransaction) error
	GetTransactionByID(ctx context.Context, userID, id string) (*model.ParsedTransaction, error)
	DeleteTransaction(ctx context.Context, userID, id string) error
	ListTransactions(ctx context.Context, userID string) ([]model.ParsedTransaction, error)
	FindByFingerprint(ctx context.Context, userID, fingerprint string) ([]model.ParsedTransaction, error)
	ListFingerprintGroups(ctx context.Context, userID string) ([]model.DuplicateGroup, error)

	// Unparsed message queue operations
	SaveUnparsedMessage(ctx context.Context, msg *model.UnparsedMessage) error
	GetUnparsedMessage(ctx context.Context, userID, id string) (*model.UnparsedMessage, error)
	ListUnparsedMessages(ctx context.Context, userID string) ([]model.UnparsedMessage, error)
	DeleteUnparsedMessage(ctx context.Context, userID, id string) error
}

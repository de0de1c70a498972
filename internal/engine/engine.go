// Package engine orchestrates the per-message parsing pipeline:
// classification, field extraction, duplicate detection and persistence.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/nikhilbhatia/smsledger/internal/classify"
	"github.com/nikhilbhatia/smsledger/internal/dedup"
	"github.com/nikhilbhatia/smsledger/internal/extract"
	"github.com/nikhilbhatia/smsledger/internal/model"
	"github.com/nikhilbhatia/smsledger/internal/service"
)

// Status is the terminal state a processed message lands in.
type Status string

// Terminal states of the per-message state machine.
const (
	StatusAccepted  Status = "accepted"
	StatusDuplicate Status = "duplicate"
	StatusUnparsed  Status = "unparsed"
)

// Outcome reports where a message ended up. Exactly one of Transaction,
// DuplicateOf or UnparsedID is populated, according to Status.
type Outcome struct {
	Transaction *model.ParsedTransaction
	Status      Status
	BankID      string
	DuplicateOf string
	UnparsedID  string
	Reason      model.UnparsedReason
}

// Engine wires the classifier, extractor and duplicate detector into a
// single entry point. Processing is synchronous and stateless aside from
// registry and storage lookups; one Engine serves concurrent callers.
type Engine struct {
	store      service.Storage
	classifier *classify.Classifier
	detector   *dedup.Detector
}

// New creates an engine with the given dependencies.
func New(store service.Storage, classifier *classify.Classifier, detector *dedup.Detector) *Engine {
	return &Engine{
		store:      store,
		classifier: classifier,
		detector:   detector,
	}
}

// Process runs one raw message through the automated pipeline. Malformed
// input never surfaces as an error: unclassifiable or unextractable
// messages are preserved in the unparsed queue and reported in the
// outcome. An error return means a storage failure.
func (e *Engine) Process(ctx context.Context, msg model.RawMessage) (*Outcome, error) {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if msg.ReceivedAt.IsZero() {
		msg.ReceivedAt = time.Now()
	}

	result := e.classifier.Classify(msg)
	if !result.Matched {
		return e.queueUnparsed(ctx, msg, model.ReasonNoPatternMatched)
	}

	txn, extractErr := extract.Extract(msg, result.Pattern)
	if extractErr != nil {
		slog.Debug("extraction failed",
			"bank", result.BankID,
			"reason", extractErr.Reason)
		return e.queueUnparsed(ctx, msg, unparsedReason(extractErr))
	}

	outcome, err := e.finalize(ctx, msg, &txn)
	if err != nil {
		return nil, err
	}
	outcome.BankID = result.BankID
	return outcome, nil
}

// ResolveManual converts a queued unparsed message into a transaction
// using user-supplied fields. It bypasses the classifier and extractor
// but still passes through the duplicate detector. The queue entry is
// removed only when a transaction is actually produced; a duplicate
// verdict leaves it queued for the user to discard.
func (e *Engine) ResolveManual(ctx context.Context, userID, unparsedID string, input ManualInput) (*Outcome, error) {
	queued, err := e.store.GetUnparsedMessage(ctx, userID, unparsedID)
	if err != nil {
		return nil, err
	}

	txn, err := input.toTransaction(queued.Message)
	if err != nil {
		return nil, err
	}

	outcome, err := e.finalize(ctx, queued.Message, txn)
	if err != nil {
		return nil, err
	}

	if outcome.Status == StatusAccepted {
		if err := e.store.DeleteUnparsedMessage(ctx, userID, unparsedID); err != nil {
			return nil, fmt.Errorf("failed to dequeue resolved message: %w", err)
		}
	}
	return outcome, nil
}

// DiscardUnparsed drops a queue entry without producing a transaction.
func (e *Engine) DiscardUnparsed(ctx context.Context, userID, unparsedID string) error {
	return e.store.DeleteUnparsedMessage(ctx, userID, unparsedID)
}

// finalize is the shared acceptance path for automated and manual
// candidates: assign identity and fingerprint, consult the duplicate
// detector, persist.
func (e *Engine) finalize(ctx context.Context, msg model.RawMessage, txn *model.ParsedTransaction) (*Outcome, error) {
	txn.ID = uuid.NewString()
	txn.Fingerprint = dedup.Fingerprint(msg.Sender, msg.Body)

	existing, isDup, err := e.detector.IsDuplicate(ctx, msg.OwnerUserID, txn.Fingerprint)
	if err != nil {
		return nil, err
	}
	if isDup {
		slog.Info("duplicate message detected",
			"user", msg.OwnerUserID,
			"existing_transaction", existing.ID)
		return &Outcome{Status: StatusDuplicate, DuplicateOf: existing.ID}, nil
	}

	if err := e.store.SaveTransaction(ctx, txn); err != nil {
		return nil, err
	}
	return &Outcome{Status: StatusAccepted, Transaction: txn}, nil
}

func (e *Engine) queueUnparsed(ctx context.Context, msg model.RawMessage, reason model.UnparsedReason) (*Outcome, error) {
	queued := &model.UnparsedMessage{
		ID:      uuid.NewString(),
		Reason:  reason,
		Message: msg,
	}
	if err := e.store.SaveUnparsedMessage(ctx, queued); err != nil {
		return nil, err
	}
	return &Outcome{
		Status:     StatusUnparsed,
		UnparsedID: queued.ID,
		Reason:     reason,
	}, nil
}

func unparsedReason(err *extract.Error) model.UnparsedReason {
	switch err.Reason {
	case extract.ReasonAmbiguousType:
		return model.ReasonAmbiguousType
	case extract.ReasonUnparsableAmount:
		return model.ReasonUnparsableAmount
	default:
		return model.ReasonMissingField
	}
}

// Package model defines the core domain types shared across the application.
package model

import "time"

// RawMessage is an inbound SMS exactly as it was submitted, before any
// classification. It is immutable once created.
type RawMessage struct {
	ReceivedAt  time.Time
	ID          string
	OwnerUserID string
	Sender      string
	Body        string
}

// UnparsedReason records why automated parsing gave up on a message.
type UnparsedReason string

// Unparsed reasons surfaced to the user for manual entry.
const (
	ReasonNoPatternMatched UnparsedReason = "no_pattern_matched"
	ReasonAmbiguousType    UnparsedReason = "ambiguous_type"
	ReasonUnparsableAmount UnparsedReason = "unparsable_amount"
	ReasonMissingField     UnparsedReason = "missing_required_field"
)

// UnparsedMessage wraps a RawMessage that could not be converted into a
// transaction automatically. It sits in a queue awaiting manual
// disposition: the user either supplies the fields by hand or discards it.
type UnparsedMessage struct {
	CreatedAt time.Time
	ID        string
	Reason    UnparsedReason
	Message   RawMessage
}

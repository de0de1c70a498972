// Package extract turns a classified SMS into a normalized transaction
// candidate.
package extract

import "fmt"

// Reason categorizes why extraction failed for a message that had
// already matched a bank template.
type Reason string

// Extraction failure reasons.
const (
	ReasonAmbiguousType    Reason = "ambiguous_type"
	ReasonUnparsableAmount Reason = "unparsable_amount"
	ReasonMissingField     Reason = "missing_required_field"
)

// Error is a recoverable extraction failure. The message that produced
// it is routed to the unparsed queue, never dropped.
type Error struct {
	Reason Reason
	Detail string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return string(e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.Reason, e.Detail)
}

func failf(reason Reason, format string, args ...any) *Error {
	return &Error{Reason: reason, Detail: fmt.Sprintf(format, args...)}
}

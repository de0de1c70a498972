// Package classify decides whether a raw SMS is a bank transaction
// notification and which bank template applies.
package classify

import (
	"github.com/nikhilbhatia/smsledger/internal/bank"
	"github.com/nikhilbhatia/smsledger/internal/model"
)

// Result is the outcome of classifying one message. When Matched is
// false the message is either non-financial or from an unknown sender;
// the two cases are not distinguished because neither is actionable.
type Result struct {
	Pattern *bank.BankPattern
	BankID  string
	Matched bool
}

// Classifier selects the bank pattern applicable to a message. It is a
// pure function of the registry and the message body, and safe for
// concurrent use.
type Classifier struct {
	registry *bank.Registry
}

// New creates a classifier backed by the given registry.
func New(registry *bank.Registry) *Classifier {
	return &Classifier{registry: registry}
}

// Classify inspects the message body and returns the first candidate
// pattern whose required fields all extract non-empty values. A pattern
// that matches the template shape but cannot produce a required field
// falls through to the next candidate rather than failing outright.
func (c *Classifier) Classify(msg model.RawMessage) Result {
	if !plausiblyTransactional(msg.Body) {
		return Result{}
	}

	for _, pattern := range c.registry.CandidatesFor(msg.Body) {
		if !pattern.RequiredFieldsSatisfied(msg.Body) {
			continue
		}
		return Result{
			Matched: true,
			BankID:  pattern.BankID,
			Pattern: pattern,
		}
	}

	return Result{}
}

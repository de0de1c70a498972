// Package bank holds the registry of per-bank SMS extraction templates.
package bank

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Field names a single extractable value within a bank SMS template.
type Field string

// Fields a rule can produce.
const (
	FieldAmount   Field = "amount"
	FieldCurrency Field = "currency"
	FieldMerchant Field = "merchant"
	FieldDate     Field = "date"
)

// ErrDuplicateBankID is returned when two patterns are registered under
// the same bank id. This is a configuration error and fatal at startup.
var ErrDuplicateBankID = errors.New("duplicate bank id")

// FieldRule extracts one field from a message body. Group selects the
// capture group holding the value; zero means group 1.
type FieldRule struct {
	Pattern  *regexp.Regexp
	Field    Field
	Group    int
	Required bool
}

// Extract applies the rule to body and returns the captured value.
// A non-match or empty capture returns ok=false, never an error.
func (r FieldRule) Extract(body string) (string, bool) {
	group := r.Group
	if group == 0 {
		group = 1
	}

	m := r.Pattern.FindStringSubmatch(body)
	if m == nil || group >= len(m) {
		return "", false
	}

	value := strings.TrimSpace(m[group])
	return value, value != ""
}

// BankPattern describes how one bank's SMS notifications are structured
// and which fields can be pulled out of them. Patterns are immutable
// after registration.
type BankPattern struct {
	Match  *regexp.Regexp
	BankID string
	Rules  []FieldRule
}

// Matches reports whether the message body fits this bank's template
// shape. It never errors; a non-match is simply false.
func (p *BankPattern) Matches(body string) bool {
	return p.Match.MatchString(body)
}

// ExtractField runs the rules for the given field in order and returns
// the first non-empty capture.
func (p *BankPattern) ExtractField(field Field, body string) (string, bool) {
	for _, rule := range p.Rules {
		if rule.Field != field {
			continue
		}
		if value, ok := rule.Extract(body); ok {
			return value, true
		}
	}
	return "", false
}

// RequiredFieldsSatisfied reports whether every required rule can pull a
// non-empty value out of the body. The classifier uses this to decide
// whether a template-shape match is a real match or should fall through
// to the next candidate.
func (p *BankPattern) RequiredFieldsSatisfied(body string) bool {
	for _, rule := range p.Rules {
		if !rule.Required {
			continue
		}
		if _, ok := rule.Extract(body); !ok {
			return false
		}
	}
	return true
}

func (p *BankPattern) validate() error {
	if p.BankID == "" {
		return fmt.Errorf("bank id is required")
	}
	if p.Match == nil {
		return fmt.Errorf("match expression is required")
	}
	for i, rule := range p.Rules {
		if rule.Pattern == nil {
			return fmt.Errorf("rule %d for field %q has no pattern", i, rule.Field)
		}
	}
	return nil
}

// Registry is the canonical, immutable-after-startup set of bank
// patterns. Construct one per process (or per test) and pass it into
// the classifier; it is safe for concurrent readers.
type Registry struct {
	byID     map[string]*BankPattern
	patterns []*BankPattern
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byID: make(map[string]*BankPattern)}
}

// Register adds a pattern. Registration order is priority order: more
// constrained templates should be registered before generic ones.
// Returns ErrDuplicateBankID if the bank id is already taken.
func (r *Registry) Register(p *BankPattern) error {
	if err := p.validate(); err != nil {
		return fmt.Errorf("invalid pattern: %w", err)
	}
	if _, exists := r.byID[p.BankID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateBankID, p.BankID)
	}

	r.byID[p.BankID] = p
	r.patterns = append(r.patterns, p)
	return nil
}

// Get returns the pattern registered under the given bank id.
func (r *Registry) Get(bankID string) (*BankPattern, bool) {
	p, ok := r.byID[bankID]
	return p, ok
}

// CandidatesFor returns every pattern whose match expression matches the
// text, in registration order. Callers wanting a single answer take the
// first element; diagnostic callers can inspect the whole list.
func (r *Registry) CandidatesFor(text string) []*BankPattern {
	var candidates []*BankPattern
	for _, p := range r.patterns {
		if p.Matches(text) {
			candidates = append(candidates, p)
		}
	}
	return candidates
}

// Len returns the number of registered patterns.
func (r *Registry) Len() int {
	return len(r.patterns)
}

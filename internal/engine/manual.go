package engine

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nikhilbhatia/smsledger/internal/model"
)

// ManualInput carries the fields a user supplies when classifying an
// unparsed message by hand. Amount and Type are required; everything
// else falls back the same way automated extraction does.
type ManualInput struct {
	Date     time.Time
	Merchant string
	Currency string
	Type     model.TransactionType
	Amount   decimal.Decimal
}

// toTransaction builds a manual-origin transaction candidate from the
// input, using the original message for fallbacks and the audit
// back-reference.
func (in ManualInput) toTransaction(msg model.RawMessage) (*model.ParsedTransaction, error) {
	if !in.Amount.IsPositive() {
		return nil, fmt.Errorf("amount must be positive, got %s", in.Amount)
	}
	if in.Type != model.TypeDebit && in.Type != model.TypeCredit {
		return nil, fmt.Errorf("transaction type must be debit or credit, got %q", in.Type)
	}

	txn := &model.ParsedTransaction{
		OwnerUserID:     msg.OwnerUserID,
		SourceMessageID: msg.ID,
		Amount:          in.Amount,
		Currency:        in.Currency,
		Type:            in.Type,
		Merchant:        in.Merchant,
		Date:            in.Date,
		ManualOrigin:    true,
	}
	if txn.Currency == "" {
		txn.Currency = model.DefaultCurrency
	}
	if txn.Date.IsZero() {
		txn.Date = msg.ReceivedAt
	}
	return txn, nil
}

package extract

import (
	"regexp"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikhilbhatia/smsledger/internal/bank"
	"github.com/nikhilbhatia/smsledger/internal/model"
)

var receivedAt = time.Date(2025, 2, 14, 18, 45, 0, 0, time.UTC)

func rawMessage(body string) model.RawMessage {
	return model.RawMessage{
		ID:          "msg-1",
		Sender:      "VM-TESTBK",
		Body:        body,
		ReceivedAt:  receivedAt,
		OwnerUserID: "u1",
	}
}

func defaultPattern(t *testing.T, bankID string) *bank.BankPattern {
	t.Helper()
	pattern, ok := bank.DefaultRegistry().Get(bankID)
	require.True(t, ok, "bank %s not in default registry", bankID)
	return pattern
}

func TestExtract_HDFCDebit(t *testing.T) {
	msg := rawMessage("Rs.500.00 debited from A/C XX1234 on 05-01-25 to AMAZON")

	txn, err := Extract(msg, defaultPattern(t, "HDFC"))
	require.Nil(t, err)

	assert.True(t, txn.Amount.Equal(decimal.RequireFromString("500.00")), "got %s", txn.Amount)
	assert.Equal(t, "INR", txn.Currency)
	assert.Equal(t, model.TypeDebit, txn.Type)
	assert.Equal(t, "AMAZON", txn.Merchant)
	assert.Equal(t, time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC), txn.Date)
	assert.Equal(t, "msg-1", txn.SourceMessageID)
	assert.Equal(t, "u1", txn.OwnerUserID)
	assert.False(t, txn.ManualOrigin)
}

func TestExtract_CreditWithoutDateOrMerchant(t *testing.T) {
	msg := rawMessage("You have received INR 1500 in your account")

	txn, err := Extract(msg, defaultPattern(t, "GENERIC"))
	require.Nil(t, err)

	assert.True(t, txn.Amount.Equal(decimal.NewFromInt(1500)))
	assert.Equal(t, model.TypeCredit, txn.Type)
	assert.Equal(t, "", txn.Merchant, "absent merchant is empty, not a failure")
	assert.Equal(t, receivedAt, txn.Date, "missing date falls back to receipt time")
}

func TestExtract_TypeDetection(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantType   model.TransactionType
		wantReason Reason
	}{
		{
			name:     "debit signal",
			body:     "Rs.100.00 debited from A/C XX1 on 05-01-25 to SHOP",
			wantType: model.TypeDebit,
		},
		{
			name:     "credit signal",
			body:     "Rs.100.00 credited to A/c XX1 on 05-01-25",
			wantType: model.TypeCredit,
		},
		{
			name:       "both signals is ambiguous",
			body:       "Rs.100.00 debited from A/C XX1 and credited to beneficiary",
			wantReason: ReasonAmbiguousType,
		},
		{
			name:       "neither signal is ambiguous",
			body:       "Rs.100.00 transfer completed for A/C XX1 reference 9921",
			wantReason: ReasonAmbiguousType,
		},
	}

	pattern := defaultPattern(t, "GENERIC")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txn, err := Extract(rawMessage(tt.body), pattern)
			if tt.wantReason != "" {
				require.NotNil(t, err)
				assert.Equal(t, tt.wantReason, err.Reason)
				return
			}
			require.Nil(t, err)
			assert.Equal(t, tt.wantType, txn.Type)
		})
	}
}

func TestExtract_CurrencyDetection(t *testing.T) {
	pattern := &bank.BankPattern{
		BankID: "T",
		Match:  regexp.MustCompile(`.`),
		Rules: []bank.FieldRule{
			{Field: bank.FieldAmount, Pattern: regexp.MustCompile(`(?:USD|INR|Rs\.?)\s*([\d,.]+)`), Required: true},
			{Field: bank.FieldCurrency, Pattern: regexp.MustCompile(`\b(USD|INR|Rs)\b`)},
		},
	}

	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "explicit foreign currency", body: "USD 25.00 spent on card", want: "USD"},
		{name: "rupee marker normalizes to INR", body: "Rs 99.00 spent on card", want: "INR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txn, err := Extract(rawMessage(tt.body), pattern)
			require.Nil(t, err)
			assert.Equal(t, tt.want, txn.Currency)
		})
	}
}

func TestExtract_DefaultsCurrencyWhenPatternHasNoRule(t *testing.T) {
	pattern := &bank.BankPattern{
		BankID: "T",
		Match:  regexp.MustCompile(`.`),
		Rules: []bank.FieldRule{
			{Field: bank.FieldAmount, Pattern: regexp.MustCompile(`amount ([\d.]+)`), Required: true},
		},
	}

	txn, err := Extract(rawMessage("amount 12.50 debited for subscription"), pattern)
	require.Nil(t, err)
	assert.Equal(t, model.DefaultCurrency, txn.Currency)
}

func TestExtract_UnparsableAmountFailsEntirely(t *testing.T) {
	pattern := &bank.BankPattern{
		BankID: "T",
		Match:  regexp.MustCompile(`.`),
		Rules: []bank.FieldRule{
			// Capture group deliberately grabs non-numeric text.
			{Field: bank.FieldAmount, Pattern: regexp.MustCompile(`amount (\w+)`), Required: true},
		},
	}

	_, err := Extract(rawMessage("amount unknown debited from account"), pattern)
	require.NotNil(t, err)
	assert.Equal(t, ReasonUnparsableAmount, err.Reason)
}

func TestExtract_MissingAmountField(t *testing.T) {
	pattern := &bank.BankPattern{
		BankID: "T",
		Match:  regexp.MustCompile(`.`),
		Rules: []bank.FieldRule{
			{Field: bank.FieldAmount, Pattern: regexp.MustCompile(`AMT:(\d+)`), Required: true},
		},
	}

	_, err := Extract(rawMessage("debited from account, details to follow"), pattern)
	require.NotNil(t, err)
	assert.Equal(t, ReasonMissingField, err.Reason)
}

func TestNormalizeMerchant(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"AMAZON", "AMAZON"},
		{"ONE97  COMMUNICA.", "ONE97 COMMUNICA"},
		{"  BLUE   TOKAI - ", "BLUE TOKAI"},
	}

	for _, tt := range tests {
		if got := normalizeMerchant(tt.raw); got != tt.want {
			t.Errorf("normalizeMerchant(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

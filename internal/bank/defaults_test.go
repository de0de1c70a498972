package bank

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// One realistic sample per built-in template. These mirror real
// notification shapes with account numbers and sums replaced.
var defaultSamples = map[string]string{
	"SBI":     "Dear Customer, Rs.2,500.00 debited from A/c XX9876 on 12-03-25 to VPA grocerystore@upi Ref No 505123 -SBI",
	"ICICI":   "INR 232.42 spent on ICICI Bank Card XX7003 on 04-Mar-23 at ONE97 COMMUNICA. Avl Lmt: INR 1,23,456.28.",
	"AXIS":    "Spent Card no. XX4305 INR 1579 13-12-22 19:57:25 DECATHLON IND Avl Lmt INR 123456.05 - Axis Bank",
	"FEDERAL": "Rs 706.82 debited from your A/c using UPI on 07-03-2023 19:57:24 to VPA godaddy.cca@hdfcbank - (UPI Ref No 300000882989)-Federal Bank",
	"SCAPIA":  "Rs. 450.00 spent on your Scapia Federal Bank credit card at BLUE TOKAI on 05-01-2025.",
	"HDFC":    "Rs.500.00 debited from A/C XX1234 on 05-01-25 to AMAZON",
	"GENERIC": "You have received INR 1500 in your account",
}

func TestDefaultRegistry_EveryBankHasSample(t *testing.T) {
	r := DefaultRegistry()
	assert.Equal(t, len(defaultSamples), r.Len(), "every built-in template needs a sample here")
}

func TestDefaultRegistry_SamplesMatchTheirBank(t *testing.T) {
	r := DefaultRegistry()

	for bankID, sample := range defaultSamples {
		t.Run(bankID, func(t *testing.T) {
			candidates := r.CandidatesFor(sample)
			require.NotEmpty(t, candidates, "sample should match at least its own template")
			assert.Equal(t, bankID, candidates[0].BankID, "first candidate should be the owning bank")
			assert.True(t, candidates[0].RequiredFieldsSatisfied(sample))
		})
	}
}

func TestDefaultRegistry_AmountExtraction(t *testing.T) {
	r := DefaultRegistry()

	wantAmounts := map[string]string{
		"SBI":     "2,500.00",
		"ICICI":   "232.42",
		"AXIS":    "1579",
		"FEDERAL": "706.82",
		"SCAPIA":  "450.00",
		"HDFC":    "500.00",
		"GENERIC": "1500",
	}

	for bankID, want := range wantAmounts {
		t.Run(bankID, func(t *testing.T) {
			pattern, ok := r.Get(bankID)
			require.True(t, ok)

			got, ok := pattern.ExtractField(FieldAmount, defaultSamples[bankID])
			require.True(t, ok, "amount should extract from sample")
			assert.Equal(t, want, got)
		})
	}
}

// The rupee sign is multi-byte, so the amount and catch-all expressions
// must not depend on a word boundary ahead of the currency marker.
func TestDefaultRegistry_RupeeSignAmounts(t *testing.T) {
	r := DefaultRegistry()

	tests := []struct {
		body       string
		wantBank   string
		wantAmount string
	}{
		{"₹500.00 debited from A/C XX1234 on 05-01-25 to AMAZON", "HDFC", "500.00"},
		{"₹1,23,456.28 received in your account from refunds@upi", "GENERIC", "1,23,456.28"},
	}

	for _, tt := range tests {
		t.Run(tt.wantBank, func(t *testing.T) {
			candidates := r.CandidatesFor(tt.body)
			require.NotEmpty(t, candidates, "rupee-sign message should match")
			assert.Equal(t, tt.wantBank, candidates[0].BankID)

			got, ok := candidates[0].ExtractField(FieldAmount, tt.body)
			require.True(t, ok, "amount should extract after the rupee sign")
			assert.Equal(t, tt.wantAmount, got)
			assert.True(t, candidates[0].RequiredFieldsSatisfied(tt.body))
		})
	}
}

func TestDefaultRegistry_MerchantExtraction(t *testing.T) {
	r := DefaultRegistry()

	tests := []struct {
		bankID       string
		wantMerchant string
	}{
		{"SBI", "grocerystore@upi"},
		{"ICICI", "ONE97 COMMUNICA"},
		{"AXIS", "DECATHLON IND"},
		{"FEDERAL", "godaddy.cca@hdfcbank"},
		{"SCAPIA", "BLUE TOKAI"},
		{"HDFC", "AMAZON"},
	}

	for _, tt := range tests {
		t.Run(tt.bankID, func(t *testing.T) {
			pattern, ok := r.Get(tt.bankID)
			require.True(t, ok)

			got, ok := pattern.ExtractField(FieldMerchant, defaultSamples[tt.bankID])
			require.True(t, ok, "merchant should extract from sample")
			assert.Equal(t, tt.wantMerchant, got)
		})
	}
}

func TestDefaultRegistry_DateExtraction(t *testing.T) {
	r := DefaultRegistry()

	tests := []struct {
		bankID   string
		wantDate string
	}{
		{"SBI", "12-03-25"},
		{"ICICI", "04-Mar-23"},
		{"AXIS", "13-12-22"},
		{"FEDERAL", "07-03-2023"},
		{"SCAPIA", "05-01-2025"},
		{"HDFC", "05-01-25"},
	}

	for _, tt := range tests {
		t.Run(tt.bankID, func(t *testing.T) {
			pattern, ok := r.Get(tt.bankID)
			require.True(t, ok)

			got, ok := pattern.ExtractField(FieldDate, defaultSamples[tt.bankID])
			require.True(t, ok, "date should extract from sample")
			assert.Equal(t, tt.wantDate, got)
		})
	}
}

package bank

import "regexp"

// Building blocks shared by the default templates. Indian banks group
// thousands as 1,23,456.28, so the amount class accepts both western and
// lakh/crore comma placement.
const (
	amountGroup = `((?:\d{1,3}(?:,\d{2,3})+|\d+)(?:\.\d{1,2})?)`
	// The word boundary sits inside the alternation: \b is ASCII-only
	// in RE2 and would never match ahead of the multi-byte rupee sign.
	currencyMark  = `(?:\b(?:INR|Rs\.?)|₹)`
	merchantChars = `[A-Za-z0-9][A-Za-z0-9 .&@'_-]*?`
)

var (
	amountRe   = regexp.MustCompile(`(?i)` + currencyMark + `\s*` + amountGroup)
	currencyRe = regexp.MustCompile(`(?i)\b(INR|Rs|USD|EUR|GBP)\b`)

	// Numeric and month-name date shapes observed across bank templates:
	// 05-01-25, 07/03/2023, 2023-01-10, 04-Mar-23, 12Mar25, January 17, 2023.
	dateRe = regexp.MustCompile(`(?i)\b(\d{1,2}[-/]\d{1,2}[-/]\d{2,4}|\d{4}-\d{2}-\d{2}|\d{1,2}-[A-Za-z]{3}-\d{2,4}|\d{1,2}[A-Za-z]{3}\d{2}|[A-Z][a-z]+ \d{1,2}, \d{4})`)
)

func amountRule() FieldRule {
	return FieldRule{Field: FieldAmount, Pattern: amountRe, Required: true}
}

func currencyRule() FieldRule {
	return FieldRule{Field: FieldCurrency, Pattern: currencyRe}
}

func dateRule() FieldRule {
	return FieldRule{Field: FieldDate, Pattern: dateRe}
}

func merchantRule(expr string) FieldRule {
	return FieldRule{Field: FieldMerchant, Pattern: regexp.MustCompile(expr)}
}

// DefaultRegistry returns the built-in template set. Registration order
// is priority order: banks with unmistakable markers come first (Scapia
// ahead of Federal, since Scapia messages also name Federal Bank), the
// HDFC account template (whose debit/credit phrasing is the least
// constrained of the named banks) next, and the generic catch-all last.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	for _, p := range []*BankPattern{
		// Dear Customer, Rs.2,500.00 debited from A/c XX9876 on 12-03-25
		// to VPA grocerystore@upi Ref No 505123 -SBI
		{
			BankID: "SBI",
			Match:  regexp.MustCompile(`(?i)\bSBI\b`),
			Rules: []FieldRule{
				amountRule(),
				currencyRule(),
				merchantRule(`(?i)\btrf\s+to\s+(` + merchantChars + `)\s+Ref\b`),
				merchantRule(`(?i)\bto\s+(?:VPA\s+)?([A-Za-z0-9.@_-]+)`),
				dateRule(),
			},
		},
		// INR 232.42 spent on ICICI Bank Card XX7003 on 04-Mar-23 at
		// ONE97 COMMUNICA. Avl Lmt: INR 1,23,456.28.
		{
			BankID: "ICICI",
			Match:  regexp.MustCompile(`(?i)\bICICI\b`),
			Rules: []FieldRule{
				amountRule(),
				currencyRule(),
				merchantRule(`(?i)\bat\s+(` + merchantChars + `)(?:\.\s|\.$|\s+Avl\b|;)`),
				merchantRule(`(?i)\bat\s+(` + merchantChars + `)$`),
				dateRule(),
			},
		},
		// Spent Card no. XX4305 INR 1579 13-12-22 19:57:25 DECATHLON IND
		// Avl Lmt INR 123456.05 - Axis Bank
		{
			BankID: "AXIS",
			Match:  regexp.MustCompile(`(?i)\bAxis Bank\b|\bSpent\s+Card no\.`),
			Rules: []FieldRule{
				amountRule(),
				currencyRule(),
				merchantRule(`(?i)\d{2}:\d{2}:\d{2}\s+(` + merchantChars + `)\s+Avl\b`),
				merchantRule(`(?i)\bat\s+(` + merchantChars + `)(?:\s+on\b|\.|$)`),
				dateRule(),
			},
		},
		// Rs. 450.00 spent on your Scapia Federal Bank credit card at
		// BLUE TOKAI on 05-01-2025.
		{
			BankID: "SCAPIA",
			Match:  regexp.MustCompile(`(?i)\bScapia\b`),
			Rules: []FieldRule{
				amountRule(),
				currencyRule(),
				merchantRule(`(?i)\bat\s+(` + merchantChars + `)\s+on\b`),
				dateRule(),
			},
		},
		// Rs 706.82 debited from your A/c using UPI on 07-03-2023
		// 19:57:24 to VPA godaddy.cca@hdfcbank - (UPI Ref No ...)-Federal Bank
		// / Nikhil, you've received INR 9,000.00 in your Account
		// XXXX1234. Woohoo! It was sent by 0111 on January 17, 2023.
		{
			BankID: "FEDERAL",
			Match:  regexp.MustCompile(`(?i)\bFederal Bank\b`),
			Rules: []FieldRule{
				amountRule(),
				currencyRule(),
				merchantRule(`(?i)\bto\s+VPA\s+([A-Za-z0-9.@_-]+)`),
				dateRule(),
			},
		},
		// Rs.500.00 debited from A/C XX1234 on 05-01-25 to AMAZON
		// / You've spent Rs.776.33 On HDFC Bank CREDIT Card xx0911 At
		// NHPS CC On 2022-12-30:20:41:47
		{
			BankID: "HDFC",
			Match:  regexp.MustCompile(`(?i)\bHDFC\b|\bdebited from (?:your )?A/C\b|\bcredited to (?:your )?A/c\b`),
			Rules: []FieldRule{
				amountRule(),
				currencyRule(),
				merchantRule(`(?i)\bAt\s+(` + merchantChars + `)\s+On\b`),
				merchantRule(`(?i)\bto\s+(?:VPA\s+)?(` + merchantChars + `)(?:\s+on\b|[.,]|$)`),
				dateRule(),
			},
		},
		// Catch-all for templates that carry an amount marker but no
		// recognizable bank branding, e.g. "You have received INR 1500
		// in your account". Must stay last.
		{
			BankID: "GENERIC",
			Match:  regexp.MustCompile(`(?i)` + currencyMark + `\s*\d`),
			Rules: []FieldRule{
				amountRule(),
				currencyRule(),
				merchantRule(`(?i)\b(?:at|to)\s+(` + merchantChars + `)(?:\s+on\b|[.,]|$)`),
				dateRule(),
			},
		},
	} {
		if err := r.Register(p); err != nil {
			// The built-in set is static; a collision here is a
			// programming error.
			panic(err)
		}
	}

	return r
}

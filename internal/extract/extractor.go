package extract

import (
	"regexp"
	"strings"

	"github.com/nikhilbhatia/smsledger/internal/bank"
	"github.com/nikhilbhatia/smsledger/internal/model"
)

// Signal words that decide the transaction direction. A message must
// contain words from exactly one set; anything else is ambiguous and the
// message goes to manual review rather than getting a silently-guessed
// type.
var (
	debitRe  = regexp.MustCompile(`(?i)\b(?:debited|spent|paid|withdrawn|deducted|purchase)\b`)
	creditRe = regexp.MustCompile(`(?i)\b(?:credited|received|deposited|reloaded|refunded)\b`)
)

// Extract pulls a normalized transaction candidate out of a message that
// the classifier matched to the given pattern. The returned transaction
// has no ID or fingerprint yet; the pipeline assigns those when it
// finalizes the candidate.
func Extract(msg model.RawMessage, pattern *bank.BankPattern) (model.ParsedTransaction, *Error) {
	rawAmount, ok := pattern.ExtractField(bank.FieldAmount, msg.Body)
	if !ok {
		return model.ParsedTransaction{}, failf(ReasonMissingField, "no amount in message")
	}
	amount, amtErr := parseAmount(rawAmount)
	if amtErr != nil {
		return model.ParsedTransaction{}, amtErr
	}

	txnType, typeErr := detectType(msg.Body)
	if typeErr != nil {
		return model.ParsedTransaction{}, typeErr
	}

	txn := model.ParsedTransaction{
		OwnerUserID:     msg.OwnerUserID,
		SourceMessageID: msg.ID,
		Amount:          amount,
		Currency:        detectCurrency(pattern, msg.Body),
		Type:            txnType,
	}

	// Merchant is optional; an absent counterparty is an empty string,
	// not a failure.
	if merchant, ok := pattern.ExtractField(bank.FieldMerchant, msg.Body); ok {
		txn.Merchant = normalizeMerchant(merchant)
	}

	txn.Date = msg.ReceivedAt
	if rawDate, ok := pattern.ExtractField(bank.FieldDate, msg.Body); ok {
		if parsed, ok := parseDate(rawDate); ok {
			txn.Date = parsed
		}
	}

	return txn, nil
}

// detectType maps signal words to a direction. Both sets present, or
// neither, means the message cannot be trusted.
func detectType(body string) (model.TransactionType, *Error) {
	debit := debitRe.MatchString(body)
	credit := creditRe.MatchString(body)

	switch {
	case debit && credit:
		return "", failf(ReasonAmbiguousType, "both debit and credit signals present")
	case debit:
		return model.TypeDebit, nil
	case credit:
		return model.TypeCredit, nil
	default:
		return "", failf(ReasonAmbiguousType, "no debit or credit signal present")
	}
}

// detectCurrency returns the explicit currency marker if the pattern
// captures one, defaulting to INR. Rupee spellings all normalize to INR.
func detectCurrency(pattern *bank.BankPattern, body string) string {
	raw, ok := pattern.ExtractField(bank.FieldCurrency, body)
	if !ok {
		return model.DefaultCurrency
	}

	code := strings.ToUpper(strings.TrimSpace(raw))
	switch code {
	case "RS", "INR", "₹":
		return model.DefaultCurrency
	default:
		return code
	}
}

// normalizeMerchant collapses runs of whitespace and strips stray
// trailing punctuation left by the capture group.
func normalizeMerchant(raw string) string {
	merchant := strings.Join(strings.Fields(raw), " ")
	return strings.TrimRight(merchant, ".,;:- ")
}

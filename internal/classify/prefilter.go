package classify

import (
	"regexp"
	"strings"
)

// minViableLength is the shortest body that could plausibly carry an
// amount, a type signal and an account reference.
const minViableLength = 20

var otpRe = regexp.MustCompile(`(?i)\b(?:OTP|one.time password|verification code)\b`)

// promotionalMarkers are phrases that only appear in marketing blasts,
// never in transaction notifications.
var promotionalMarkers = []string{
	"congratulations",
	"exclusive offer",
	"limited time",
	"cashback offer",
	"apply now",
	"pre-approved",
	"t&c apply",
	"click here",
	"unsubscribe",
}

// plausiblyTransactional short-circuits messages that cannot be
// transaction notifications, so the full pattern set never runs against
// OTPs and promotional spam.
func plausiblyTransactional(body string) bool {
	if len(strings.TrimSpace(body)) < minViableLength {
		return false
	}
	if otpRe.MatchString(body) {
		return false
	}

	lower := strings.ToLower(body)
	for _, marker := range promotionalMarkers {
		if strings.Contains(lower, marker) {
			return false
		}
	}
	return true
}

// Package dedup detects resubmitted and forwarded copies of the same
// real-world transaction.
package dedup

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Fingerprint computes a stable content hash over the normalized
// (sender, body) pair. Normalization case-folds and collapses
// whitespace, so copies of a message that differ only in formatting
// artifacts added in transit hash identically.
func Fingerprint(sender, body string) string {
	data := normalize(sender) + "\n" + normalize(body)
	sum := sha256.Sum256([]byte(data))
	return hex.EncodeToString(sum[:])
}

func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

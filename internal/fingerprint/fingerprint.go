package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/shopspring/decimal"
)

// dateLayout is the canonical date serialization used inside fingerprints.
// Changing it would silently re-key every stored transaction.
const dateLayout = "2006-01-02"

// Compute returns the hex SHA-256 fingerprint of a transaction's identifying
// fields. The amount is serialized with exactly two decimal places so that
// 4.5 and 4.50 hash identically.
func Compute(date time.Time, description string, amount decimal.Decimal, accountID string) string {
	identifier := description + ":" + date.Format(dateLayout) + ":" + amount.StringFixed(2) + ":" + accountID
	sum := sha256.Sum256([]byte(identifier))
	return hex.EncodeToString(sum[:])
}

// Short returns the first 12 hex characters of a fingerprint, for display.
func Short(fp string) string {
	if len(fp) <= 12 {
		return fp
	}
	return fp[:12]
}

package order

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// FormatNumber renders the short order number shown on tickets and the
// orders screen, zero-padded to four digits ("#0042").
func FormatNumber(id uint) string {
	return fmt.Sprintf("#%04d", id)
}

// GenerateReference builds the globally unique receipt reference:
// RCP-YYYYMMDD-HHMMSS-mmm-RRRR. Unlike the display number it never
// repeats, so it is safe to hand to accounting exports.
func GenerateReference() string {
	now := time.Now().UTC()

	datePart := now.Format("20060102-150405")
	millis := now.Nanosecond() / int(time.Millisecond)

	// 4-digit cryptographic random
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		// fallback: time-based entropy
		n = big.NewInt(now.UnixNano() % 10000)
	}

	return fmt.Sprintf("RCP-%s-%03d-%04d", datePart, millis, n.Int64())
}

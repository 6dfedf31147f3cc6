package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxWriteAttempts bounds the reload-and-retry loop run on version conflicts.
const maxWriteAttempts = 3

const systemActor = "sistema"

func actorOrDefault(actor string) string {
	if a := strings.TrimSpace(actor); a != "" {
		return a
	}
	return systemActor
}

func nopIfNil(log *zap.Logger) *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log
}

// randomSuffix returns n upper-case hex characters taken from a random uuid.
func randomSuffix(n int) string {
	hex := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	if n > len(hex) {
		n = len(hex)
	}
	return hex[:n]
}

func newOrderNumber(now time.Time) string {
	return fmt.Sprintf("WO-%s-%s", now.Format("20060102"), randomSuffix(6))
}

// newReceiptNumber builds REC-<order number>-<10 hex>. The store rejects a
// duplicate sale number; the deposit then retries with a new one.
func newReceiptNumber(orderNumber string) string {
	return fmt.Sprintf("REC-%s-%s", orderNumber, randomSuffix(10))
}

func isValidPIN(pin string) bool {
	if len(pin) != 4 {
		return false
	}
	for _, r := range pin {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
)

const codeAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// NewID returns a random UUID used as a record identifier. Collisions are
// treated as negligible; no store lookup is performed.
func NewID() string {
	return uuid.New().String()
}

// randomSuffix returns n random characters from the code alphabet.
func randomSuffix(n int) string {
	var b strings.Builder
	b.Grow(n)
	max := big.NewInt(int64(len(codeAlphabet)))
	for i := 0; i < n; i++ {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand should not fail; fall back to a clock-derived index
			idx = big.NewInt(time.Now().UnixNano() % int64(len(codeAlphabet)))
		}
		b.WriteByte(codeAlphabet[idx.Int64()])
	}
	return b.String()
}

// NewTicketCode builds a human-legible ticket code:
// PREFIX-<unix millis>-<6 uppercase alphanumerics>.
func NewTicketCode(prefix string) string {
	return fmt.Sprintf("%s-%d-%s", prefix, time.Now().UnixMilli(), strings.ToUpper(randomSuffix(6)))
}

// NewTrackingNumber builds a merch order tracking number in the same shape
// as ticket codes.
func NewTrackingNumber(prefix string) string {
	return fmt.Sprintf("%s-%d-%s", prefix, time.Now().UnixMilli(), strings.ToUpper(randomSuffix(6)))
}

// NewPaymentReference builds a payment gateway reference:
// PREFIX-<unix millis>-<9 lowercase alphanumerics>.
func NewPaymentReference(prefix string) string {
	return fmt.Sprintf("%s-%d-%s", prefix, time.Now().UnixMilli(), randomSuffix(9))
}

package utils_test

import (
	"regexp"
	"strings"
	"testing"

	"samad-backend/internal/utils"

	"github.com/stretchr/testify/assert"
)

func TestNewIDIsNonEmptyAndUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := utils.NewID()
		assert.NotEmpty(t, id)
		assert.False(t, seen[id], "duplicate id generated: %s", id)
		seen[id] = true
	}
}

func TestNewTicketCodeFormat(t *testing.T) {
	code := utils.NewTicketCode("SAMAD")
	assert.Regexp(t, regexp.MustCompile(`^SAMAD-\d{13}-[A-Z0-9]{6}$`), code)
}

func TestNewTrackingNumberFormat(t *testing.T) {
	tn := utils.NewTrackingNumber("SAMAD-MERCH")
	assert.True(t, strings.HasPrefix(tn, "SAMAD-MERCH-"))
	assert.Regexp(t, regexp.MustCompile(`^SAMAD-MERCH-\d{13}-[A-Z0-9]{6}$`), tn)
}

func TestNewPaymentReferenceFormat(t *testing.T) {
	ref := utils.NewPaymentReference("SAMAD")
	assert.Regexp(t, regexp.MustCompile(`^SAMAD-\d{13}-[a-z0-9]{9}$`), ref)
}

// Codes are only probabilistically unique (timestamp + randomness); 10k
// sequential generations must not collide.
func TestTicketCodesUniqueOver10k(t *testing.T) {
	seen := make(map[string]bool, 10000)
	for i := 0; i < 10000; i++ {
		code := utils.NewTicketCode("SAMAD")
		assert.False(t, seen[code], "duplicate ticket code: %s", code)
		seen[code] = true
	}
}

func TestTrackingNumbersUniqueOver10k(t *testing.T) {
	seen := make(map[string]bool, 10000)
	for i := 0; i < 10000; i++ {
		tn := utils.NewTrackingNumber("SAMAD-MERCH")
		assert.False(t, seen[tn], "duplicate tracking number: %s", tn)
		seen[tn] = true
	}
}

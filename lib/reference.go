package lib

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const paymentReferencePrefix = "BAGELS"

// GeneratePaymentReference builds the note token customers put on a manual
// Venmo payment. It embeds the leading segment of the order id so a payment
// can be matched back to its order from the note text alone.
func GeneratePaymentReference(orderId uuid.UUID) string {
	fragment := strings.ToUpper(strings.SplitN(orderId.String(), "-", 2)[0])
	return fmt.Sprintf("%s-%s", paymentReferencePrefix, fragment)
}

// FormatPaymentReference rebuilds the stored note token from a parsed
// fragment.
func FormatPaymentReference(fragment string) string {
	return fmt.Sprintf("%s-%s", paymentReferencePrefix, strings.ToUpper(fragment))
}

// ParsePaymentReference extracts the order-id fragment from a payment note.
// It tolerates surrounding text and casing, since the note field is typed by
// customers.
func ParsePaymentReference(note string) (string, bool) {
	upper := strings.ToUpper(note)
	idx := strings.Index(upper, paymentReferencePrefix+"-")
	if idx < 0 {
		return "", false
	}

	rest := upper[idx+len(paymentReferencePrefix)+1:]
	var fragment strings.Builder
	for _, r := range rest {
		if (r >= '0' && r <= '9') || (r >= 'A' && r <= 'F') {
			fragment.WriteRune(r)
			continue
		}
		break
	}

	if fragment.Len() != 8 {
		return "", false
	}
	return fragment.String(), true
}

// MatchesOrder reports whether a parsed reference fragment belongs to the
// given order id.
func MatchesOrder(fragment string, orderId uuid.UUID) bool {
	return strings.EqualFold(fragment, strings.SplitN(orderId.String(), "-", 2)[0])
}

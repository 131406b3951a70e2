package checkout

import (
	"regexp"
	"strings"
	"time"

	"github.com/peeves/backend/internal/domain/ordering"
	"github.com/peeves/backend/internal/domain/shared"
)

// Card expiry years are accepted this far into the future.
const maxExpiryYearsAhead = 7

var (
	digitsOnlyRegex = regexp.MustCompile(`^\d+$`)
	cvvRegex        = regexp.MustCompile(`^\d{3,4}$`)
)

// CardDetails is the simulated card form
type CardDetails struct {
	Number      string `json:"number"`
	HolderName  string `json:"holder_name"`
	CVV         string `json:"cvv"`
	ExpiryMonth int    `json:"expiry_month"`
	ExpiryYear  int    `json:"expiry_year"`
}

// ValidatePayment checks the payment method and, for card payments, the
// card form. Wallet methods carry no card details. This is a simulation:
// nothing is charged and no gateway is involved.
func ValidatePayment(method ordering.PaymentMethod, card *CardDetails, now time.Time) error {
	if !ordering.IsValidPaymentMethod(method) {
		return shared.NewDomainError("INVALID_PAYMENT_METHOD", "Unsupported payment method")
	}
	if method != ordering.PaymentMethodCard {
		return nil
	}
	if card == nil {
		return shared.NewDomainError("PAYMENT_DECLINED", "Card details are required")
	}

	number := strings.ReplaceAll(card.Number, " ", "")
	if len(number) != 16 || !digitsOnlyRegex.MatchString(number) {
		return shared.NewDomainError("PAYMENT_DECLINED", "Card number must be 16 digits")
	}

	if len(strings.TrimSpace(card.HolderName)) < 2 {
		return shared.NewDomainError("PAYMENT_DECLINED", "Cardholder name is too short")
	}

	if !cvvRegex.MatchString(card.CVV) {
		return shared.NewDomainError("PAYMENT_DECLINED", "CVV must be 3 or 4 digits")
	}

	if card.ExpiryMonth < 1 || card.ExpiryMonth > 12 {
		return shared.NewDomainError("PAYMENT_DECLINED", "Expiry month is invalid")
	}

	currentYear := now.Year()
	if card.ExpiryYear < currentYear || card.ExpiryYear > currentYear+maxExpiryYearsAhead {
		return shared.NewDomainError("PAYMENT_DECLINED", "Expiry year is out of range")
	}

	return nil
}

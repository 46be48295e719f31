package domain

import (
	"fmt"
	"strings"
)

// PaymentMethod is the closed set of accepted tenders
type PaymentMethod string

const (
	PaymentCash         PaymentMethod = "CASH"
	PaymentCard         PaymentMethod = "CARD"
	PaymentMobileMoney  PaymentMethod = "MOBILE_MONEY"
	PaymentBankTransfer PaymentMethod = "BANK_TRANSFER"
)

var paymentMethods = map[PaymentMethod]struct{}{
	PaymentCash:         {},
	PaymentCard:         {},
	PaymentMobileMoney:  {},
	PaymentBankTransfer: {},
}

// ParsePaymentMethod normalizes raw input to upper-case and validates it
// against the closed set.
func ParsePaymentMethod(raw string) (PaymentMethod, error) {
	if strings.TrimSpace(raw) == "" {
		return "", &ValidationError{Reason: "paymentMethod is required"}
	}

	method := PaymentMethod(strings.ToUpper(strings.TrimSpace(raw)))
	if _, ok := paymentMethods[method]; !ok {
		return "", &ValidationError{Reason: fmt.Sprintf("paymentMethod %q is invalid", raw)}
	}

	return method, nil
}

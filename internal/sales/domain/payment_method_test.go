package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePaymentMethod(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want PaymentMethod
	}{
		{"canonical", "CASH", PaymentCash},
		{"lower case", "cash", PaymentCash},
		{"mixed case", "Mobile_Money", PaymentMobileMoney},
		{"surrounding spaces", "  card ", PaymentCard},
		{"bank transfer", "bank_transfer", PaymentBankTransfer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePaymentMethod(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePaymentMethodRejectsUnknown(t *testing.T) {
	_, err := ParsePaymentMethod("BITCOIN")
	require.Error(t, err)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Error(), "BITCOIN")
}

func TestParsePaymentMethodRejectsEmpty(t *testing.T) {
	_, err := ParsePaymentMethod("")
	require.Error(t, err)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "paymentMethod is required", validationErr.Error())
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t,
		"products not found: p1, p2",
		(&ProductsNotFoundError{MissingIDs: []string{"p1", "p2"}}).Error(),
	)
	assert.Equal(t,
		"insufficient stock for Cola. Available: 1",
		(&InsufficientStockError{ProductName: "Cola", Requested: 2, Available: 1}).Error(),
	)
	assert.Equal(t,
		`product "Cola" has no stock record`,
		(&MissingStockError{ProductName: "Cola"}).Error(),
	)
}

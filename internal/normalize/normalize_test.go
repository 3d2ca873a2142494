package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "successful", input: "successful", expected: "Erfolgreich"},
		{name: "pending", input: "pending", expected: "Ausstehend"},
		{name: "failed", input: "failed", expected: "Fehlgeschlagen"},
		{name: "refunded", input: "refunded", expected: "Erstattet"},
		{name: "cancelled", input: "cancelled", expected: "Storniert"},
		{name: "mixed case maps too", input: "Successful", expected: "Erfolgreich"},
		{name: "unknown passes through", input: "chargeback", expected: "chargeback"},
		{name: "empty falls back to default", input: "", expected: "Ausstehend"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Status(tt.input))
		})
	}
}

func TestPaymentMethod(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "paypal", input: "paypal", expected: "PayPal"},
		{name: "card", input: "card", expected: "Kreditkarte"},
		{name: "free", input: "free", expected: "Kostenlos"},
		{name: "klarna", input: "klarna", expected: "Klarna"},
		{name: "bank wire", input: "bank_wire", expected: "Vorkasse"},
		{name: "apple pay", input: "apple_pay", expected: "Apple Pay"},
		{name: "google pay", input: "google_pay", expected: "Google Pay"},
		{name: "sepa", input: "sepa", expected: "SEPA"},
		{name: "unknown passes through", input: "crypto", expected: "crypto"},
		{name: "empty stays empty", input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, PaymentMethod(tt.input))
		})
	}
}

func TestDate(t *testing.T) {
	expected := time.Date(2025, 3, 8, 10, 41, 0, 0, time.UTC)

	german := Date("08.03.2025 10:41")
	if assert.NotNil(t, german) {
		assert.True(t, german.Equal(expected))
	}

	iso := Date("2025-03-08T10:41:00.000Z")
	if assert.NotNil(t, iso) {
		assert.True(t, iso.Equal(expected))
	}

	assert.Nil(t, Date("not a date"))
	assert.Nil(t, Date(""))
	assert.Nil(t, Date("2025-13-99Tgarbage"))
}

func TestEmail(t *testing.T) {
	assert.Equal(t, "anna@example.com", Email("  Anna@Example.COM "))
}

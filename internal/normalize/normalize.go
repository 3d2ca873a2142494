// Package normalize maps the legacy platform's field vocabularies onto
// the canonical values the relational store uses.
package normalize

import (
	"strings"
	"time"
)

var statusMap = map[string]string{
	"successful": "Erfolgreich",
	"pending":    "Ausstehend",
	"failed":     "Fehlgeschlagen",
	"refunded":   "Erstattet",
	"cancelled":  "Storniert",
}

var paymentMethodMap = map[string]string{
	"paypal":     "PayPal",
	"card":       "Kreditkarte",
	"free":       "Kostenlos",
	"klarna":     "Klarna",
	"bank_wire":  "Vorkasse",
	"apple_pay":  "Apple Pay",
	"google_pay": "Google Pay",
	"sepa":       "SEPA",
}

// Status maps a legacy status string to its canonical form. Unknown
// values pass through unchanged; empty input falls back to the default
// "Ausstehend".
func Status(raw string) string {
	if raw == "" {
		return "Ausstehend"
	}
	if v, ok := statusMap[strings.ToLower(raw)]; ok {
		return v
	}
	return raw
}

// PaymentMethod maps a legacy payment-method string to its canonical
// form. Unknown values pass through, empty stays empty.
func PaymentMethod(raw string) string {
	if raw == "" {
		return ""
	}
	if v, ok := paymentMethodMap[strings.ToLower(raw)]; ok {
		return v
	}
	return raw
}

const germanDateLayout = "02.01.2006 15:04"

// Date parses either an ISO-8601 timestamp or the legacy
// "DD.MM.YYYY HH:mm" format, both treated as UTC. Anything else yields
// nil; callers treat nil as "unknown date" and proceed.
func Date(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	if strings.Contains(raw, "T") {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			t = t.UTC()
			return &t
		}
		return nil
	}

	if t, err := time.ParseInLocation(germanDateLayout, raw, time.UTC); err == nil {
		return &t
	}
	return nil
}

// Email lowercases and trims a buyer email for case-insensitive
// matching against auth profiles.
func Email(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

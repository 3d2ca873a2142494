// Package transform converts raw legacy records into rows of the
// target schema. Transformation is pure; persistence happens in the
// repository layer.
package transform

import (
	"fmt"

	"ablefy-sync/internal/domain"
	"ablefy-sync/internal/normalize"
)

// RawTransaction is the explicit schema of one legacy transaction
// record as the Ablefy API and the automation webhook deliver it.
type RawTransaction struct {
	TrxID       int64   `json:"trx_id"`
	Datum       string  `json:"datum"`
	Status      string  `json:"status"`
	Zahlungsart string  `json:"zahlungsart"`
	Bezahlt     float64 `json:"bezahlt"`
	FeesTotal   float64 `json:"fees_total"`
	Waehrung    string  `json:"waehrung"`
	Email       string  `json:"email"`
	Vorname     string  `json:"vorname"`
	Nachname    string  `json:"nachname"`
	Strasse     string  `json:"strasse"`
	PLZ         string  `json:"plz"`
	Stadt       string  `json:"stadt"`
	Land        string  `json:"land"`
	OrderNumber *int64  `json:"order_number"`
	ProductID   *int64  `json:"product_id"`
	AccountType string  `json:"account_type"`
}

// Rejected carries a record that failed required-field validation
// together with the reason, so callers can report instead of silently
// undercounting.
type Rejected struct {
	Raw    RawTransaction
	Reason string
}

// Transaction maps one raw record onto the target row shape. Records
// without the natural key or a buyer email cannot be upserted safely
// and are rejected.
func Transaction(raw RawTransaction) (*domain.Transaction, error) {
	if raw.TrxID == 0 {
		return nil, fmt.Errorf("transform: missing trx_id")
	}
	if normalize.Email(raw.Email) == "" {
		return nil, fmt.Errorf("transform: trx %d: missing buyer email", raw.TrxID)
	}

	currency := raw.Waehrung
	if currency == "" {
		currency = "EUR"
	}
	accountType := raw.AccountType
	if accountType == "" {
		accountType = domain.AccountTypeNew
	}

	return &domain.Transaction{
		TrxID:         raw.TrxID,
		TrxDate:       normalize.Date(raw.Datum),
		Status:        normalize.Status(raw.Status),
		PaymentMethod: normalize.PaymentMethod(raw.Zahlungsart),
		AmountGross:   raw.Bezahlt,
		Fees:          raw.FeesTotal,
		Currency:      currency,
		BuyerEmail:    normalize.Email(raw.Email),
		FirstName:     raw.Vorname,
		LastName:      raw.Nachname,
		Street:        raw.Strasse,
		Zip:           raw.PLZ,
		City:          raw.Stadt,
		Country:       raw.Land,
		OrderNumber:   raw.OrderNumber,
		ProductID:     raw.ProductID,
		AccountType:   accountType,
	}, nil
}

// Transactions transforms a batch, splitting it into persistable rows
// and rejects.
func Transactions(raws []RawTransaction) ([]*domain.Transaction, []Rejected) {
	rows := make([]*domain.Transaction, 0, len(raws))
	var rejects []Rejected
	for _, raw := range raws {
		row, err := Transaction(raw)
		if err != nil {
			rejects = append(rejects, Rejected{Raw: raw, Reason: err.Error()})
			continue
		}
		rows = append(rows, row)
	}
	return rows, rejects
}

// MinimalOrder derives the smallest valid order row from a transaction
// that references an order the store does not know yet.
func MinimalOrder(tx *domain.Transaction) *domain.Order {
	status := domain.OrderStatusPending
	if tx.Status == domain.StatusSuccessful {
		status = domain.OrderStatusPaid
	}
	return &domain.Order{
		OrderNumber: *tx.OrderNumber,
		BuyerEmail:  tx.BuyerEmail,
		OrderDate:   tx.TrxDate,
		Status:      status,
		ProductID:   tx.ProductID,
		AmountGross: tx.AmountGross,
		Fees:        tx.Fees,
		Currency:    tx.Currency,
	}
}

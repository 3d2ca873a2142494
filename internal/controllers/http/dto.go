package http

import "ablefy-sync/internal/transform"

// WebhookRequest is the automation tool's per-transaction payload.
// trx_id and email are the only hard requirements; everything else is
// normalized with defaults downstream.
type WebhookRequest struct {
	TrxID       int64   `json:"trx_id" binding:"required"`
	Email       string  `json:"email" binding:"required,email"`
	Datum       string  `json:"datum"`
	Status      string  `json:"status"`
	Zahlungsart string  `json:"zahlungsart"`
	Bezahlt     float64 `json:"bezahlt"`
	FeesTotal   float64 `json:"fees_total"`
	Waehrung    string  `json:"waehrung"`
	Vorname     string  `json:"vorname"`
	Nachname    string  `json:"nachname"`
	Strasse     string  `json:"strasse"`
	PLZ         string  `json:"plz"`
	Stadt       string  `json:"stadt"`
	Land        string  `json:"land"`
	OrderNumber *int64  `json:"order_number"`
	ProductID   *int64  `json:"product_id"`
	AccountType string  `json:"account_type" binding:"omitempty,oneof=old new"`
}

func (r WebhookRequest) raw() transform.RawTransaction {
	return transform.RawTransaction{
		TrxID:       r.TrxID,
		Datum:       r.Datum,
		Status:      r.Status,
		Zahlungsart: r.Zahlungsart,
		Bezahlt:     r.Bezahlt,
		FeesTotal:   r.FeesTotal,
		Waehrung:    r.Waehrung,
		Email:       r.Email,
		Vorname:     r.Vorname,
		Nachname:    r.Nachname,
		Strasse:     r.Strasse,
		PLZ:         r.PLZ,
		Stadt:       r.Stadt,
		Land:        r.Land,
		OrderNumber: r.OrderNumber,
		ProductID:   r.ProductID,
		AccountType: r.AccountType,
	}
}

type WebhookResponse struct {
	Success       bool   `json:"success"`
	TransactionID uint64 `json:"transaction_id"`
	Message       string `json:"message"`
}

package domain

import "time"

type TransactionImportedEvent struct {
	TrxID       int64     `json:"trxId"`
	OrderNumber *int64    `json:"orderNumber"`
	BuyerEmail  string    `json:"buyerEmail"`
	Status      string    `json:"status"`
	AmountGross float64   `json:"amountGross"`
	ImportedAt  time.Time `json:"importedAt"`
}

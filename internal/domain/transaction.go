package domain

import (
	"time"

	"github.com/google/uuid"
)

type TransactionStatus = string

const (
	StatusSuccessful TransactionStatus = "Erfolgreich"
	StatusPending    TransactionStatus = "Ausstehend"
	StatusFailed     TransactionStatus = "Fehlgeschlagen"
	StatusRefunded   TransactionStatus = "Erstattet"
	StatusCancelled  TransactionStatus = "Storniert"
)

const (
	AccountTypeOld = "old"
	AccountTypeNew = "new"
)

// Transaction is one legacy Ablefy payment event. TrxID is the natural
// key used for upsert conflict resolution; OrderID, CourseID and UserID
// are only ever set by the linking pass.
type Transaction struct {
	ID            uint64     `json:"id" gorm:"primaryKey;autoIncrement"`
	TrxID         int64      `json:"trxId" gorm:"column:trx_id;uniqueIndex;not null"`
	TrxDate       *time.Time `json:"trxDate" gorm:"column:trx_date"`
	Status        string     `json:"status" gorm:"not null;default:'Ausstehend'"`
	PaymentMethod string     `json:"paymentMethod" gorm:"column:payment_method"`
	AmountGross   float64    `json:"amountGross" gorm:"column:amount_gross;not null;default:0"`
	Fees          float64    `json:"fees" gorm:"not null;default:0"`
	Currency      string     `json:"currency" gorm:"size:3;default:'EUR'"`
	BuyerEmail    string     `json:"buyerEmail" gorm:"column:buyer_email;index;not null"`
	FirstName     string     `json:"firstName" gorm:"column:first_name"`
	LastName      string     `json:"lastName" gorm:"column:last_name"`
	Street        string     `json:"street"`
	Zip           string     `json:"zip"`
	City          string     `json:"city"`
	Country       string     `json:"country"`
	OrderNumber   *int64     `json:"orderNumber" gorm:"column:order_number;index"`
	ProductID     *int64     `json:"productId" gorm:"column:product_id;index"`
	AccountType   string     `json:"accountType" gorm:"column:account_type;size:10"`

	OrderID  *uint64    `json:"orderId" gorm:"column:order_id;index"`
	CourseID *uuid.UUID `json:"courseId" gorm:"column:course_id;type:uuid;index"`
	UserID   *uuid.UUID `json:"userId" gorm:"column:user_id;type:uuid;index"`

	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

func (Transaction) TableName() string {
	return "transactions"
}

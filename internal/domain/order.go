package domain

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus = string

const (
	OrderStatusPaid    OrderStatus = "paid"
	OrderStatusPending OrderStatus = "pending"
)

// Order groups the transactions of one purchase (installment plans
// produce several transactions per order). OrderNumber is the natural
// key from the legacy platform.
type Order struct {
	ID          uint64     `json:"id" gorm:"primaryKey;autoIncrement"`
	OrderNumber int64      `json:"orderNumber" gorm:"column:order_number;uniqueIndex;not null"`
	BuyerEmail  string     `json:"buyerEmail" gorm:"column:buyer_email;index"`
	OrderDate   *time.Time `json:"orderDate" gorm:"column:order_date"`
	Status      string     `json:"status" gorm:"default:'pending'"`
	ProductID   *int64     `json:"productId" gorm:"column:product_id;index"`
	AmountGross float64    `json:"amountGross" gorm:"column:amount_gross;not null;default:0"`
	Fees        float64    `json:"fees" gorm:"not null;default:0"`
	Currency    string     `json:"currency" gorm:"size:3;default:'EUR'"`

	CourseID *uuid.UUID `json:"courseId" gorm:"column:course_id;type:uuid;index"`
	UserID   *uuid.UUID `json:"userId" gorm:"column:user_id;type:uuid;index"`

	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

func (Order) TableName() string {
	return "orders"
}

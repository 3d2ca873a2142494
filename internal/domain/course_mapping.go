package domain

import (
	"time"

	"github.com/google/uuid"
)

// CourseMapping resolves an Ablefy product id to the internal course
// that the purchase grants access to. Active mappings are unique per
// product id.
type CourseMapping struct {
	ID              uint64    `json:"id" gorm:"primaryKey;autoIncrement"`
	AblefyProductID int64     `json:"ablefyProductId" gorm:"column:ablefy_product_id;index;not null"`
	CourseID        uuid.UUID `json:"courseId" gorm:"column:course_id;type:uuid;not null"`
	ProductName     string    `json:"productName" gorm:"column:product_name"`
	IsActive        bool      `json:"isActive" gorm:"column:is_active;default:true"`
	CreatedAt       time.Time `json:"createdAt" gorm:"autoCreateTime"`
}

func (CourseMapping) TableName() string {
	return "course_mapping"
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"ablefy-sync/internal/domain"
	"ablefy-sync/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepo{db: db}
}

func (r *orderRepo) FindByOrderNumber(ctx context.Context, orderNumber int64) (*domain.Order, error) {
	var o domain.Order
	if err := r.db.WithContext(ctx).Where("order_number = ?", orderNumber).First(&o).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

// CreateIgnoreDuplicate inserts a minimal order; a concurrent insert of
// the same order number is a benign race and is ignored.
func (r *orderRepo) CreateIgnoreDuplicate(ctx context.Context, order *domain.Order) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "order_number"}}, DoNothing: true}).
		Create(order).Error
}

func (r *orderRepo) FindWithUnlinkedCourse(ctx context.Context) ([]domain.Order, error) {
	var out []domain.Order
	err := r.db.WithContext(ctx).
		Where("product_id IS NOT NULL AND course_id IS NULL").
		Order("order_number").
		Find(&out).Error
	return out, err
}

func (r *orderRepo) FindWithUnlinkedUser(ctx context.Context) ([]domain.Order, error) {
	var out []domain.Order
	err := r.db.WithContext(ctx).
		Where("user_id IS NULL AND buyer_email <> ''").
		Order("order_number").
		Find(&out).Error
	return out, err
}

func (r *orderRepo) SetCourseID(ctx context.Context, id uint64, courseID uuid.UUID) error {
	return r.setColumn(ctx, id, "course_id", courseID)
}

func (r *orderRepo) SetUserID(ctx context.Context, id uint64, userID uuid.UUID) error {
	return r.setColumn(ctx, id, "user_id", userID)
}

func (r *orderRepo) setColumn(ctx context.Context, id uint64, column string, value interface{}) error {
	res := r.db.WithContext(ctx).Model(&domain.Order{}).
		Where("id = ?", id).
		Update(column, value)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("order %d not found", id)
	}
	return nil
}

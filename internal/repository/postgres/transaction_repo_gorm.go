package postgres

import (
	"context"
	"fmt"
	"time"

	"ablefy-sync/internal/domain"
	"ablefy-sync/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const upsertChunkSize = 100

// Columns refreshed on conflict. The linked FKs (order_id, course_id,
// user_id) are deliberately absent so a re-import never detaches a row
// that a linking pass already resolved.
var transactionUpsertColumns = []string{
	"trx_date", "status", "payment_method", "amount_gross", "fees",
	"currency", "buyer_email", "first_name", "last_name", "street",
	"zip", "city", "country", "order_number", "product_id",
	"account_type", "updated_at",
}

type transactionRepo struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) repository.TransactionRepository {
	return &transactionRepo{db: db}
}

func (r *transactionRepo) upsertClause() clause.Expression {
	return clause.OnConflict{
		Columns:   []clause.Column{{Name: "trx_id"}},
		DoUpdates: clause.AssignmentColumns(transactionUpsertColumns),
	}
}

func (r *transactionRepo) Upsert(ctx context.Context, tx *domain.Transaction) error {
	return r.db.WithContext(ctx).Clauses(r.upsertClause()).Create(tx).Error
}

// UpsertBatch writes in fixed-size chunks and keeps going past a failed
// chunk; the failures are returned for the caller to report. Re-running
// with the same input is idempotent due to the conflict clause.
func (r *transactionRepo) UpsertBatch(ctx context.Context, txs []*domain.Transaction) repository.UpsertResult {
	var result repository.UpsertResult
	for i := 0; i < len(txs); i += upsertChunkSize {
		end := i + upsertChunkSize
		if end > len(txs) {
			end = len(txs)
		}

		chunk := txs[i:end]
		if err := r.db.WithContext(ctx).Clauses(r.upsertClause()).Create(&chunk).Error; err != nil {
			keys := make([]int64, 0, len(chunk))
			for _, tx := range chunk {
				keys = append(keys, tx.TrxID)
			}
			result.Failures = append(result.Failures, repository.ChunkFailure{
				TrxIDs: keys,
				Reason: err.Error(),
			})
			continue
		}
		result.Upserted += len(chunk)
	}
	return result
}

func (r *transactionRepo) FindWithUnlinkedOrder(ctx context.Context) ([]domain.Transaction, error) {
	var out []domain.Transaction
	err := r.db.WithContext(ctx).
		Where("order_number IS NOT NULL AND order_id IS NULL").
		Order("trx_id").
		Find(&out).Error
	return out, err
}

func (r *transactionRepo) FindWithUnlinkedCourse(ctx context.Context) ([]domain.Transaction, error) {
	var out []domain.Transaction
	err := r.db.WithContext(ctx).
		Where("product_id IS NOT NULL AND course_id IS NULL").
		Order("trx_id").
		Find(&out).Error
	return out, err
}

func (r *transactionRepo) FindWithUnlinkedUser(ctx context.Context) ([]domain.Transaction, error) {
	var out []domain.Transaction
	err := r.db.WithContext(ctx).
		Where("user_id IS NULL AND buyer_email <> ''").
		Order("trx_id").
		Find(&out).Error
	return out, err
}

func (r *transactionRepo) SetOrderID(ctx context.Context, id uint64, orderID uint64) error {
	return r.setColumn(ctx, id, "order_id", orderID)
}

func (r *transactionRepo) SetCourseID(ctx context.Context, id uint64, courseID uuid.UUID) error {
	return r.setColumn(ctx, id, "course_id", courseID)
}

func (r *transactionRepo) SetUserID(ctx context.Context, id uint64, userID uuid.UUID) error {
	return r.setColumn(ctx, id, "user_id", userID)
}

func (r *transactionRepo) setColumn(ctx context.Context, id uint64, column string, value interface{}) error {
	res := r.db.WithContext(ctx).Model(&domain.Transaction{}).
		Where("id = ?", id).
		Update(column, value)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("transaction %d not found", id)
	}
	return nil
}

// Rows with a NULL trx_date stay in every window; the source-side
// comparison keeps undated records too, and the diagnostic only works
// if both sides apply the same rule.
const windowPredicate = "(trx_date >= ? AND trx_date < ?) OR trx_date IS NULL"

func (r *transactionRepo) CountInWindow(ctx context.Context, from, to time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Transaction{}).
		Where(windowPredicate, from, to).
		Count(&n).Error
	return n, err
}

func (r *transactionRepo) SumAmountInWindow(ctx context.Context, from, to time.Time) (float64, error) {
	var sum float64
	err := r.db.WithContext(ctx).Model(&domain.Transaction{}).
		Where(windowPredicate, from, to).
		Select("COALESCE(SUM(amount_gross), 0)").
		Scan(&sum).Error
	return sum, err
}

func (r *transactionRepo) ListTrxIDs(ctx context.Context, from, to time.Time) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).Model(&domain.Transaction{}).
		Where(windowPredicate, from, to).
		Order("trx_id").
		Pluck("trx_id", &ids).Error
	return ids, err
}

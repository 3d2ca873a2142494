package repository

import (
	"context"
	"time"

	"ablefy-sync/internal/domain"

	"github.com/google/uuid"
)

// ChunkFailure records one failed upsert chunk. Batch writes are
// best-effort; the caller decides whether to alert or re-run.
type ChunkFailure struct {
	TrxIDs []int64
	Reason string
}

type UpsertResult struct {
	Upserted int
	Failures []ChunkFailure
}

type TransactionRepository interface {
	Upsert(ctx context.Context, tx *domain.Transaction) error
	UpsertBatch(ctx context.Context, txs []*domain.Transaction) UpsertResult
	FindWithUnlinkedOrder(ctx context.Context) ([]domain.Transaction, error)
	FindWithUnlinkedCourse(ctx context.Context) ([]domain.Transaction, error)
	FindWithUnlinkedUser(ctx context.Context) ([]domain.Transaction, error)
	SetOrderID(ctx context.Context, id uint64, orderID uint64) error
	SetCourseID(ctx context.Context, id uint64, courseID uuid.UUID) error
	SetUserID(ctx context.Context, id uint64, userID uuid.UUID) error
	// The window queries include rows with an unknown (NULL) trx_date
	// in every window, matching how the diagnostics treat undated
	// source records.
	CountInWindow(ctx context.Context, from, to time.Time) (int64, error)
	SumAmountInWindow(ctx context.Context, from, to time.Time) (float64, error)
	ListTrxIDs(ctx context.Context, from, to time.Time) ([]int64, error)
}

type OrderRepository interface {
	FindByOrderNumber(ctx context.Context, orderNumber int64) (*domain.Order, error)
	CreateIgnoreDuplicate(ctx context.Context, order *domain.Order) error
	FindWithUnlinkedCourse(ctx context.Context) ([]domain.Order, error)
	FindWithUnlinkedUser(ctx context.Context) ([]domain.Order, error)
	SetCourseID(ctx context.Context, id uint64, courseID uuid.UUID) error
	SetUserID(ctx context.Context, id uint64, userID uuid.UUID) error
}

type CourseMappingRepository interface {
	// ActiveMappings returns ablefy product id -> internal course id for
	// all active mapping rows.
	ActiveMappings(ctx context.Context) (map[int64]uuid.UUID, error)
}

type ProfileRepository interface {
	// FindByEmail matches case-insensitively; (nil, nil) when absent.
	FindByEmail(ctx context.Context, email string) (*domain.Profile, error)
}

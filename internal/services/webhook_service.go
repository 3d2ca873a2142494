package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ablefy-sync/internal/domain"
	"ablefy-sync/internal/infra/rabbitmq"
	"ablefy-sync/internal/repository"
	"ablefy-sync/internal/transform"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// ErrDeliveryInFlight is returned when another delivery for the same
// trx_id currently holds the ingest lock; the automation tool retries.
var ErrDeliveryInFlight = errors.New("delivery for this transaction already in flight")

const trxLockTTL = 10 * time.Second

// WebhookService is the single-record, synchronous variant of the
// import pipeline: normalize, transform, upsert, link, then publish an
// event. Concurrent deliveries for the same natural key are serialized
// with a short redis lock.
type WebhookService struct {
	txRepo      repository.TransactionRepository
	linker      *LinkService
	publisher   rabbitmq.PublisherInterface
	redisClient *redis.Client
	logger      *zap.SugaredLogger
}

func NewWebhookService(
	txRepo repository.TransactionRepository,
	linker *LinkService,
	publisher rabbitmq.PublisherInterface,
	logger *zap.SugaredLogger,
) *WebhookService {
	return &WebhookService{
		txRepo:    txRepo,
		linker:    linker,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *WebhookService) SetRedisClient(client *redis.Client) {
	s.redisClient = client
}

func (s *WebhookService) ProcessTransaction(ctx context.Context, raw transform.RawTransaction) (*domain.Transaction, error) {
	tx, err := transform.Transaction(raw)
	if err != nil {
		return nil, err
	}

	unlock, err := s.lockTrx(ctx, tx.TrxID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if err := s.txRepo.Upsert(ctx, tx); err != nil {
		return nil, fmt.Errorf("upsert trx %d: %w", tx.TrxID, err)
	}

	if err := s.linker.LinkOne(ctx, tx); err != nil {
		// The row is persisted; linking completes on the next pass.
		s.logger.Warnw("linking incomplete", "trx_id", tx.TrxID, "error", err)
	}

	go s.publishImportedEvent(context.Background(), tx)

	return tx, nil
}

// lockTrx serializes deliveries per natural key. Without redis the
// service falls back to last-write-wins upserts, which stay safe.
func (s *WebhookService) lockTrx(ctx context.Context, trxID int64) (func(), error) {
	if s.redisClient == nil {
		return func() {}, nil
	}

	key := fmt.Sprintf("ablefy:trx-lock:%d", trxID)
	ok, err := s.redisClient.SetNX(ctx, key, 1, trxLockTTL).Result()
	if err != nil {
		s.logger.Warnw("trx lock unavailable, proceeding unlocked", "trx_id", trxID, "error", err)
		return func() {}, nil
	}
	if !ok {
		return nil, ErrDeliveryInFlight
	}
	return func() { s.redisClient.Del(context.Background(), key) }, nil
}

func (s *WebhookService) publishImportedEvent(ctx context.Context, tx *domain.Transaction) {
	if s.publisher == nil {
		return
	}

	evt := domain.TransactionImportedEvent{
		TrxID:       tx.TrxID,
		OrderNumber: tx.OrderNumber,
		BuyerEmail:  tx.BuyerEmail,
		Status:      tx.Status,
		AmountGross: tx.AmountGross,
		ImportedAt:  time.Now().UTC(),
	}

	if err := s.publisher.Publish(ctx, "transaction.imported", evt); err != nil {
		s.logger.Warnw("failed to publish event", "trx_id", tx.TrxID, "error", err)
	}
}

package infra

import (
	"context"

	"ablefy-sync/internal/transform"
)

type AblefyClientInterface interface {
	ListTransactions(ctx context.Context, page int) ([]transform.RawTransaction, int, error)
}

var _ AblefyClientInterface = (*AblefyClient)(nil)

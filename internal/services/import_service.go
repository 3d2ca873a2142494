package services

import (
	"context"
	"sync"
	"time"

	"ablefy-sync/internal/infra"
	"ablefy-sync/internal/repository"
	"ablefy-sync/internal/transform"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Courtesy limit against the legacy API: at most two pages in flight
// and a fixed pause between page launches.
const (
	fetchParallelism = 2
	fetchPageDelay   = 250 * time.Millisecond
)

type ImportReport struct {
	Fetched     int
	FailedPages int
	Rejected    []transform.Rejected
	Upserted    int
	Failures    []repository.ChunkFailure
}

type PreviewReport struct {
	Fetched     int
	FailedPages int
	Importable  int
	Rejected    []transform.Rejected
}

type ImportService struct {
	txRepo repository.TransactionRepository
	client infra.AblefyClientInterface
	logger *zap.SugaredLogger
}

func NewImportService(txRepo repository.TransactionRepository, client infra.AblefyClientInterface, logger *zap.SugaredLogger) *ImportService {
	return &ImportService{txRepo: txRepo, client: client, logger: logger}
}

// FetchAll pages through the legacy API. A failed page is logged and
// skipped; the remaining pages still load, and the diagnostic modes
// surface the resulting gap.
func (s *ImportService) FetchAll(ctx context.Context) ([]transform.RawTransaction, int, error) {
	first, totalPages, err := s.client.ListTransactions(ctx, 1)
	if err != nil {
		return nil, 0, err
	}
	if totalPages <= 1 {
		return first, 0, nil
	}

	pages := make([][]transform.RawTransaction, totalPages)
	pages[0] = first

	var mu sync.Mutex
	failedPages := 0

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchParallelism)
	for page := 2; page <= totalPages; page++ {
		page := page
		time.Sleep(fetchPageDelay)
		g.Go(func() error {
			raws, _, err := s.client.ListTransactions(gctx, page)
			if err != nil {
				s.logger.Warnw("page fetch failed, continuing", "page", page, "error", err)
				mu.Lock()
				failedPages++
				mu.Unlock()
				return nil
			}
			mu.Lock()
			pages[page-1] = raws
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	var out []transform.RawTransaction
	for _, p := range pages {
		out = append(out, p...)
	}
	return out, failedPages, nil
}

// Preview runs the read-only half of the pipeline: fetch and transform,
// nothing written.
func (s *ImportService) Preview(ctx context.Context) (*PreviewReport, error) {
	raws, failedPages, err := s.FetchAll(ctx)
	if err != nil {
		return nil, err
	}

	rows, rejects := transform.Transactions(raws)
	return &PreviewReport{
		Fetched:     len(raws),
		FailedPages: failedPages,
		Importable:  len(rows),
		Rejected:    rejects,
	}, nil
}

// Import fetches, transforms and batch-upserts. Chunk failures do not
// abort the run; the report carries them and a re-run completes the
// import (upserts are idempotent on trx_id).
func (s *ImportService) Import(ctx context.Context) (*ImportReport, error) {
	raws, failedPages, err := s.FetchAll(ctx)
	if err != nil {
		return nil, err
	}

	rows, rejects := transform.Transactions(raws)
	for _, rej := range rejects {
		s.logger.Warnw("record rejected", "trx_id", rej.Raw.TrxID, "reason", rej.Reason)
	}

	result := s.txRepo.UpsertBatch(ctx, rows)
	for _, failure := range result.Failures {
		s.logger.Errorw("chunk upsert failed", "keys", len(failure.TrxIDs), "reason", failure.Reason)
	}

	return &ImportReport{
		Fetched:     len(raws),
		FailedPages: failedPages,
		Rejected:    rejects,
		Upserted:    result.Upserted,
		Failures:    result.Failures,
	}, nil
}

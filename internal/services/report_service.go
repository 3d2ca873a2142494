package services

import (
	"context"
	"math"
	"time"

	"ablefy-sync/internal/infra"
	"ablefy-sync/internal/normalize"
	"ablefy-sync/internal/repository"
	"ablefy-sync/internal/transform"

	"go.uber.org/zap"
)

const missingSampleLimit = 20

// ValidationReport compares the legacy source against the relational
// store for one time window. Read-only; remediation is an operator
// re-running import/link.
type ValidationReport struct {
	From        time.Time
	To          time.Time
	SourceCount int
	StoreCount  int64
	// MissingTrxIDs are natural keys present in the source but absent
	// from the store.
	MissingTrxIDs []int64
	Sample        []transform.RawTransaction
	SourceTotal   float64
	StoreTotal    float64
	// TotalDiff is the absolute difference of the summed gross amounts,
	// rounded to cents.
	TotalDiff float64
}

type ReportService struct {
	txRepo repository.TransactionRepository
	client infra.AblefyClientInterface
	logger *zap.SugaredLogger
}

func NewReportService(txRepo repository.TransactionRepository, client infra.AblefyClientInterface, logger *zap.SugaredLogger) *ReportService {
	return &ReportService{txRepo: txRepo, client: client, logger: logger}
}

func (s *ReportService) Validate(ctx context.Context, from, to time.Time) (*ValidationReport, error) {
	source, err := s.fetchWindow(ctx, from, to)
	if err != nil {
		return nil, err
	}

	storeCount, err := s.txRepo.CountInWindow(ctx, from, to)
	if err != nil {
		return nil, err
	}
	storeIDs, err := s.txRepo.ListTrxIDs(ctx, from, to)
	if err != nil {
		return nil, err
	}
	storeTotal, err := s.txRepo.SumAmountInWindow(ctx, from, to)
	if err != nil {
		return nil, err
	}

	known := make(map[int64]struct{}, len(storeIDs))
	for _, id := range storeIDs {
		known[id] = struct{}{}
	}

	report := &ValidationReport{
		From:        from,
		To:          to,
		SourceCount: len(source),
		StoreCount:  storeCount,
		StoreTotal:  storeTotal,
	}

	for _, raw := range source {
		report.SourceTotal += raw.Bezahlt
		if _, ok := known[raw.TrxID]; ok {
			continue
		}
		report.MissingTrxIDs = append(report.MissingTrxIDs, raw.TrxID)
		if len(report.Sample) < missingSampleLimit {
			report.Sample = append(report.Sample, raw)
		}
	}

	report.TotalDiff = roundCents(math.Abs(report.SourceTotal - report.StoreTotal))
	return report, nil
}

// fetchWindow pages the legacy API sequentially and keeps the records
// whose parsed date falls inside [from, to). Records without a parsable
// date stay in the comparison: an unknown date is not evidence that the
// record is out of window.
func (s *ReportService) fetchWindow(ctx context.Context, from, to time.Time) ([]transform.RawTransaction, error) {
	var out []transform.RawTransaction
	page := 1
	for {
		raws, totalPages, err := s.client.ListTransactions(ctx, page)
		if err != nil {
			return nil, err
		}
		s.logger.Debugw("fetched source page", "page", page, "records", len(raws))
		for _, raw := range raws {
			if raw.TrxID == 0 {
				continue
			}
			if t := normalize.Date(raw.Datum); t != nil && (t.Before(from) || !t.Before(to)) {
				continue
			}
			out = append(out, raw)
		}
		if page >= totalPages {
			return out, nil
		}
		page++
	}
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

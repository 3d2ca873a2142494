package services

import (
	"context"
	"testing"
	"time"

	"ablefy-sync/internal/mocks"
	"ablefy-sync/internal/transform"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func TestReportService_Validate(t *testing.T) {
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)

	mockRepo := new(mocks.MockTransactionRepository)
	mockClient := new(mocks.MockAblefyClient)

	source := []transform.RawTransaction{
		{TrxID: 1, Datum: "08.01.2025 09:00", Bezahlt: 100.00, Email: "a@example.com"},
		{TrxID: 2, Datum: "09.02.2025 09:00", Bezahlt: 49.90, Email: "b@example.com"},
		{TrxID: 3, Datum: "10.03.2025 09:00", Bezahlt: 12.34, Email: "c@example.com"},
		// Outside the window, must be excluded from the comparison.
		{TrxID: 4, Datum: "10.05.2025 09:00", Bezahlt: 999.99, Email: "d@example.com"},
	}
	mockClient.On("ListTransactions", mock.Anything, 1).Return(source, 1, nil)

	// Store knows 1 and 2 only; the window totals differ by trx 3.
	mockRepo.On("CountInWindow", mock.Anything, from, to).Return(int64(2), nil)
	mockRepo.On("ListTrxIDs", mock.Anything, from, to).Return([]int64{1, 2}, nil)
	mockRepo.On("SumAmountInWindow", mock.Anything, from, to).Return(149.90, nil)

	svc := NewReportService(mockRepo, mockClient, zap.NewNop().Sugar())
	report, err := svc.Validate(context.Background(), from, to)

	assert.NoError(t, err)
	assert.Equal(t, 3, report.SourceCount)
	assert.Equal(t, int64(2), report.StoreCount)
	assert.Equal(t, []int64{3}, report.MissingTrxIDs)
	assert.Len(t, report.Sample, 1)
	assert.Equal(t, int64(3), report.Sample[0].TrxID)
	assert.InDelta(t, 162.24, report.SourceTotal, 0.001)
	assert.InDelta(t, 149.90, report.StoreTotal, 0.001)
	assert.Equal(t, 12.34, report.TotalDiff)

	mockRepo.AssertExpectations(t)
	mockClient.AssertExpectations(t)
}

func TestReportService_Validate_NoGaps(t *testing.T) {
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)

	mockRepo := new(mocks.MockTransactionRepository)
	mockClient := new(mocks.MockAblefyClient)

	mockClient.On("ListTransactions", mock.Anything, 1).Return([]transform.RawTransaction{
		{TrxID: 1, Datum: "08.01.2025 09:00", Bezahlt: 100.00, Email: "a@example.com"},
	}, 1, nil)
	mockRepo.On("CountInWindow", mock.Anything, from, to).Return(int64(1), nil)
	mockRepo.On("ListTrxIDs", mock.Anything, from, to).Return([]int64{1}, nil)
	mockRepo.On("SumAmountInWindow", mock.Anything, from, to).Return(100.00, nil)

	svc := NewReportService(mockRepo, mockClient, zap.NewNop().Sugar())
	report, err := svc.Validate(context.Background(), from, to)

	assert.NoError(t, err)
	assert.Empty(t, report.MissingTrxIDs)
	assert.Equal(t, float64(0), report.TotalDiff)
}

func TestReportService_Validate_KeepsRecordsWithoutDate(t *testing.T) {
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)

	mockRepo := new(mocks.MockTransactionRepository)
	mockClient := new(mocks.MockAblefyClient)

	mockClient.On("ListTransactions", mock.Anything, 1).Return([]transform.RawTransaction{
		{TrxID: 7, Datum: "not a date", Bezahlt: 10.00, Email: "x@example.com"},
	}, 1, nil)
	mockRepo.On("CountInWindow", mock.Anything, from, to).Return(int64(0), nil)
	mockRepo.On("ListTrxIDs", mock.Anything, from, to).Return([]int64{}, nil)
	mockRepo.On("SumAmountInWindow", mock.Anything, from, to).Return(0.0, nil)

	svc := NewReportService(mockRepo, mockClient, zap.NewNop().Sugar())
	report, err := svc.Validate(context.Background(), from, to)

	assert.NoError(t, err)
	assert.Equal(t, 1, report.SourceCount)
	assert.Equal(t, []int64{7}, report.MissingTrxIDs)
}

func TestReportService_Validate_UndatedRowInStoreConverges(t *testing.T) {
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)

	mockRepo := new(mocks.MockTransactionRepository)
	mockClient := new(mocks.MockAblefyClient)

	// The undated record was already imported (trx_date NULL in the
	// store); the window queries report it on the store side too, so
	// it must neither show up as missing nor skew the totals.
	mockClient.On("ListTransactions", mock.Anything, 1).Return([]transform.RawTransaction{
		{TrxID: 7, Datum: "not a date", Bezahlt: 10.00, Email: "x@example.com"},
		{TrxID: 8, Datum: "09.02.2025 09:00", Bezahlt: 49.90, Email: "y@example.com"},
	}, 1, nil)
	mockRepo.On("CountInWindow", mock.Anything, from, to).Return(int64(2), nil)
	mockRepo.On("ListTrxIDs", mock.Anything, from, to).Return([]int64{7, 8}, nil)
	mockRepo.On("SumAmountInWindow", mock.Anything, from, to).Return(59.90, nil)

	svc := NewReportService(mockRepo, mockClient, zap.NewNop().Sugar())
	report, err := svc.Validate(context.Background(), from, to)

	assert.NoError(t, err)
	assert.Equal(t, 2, report.SourceCount)
	assert.Equal(t, int64(2), report.StoreCount)
	assert.Empty(t, report.MissingTrxIDs)
	assert.Equal(t, float64(0), report.TotalDiff)

	mockRepo.AssertExpectations(t)
	mockClient.AssertExpectations(t)
}

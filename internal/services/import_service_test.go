package services

import (
	"context"
	"errors"
	"testing"

	"ablefy-sync/internal/mocks"
	"ablefy-sync/internal/repository"
	"ablefy-sync/internal/transform"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func rawTx(id int64, email string) transform.RawTransaction {
	return transform.RawTransaction{
		TrxID:  id,
		Email:  email,
		Datum:  "08.03.2025 10:41",
		Status: "successful",
	}
}

func TestImportService_Preview(t *testing.T) {
	mockClient := new(mocks.MockAblefyClient)
	mockClient.On("ListTransactions", mock.Anything, 1).Return([]transform.RawTransaction{
		rawTx(1, "a@example.com"),
		rawTx(2, "b@example.com"),
		{Email: "no-id@example.com"},
	}, 1, nil)

	svc := NewImportService(nil, mockClient, zap.NewNop().Sugar())

	report, err := svc.Preview(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 3, report.Fetched)
	assert.Equal(t, 2, report.Importable)
	assert.Len(t, report.Rejected, 1)
	assert.Equal(t, 0, report.FailedPages)

	mockClient.AssertExpectations(t)
}

func TestImportService_Import(t *testing.T) {
	tests := []struct {
		name            string
		setupMocks      func(*mocks.MockTransactionRepository, *mocks.MockAblefyClient)
		expectedError   string
		expectedUpserts int
		expectedFailed  int
	}{
		{
			name: "successful import",
			setupMocks: func(mockRepo *mocks.MockTransactionRepository, mockClient *mocks.MockAblefyClient) {
				mockClient.On("ListTransactions", mock.Anything, 1).Return([]transform.RawTransaction{
					rawTx(1, "a@example.com"),
					rawTx(2, "b@example.com"),
				}, 1, nil)
				mockRepo.On("UpsertBatch", mock.Anything, mock.AnythingOfType("[]*domain.Transaction")).
					Return(repository.UpsertResult{Upserted: 2})
			},
			expectedUpserts: 2,
		},
		{
			name: "chunk failure does not abort the run",
			setupMocks: func(mockRepo *mocks.MockTransactionRepository, mockClient *mocks.MockAblefyClient) {
				mockClient.On("ListTransactions", mock.Anything, 1).Return([]transform.RawTransaction{
					rawTx(1, "a@example.com"),
				}, 1, nil)
				mockRepo.On("UpsertBatch", mock.Anything, mock.AnythingOfType("[]*domain.Transaction")).
					Return(repository.UpsertResult{
						Failures: []repository.ChunkFailure{{TrxIDs: []int64{1}, Reason: "connection reset"}},
					})
			},
			expectedUpserts: 0,
			expectedFailed:  1,
		},
		{
			name: "first page fetch failure is fatal",
			setupMocks: func(mockRepo *mocks.MockTransactionRepository, mockClient *mocks.MockAblefyClient) {
				mockClient.On("ListTransactions", mock.Anything, 1).
					Return(nil, 0, errors.New("ablefy API returned status 503 for page 1"))
			},
			expectedError: "status 503",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(mocks.MockTransactionRepository)
			mockClient := new(mocks.MockAblefyClient)
			tt.setupMocks(mockRepo, mockClient)

			svc := NewImportService(mockRepo, mockClient, zap.NewNop().Sugar())
			report, err := svc.Import(context.Background())

			if tt.expectedError != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError)
				assert.Nil(t, report)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedUpserts, report.Upserted)
				assert.Len(t, report.Failures, tt.expectedFailed)
			}

			mockRepo.AssertExpectations(t)
			mockClient.AssertExpectations(t)
		})
	}
}

func TestImportService_FetchAll_SkipsFailedPages(t *testing.T) {
	mockClient := new(mocks.MockAblefyClient)
	mockClient.On("ListTransactions", mock.Anything, 1).Return([]transform.RawTransaction{
		rawTx(1, "a@example.com"),
	}, 3, nil)
	mockClient.On("ListTransactions", mock.Anything, 2).Return(nil, 3, errors.New("timeout"))
	mockClient.On("ListTransactions", mock.Anything, 3).Return([]transform.RawTransaction{
		rawTx(3, "c@example.com"),
	}, 3, nil)

	svc := NewImportService(nil, mockClient, zap.NewNop().Sugar())

	raws, failedPages, err := svc.FetchAll(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 1, failedPages)
	assert.Len(t, raws, 2)
	assert.Equal(t, int64(1), raws[0].TrxID)
	assert.Equal(t, int64(3), raws[1].TrxID)

	mockClient.AssertExpectations(t)
}

package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/trading-journal-backend/internal/domain/shared"
)

type MockSnapshotService struct {
	mock.Mock
}

func (m *MockSnapshotService) ProcessEvent(ctx context.Context, event *shared.JournalEvent) error {
	return m.Called(ctx, event).Error(0)
}

func TestWorkerPoolSnapshotService_ProcessEvent(t *testing.T) {
	event := shared.NewJournalEvent(shared.EventEntryCreated, uuid.New(), "corr1")

	tests := []struct {
		name          string
		result        error
		expectedError string
	}{
		{name: "successful processing"},
		{name: "processing error", result: errors.New("processing error"), expectedError: "processing error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			baseService := &MockSnapshotService{}
			workerPoolService, err := NewWorkerPoolSnapshotService(baseService, WorkerPoolConfig{Size: 2}, newTestLogger())
			require.NoError(t, err)
			defer workerPoolService.Shutdown()

			baseService.On("ProcessEvent", mock.Anything, mock.MatchedBy(func(e *shared.JournalEvent) bool {
				return e.EventID == event.EventID && e != event
			})).Return(tt.result).Once()

			err = workerPoolService.ProcessEvent(context.Background(), event)
			if tt.expectedError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError)
			} else {
				assert.NoError(t, err)
			}
			baseService.AssertExpectations(t)
		})
	}
}

func TestWorkerPoolSnapshotService_ContextCanceled(t *testing.T) {
	baseService := &MockSnapshotService{}
	workerPoolService, err := NewWorkerPoolSnapshotService(baseService, WorkerPoolConfig{Size: 1}, newTestLogger())
	require.NoError(t, err)
	defer workerPoolService.Shutdown()

	release := make(chan struct{})
	baseService.On("ProcessEvent", mock.Anything, mock.Anything).Run(func(mock.Arguments) {
		<-release
	}).Return(nil)
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err = workerPoolService.ProcessEvent(ctx, shared.NewJournalEvent(shared.EventEntryUpdated, uuid.New(), ""))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestWorkerPoolSnapshotService_BoundsConcurrency(t *testing.T) {
	baseService := &MockSnapshotService{}
	workerPoolService, err := NewWorkerPoolSnapshotService(baseService, WorkerPoolConfig{Size: 3}, newTestLogger())
	require.NoError(t, err)
	defer workerPoolService.Shutdown()

	var inFlight, peak, processed int32
	baseService.On("ProcessEvent", mock.Anything, mock.Anything).Run(func(mock.Arguments) {
		current := atomic.AddInt32(&inFlight, 1)
		for {
			observed := atomic.LoadInt32(&peak)
			if current <= observed || atomic.CompareAndSwapInt32(&peak, observed, current) {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
		atomic.AddInt32(&processed, 1)
	}).Return(nil)

	numEvents := 10
	var wg sync.WaitGroup
	wg.Add(numEvents)
	for i := 0; i < numEvents; i++ {
		go func() {
			defer wg.Done()
			event := shared.NewJournalEvent(shared.EventEntryUpdated, uuid.New(), "")
			assert.NoError(t, workerPoolService.ProcessEvent(context.Background(), event))
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(numEvents), atomic.LoadInt32(&processed))
	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(3))
	assert.Equal(t, 3, workerPoolService.Capacity())
}

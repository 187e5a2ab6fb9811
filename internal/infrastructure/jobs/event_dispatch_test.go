package jobs

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"farm-bridge.backend/internal/domain/entities"
	"farm-bridge.backend/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init("test")
	os.Exit(m.Run())
}

type mockEventRepo struct {
	mock.Mock
}

func (m *mockEventRepo) Append(ctx context.Context, event *entities.LedgerEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *mockEventRepo) List(ctx context.Context, limit, offset int) ([]*entities.LedgerEvent, int64, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]*entities.LedgerEvent), args.Get(1).(int64), args.Error(2)
}

func (m *mockEventRepo) ListUndelivered(ctx context.Context, limit int) ([]*entities.LedgerEvent, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.LedgerEvent), args.Error(1)
}

func (m *mockEventRepo) MarkDelivered(ctx context.Context, ids []uuid.UUID) error {
	args := m.Called(ctx, ids)
	return args.Error(0)
}

type recordingSink struct {
	delivered []uuid.UUID
	failOn    uuid.UUID
}

func (s *recordingSink) Deliver(ctx context.Context, event *entities.LedgerEvent) error {
	if event.ID == s.failOn {
		return errors.New("sink unavailable")
	}
	s.delivered = append(s.delivered, event.ID)
	return nil
}

func makeEvents(n int) []*entities.LedgerEvent {
	events := make([]*entities.LedgerEvent, 0, n)
	for i := 0; i < n; i++ {
		events = append(events, &entities.LedgerEvent{
			ID:        uuid.New(),
			EventType: entities.LedgerEventAidRequested,
			Actor:     "0x1",
			Subject:   "0x1",
		})
	}
	return events
}

func TestDispatchPending_DeliversInOrder(t *testing.T) {
	repo := new(mockEventRepo)
	sink := &recordingSink{}
	job := NewEventDispatchJob(repo, sink)
	ctx := context.Background()

	events := makeEvents(3)
	ids := []uuid.UUID{events[0].ID, events[1].ID, events[2].ID}

	repo.On("ListUndelivered", mock.Anything, 100).Return(events, nil)
	repo.On("MarkDelivered", mock.Anything, ids).Return(nil)

	job.dispatchPending(ctx)

	assert.Equal(t, ids, sink.delivered)
	repo.AssertExpectations(t)
}

func TestDispatchPending_StopsAtFirstFailure(t *testing.T) {
	repo := new(mockEventRepo)
	events := makeEvents(3)
	sink := &recordingSink{failOn: events[1].ID}
	job := NewEventDispatchJob(repo, sink)
	ctx := context.Background()

	repo.On("ListUndelivered", mock.Anything, 100).Return(events, nil)
	// Only the event before the failure is marked, so order is preserved on
	// retry.
	repo.On("MarkDelivered", mock.Anything, []uuid.UUID{events[0].ID}).Return(nil)

	job.dispatchPending(ctx)

	assert.Equal(t, []uuid.UUID{events[0].ID}, sink.delivered)
	repo.AssertExpectations(t)
}

func TestDispatchPending_NothingToDo(t *testing.T) {
	repo := new(mockEventRepo)
	job := NewEventDispatchJob(repo, &recordingSink{})

	repo.On("ListUndelivered", mock.Anything, 100).Return([]*entities.LedgerEvent{}, nil)

	job.dispatchPending(context.Background())
	repo.AssertNotCalled(t, "MarkDelivered", mock.Anything, mock.Anything)
}

func TestDispatchPending_ListErrorIsNonFatal(t *testing.T) {
	repo := new(mockEventRepo)
	job := NewEventDispatchJob(repo, &recordingSink{})

	repo.On("ListUndelivered", mock.Anything, 100).Return(nil, errors.New("db down"))

	job.dispatchPending(context.Background())
	repo.AssertNotCalled(t, "MarkDelivered", mock.Anything, mock.Anything)
}

func TestStartAndStop(t *testing.T) {
	repo := new(mockEventRepo)
	repo.On("ListUndelivered", mock.Anything, 100).Return([]*entities.LedgerEvent{}, nil).Maybe()
	job := NewEventDispatchJob(repo, &recordingSink{})
	job.interval = 10 * time.Millisecond

	done := make(chan struct{})
	go func() {
		job.Start(context.Background())
		close(done)
	}()

	time.Sleep(30 * time.Millisecond)
	job.Stop()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("dispatcher did not stop")
	}
}

func TestLogSink_Deliver(t *testing.T) {
	sink := LogSink{}
	require.NoError(t, sink.Deliver(context.Background(), makeEvents(1)[0]))
}

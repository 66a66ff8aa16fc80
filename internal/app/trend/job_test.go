package trend

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"cloudcost/internal/app/gateway"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	records []gateway.ConsumptionRecord
	err     error
}

func (f *fakeFetcher) FetchConsumption(ctx context.Context, dateFrom, dateTo time.Time) ([]gateway.ConsumptionRecord, error) {
	return f.records, f.err
}

type memStore struct {
	mu   sync.Mutex
	jobs map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{jobs: make(map[string][]byte)}
}

func (s *memStore) SetTrendJob(ctx context.Context, jobID string, payload []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[jobID] = payload
	return nil
}

func (s *memStore) GetTrendJob(ctx context.Context, jobID string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	payload, ok := s.jobs[jobID]
	if !ok {
		return nil, errors.New("not found")
	}
	return payload, nil
}

func TestBuildReport(t *testing.T) {
	records := []gateway.ConsumptionRecord{
		// январь: 2 дня compute по 2 штуки × 0.5 за час
		{Date: "2024-01-05", ServiceName: "vm.small", Category: "compute", Quantity: 2, UnitPrice: 0.5},
		{Date: "2024-01-06", ServiceName: "vm.small", Category: "compute", Quantity: 2, UnitPrice: 0.5},
		// февраль: месячный тариф за диск
		{Date: "2024-02-01", ServiceName: "disk.hdd", Category: "storage", Flags: "PER_MONTH", Quantity: 100, UnitPrice: 0.3},
	}

	report, err := BuildReport(records)
	require.NoError(t, err)
	require.Len(t, report.Months, 2)

	// месяцы отсортированы
	assert.Equal(t, "2024-01", report.Months[0].Month)
	assert.Equal(t, "2024-02", report.Months[1].Month)

	// 2 × 0.5 × 24 часа = 24 за запись, две записи
	assert.Equal(t, 2, report.Months[0].ItemCount)
	assert.Equal(t, 48.0, report.Months[0].BaseCost)
	assert.Equal(t, 48.0, report.Months[0].Total)

	// 100 × 0.3 × (1/30 месяца) = 1.0
	assert.Equal(t, 1, report.Months[1].ItemCount)
	assert.Equal(t, 1.0, report.Months[1].Total)

	assert.Equal(t, 49.0, report.TotalCost)
}

func TestBuildReportEmpty(t *testing.T) {
	report, err := BuildReport(nil)
	require.NoError(t, err)
	assert.Empty(t, report.Months)
	assert.Equal(t, 0.0, report.TotalCost)
}

func TestRunnerLifecycle(t *testing.T) {
	fetcher := &fakeFetcher{records: []gateway.ConsumptionRecord{
		{Date: "2024-03-10", ServiceName: "vm.small", Category: "compute", Quantity: 1, UnitPrice: 1},
	}}
	store := newMemStore()
	runner := NewRunner(fetcher, store)

	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)

	jobID, err := runner.Start(context.Background(), from, to)
	require.NoError(t, err)
	require.NotEmpty(t, jobID)

	// задача завершается в фоне
	require.Eventually(t, func() bool {
		job, err := runner.Get(context.Background(), jobID)
		return err == nil && job.Status == StatusDone
	}, 2*time.Second, 10*time.Millisecond)

	job, err := runner.Get(context.Background(), jobID)
	require.NoError(t, err)
	require.NotNil(t, job.Result)
	assert.Equal(t, "2024-03", job.Result.Months[0].Month)
	assert.Equal(t, 24.0, job.Result.TotalCost)
}

func TestRunnerFetchFailure(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("gateway down")}
	store := newMemStore()
	runner := NewRunner(fetcher, store)

	jobID, err := runner.Start(context.Background(), time.Now().AddDate(0, -1, 0), time.Now())
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		job, err := runner.Get(context.Background(), jobID)
		return err == nil && job.Status == StatusFailed
	}, 2*time.Second, 10*time.Millisecond)

	job, err := runner.Get(context.Background(), jobID)
	require.NoError(t, err)
	assert.Contains(t, job.Error, "gateway down")
	assert.Nil(t, job.Result)
}

func TestRunnerGetUnknownJob(t *testing.T) {
	runner := NewRunner(&fakeFetcher{}, newMemStore())

	_, err := runner.Get(context.Background(), "no-such-job")
	assert.ErrorIs(t, err, ErrJobNotFound)
}

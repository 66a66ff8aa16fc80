package trend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"cloudcost/internal/app/calc"
	"cloudcost/internal/app/gateway"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Асинхронный расчет трендов потребления. Сама задача считается
// в фоне, статус и результат живут во внешнем хранилище (Redis),
// так что за статусом можно прийти с любого инстанса.

type Status string

const (
	StatusPending Status = "pending"
	StatusRunning Status = "running"
	StatusDone    Status = "done"
	StatusFailed  Status = "failed"
)

var ErrJobNotFound = errors.New("задача не найдена")

// MonthTrend - агрегат стоимости потребления за один месяц
type MonthTrend struct {
	Month     string  `json:"month"` // 2006-01
	ItemCount int     `json:"item_count"`
	BaseCost  float64 `json:"base_cost"`
	Total     float64 `json:"total"`
}

// Report - итог задачи: тренд по месяцам
type Report struct {
	Months    []MonthTrend `json:"months"`
	TotalCost float64      `json:"total_cost"`
}

// Job - состояние асинхронной задачи
type Job struct {
	ID        string    `json:"id"`
	Status    Status    `json:"status"`
	Error     string    `json:"error,omitempty"`
	DateFrom  string    `json:"date_from"`
	DateTo    string    `json:"date_to"`
	Result    *Report   `json:"result,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ConsumptionFetcher - источник истории потребления (шлюз провайдера)
type ConsumptionFetcher interface {
	FetchConsumption(ctx context.Context, dateFrom, dateTo time.Time) ([]gateway.ConsumptionRecord, error)
}

// Store - хранилище состояний задач
type Store interface {
	SetTrendJob(ctx context.Context, jobID string, payload []byte, ttl time.Duration) error
	GetTrendJob(ctx context.Context, jobID string) ([]byte, error)
}

type Runner struct {
	fetcher ConsumptionFetcher
	store   Store
	jobTTL  time.Duration
	timeout time.Duration
}

func NewRunner(fetcher ConsumptionFetcher, store Store) *Runner {
	return &Runner{
		fetcher: fetcher,
		store:   store,
		jobTTL:  time.Hour,
		timeout: time.Minute,
	}
}

// Start создает задачу и запускает расчет в фоне. Задачи независимы
// и идемпотентны, координация между ними не нужна.
func (r *Runner) Start(ctx context.Context, dateFrom, dateTo time.Time) (string, error) {
	job := Job{
		ID:        uuid.New().String(),
		Status:    StatusPending,
		DateFrom:  dateFrom.Format("2006-01-02"),
		DateTo:    dateTo.Format("2006-01-02"),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := r.saveJob(ctx, job); err != nil {
		return "", err
	}

	go r.run(job, dateFrom, dateTo)

	return job.ID, nil
}

// Get возвращает состояние задачи
func (r *Runner) Get(ctx context.Context, jobID string) (*Job, error) {
	payload, err := r.store.GetTrendJob(ctx, jobID)
	if err != nil {
		return nil, ErrJobNotFound
	}

	var job Job
	if err := json.Unmarshal(payload, &job); err != nil {
		return nil, fmt.Errorf("broken job payload: %w", err)
	}
	return &job, nil
}

func (r *Runner) saveJob(ctx context.Context, job Job) error {
	payload, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return r.store.SetTrendJob(ctx, job.ID, payload, r.jobTTL)
}

func (r *Runner) run(job Job, dateFrom, dateTo time.Time) {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	job.Status = StatusRunning
	job.UpdatedAt = time.Now()
	if err := r.saveJob(ctx, job); err != nil {
		logrus.Errorf("trend job %s: cannot save running status: %v", job.ID, err)
		return
	}

	records, err := r.fetcher.FetchConsumption(ctx, dateFrom, dateTo)
	if err != nil {
		r.fail(ctx, job, err)
		return
	}

	report, err := BuildReport(records)
	if err != nil {
		r.fail(ctx, job, err)
		return
	}

	job.Status = StatusDone
	job.Result = report
	job.UpdatedAt = time.Now()
	if err := r.saveJob(ctx, job); err != nil {
		logrus.Errorf("trend job %s: cannot save result: %v", job.ID, err)
	}
}

func (r *Runner) fail(ctx context.Context, job Job, cause error) {
	logrus.Errorf("trend job %s failed: %v", job.ID, cause)

	job.Status = StatusFailed
	job.Error = cause.Error()
	job.UpdatedAt = time.Now()
	if err := r.saveJob(ctx, job); err != nil {
		logrus.Errorf("trend job %s: cannot save failure: %v", job.ID, err)
	}
}

// BuildReport группирует записи потребления по месяцам и прогоняет
// каждый месяц через расчетное ядро. Каждая запись - один день
// потребления ресурса.
func BuildReport(records []gateway.ConsumptionRecord) (*Report, error) {
	buckets := make(map[string][]calc.Item)
	for _, rec := range records {
		if len(rec.Date) < 7 {
			continue // запись без даты не попадает в тренд
		}
		month := rec.Date[:7]
		buckets[month] = append(buckets[month], calc.Item{
			Quantity:  rec.Quantity,
			UnitPrice: rec.UnitPrice,
			Category:  rec.Category,
			Flags:     rec.Flags,
		})
	}

	months := make([]string, 0, len(buckets))
	for month := range buckets {
		months = append(months, month)
	}
	sort.Strings(months)

	report := &Report{Months: make([]MonthTrend, 0, len(months))}
	for _, month := range months {
		total, err := calc.CalculateQuoteTotal(buckets[month], calc.BillingParams{
			Duration:     1,
			DurationUnit: "days",
		})
		if err != nil {
			return nil, fmt.Errorf("month %s: %w", month, err)
		}

		report.Months = append(report.Months, MonthTrend{
			Month:     month,
			ItemCount: total.ItemCount,
			BaseCost:  total.BaseTotal,
			Total:     total.Total,
		})
		report.TotalCost += total.Total
	}

	return report, nil
}

package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	jobmetrics "github.com/shop24/shop24/internal/jobs"
)

var defaultJobMetrics = jobmetrics.NewMetrics(nil)

// QuantityAggregator computes ordered quantity per product.
type QuantityAggregator interface {
	AggregateQuantities(ctx context.Context) (map[int64]int64, error)
}

// QuantityRecorder publishes a quantity snapshot.
type QuantityRecorder interface {
	SetProductQuantities(totals map[int64]int64, at time.Time)
}

// MetricsSnapshotJob reads the quantity aggregate and hands it to a recorder.
type MetricsSnapshotJob struct {
	Aggregator QuantityAggregator
	Recorder   QuantityRecorder
	Logger     *slog.Logger
	Metrics    *jobmetrics.Metrics
	clock      func() time.Time
}

// NewMetricsSnapshotJob wires dependencies for the snapshot handler.
func NewMetricsSnapshotJob(aggregator QuantityAggregator, recorder QuantityRecorder, logger *slog.Logger, metrics *jobmetrics.Metrics) *MetricsSnapshotJob {
	return &MetricsSnapshotJob{
		Aggregator: aggregator,
		Recorder:   recorder,
		Logger:     logger,
		Metrics:    metrics,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Handle processes TaskMetricsSnapshot tasks.
func (j *MetricsSnapshotJob) Handle(ctx context.Context, t *asynq.Task) (resultErr error) {
	if j == nil || j.Aggregator == nil {
		return errors.New("metrics snapshot: handler not configured")
	}
	var payload MetricsSnapshotPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("metrics snapshot: decode payload: %w: %w", err, asynq.SkipRetry)
	}

	tracker := j.metrics().Track(TaskMetricsSnapshot)
	defer func() {
		resultErr = tracker.End(resultErr)
	}()

	logger := j.logger().With(slog.String("reason", payload.Reason))
	totals, err := j.Aggregator.AggregateQuantities(ctx)
	if err != nil {
		logger.Error("aggregate quantities", slog.Any("error", err))
		return err
	}
	if j.Recorder != nil {
		j.Recorder.SetProductQuantities(totals, j.now())
	}
	logger.Info("recorded quantity snapshot", slog.Int("products", len(totals)))
	return nil
}

func (j *MetricsSnapshotJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskMetricsSnapshot))
	}
	return slog.Default().With(slog.String("job", TaskMetricsSnapshot))
}

func (j *MetricsSnapshotJob) metrics() *jobmetrics.Metrics {
	if j.Metrics != nil {
		return j.Metrics
	}
	return defaultJobMetrics
}

func (j *MetricsSnapshotJob) now() time.Time {
	if j.clock != nil {
		return j.clock()
	}
	return time.Now().UTC()
}

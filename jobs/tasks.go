package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskMetricsSnapshot publishes per-product ordered quantities as gauges.
	TaskMetricsSnapshot = "metrics:snapshot"
)

// MetricsSnapshotPayload describes why a snapshot was requested.
type MetricsSnapshotPayload struct {
	Reason string `json:"reason"`
}

// NewMetricsSnapshotTask constructs an Asynq task. An empty reason becomes
// "scheduled".
func NewMetricsSnapshotTask(reason string, opts ...asynq.Option) (*asynq.Task, error) {
	if reason == "" {
		reason = "scheduled"
	}
	data, err := json.Marshal(MetricsSnapshotPayload{Reason: reason})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskMetricsSnapshot, data, opts...), nil
}

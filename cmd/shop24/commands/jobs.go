package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/urfave/cli/v2"

	"github.com/shop24/shop24/jobs"
)

// JobsCLI wraps manual management helpers for Asynq jobs.
type JobsCLI struct {
	client    *jobs.Client
	inspector jobs.QueueInspector
	closers   []func() error
}

// NewJobsCLI initialises the helpers against the Redis at redisAddr.
func NewJobsCLI(redisAddr string) (*JobsCLI, error) {
	if redisAddr == "" {
		return nil, errors.New("jobs cli: REDIS_ADDR is empty")
	}
	opts := asynq.RedisClientOpt{Addr: redisAddr}
	client := jobs.NewClient(opts)
	inspector := asynq.NewInspector(opts)
	return &JobsCLI{
		client:    client,
		inspector: inspector,
		closers:   []func() error{inspector.Close, client.Close},
	}, nil
}

// Close releases underlying resources.
func (c *JobsCLI) Close() error {
	var errs []error
	for _, closeFn := range c.closers {
		errs = append(errs, closeFn())
	}
	return errors.Join(errs...)
}

// Trigger enqueues a supported job by name.
func (c *JobsCLI) Trigger(ctx context.Context, name string) (*asynq.TaskInfo, error) {
	if c == nil || c.client == nil {
		return nil, errors.New("jobs cli: client not configured")
	}
	switch name {
	case jobs.TaskMetricsSnapshot:
		return c.client.EnqueueMetricsSnapshot(ctx, "manual")
	default:
		return nil, fmt.Errorf("jobs cli: unsupported job %s", name)
	}
}

// QueueStats summarises the current queue state.
type QueueStats struct {
	Queue     string
	Pending   int
	Active    int
	Scheduled int
	Retry     int
}

// InspectQueue reports the metrics of the default queue.
func (c *JobsCLI) InspectQueue() (QueueStats, error) {
	if c == nil || c.inspector == nil {
		return QueueStats{}, errors.New("jobs cli: inspector not configured")
	}
	info, err := c.inspector.GetQueueInfo(jobs.QueueDefault)
	if err != nil {
		return QueueStats{}, err
	}
	stats := QueueStats{Queue: jobs.QueueDefault}
	if info != nil {
		stats.Pending = info.Pending
		stats.Active = info.Active
		stats.Scheduled = info.Scheduled
		stats.Retry = info.Retry
	}
	return stats, nil
}

func jobsCommand() *cli.Command {
	withJobs := func(fn func(c *cli.Context, j *JobsCLI) error) cli.ActionFunc {
		return func(c *cli.Context) error {
			cfg, _, err := loadRuntime()
			if err != nil {
				return err
			}
			j, err := NewJobsCLI(cfg.RedisAddr)
			if err != nil {
				return err
			}
			defer func() { _ = j.Close() }()
			return fn(c, j)
		}
	}
	return &cli.Command{
		Name:  "jobs",
		Usage: "inspect and trigger background jobs",
		Subcommands: []*cli.Command{
			{
				Name:      "trigger",
				Usage:     "enqueue a job now",
				ArgsUsage: jobs.TaskMetricsSnapshot,
				Action: withJobs(func(c *cli.Context, j *JobsCLI) error {
					name := c.Args().First()
					if name == "" {
						name = jobs.TaskMetricsSnapshot
					}
					info, err := j.Trigger(c.Context, name)
					if err != nil {
						return err
					}
					_, err = fmt.Fprintf(c.App.Writer, "enqueued %s id=%s queue=%s\n", info.Type, info.ID, info.Queue)
					return err
				}),
			},
			{
				Name:  "stats",
				Usage: "print default queue statistics",
				Action: withJobs(func(c *cli.Context, j *JobsCLI) error {
					stats, err := j.InspectQueue()
					if err != nil {
						return err
					}
					_, err = fmt.Fprintf(c.App.Writer, "queue=%s pending=%d active=%d scheduled=%d retry=%d\n",
						stats.Queue, stats.Pending, stats.Active, stats.Scheduled, stats.Retry)
					return err
				}),
			},
		},
	}
}

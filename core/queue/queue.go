package queue

import (
	"context"
	"errors"
	"restaurant-directory/core/logger"
	"restaurant-directory/core/metrics"
	"time"

	"github.com/hibiken/asynq"
)

const DefaultQueue = "default"

// Enqueuer is the producer side of the task queue.
type Enqueuer interface {
	Enqueue(ctx context.Context, task *asynq.Task, opts ...asynq.Option) error
}

type Client struct {
	client *asynq.Client
}

func RedisOpt(addr, password string, db int) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{Addr: addr, Password: password, DB: db}
}

func NewClient(opt asynq.RedisConnOpt) *Client {
	return &Client{client: asynq.NewClient(opt)}
}

// Enqueue treats a duplicate unique task as success: an identical task is
// already pending.
func (c *Client) Enqueue(ctx context.Context, task *asynq.Task, opts ...asynq.Option) error {
	info, err := c.client.EnqueueContext(ctx, task, opts...)
	if errors.Is(err, asynq.ErrDuplicateTask) || errors.Is(err, asynq.ErrTaskIDConflict) {
		logger.Debug("Queue:Enqueue:Duplicate", "type", task.Type())
		return nil
	}
	if err != nil {
		logger.Error("Queue:Enqueue", "type", task.Type(), "error", err)
		return err
	}
	logger.Info("Queue:Enqueue", "type", task.Type(), "id", info.ID, "queue", info.Queue)
	return nil
}

func (c *Client) Close() error {
	return c.client.Close()
}

// NoopEnqueuer drops tasks; used when the queue is disabled.
type NoopEnqueuer struct{}

func (NoopEnqueuer) Enqueue(_ context.Context, task *asynq.Task, _ ...asynq.Option) error {
	logger.Debug("Queue:Disabled", "type", task.Type())
	return nil
}

func NewServer(opt asynq.RedisConnOpt, concurrency int) *asynq.Server {
	return asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues:      map[string]int{DefaultQueue: 1},
		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
			logger.Error("Queue:Task:Failed", "type", task.Type(), "error", err)
		}),
	})
}

func NewScheduler(opt asynq.RedisConnOpt) *asynq.Scheduler {
	return asynq.NewScheduler(opt, &asynq.SchedulerOpts{
		LogLevel: asynq.WarnLevel,
		PostEnqueueFunc: func(info *asynq.TaskInfo, err error) {
			if err != nil {
				logger.Error("Queue:Scheduler:Enqueue", err)
			}
		},
	})
}

// Instrument logs and counts every processed task.
func Instrument(next asynq.Handler) asynq.Handler {
	return asynq.HandlerFunc(func(ctx context.Context, task *asynq.Task) error {
		start := time.Now()
		err := next.ProcessTask(ctx, task)
		metrics.TaskProcessed(task.Type(), err)
		logger.Info("Queue:Task:Processed",
			"type", task.Type(),
			"duration_ms", time.Since(start).Milliseconds(),
			"ok", err == nil,
		)
		return err
	})
}

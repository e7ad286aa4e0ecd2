package tasks

import (
	"context"

	"github.com/hibiken/asynq"
)

// TaskEnqueuer queues background tasks. *asynq.Client satisfies it.
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

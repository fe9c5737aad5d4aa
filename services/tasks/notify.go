package tasks

import (
	"context"
	"encoding/json"

	"cabgo/models"

	"github.com/hibiken/asynq"
)

const TypeNotifySend = "notify:send"

// NewNotifyTask wraps a booking event for the notification queue.
func NewNotifyTask(event models.BookingEvent) (*asynq.Task, error) {
	b, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeNotifySend, b), nil
}

// AsynqDispatcher enqueues booking events on the redis-backed queue. The
// worker in cron/ consumes them.
type AsynqDispatcher struct {
	client *asynq.Client
}

func NewAsynqDispatcher(client *asynq.Client) *AsynqDispatcher {
	return &AsynqDispatcher{client: client}
}

// Dispatch enqueues the event. Delivery retries are the queue's concern.
func (d *AsynqDispatcher) Dispatch(ctx context.Context, event models.BookingEvent) error {
	task, err := NewNotifyTask(event)
	if err != nil {
		return err
	}
	_, err = d.client.EnqueueContext(ctx, task, asynq.MaxRetry(3))
	return err
}

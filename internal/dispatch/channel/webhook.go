package channel

import (
	"context"

	"restock-srv/internal/dispatch"
	"restock-srv/internal/model"
)

type webhook struct {
	queue WebhookEnqueuer
}

// NewWebhook routes alerts into the webhook queue. Matching happens in the queue, so the
// channel is always enabled and reports ErrSkipped when no subscription matched.
func NewWebhook(queue WebhookEnqueuer) dispatch.Channel {
	return &webhook{queue: queue}
}

func (c *webhook) Name() string { return model.ChannelWebhook }

func (c *webhook) Enabled(model.User) bool { return c.queue != nil }

func (c *webhook) Send(ctx context.Context, a model.Alert, _ model.User) (dispatch.SendResult, error) {
	ids, err := c.queue.EnqueueForAlert(ctx, a)
	if err != nil {
		return dispatch.SendResult{}, err
	}
	if len(ids) == 0 {
		return dispatch.SendResult{}, dispatch.ErrSkipped
	}
	return dispatch.SendResult{DeliveryIDs: ids}, nil
}

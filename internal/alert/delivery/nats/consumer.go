package nats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	natsio "github.com/nats-io/nats.go"

	"restock-srv/internal/alert"
)

func (c *implConsumer) Start() error {
	sub, err := c.conn.QueueSubscribe(c.opts.Subject, c.opts.Queue, c.handle)
	if err != nil {
		return fmt.Errorf("queue subscribe %s: %w", c.opts.Subject, err)
	}
	c.sub = sub
	c.l.Infof(context.Background(), "internal.alert.delivery.nats.Start: subscribed to %s (queue %s)", c.opts.Subject, c.opts.Queue)
	return nil
}

func (c *implConsumer) Shutdown(ctx context.Context) error {
	if c.sub == nil {
		return nil
	}
	if err := c.sub.Drain(); err != nil {
		c.l.Errorf(ctx, "internal.alert.delivery.nats.Shutdown.Drain: %v", err)
		return err
	}
	return nil
}

func (c *implConsumer) handle(msg *natsio.Msg) {
	ctx, cancel := context.WithTimeout(context.Background(), c.opts.HandleTimeout)
	defer cancel()

	out, err := c.process(ctx, msg.Data)
	if msg.Reply == "" {
		return
	}

	reply := replyMessage{Status: string(out.Status), AlertID: out.AlertID}
	if err != nil {
		reply.Error = err.Error()
	}
	body, _ := json.Marshal(reply)
	if err := msg.Respond(body); err != nil {
		c.l.Warnf(ctx, "internal.alert.delivery.nats.handle.Respond: %v", err)
	}
}

// process decodes one event and submits it. Malformed events are logged and dropped; the
// monitor republishes on its next poll and dedup absorbs the repeat.
func (c *implConsumer) process(ctx context.Context, data []byte) (alert.SubmitOutput, error) {
	var m eventMessage
	if err := json.Unmarshal(data, &m); err != nil {
		c.l.Warnf(ctx, "internal.alert.delivery.nats.process.Unmarshal: %v", err)
		return alert.SubmitOutput{}, fmt.Errorf("%w: %v", alert.ErrInvalidInput, err)
	}

	out, err := c.uc.SubmitAvailabilityEvent(ctx, m.toInput())
	if err != nil {
		if errors.Is(err, alert.ErrInvalidInput) || errors.Is(err, alert.ErrUserNotFound) {
			c.l.Warnf(ctx, "internal.alert.delivery.nats.process: user_id=%s product_id=%s: %v", m.UserID, m.ProductID, err)
		} else {
			c.l.Errorf(ctx, "internal.alert.delivery.nats.process.SubmitAvailabilityEvent: user_id=%s product_id=%s: %v", m.UserID, m.ProductID, err)
		}
		return out, err
	}
	c.l.Debugf(ctx, "internal.alert.delivery.nats.process: user_id=%s product_id=%s status=%s", m.UserID, m.ProductID, out.Status)
	return out, nil
}

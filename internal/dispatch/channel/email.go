package channel

import (
	"context"
	"strings"

	"restock-srv/internal/dispatch"
	"restock-srv/internal/model"
)

type email struct {
	sender EmailSender
}

func NewEmail(sender EmailSender) dispatch.Channel {
	return &email{sender: sender}
}

func (c *email) Name() string { return model.ChannelEmail }

func (c *email) Configured() bool { return c.sender != nil }

func (c *email) Enabled(u model.User) bool {
	return u.Settings.Email && strings.TrimSpace(u.Email) != ""
}

func (c *email) Send(ctx context.Context, a model.Alert, u model.User) (dispatch.SendResult, error) {
	if c.sender == nil {
		return dispatch.SendResult{}, dispatch.ErrChannelNotConfigured
	}
	id, err := c.sender.SendAlertEmail(ctx, u.Email, a)
	if err != nil {
		return dispatch.SendResult{}, err
	}
	return dispatch.SendResult{DeliveryIDs: nonEmpty(id)}, nil
}

type sms struct {
	sender SMSSender
}

func NewSMS(sender SMSSender) dispatch.Channel {
	return &sms{sender: sender}
}

func (c *sms) Name() string { return model.ChannelSMS }

func (c *sms) Configured() bool { return c.sender != nil }

func (c *sms) Enabled(u model.User) bool {
	return u.Settings.SMS && strings.TrimSpace(u.Phone) != ""
}

func (c *sms) Send(ctx context.Context, a model.Alert, u model.User) (dispatch.SendResult, error) {
	if c.sender == nil {
		return dispatch.SendResult{}, dispatch.ErrChannelNotConfigured
	}
	id, err := c.sender.SendAlertSMS(ctx, u.Phone, a)
	if err != nil {
		return dispatch.SendResult{}, err
	}
	return dispatch.SendResult{DeliveryIDs: nonEmpty(id)}, nil
}

func nonEmpty(ids ...string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != "" {
			out = append(out, id)
		}
	}
	return out
}

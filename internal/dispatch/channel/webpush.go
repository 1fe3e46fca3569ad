package channel

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"restock-srv/internal/dispatch"
	"restock-srv/internal/model"
	"restock-srv/pkg/redis"
)

// pushMessage is what the realtime socket service relays to the browser.
type pushMessage struct {
	DeliveryID string      `json:"delivery_id"`
	Event      string      `json:"event"`
	Alert      model.Alert `json:"alert"`
}

type webPush struct {
	redis redis.IRedis
}

// NewWebPush publishes alerts to the per-user Redis channel alert:<type>:user:<user_id>.
func NewWebPush(r redis.IRedis) dispatch.Channel {
	return &webPush{redis: r}
}

func (c *webPush) Name() string { return model.ChannelWebPush }

func (c *webPush) Configured() bool { return c.redis != nil }

func (c *webPush) Enabled(u model.User) bool {
	return u.Settings.WebPush
}

func (c *webPush) Send(ctx context.Context, a model.Alert, u model.User) (dispatch.SendResult, error) {
	if c.redis == nil {
		return dispatch.SendResult{}, dispatch.ErrChannelNotConfigured
	}

	msg := pushMessage{
		DeliveryID: uuid.NewString(),
		Event:      a.Type.EventName(),
		Alert:      a,
	}
	body, err := json.Marshal(msg)
	if err != nil {
		return dispatch.SendResult{}, err
	}

	if err := c.redis.Publish(ctx, PushChannel(a.Type, u.ID), body); err != nil {
		return dispatch.SendResult{}, fmt.Errorf("publish: %w", err)
	}
	return dispatch.SendResult{DeliveryIDs: []string{msg.DeliveryID}}, nil
}

func PushChannel(t model.AlertType, userID string) string {
	return fmt.Sprintf("alert:%s:user:%s", t, userID)
}

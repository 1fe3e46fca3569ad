package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/aarondl/null/v8"
	"github.com/lib/pq"

	"restock-srv/internal/model"
	"restock-srv/internal/user/repository"
	postgresPkg "restock-srv/pkg/postgre"
)

const detailQuery = `
SELECT id, email, phone, discord_webhook_url, plan_id, subscription_tier,
       notify_web_push, notify_email, notify_sms, notify_discord,
       quiet_hours_enabled, quiet_hours_start, quiet_hours_end, quiet_hours_timezone, quiet_hours_days
FROM users
WHERE id = $1 AND deleted_at IS NULL`

type userRow struct {
	ID                string
	Email             string
	Phone             null.String
	DiscordWebhookURL null.String
	PlanID            null.String
	SubscriptionTier  null.String
	NotifyWebPush     bool
	NotifyEmail       bool
	NotifySMS         bool
	NotifyDiscord     bool
	QuietEnabled      bool
	QuietStart        null.String
	QuietEnd          null.String
	QuietTimezone     null.String
	QuietDays         pq.Int64Array
}

func (u userRow) toModel() model.User {
	days := make([]int, len(u.QuietDays))
	for i, d := range u.QuietDays {
		days[i] = int(d)
	}

	return model.User{
		ID:                u.ID,
		Email:             u.Email,
		Phone:             u.Phone.String,
		DiscordWebhookURL: u.DiscordWebhookURL.String,
		PlanID:            u.PlanID.String,
		SubscriptionTier:  u.SubscriptionTier.String,
		Settings: model.NotificationSettings{
			WebPush: u.NotifyWebPush,
			Email:   u.NotifyEmail,
			SMS:     u.NotifySMS,
			Discord: u.NotifyDiscord,
		},
		QuietHours: model.QuietHoursConfig{
			Enabled:   u.QuietEnabled,
			StartTime: u.QuietStart.String,
			EndTime:   u.QuietEnd.String,
			Timezone:  u.QuietTimezone.String,
			Days:      days,
		},
	}
}

func (r *implRepository) Detail(ctx context.Context, id string) (model.User, error) {
	if err := postgresPkg.IsUUID(id); err != nil {
		return model.User{}, repository.ErrNotFound
	}

	var u userRow
	err := r.db.QueryRowContext(ctx, detailQuery, id).Scan(
		&u.ID, &u.Email, &u.Phone, &u.DiscordWebhookURL, &u.PlanID, &u.SubscriptionTier,
		&u.NotifyWebPush, &u.NotifyEmail, &u.NotifySMS, &u.NotifyDiscord,
		&u.QuietEnabled, &u.QuietStart, &u.QuietEnd, &u.QuietTimezone, &u.QuietDays,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, repository.ErrNotFound
		}
		r.l.Errorf(ctx, "internal.user.repository.postgres.Detail.Scan: %v", err)
		return model.User{}, err
	}

	return u.toModel(), nil
}

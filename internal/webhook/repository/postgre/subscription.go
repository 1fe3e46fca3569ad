package postgres

import (
	"context"
	"database/sql"
	"errors"

	"restock-srv/internal/model"
	"restock-srv/internal/webhook/repository"
	postgresPkg "restock-srv/pkg/postgre"
)

func (r *implRepository) Detail(ctx context.Context, id string) (model.WebhookSubscription, error) {
	if !postgresPkg.IsValidUUID(id) {
		return model.WebhookSubscription{}, repository.ErrNotFound
	}

	row, err := scanRow(r.db.QueryRowContext(ctx, detailQuery, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.WebhookSubscription{}, repository.ErrNotFound
		}
		r.l.Errorf(ctx, "internal.webhook.repository.postgres.Detail.Scan: %v", err)
		return model.WebhookSubscription{}, err
	}
	return r.build(ctx, row)
}

func (r *implRepository) ListActiveByUser(ctx context.Context, userID string) ([]model.WebhookSubscription, error) {
	rows, err := r.db.QueryContext(ctx, listActiveByUserQuery, userID)
	if err != nil {
		r.l.Errorf(ctx, "internal.webhook.repository.postgres.ListActiveByUser.Query: %v", err)
		return nil, err
	}
	defer rows.Close()

	var subs []model.WebhookSubscription
	for rows.Next() {
		row, err := scanRow(rows)
		if err != nil {
			r.l.Errorf(ctx, "internal.webhook.repository.postgres.ListActiveByUser.Scan: %v", err)
			return nil, err
		}
		sub, err := r.build(ctx, row)
		if err != nil {
			// build logged the cause; the remaining subscriptions still deliver.
			continue
		}
		subs = append(subs, sub)
	}
	if err := rows.Err(); err != nil {
		r.l.Errorf(ctx, "internal.webhook.repository.postgres.ListActiveByUser.Rows: %v", err)
		return nil, err
	}
	return subs, nil
}

func (r *implRepository) RecordDelivery(ctx context.Context, opts repository.RecordDeliveryOptions) error {
	res, err := r.db.ExecContext(ctx, recordDeliveryQuery, opts.SubscriptionID, opts.Success, opts.At)
	if err != nil {
		r.l.Errorf(ctx, "internal.webhook.repository.postgres.RecordDelivery.Exec: %v", err)
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		r.l.Errorf(ctx, "internal.webhook.repository.postgres.RecordDelivery.RowsAffected: %v", err)
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *implRepository) build(ctx context.Context, row subscriptionRow) (model.WebhookSubscription, error) {
	var secret string
	if row.SecretEncrypted.Valid && row.SecretEncrypted.String != "" {
		s, err := r.enc.Decrypt(row.SecretEncrypted.String)
		if err != nil {
			r.l.Errorf(ctx, "internal.webhook.repository.postgres.build.Decrypt: subscription_id=%s: %v", row.ID, err)
			return model.WebhookSubscription{}, err
		}
		secret = s
	}

	sub, err := row.toModel(secret)
	if err != nil {
		r.l.Errorf(ctx, "internal.webhook.repository.postgres.build.toModel: subscription_id=%s: %v", row.ID, err)
		return model.WebhookSubscription{}, err
	}
	return sub, nil
}

package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/aarondl/null/v8"

	"restock-srv/internal/alert/repository"
	"restock-srv/internal/model"
	postgresPkg "restock-srv/pkg/postgre"
)

func (r *implRepository) Create(ctx context.Context, opts repository.CreateOptions) (model.Alert, error) {
	a := opts.Alert
	if a.ID == "" {
		a.ID = postgresPkg.NewUUID()
	}
	now := r.clock()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	if a.UpdatedAt.IsZero() {
		a.UpdatedAt = a.CreatedAt
	}
	if a.DeliveryChannels == nil {
		a.DeliveryChannels = []string{}
	}

	payload, err := json.Marshal(a.Payload)
	if err != nil {
		r.l.Errorf(ctx, "internal.alert.repository.postgres.Create.Marshal: %v", err)
		return model.Alert{}, err
	}

	_, err = r.db.ExecContext(ctx, insertQuery,
		a.ID, a.UserID, a.ProductID, a.RetailerID, a.Type, a.Priority, payload, a.Status,
		channelsArray(a.DeliveryChannels), null.TimeFromPtr(a.ScheduledFor), a.RetryCount,
		null.StringFromPtr(a.FailureReason), a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		r.l.Errorf(ctx, "internal.alert.repository.postgres.Create.Exec: %v", err)
		return model.Alert{}, err
	}
	return a, nil
}

func (r *implRepository) Update(ctx context.Context, opts repository.UpdateOptions) (model.Alert, error) {
	a := opts.Alert
	if a.UpdatedAt.IsZero() {
		a.UpdatedAt = r.clock()
	}

	res, err := r.db.ExecContext(ctx, updateQuery,
		a.ID, a.Status, a.Priority, channelsArray(a.DeliveryChannels), null.TimeFromPtr(a.ScheduledFor),
		a.RetryCount, null.StringFromPtr(a.FailureReason), a.UpdatedAt,
	)
	if err != nil {
		r.l.Errorf(ctx, "internal.alert.repository.postgres.Update.Exec: %v", err)
		return model.Alert{}, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		r.l.Errorf(ctx, "internal.alert.repository.postgres.Update.RowsAffected: %v", err)
		return model.Alert{}, err
	}
	if n == 0 {
		return model.Alert{}, repository.ErrNotPending
	}
	return a, nil
}

func (r *implRepository) Detail(ctx context.Context, id string) (model.Alert, error) {
	if !postgresPkg.IsValidUUID(id) {
		return model.Alert{}, repository.ErrNotFound
	}

	a, err := scanAlert(r.db.QueryRowContext(ctx, detailQuery, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Alert{}, repository.ErrNotFound
		}
		r.l.Errorf(ctx, "internal.alert.repository.postgres.Detail.Scan: %v", err)
		return model.Alert{}, err
	}
	return a, nil
}

func (r *implRepository) FindRecent(ctx context.Context, opts repository.FindRecentOptions) (model.Alert, error) {
	k := opts.Key
	a, err := scanAlert(r.db.QueryRowContext(ctx, findRecentQuery, k.UserID, k.ProductID, k.RetailerID, k.Type, opts.Since))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Alert{}, repository.ErrNotFound
		}
		r.l.Errorf(ctx, "internal.alert.repository.postgres.FindRecent.Scan: %v", err)
		return model.Alert{}, err
	}
	return a, nil
}

func (r *implRepository) CountByUserSince(ctx context.Context, userID string, since time.Time) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, countByUserSinceQuery, userID, since).Scan(&n); err != nil {
		r.l.Errorf(ctx, "internal.alert.repository.postgres.CountByUserSince.Scan: %v", err)
		return 0, err
	}
	return n, nil
}

func (r *implRepository) ListDue(ctx context.Context, opts repository.ListDueOptions) ([]model.Alert, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.db.QueryContext(ctx, listDueQuery, opts.Before, limit)
	if err != nil {
		r.l.Errorf(ctx, "internal.alert.repository.postgres.ListDue.Query: %v", err)
		return nil, err
	}
	alerts, err := scanAlerts(rows)
	if err != nil {
		r.l.Errorf(ctx, "internal.alert.repository.postgres.ListDue.scanAlerts: %v", err)
		return nil, err
	}
	return alerts, nil
}

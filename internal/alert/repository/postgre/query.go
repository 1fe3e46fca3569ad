package postgres

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/aarondl/null/v8"
	"github.com/lib/pq"

	"restock-srv/internal/model"
)

const alertColumns = `id, user_id, product_id, retailer_id, type, priority, payload, status,
       delivery_channels, scheduled_for, retry_count, failure_reason, created_at, updated_at`

const (
	insertQuery = `
INSERT INTO alerts (` + alertColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	updateQuery = `
UPDATE alerts
SET status = $2, priority = $3, delivery_channels = $4, scheduled_for = $5,
    retry_count = $6, failure_reason = $7, updated_at = $8
WHERE id = $1 AND status = 'pending'`

	detailQuery = `SELECT ` + alertColumns + ` FROM alerts WHERE id = $1`

	findRecentQuery = `
SELECT ` + alertColumns + `
FROM alerts
WHERE user_id = $1 AND product_id = $2 AND retailer_id = $3 AND type = $4 AND created_at >= $5
ORDER BY created_at DESC
LIMIT 1`

	countByUserSinceQuery = `SELECT COUNT(*) FROM alerts WHERE user_id = $1 AND created_at >= $2`

	listDueQuery = `
SELECT ` + alertColumns + `
FROM alerts
WHERE status = 'pending' AND scheduled_for IS NOT NULL AND scheduled_for <= $1
ORDER BY scheduled_for ASC
LIMIT $2`
)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAlert(row rowScanner) (model.Alert, error) {
	var (
		a             model.Alert
		payload       []byte
		channels      pq.StringArray
		scheduledFor  null.Time
		failureReason null.String
	)
	err := row.Scan(
		&a.ID, &a.UserID, &a.ProductID, &a.RetailerID, &a.Type, &a.Priority, &payload, &a.Status,
		&channels, &scheduledFor, &a.RetryCount, &failureReason, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return model.Alert{}, err
	}

	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &a.Payload); err != nil {
			return model.Alert{}, fmt.Errorf("decode payload: %w", err)
		}
	}
	a.DeliveryChannels = []string(channels)
	if a.DeliveryChannels == nil {
		a.DeliveryChannels = []string{}
	}
	a.ScheduledFor = scheduledFor.Ptr()
	a.FailureReason = failureReason.Ptr()
	return a, nil
}

func scanAlerts(rows *sql.Rows) ([]model.Alert, error) {
	defer rows.Close()

	var out []model.Alert
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func channelsArray(channels []string) pq.StringArray {
	if channels == nil {
		return pq.StringArray{}
	}
	return pq.StringArray(channels)
}

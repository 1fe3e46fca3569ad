package repository

import (
	"context"
	"errors"
	"time"

	"restock-srv/internal/model"
)

var (
	ErrNotFound = errors.New("alert not found")
	// ErrNotPending is returned when an update targets an alert that already reached a terminal status.
	ErrNotPending = errors.New("alert is no longer pending")
)

//go:generate mockery --name Repository
type Repository interface {
	Create(ctx context.Context, opts CreateOptions) (model.Alert, error)
	// Update persists status, channels, schedule and failure fields of a pending alert.
	Update(ctx context.Context, opts UpdateOptions) (model.Alert, error)
	Detail(ctx context.Context, id string) (model.Alert, error)
	// FindRecent returns the newest alert for the key created at or after Since.
	FindRecent(ctx context.Context, opts FindRecentOptions) (model.Alert, error)
	CountByUserSince(ctx context.Context, userID string, since time.Time) (int, error)
	// ListDue returns pending alerts with scheduled_for <= Before, oldest first.
	ListDue(ctx context.Context, opts ListDueOptions) ([]model.Alert, error)
}

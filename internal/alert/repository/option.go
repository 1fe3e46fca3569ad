package repository

import (
	"time"

	"restock-srv/internal/model"
)

type CreateOptions struct {
	Alert model.Alert
}

type UpdateOptions struct {
	Alert model.Alert
}

type FindRecentOptions struct {
	Key   model.DedupKey
	Since time.Time
}

type ListDueOptions struct {
	Before time.Time
	Limit  int
}

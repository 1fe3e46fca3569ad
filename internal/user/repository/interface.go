package repository

import (
	"context"
	"errors"

	"restock-srv/internal/model"
)

var ErrNotFound = errors.New("user not found")

// Repository reads the user, plan and notification settings owned by the main app.
//
//go:generate mockery --name Repository
type Repository interface {
	Detail(ctx context.Context, id string) (model.User, error)
}

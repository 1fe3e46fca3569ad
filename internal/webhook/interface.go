package webhook

import (
	"context"

	"restock-srv/internal/model"
)

// UseCase is the outbound webhook queue: matching, FIFO delivery with backoff, and stats.
//
//go:generate mockery --name UseCase
type UseCase interface {
	// EnqueueForAlert queues the alert for every active subscription of its user that listens
	// to the alert's event and passes the filters. It returns the queued delivery ids.
	EnqueueForAlert(ctx context.Context, a model.Alert) ([]string, error)
	// Enqueue queues one delivery without matching.
	Enqueue(ctx context.Context, input EnqueueInput) (string, error)
	Stats(ctx context.Context, subscriptionID string) (StatsOutput, error)
	// Test sends one synthetic delivery synchronously, without retries.
	Test(ctx context.Context, subscriptionID string) (TestOutput, error)
	// ValidateURL checks an endpoint under the service's production rules.
	ValidateURL(raw string) error

	// Start launches the consumer. It stops when ctx is cancelled or Shutdown is called.
	Start(ctx context.Context)
	Shutdown(ctx context.Context) error
	// Len is the number of queued deliveries, including those waiting for a retry.
	Len() int
}

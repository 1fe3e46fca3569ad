package alert

import "context"

// UseCase decides whether an availability event becomes an alert and when it is delivered.
//
//go:generate mockery --name UseCase
type UseCase interface {
	SubmitAvailabilityEvent(ctx context.Context, ip SubmitInput) (SubmitOutput, error)
	// ProcessDueAlerts delivers pending alerts whose quiet-hours deferral has elapsed.
	ProcessDueAlerts(ctx context.Context) (SweepOutput, error)
}

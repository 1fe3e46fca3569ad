package repository

import "time"

type RecordDeliveryOptions struct {
	SubscriptionID string
	Success        bool
	At             time.Time
}

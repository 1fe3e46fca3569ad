package plan

import "restock-srv/internal/model"

// Resolver maps a user's billing data to a tier and derives priority from it.
type Resolver interface {
	ResolveTier(user model.User) model.Tier
	WeightFor(tier model.Tier) int
	BoostPriority(tier model.Tier, base model.Priority) model.Priority
}

// Options configures tier detection and weights.
type Options struct {
	PremiumMarkers  []string
	ProMarkers      []string
	PremiumPriceIDs []string
	ProPriceIDs     []string

	WeightFree    int
	WeightPro     int
	WeightPremium int
}

// DefaultOptions matches markers "premium" and "pro" with weights 1/5/10.
func DefaultOptions() Options {
	return Options{
		PremiumMarkers: []string{"premium"},
		ProMarkers:     []string{"pro"},
		WeightFree:     1,
		WeightPro:      5,
		WeightPremium:  10,
	}
}

package plan

import (
	"strings"

	"restock-srv/internal/model"
)

// ResolveTier checks the plan identifier first (exact price id, then premium
// and pro markers), then the coarse subscription tier, then defaults to free.
func (r *implResolver) ResolveTier(user model.User) model.Tier {
	if id := strings.TrimSpace(user.PlanID); id != "" {
		if _, ok := r.premiumIDs[id]; ok {
			return model.TierPremium
		}
		if _, ok := r.proIDs[id]; ok {
			return model.TierPro
		}

		lower := strings.ToLower(id)
		if containsAny(lower, r.premiumMarkers) {
			return model.TierPremium
		}
		if containsAny(lower, r.proMarkers) {
			return model.TierPro
		}
	}

	if tier := model.Tier(strings.ToLower(strings.TrimSpace(user.SubscriptionTier))); tier.IsValid() {
		return tier
	}
	return model.TierFree
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}

func (r *implResolver) WeightFor(tier model.Tier) int {
	if w, ok := r.weights[tier]; ok {
		return w
	}
	return r.weights[model.TierFree]
}

func boostSteps(tier model.Tier) int {
	switch tier {
	case model.TierPremium:
		return 2
	case model.TierPro:
		return 1
	default:
		return 0
	}
}

// BoostPriority moves base up the scale by the tier's steps, clamped at urgent.
// Unknown base priorities are treated as low.
func (r *implResolver) BoostPriority(tier model.Tier, base model.Priority) model.Priority {
	rank := base.Rank()
	if rank < 0 {
		rank = 0
	}
	return model.PriorityFromRank(rank + boostSteps(tier))
}

package plan

import (
	"strings"

	"restock-srv/internal/model"
)

type implResolver struct {
	premiumMarkers []string
	proMarkers     []string
	premiumIDs     map[string]struct{}
	proIDs         map[string]struct{}
	weights        map[model.Tier]int
}

func New(opts Options) Resolver {
	def := DefaultOptions()
	if opts.WeightFree <= 0 {
		opts.WeightFree = def.WeightFree
	}
	if opts.WeightPro <= 0 {
		opts.WeightPro = def.WeightPro
	}
	if opts.WeightPremium <= 0 {
		opts.WeightPremium = def.WeightPremium
	}

	return &implResolver{
		premiumMarkers: normalize(opts.PremiumMarkers),
		proMarkers:     normalize(opts.ProMarkers),
		premiumIDs:     toSet(opts.PremiumPriceIDs),
		proIDs:         toSet(opts.ProPriceIDs),
		weights: map[model.Tier]int{
			model.TierFree:    opts.WeightFree,
			model.TierPro:     opts.WeightPro,
			model.TierPremium: opts.WeightPremium,
		},
	}
}

func normalize(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func toSet(in []string) map[string]struct{} {
	set := make(map[string]struct{}, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			set[s] = struct{}{}
		}
	}
	return set
}

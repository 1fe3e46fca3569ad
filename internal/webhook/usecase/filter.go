package usecase

import (
	"strings"

	"restock-srv/internal/model"
)

// matchFilters ANDs every configured filter. An empty filter field does not constrain.
func matchFilters(f model.WebhookFilters, a model.Alert) bool {
	p := a.Payload

	if len(f.Retailers) > 0 && !containsFold(f.Retailers, a.RetailerID, p.RetailerName) {
		return false
	}
	if len(f.Categories) > 0 && (p.Category == "" || !containsFold(f.Categories, p.Category)) {
		return false
	}
	if f.MinPrice != nil || f.MaxPrice != nil {
		if p.Price == nil {
			return false
		}
		if f.MinPrice != nil && p.Price.LessThan(*f.MinPrice) {
			return false
		}
		if f.MaxPrice != nil && p.Price.GreaterThan(*f.MaxPrice) {
			return false
		}
	}
	if len(f.Keywords) > 0 {
		name := strings.ToLower(p.ProductName)
		found := false
		for _, k := range f.Keywords {
			if k = strings.ToLower(strings.TrimSpace(k)); k != "" && strings.Contains(name, k) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func containsFold(list []string, values ...string) bool {
	for _, item := range list {
		for _, v := range values {
			if v != "" && strings.EqualFold(strings.TrimSpace(item), v) {
				return true
			}
		}
	}
	return false
}

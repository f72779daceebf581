package gallery

import (
	"sort"
	"strings"
)

// Related picks up to k items that share current's category, skipping
// current itself and hidden items. Featured items come first, then ids in
// ascending order, so the result is stable across calls.
func Related(items []Item, current Item, hidden IDSet, k int) []Item {
	if k <= 0 {
		return nil
	}
	category := strings.ToLower(strings.TrimSpace(current.Category))
	if category == "" {
		return nil
	}
	out := make([]Item, 0, k)
	for _, item := range items {
		if item.ID == current.ID || hidden.Has(item.ID) {
			continue
		}
		if strings.ToLower(strings.TrimSpace(item.Category)) != category {
			continue
		}
		out = append(out, item)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Featured != out[j].Featured {
			return out[i].Featured
		}
		return out[i].ID < out[j].ID
	})
	if len(out) > k {
		out = out[:k]
	}
	return out
}

package gallery

import "sort"

// IDSet is a set of item ids. The zero value is not usable; call NewIDSet.
type IDSet struct {
	ids map[string]struct{}
}

// NewIDSet returns a set holding the given ids.
func NewIDSet(ids ...string) IDSet {
	s := IDSet{ids: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
	return s
}

// Has reports membership. A nil-map set behaves as empty.
func (s IDSet) Has(id string) bool {
	_, ok := s.ids[id]
	return ok
}

func (s IDSet) Add(id string) {
	s.ids[id] = struct{}{}
}

func (s IDSet) Remove(id string) {
	delete(s.ids, id)
}

// Toggle adds id if absent and removes it if present. It returns the
// membership after the toggle.
func (s IDSet) Toggle(id string) bool {
	if s.Has(id) {
		s.Remove(id)
		return false
	}
	s.Add(id)
	return true
}

func (s IDSet) Len() int {
	return len(s.ids)
}

// IDs returns the members in sorted order.
func (s IDSet) IDs() []string {
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Prune drops ids that no longer exist in items and returns how many were
// removed.
func (s IDSet) Prune(items []Item) int {
	if len(s.ids) == 0 {
		return 0
	}
	live := make(map[string]struct{}, len(items))
	for _, item := range items {
		live[item.ID] = struct{}{}
	}
	removed := 0
	for id := range s.ids {
		if _, ok := live[id]; !ok {
			delete(s.ids, id)
			removed++
		}
	}
	return removed
}

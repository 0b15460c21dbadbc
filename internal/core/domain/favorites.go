package domain

import "sort"

// FavoriteSet is the set of recipe IDs the user has marked favorite.
// The zero value is not usable; construct with NewFavoriteSet.
type FavoriteSet struct {
	ids map[int]struct{}
}

// NewFavoriteSet creates a favorite set containing the given IDs.
func NewFavoriteSet(ids ...int) FavoriteSet {
	s := FavoriteSet{ids: make(map[int]struct{}, len(ids))}
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
	return s
}

// Has reports whether id is in the set.
func (s FavoriteSet) Has(id int) bool {
	_, ok := s.ids[id]
	return ok
}

// Add inserts id into the set.
func (s FavoriteSet) Add(id int) {
	s.ids[id] = struct{}{}
}

// Remove deletes id from the set.
func (s FavoriteSet) Remove(id int) {
	delete(s.ids, id)
}

// Len returns the number of favorites.
func (s FavoriteSet) Len() int {
	return len(s.ids)
}

// IDs returns the favorite IDs in ascending order.
func (s FavoriteSet) IDs() []int {
	out := make([]int, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}

// Clone returns an independent copy of the set.
func (s FavoriteSet) Clone() FavoriteSet {
	c := FavoriteSet{ids: make(map[int]struct{}, len(s.ids))}
	for id := range s.ids {
		c.ids[id] = struct{}{}
	}
	return c
}

// Prune removes every ID not present in valid and reports how many
// entries were dropped. Stale favorites referencing recipes removed
// from the catalog are discarded silently, not surfaced as errors.
func (s FavoriteSet) Prune(valid map[int]struct{}) int {
	dropped := 0
	for id := range s.ids {
		if _, ok := valid[id]; !ok {
			delete(s.ids, id)
			dropped++
		}
	}
	return dropped
}

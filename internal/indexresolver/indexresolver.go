// Package indexresolver maps the data items of a discrete or temporal axis
// to their index.
//
// Keys are category names or rounded timestamps. Each key also has a numeric
// value used for ordered lookups; for categories this is simply the index.
package indexresolver

import (
	"math"
	"sort"
)

// Direction selects the side of a value that FindClosestIndex searches.
type Direction int

const (
	// Left finds the last item at or before the value.
	Left Direction = iota

	// Right finds the first item at or after the value.
	Right
)

func (d Direction) String() string {
	if d == Right {
		return "right"
	}
	return "left"
}

// Resolver is a key to index lookup over an ordered list of items.
type Resolver[K comparable] struct {
	keys   []K
	values []float64
	index  map[K]int
	value  func(K) float64
}

// New returns a resolver over keys.
//
// value maps a key to its numeric value and must be non-decreasing over keys.
// If value is nil, each key's value is its index.
func New[K comparable](keys []K, value func(K) float64) *Resolver[K] {
	r := &Resolver[K]{value: value}
	r.Rebuild(keys)
	return r
}

// Rebuild replaces the items.
//
// A key that appears more than once resolves to its first index.
func (r *Resolver[K]) Rebuild(keys []K) {
	r.keys = append(r.keys[:0], keys...)
	r.values = r.values[:0]
	r.index = make(map[K]int, len(keys))

	for i, k := range r.keys {
		if _, ok := r.index[k]; !ok {
			r.index[k] = i
		}
		if r.value == nil {
			r.values = append(r.values, float64(i))
		} else {
			r.values = append(r.values, r.value(k))
		}
	}
}

// Len returns the number of items.
func (r *Resolver[K]) Len() int {
	return len(r.keys)
}

// Index returns the index of a key.
func (r *Resolver[K]) Index(k K) (int, bool) {
	i, ok := r.index[k]
	return i, ok
}

// Key returns the key at an index.
func (r *Resolver[K]) Key(i int) (K, bool) {
	if i < 0 || i >= len(r.keys) {
		var zero K
		return zero, false
	}
	return r.keys[i], true
}

// Value returns the numeric value at an index.
func (r *Resolver[K]) Value(i int) (float64, bool) {
	if i < 0 || i >= len(r.values) {
		return 0, false
	}
	return r.values[i], true
}

// Keys returns the keys in order. The slice must not be modified.
func (r *Resolver[K]) Keys() []K {
	return r.keys
}

// FindClosestIndex returns the index of the item nearest to v on one side.
//
// Left returns the last item with value <= v and Right the first item with
// value >= v. When no item is on that side, the nearest end of the list is
// returned so a series crossing the viewport edge stays connected.
// It returns -1 if the resolver is empty.
func (r *Resolver[K]) FindClosestIndex(v float64, dir Direction) int {
	n := len(r.values)
	if n == 0 || math.IsNaN(v) {
		return -1
	}

	switch dir {
	case Right:
		i := sort.SearchFloat64s(r.values, v)
		return min(i, n-1)
	default:
		i := sort.Search(n, func(i int) bool { return r.values[i] > v }) - 1
		return max(i, 0)
	}
}

// Nearest returns the index of the item whose value is closest to v.
// Ties go to the left item.
func (r *Resolver[K]) Nearest(v float64) int {
	left := r.FindClosestIndex(v, Left)
	right := r.FindClosestIndex(v, Right)
	if left < 0 {
		return -1
	}
	if math.Abs(r.values[right]-v) < math.Abs(v-r.values[left]) {
		return right
	}
	return left
}

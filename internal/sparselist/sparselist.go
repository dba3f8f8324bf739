// Package sparselist stores values at scattered integer indices and groups
// them into runs of consecutive indices.
//
// Break detection records the domain steps that have no data and turns each
// run of such steps into one break.
package sparselist

import (
	"slices"
)

// SparseList is a list where many indices are not set.
//
// The zero value is an empty list.
type SparseList[T any] struct {
	items map[int]T
}

// Len returns the number of indices in the list that are set.
func (l *SparseList[T]) Len() int {
	return len(l.items)
}

// Put sets the value at an index.
func (l *SparseList[T]) Put(index int, item T) {
	if l.items == nil {
		l.items = make(map[int]T)
	}

	l.items[index] = item
}

// Get returns the value at an index and whether it is set.
func (l *SparseList[T]) Get(index int) (T, bool) {
	item, ok := l.items[index]
	return item, ok
}

// Delete clears an index in the list.
func (l *SparseList[T]) Delete(index int) {
	delete(l.items, index)
}

// Run is a sequence of values at consecutive indices.
type Run[T any] struct {
	// Start is the index of the first value.
	Start int

	// Items are the values, in index order.
	Items []T
}

// End returns the index just past the run.
func (r Run[T]) End() int {
	return r.Start + len(r.Items)
}

// ToRuns returns the runs of consecutive indices in ascending order.
func (l *SparseList[T]) ToRuns() []Run[T] {
	indices := make([]int, 0, len(l.items))
	for idx := range l.items {
		indices = append(indices, idx)
	}
	slices.Sort(indices)

	runs := make([]Run[T], 0)
	for i, idx := range indices {
		if i > 0 && idx == indices[i-1]+1 {
			last := &runs[len(runs)-1]
			last.Items = append(last.Items, l.items[idx])
			continue
		}

		runs = append(runs, Run[T]{Start: idx, Items: []T{l.items[idx]}})
	}

	return runs
}

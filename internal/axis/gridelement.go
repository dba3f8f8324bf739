package axis

import (
	"cmp"
	"fmt"
	"slices"

	lru "github.com/hashicorp/golang-lru"
)

const defaultGridPoolSize = 256

// GridElement is one tick, grid line and label of an axis.
//
// Elements are pooled across validations. An element that is not part of
// the current grid is Disabled rather than dropped.
type GridElement struct {
	Label string `yaml:"label" json:"label"`

	// Value and EndValue bound the grid cell in value space.
	Value    float64 `yaml:"value" json:"value"`
	EndValue float64 `yaml:"endValue" json:"endValue"`

	// Position and EndPosition bound the grid cell in position space.
	Position    float64 `yaml:"position" json:"position"`
	EndPosition float64 `yaml:"endPosition" json:"endPosition"`

	// PeriodChange marks the first grid line of a coarser period.
	PeriodChange bool `yaml:"periodChange,omitempty" json:"periodChange,omitempty"`

	Disabled bool `yaml:"disabled,omitempty" json:"disabled,omitempty"`
}

// gridPool reuses grid elements keyed by label text.
//
// The cache holds at least size elements and grows for a pass with more
// cells, so an enabled element is never evicted. Only disabled elements
// are dropped when it shrinks back.
type gridPool struct {
	cache *lru.Cache
	size  int
	used  map[string]bool
}

func newGridPool(size int) *gridPool {
	if size <= 0 {
		size = defaultGridPoolSize
	}

	cache, err := lru.New(size)
	if err != nil {
		// lru.New only fails for non-positive sizes.
		panic(err)
	}
	return &gridPool{cache: cache, size: size, used: make(map[string]bool)}
}

// begin starts a validation pass of n cells.
func (p *gridPool) begin(n int) {
	clear(p.used)
	if n > p.size {
		p.cache.Resize(p.cache.Len() + n)
	}
}

// acquire returns the element for a label, creating it if needed.
func (p *gridPool) acquire(label string, value float64) *GridElement {
	key := label
	if p.used[key] {
		key = fmt.Sprintf("%s#%g", label, value)
	}
	p.used[key] = true

	if v, ok := p.cache.Get(key); ok {
		el := v.(*GridElement)
		el.Disabled = false
		return el
	}

	el := &GridElement{Label: label}
	p.cache.Add(key, el)
	return el
}

// finish disables every element not acquired during the pass and shrinks
// the cache back towards its size.
//
// Acquired elements are the most recently used, so shrinking evicts
// disabled ones first.
func (p *gridPool) finish() {
	for _, k := range p.cache.Keys() {
		if p.used[k.(string)] {
			continue
		}
		if v, ok := p.cache.Peek(k); ok {
			v.(*GridElement).Disabled = true
		}
	}
	p.cache.Resize(max(p.size, len(p.used)))
}

// invalidate drops every pooled element.
func (p *gridPool) invalidate() {
	p.cache.Purge()
	clear(p.used)
}

// elements returns enabled elements in value order followed by disabled
// ones.
func (p *gridPool) elements() []*GridElement {
	out := make([]*GridElement, 0, p.cache.Len())
	for _, k := range p.cache.Keys() {
		if v, ok := p.cache.Peek(k); ok {
			out = append(out, v.(*GridElement))
		}
	}

	slices.SortStableFunc(out, func(a, b *GridElement) int {
		if a.Disabled != b.Disabled {
			if a.Disabled {
				return 1
			}
			return -1
		}
		return cmp.Compare(a.Value, b.Value)
	})
	return out
}

// gridCell is one grid line computed by an axis variant.
type gridCell struct {
	label        string
	value        float64
	endValue     float64
	periodChange bool
}

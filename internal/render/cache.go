// Package render turns cell VisualSpecs into bitmaps and keeps the record of
// what each physical cell currently shows.
package render

import "github.com/vovakirdan/deck-arcade/internal/core"

// WriteFunc pushes one spec to one physical cell.
type WriteFunc func(index int, spec core.VisualSpec) error

// Cache remembers the last spec successfully pushed to each cell.
// It is the single chokepoint for device writes. Cache is not safe for
// concurrent use; the engine calls it with its write gate held.
type Cache struct {
	specs map[int]core.VisualSpec
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{specs: make(map[int]core.VisualSpec)}
}

// Apply writes spec to index unless the cell already shows it.
// The cache entry is updated only when write succeeds, so a failed write is
// retried by the next Apply with the same spec.
func (c *Cache) Apply(index int, spec core.VisualSpec, write WriteFunc) (bool, error) {
	if cur, ok := c.specs[index]; ok && cur == spec {
		return false, nil
	}
	return c.Repaint(index, spec, write)
}

// Repaint writes spec to index unconditionally, recording it on success.
// Used for full repaints after a reset.
func (c *Cache) Repaint(index int, spec core.VisualSpec, write WriteFunc) (bool, error) {
	if err := write(index, spec); err != nil {
		return false, err
	}
	c.specs[index] = spec
	return true, nil
}

// Get returns the last spec pushed to index.
func (c *Cache) Get(index int) (core.VisualSpec, bool) {
	spec, ok := c.specs[index]
	return spec, ok
}

// Len returns the number of cells with a recorded spec.
func (c *Cache) Len() int {
	return len(c.specs)
}

package configtree

import (
	"maps"
	"slices"
)

// Comments maps decoded paths to comment lines. Comments are keyed by path
// rather than attached to nodes, so they survive value changes and tree
// rebuilds.
type Comments map[string][]string

// Add appends lines to the comments at path.
func (c Comments) Add(path string, lines ...string) {
	c[path] = append(c[path], lines...)
}

// Get returns the comments at path.
func (c Comments) Get(path string) []string {
	return c[path]
}

// Clear removes all comments at path.
func (c Comments) Clear(path string) {
	delete(c, path)
}

// Clone returns a deep copy. Cloning a nil store returns an empty one.
func (c Comments) Clone() Comments {
	out := make(Comments, len(c))
	for p, lines := range c {
		out[p] = slices.Clone(lines)
	}

	return out
}

// Paths returns the commented paths in sorted order.
func (c Comments) Paths() []string {
	return slices.Sorted(maps.Keys(c))
}

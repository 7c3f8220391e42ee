package catalog

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Catalog is an insertion-ordered key -> entry mapping. Re-inserting an
// existing key replaces its value but keeps its original position.
type Catalog[V any] struct {
	entries *orderedmap.OrderedMap[string, V]
}

func New[V any]() *Catalog[V] {
	return &Catalog[V]{entries: orderedmap.New[string, V]()}
}

func (c *Catalog[V]) Get(key string) (V, bool) {
	return c.entries.Get(key)
}

func (c *Catalog[V]) Has(key string) bool {
	_, ok := c.entries.Get(key)
	return ok
}

// Insert stores value under key and reports whether an earlier value was
// replaced.
func (c *Catalog[V]) Insert(key string, value V) bool {
	_, replaced := c.entries.Set(key, value)
	return replaced
}

func (c *Catalog[V]) Len() int {
	return c.entries.Len()
}

func (c *Catalog[V]) Keys() []string {
	out := make([]string, 0, c.entries.Len())
	for pair := c.entries.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Key)
	}
	return out
}

// Each visits entries in insertion order until fn returns false.
func (c *Catalog[V]) Each(fn func(key string, value V) bool) {
	for pair := c.entries.Oldest(); pair != nil; pair = pair.Next() {
		if !fn(pair.Key, pair.Value) {
			return
		}
	}
}
